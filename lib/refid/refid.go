// Package refid mints the human-readable correlation tokens handed to
// visitors after an enquiry. The token is displayed on the confirmation
// screen and echoed back into the payment flow; it favours brevity over
// cryptographic uniqueness and is never used as a storage key.
package refid

import (
	"crypto/rand"
	"encoding/binary"
	"strconv"
	"strings"
	"time"
)

const (
	prefix       = "SK"
	suffixLength = 5
)

// 36^5, the space of the random suffix.
const suffixSpace = 36 * 36 * 36 * 36 * 36

// Generate returns a fresh reference id of the form
// SK-<base36 millis>-<base36 random>, uppercased. It cannot fail and is
// safe to call concurrently without coordination: the millisecond timestamp
// plus a random suffix makes collisions from rapid successive submissions
// practically irrelevant.
func Generate() string {
	timestamp := strconv.FormatInt(time.Now().UnixMilli(), 36)
	return strings.ToUpper(prefix + "-" + timestamp + "-" + randomSuffix())
}

func randomSuffix() string {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand never fails on supported platforms; fall back to the
		// clock so Generate keeps its cannot-fail contract regardless.
		binary.BigEndian.PutUint64(buf[:], uint64(time.Now().UnixNano()))
	}
	n := binary.BigEndian.Uint64(buf[:]) % suffixSpace

	s := strconv.FormatUint(n, 36)
	for len(s) < suffixLength {
		s = "0" + s
	}
	return s
}
