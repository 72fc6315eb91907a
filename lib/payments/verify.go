package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifySignature checks a checkout callback against the recomputed
// HMAC-SHA256 of "orderID|paymentID" under the key secret. This is the only
// proof that a callback was issued by the provider rather than forged by a
// client; the secret never leaves the server. Pure computation, safe under
// concurrency.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return expected == signature
}
