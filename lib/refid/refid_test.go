package refid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Generate_Format(t *testing.T) {
	id := Generate()

	parts := strings.Split(id, "-")
	assert.Len(t, parts, 3)
	assert.Equal(t, "SK", parts[0])
	assert.NotEmpty(t, parts[1])
	assert.Len(t, parts[2], 5)
	assert.Equal(t, strings.ToUpper(id), id)

	for _, part := range parts[1:] {
		for _, r := range part {
			valid := (r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z')
			assert.True(t, valid, "unexpected character %q in %s", r, id)
		}
	}
}

func Test_Generate_NoCollisionsInBurst(t *testing.T) {
	seen := make(map[string]bool, 10000)
	for i := 0; i < 10000; i++ {
		id := Generate()
		assert.False(t, seen[id], "duplicate reference id %s", id)
		seen[id] = true
	}
}
