package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func Test_VerifySignature_Valid(t *testing.T) {
	signature := sign("order_ABC123", "pay_XYZ789", "secret-key")

	assert.True(t, VerifySignature("order_ABC123", "pay_XYZ789", signature, "secret-key"))
}

func Test_VerifySignature_TamperedSignature(t *testing.T) {
	signature := sign("order_ABC123", "pay_XYZ789", "secret-key")
	tampered := []byte(signature)
	if tampered[0] == 'a' {
		tampered[0] = 'b'
	} else {
		tampered[0] = 'a'
	}

	assert.False(t, VerifySignature("order_ABC123", "pay_XYZ789", string(tampered), "secret-key"))
}

func Test_VerifySignature_WrongSecret(t *testing.T) {
	signature := sign("order_ABC123", "pay_XYZ789", "secret-key")

	assert.False(t, VerifySignature("order_ABC123", "pay_XYZ789", signature, "other-key"))
}

func Test_VerifySignature_SwappedIdentifiers(t *testing.T) {
	signature := sign("order_ABC123", "pay_XYZ789", "secret-key")

	assert.False(t, VerifySignature("pay_XYZ789", "order_ABC123", signature, "secret-key"))
}

func Test_VerifySignature_EmptySignature(t *testing.T) {
	assert.False(t, VerifySignature("order_ABC123", "pay_XYZ789", "", "secret-key"))
}
