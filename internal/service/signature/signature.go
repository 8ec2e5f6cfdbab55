// Package signature checks the authenticity of payment claims returned by the payment gateway.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

const delimiter = "|"

// Compute returns the lowercase hex HMAC-SHA256 of orderID|paymentID keyed with secret.
func Compute(secret []byte, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(orderID + delimiter + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether sig is the gateway signature of orderID and paymentID.
// The digests are compared in constant time. An empty secret, order id, payment id or signature
// never verifies.
func Verify(secret []byte, orderID, paymentID, sig string) bool {
	if len(secret) == 0 || orderID == "" || paymentID == "" || sig == "" {
		return false
	}
	expected := Compute(secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(sig))
}
