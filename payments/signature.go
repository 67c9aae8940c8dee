package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignPayment computes the hex HMAC-SHA256 the gateway attaches to a payment
// confirmation: the mac of "<orderID>|<paymentID>" under the key secret.
func SignPayment(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a gateway callback signature in constant time.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	expected := SignPayment(secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
