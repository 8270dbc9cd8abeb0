package provider

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifyRedirectSignature checks the signature the gateway's checkout sends
// with the client redirect. The signed payload is "<orderID>|<paymentID>" and
// the signature is the hex HMAC-SHA256 digest under the key secret.
// The comparison is constant-time so a probing caller learns nothing from
// where a mismatch occurs.
func VerifyRedirectSignature(secret, orderID, paymentID, signature string) bool {
	return hmacEqualHex(secret, []byte(orderID+"|"+paymentID), signature)
}

// VerifyWebhookSignature checks the signature header of a gateway webhook.
// The digest is computed over the raw request body exactly as received.
// Re-serializing a parsed body changes field order and whitespace and breaks
// the digest, so callers must pass the untouched bytes.
func VerifyWebhookSignature(secret string, rawBody []byte, signatureHeader string) bool {
	return hmacEqualHex(secret, rawBody, signatureHeader)
}

func hmacEqualHex(secret string, payload []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
