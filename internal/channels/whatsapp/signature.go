package whatsapp

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Platform is the identifier stored with sessions and customers.
const Platform = "whatsapp"

// VerifySignature checks the X-Hub-Signature-256 header Meta attaches to
// webhook deliveries: "sha256=" followed by an HMAC-SHA256 of the raw body
// keyed with the app secret. Comparison is constant time.
func VerifySignature(appSecret string, body []byte, header string) bool {
	const prefix = "sha256="
	if !strings.HasPrefix(header, prefix) {
		return false
	}
	want, err := hex.DecodeString(strings.TrimPrefix(header, prefix))
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write(body)
	return hmac.Equal(mac.Sum(nil), want)
}
