package usecase

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	signatureDomain "github.com/enrollhq/signflow/internal/signature/domain"
)

// Authenticator verifies the authenticity of inbound callback events using
// the shared API key.
type Authenticator struct {
	apiKey string
}

// NewAuthenticator creates an Authenticator with the provider's API key.
func NewAuthenticator(apiKey string) *Authenticator {
	return &Authenticator{apiKey: apiKey}
}

// Validate reports whether the event's hash matches the HMAC-SHA256 of
// event_time concatenated with event_type, keyed with the API key.
func (a *Authenticator) Validate(event signatureDomain.Event) bool {
	mac := hmac.New(sha256.New, []byte(a.apiKey))
	mac.Write([]byte(event.EventTime + string(event.EventType)))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(event.EventHash))
}
