package usecase

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"

	signatureDomain "github.com/enrollhq/signflow/internal/signature/domain"
)

func eventHash(apiKey, eventTime string, eventType signatureDomain.EventType) string {
	mac := hmac.New(sha256.New, []byte(apiKey))
	mac.Write([]byte(eventTime + string(eventType)))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestAuthenticatorValidate(t *testing.T) {
	const apiKey = "test-api-key"
	authenticator := NewAuthenticator(apiKey)

	event := signatureDomain.Event{
		EventType: signatureDomain.EventSignatureRequestSent,
		EventTime: "1700000000",
	}
	event.EventHash = eventHash(apiKey, event.EventTime, event.EventType)

	t.Run("valid hash", func(t *testing.T) {
		assert.True(t, authenticator.Validate(event))
	})

	t.Run("flipped hash byte", func(t *testing.T) {
		tampered := event
		raw := []byte(tampered.EventHash)
		if raw[0] == 'a' {
			raw[0] = 'b'
		} else {
			raw[0] = 'a'
		}
		tampered.EventHash = string(raw)
		assert.False(t, authenticator.Validate(tampered))
	})

	t.Run("changed event time", func(t *testing.T) {
		tampered := event
		tampered.EventTime = "1700000001"
		assert.False(t, authenticator.Validate(tampered))
	})

	t.Run("changed event type", func(t *testing.T) {
		tampered := event
		tampered.EventType = signatureDomain.EventSignatureRequestSigned
		assert.False(t, authenticator.Validate(tampered))
	})

	t.Run("wrong key", func(t *testing.T) {
		other := NewAuthenticator("other-key")
		assert.False(t, other.Validate(event))
	})
}
