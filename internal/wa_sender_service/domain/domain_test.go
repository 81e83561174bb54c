package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRecipient(t *testing.T) {
	assert.Equal(t, "whatsapp:+5493516760000", FormatRecipient("+5493516760000"))
	assert.Equal(t, "whatsapp:+14155238886", SandboxSender)
}

func TestCredentials_Configured(t *testing.T) {
	assert.True(t, Credentials{AccountSID: "AC123", AuthToken: "tok1"}.Configured())
	assert.False(t, Credentials{AccountSID: "AC123"}.Configured())
	assert.False(t, Credentials{AuthToken: "tok1"}.Configured())
}

func TestProviderError(t *testing.T) {
	cause := errors.New("Unable to create record: Authenticate")
	err := fmt.Errorf("dispatch: %w", &ProviderError{Provider: "twilio", Err: cause})

	assert.Equal(t, "dispatch: Unable to create record: Authenticate", err.Error())
	assert.ErrorIs(t, err, cause)

	var pe *ProviderError
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, "twilio", pe.Provider)
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "MISSING_CREDENTIALS", ErrorCode(ErrMissingCredentials))
	assert.Equal(t, "MISSING_FIELDS", ErrorCode(fmt.Errorf("validate: %w", ErrMissingFields)))
	assert.Equal(t, "INVALID_RECIPIENT_FORMAT", ErrorCode(ErrInvalidRecipientFormat))
	assert.Equal(t, "PROVIDER_ERROR", ErrorCode(&ProviderError{Err: errors.New("boom")}))
	assert.Equal(t, "INTERNAL_ERROR", ErrorCode(errors.New("other")))
}
