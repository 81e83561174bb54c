package domain

import "errors"

var (
	// ErrMissingCredentials indicates that the account SID or auth token is empty.
	ErrMissingCredentials = errors.New("please configure Twilio credentials in the sidebar first")
	// ErrMissingFields indicates that the recipient or message body is empty.
	ErrMissingFields = errors.New("please fill in both phone number and message")
	// ErrInvalidRecipientFormat indicates a recipient without a leading + country code.
	ErrInvalidRecipientFormat = errors.New("phone number must include country code (e.g., +1)")
)

// ProviderError wraps any failure raised by the messaging provider or its transport.
// Transient and permanent failures are not distinguished.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return "provider error"
	}
	return e.Err.Error()
}

func (e *ProviderError) Unwrap() error { return e.Err }

// ErrorCode maps an error onto the stable code exposed by the JSON API.
func ErrorCode(err error) string {
	var providerErr *ProviderError
	switch {
	case errors.Is(err, ErrMissingCredentials):
		return "MISSING_CREDENTIALS"
	case errors.Is(err, ErrMissingFields):
		return "MISSING_FIELDS"
	case errors.Is(err, ErrInvalidRecipientFormat):
		return "INVALID_RECIPIENT_FORMAT"
	case errors.As(err, &providerErr):
		return "PROVIDER_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}
