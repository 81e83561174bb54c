package domain

const (
	// ChannelTag prefixes addresses routed over WhatsApp rather than plain SMS.
	ChannelTag = "whatsapp"
	// SandboxSender is Twilio's shared WhatsApp sandbox number, used for every dispatch.
	SandboxSender = ChannelTag + ":+14155238886"
)

// Credentials are the provider account identifier and auth token entered by the user.
// They are held in memory for a session and must never be logged or persisted.
type Credentials struct {
	AccountSID string `validate:"required"`
	AuthToken  string `validate:"required"`
}

// Configured reports whether both values are present.
func (c Credentials) Configured() bool {
	return c.AccountSID != "" && c.AuthToken != ""
}

// OutboundMessage is a single message to deliver. Recipient must carry a +country-code prefix.
type OutboundMessage struct {
	Recipient string `validate:"required,startswith=+"`
	Body      string `validate:"required"`
}

// DispatchResult is what the user sees after a send action.
type DispatchResult struct {
	Success           bool
	Message           string
	ProviderMessageID string
}

// FormatRecipient turns a raw +E.164 number into a channel address, e.g. "whatsapp:+5493516760000".
func FormatRecipient(recipient string) string {
	return ChannelTag + ":" + recipient
}
