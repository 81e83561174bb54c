package http

// CredentialsForm is the sidebar form posted to /credentials.
type CredentialsForm struct {
	AccountSID string `schema:"account_sid"`
	AuthToken  string `schema:"auth_token"`
}

// SendForm is the message form posted to /send.
type SendForm struct {
	Recipient string `schema:"recipient"`
	Message   string `schema:"message"`
}

// SendMessageRequest DTO for POST /api/v1/messages/send.
// Credentials travel with the request and are never stored.
type SendMessageRequest struct {
	AccountSID string `json:"account_sid"`
	AuthToken  string `json:"auth_token"`
	Recipient  string `json:"recipient"`
	Message    string `json:"message"`
}

// SendMessageResponse DTO
type SendMessageResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	ProviderMessageID string `json:"provider_message_id,omitempty"`
}

// GenericErrorResponse for API errors
type GenericErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
