package provider

import (
	"context"

	"github.com/aradsms/wa_sender/internal/wa_sender_service/domain"
)

// SendRequestDetails holds everything a provider needs for one outbound message.
// From and To are already channel-formatted addresses.
type SendRequestDetails struct {
	InternalMessageID string
	Credentials       domain.Credentials
	From              string
	To                string
	Content           string
}

// SendResponseDetails holds the outcome of a successful send.
type SendResponseDetails struct {
	ProviderMessageID string
	ProviderStatus    string
	ProviderName      string
}

// Adapter defines the interface for a messaging provider adapter.
// Send makes exactly one attempt; retries are never performed by adapters.
type Adapter interface {
	Send(ctx context.Context, details SendRequestDetails) (*SendResponseDetails, error)
	GetName() string
}
