package provider

import (
	"context"
	"log/slog"

	"github.com/aradsms/wa_sender/internal/wa_sender_service/domain"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// MessageCreator is the slice of the Twilio REST API this adapter uses.
// *openapi.ApiService satisfies it.
type MessageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// ClientFactory builds a MessageCreator scoped to one set of credentials.
type ClientFactory func(creds domain.Credentials) MessageCreator

// NewTwilioRestClient is the production ClientFactory.
func NewTwilioRestClient(creds domain.Credentials) MessageCreator {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: creds.AccountSID,
		Password: creds.AuthToken,
	})
	return client.Api
}

type TwilioProvider struct {
	logger    *slog.Logger
	newClient ClientFactory
}

// NewTwilioProvider creates the Twilio adapter. A nil factory selects NewTwilioRestClient.
func NewTwilioProvider(logger *slog.Logger, newClient ClientFactory) *TwilioProvider {
	if newClient == nil {
		newClient = NewTwilioRestClient
	}
	return &TwilioProvider{
		logger:    logger.With("provider", "twilio"),
		newClient: newClient,
	}
}

// Send creates a single message through the Messages API.
// A client is built per call from the request's credentials.
func (p *TwilioProvider) Send(ctx context.Context, details SendRequestDetails) (*SendResponseDetails, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.ProviderError{Provider: p.GetName(), Err: err}
	}

	p.logger.InfoContext(ctx, "TwilioProvider: Send called",
		"internal_message_id", details.InternalMessageID,
		"from", details.From,
		"to", details.To,
		"content_length", len(details.Content))

	params := &openapi.CreateMessageParams{}
	params.SetTo(details.To)
	params.SetFrom(details.From)
	params.SetBody(details.Content)

	msg, err := p.newClient(details.Credentials).CreateMessage(params)
	if err != nil {
		p.logger.WarnContext(ctx, "Twilio send failed", "error", err, "internal_message_id", details.InternalMessageID)
		return nil, &domain.ProviderError{Provider: p.GetName(), Err: err}
	}

	sid := ""
	if msg != nil && msg.Sid != nil {
		sid = *msg.Sid
	}
	p.logger.InfoContext(ctx, "Successfully sent WhatsApp message via Twilio", "provider_message_id", sid, "internal_message_id", details.InternalMessageID)
	return &SendResponseDetails{
		ProviderMessageID: sid,
		ProviderStatus:    "SENT_TWILIO",
		ProviderName:      p.GetName(),
	}, nil
}

func (p *TwilioProvider) GetName() string {
	return "twilio"
}
