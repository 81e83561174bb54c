package provider

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aradsms/wa_sender/internal/wa_sender_service/domain"
	"github.com/google/uuid"
)

// MockProvider is a simulated provider for local development (APP_PROVIDER=mock).
type MockProvider struct {
	logger         *slog.Logger
	FailSend       bool          // Control whether Send should simulate failure
	SimulatedDelay time.Duration // To simulate network latency
}

func NewMockProvider(logger *slog.Logger, failSend bool, delay time.Duration) *MockProvider {
	return &MockProvider{
		logger:         logger.With("provider", "mock"),
		FailSend:       failSend,
		SimulatedDelay: delay,
	}
}

func (p *MockProvider) Send(ctx context.Context, details SendRequestDetails) (*SendResponseDetails, error) {
	p.logger.InfoContext(ctx, "MockProvider: Send called",
		"internal_message_id", details.InternalMessageID,
		"from", details.From,
		"to", details.To,
		"content_length", len(details.Content))

	if p.SimulatedDelay > 0 {
		select {
		case <-time.After(p.SimulatedDelay):
		case <-ctx.Done():
			return nil, &domain.ProviderError{Provider: p.GetName(), Err: ctx.Err()}
		}
	}

	if p.FailSend {
		p.logger.WarnContext(ctx, "mock provider simulated send failure", "to", details.To)
		return nil, &domain.ProviderError{Provider: p.GetName(), Err: errors.New("mock provider simulated send failure")}
	}

	providerMsgID := "SM" + uuid.NewString()
	p.logger.InfoContext(ctx, "MockProvider: message sent (simulated)", "provider_message_id", providerMsgID)
	return &SendResponseDetails{
		ProviderMessageID: providerMsgID,
		ProviderStatus:    "SENT_MOCK_OK",
		ProviderName:      p.GetName(),
	}, nil
}

func (p *MockProvider) GetName() string {
	return "mock"
}
