package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aradsms/wa_sender/internal/wa_sender_service/domain"
	"github.com/aradsms/wa_sender/internal/wa_sender_service/provider"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

const successMessage = "WhatsApp message sent successfully!"

// DispatchService validates a send action and forwards it to the provider at most once.
type DispatchService struct {
	provider  provider.Adapter
	validator *Validator
	logger    *slog.Logger
}

func NewDispatchService(p provider.Adapter, v *Validator, logger *slog.Logger) *DispatchService {
	if v == nil {
		v = NewValidator(nil)
	}
	return &DispatchService{
		provider:  p,
		validator: v,
		logger:    logger.With("component", "dispatch_service"),
	}
}

// Send validates creds and msg and, only if they pass, makes a single provider call.
// Validation failures are the domain sentinels; provider failures are *domain.ProviderError.
func (s *DispatchService) Send(ctx context.Context, creds domain.Credentials, msg domain.OutboundMessage) (*provider.SendResponseDetails, error) {
	if err := s.validator.Validate(ctx, creds, msg); err != nil {
		code := strings.ToLower(domain.ErrorCode(err))
		dispatchOutcomeCounter.WithLabelValues(s.provider.GetName(), code).Inc()
		s.logger.InfoContext(ctx, "Send rejected by validation", "reason", code,
			"account_sid_present", creds.AccountSID != "", "auth_token_present", creds.AuthToken != "")
		return nil, err
	}
	return s.dispatch(ctx, creds, msg)
}

func (s *DispatchService) dispatch(ctx context.Context, creds domain.Credentials, msg domain.OutboundMessage) (*provider.SendResponseDetails, error) {
	details := provider.SendRequestDetails{
		InternalMessageID: uuid.NewString(),
		Credentials:       creds,
		From:              domain.SandboxSender,
		To:                domain.FormatRecipient(msg.Recipient),
		Content:           msg.Body,
	}
	logger := s.logger.With("internal_message_id", details.InternalMessageID, "provider_name", s.provider.GetName())
	logger.InfoContext(ctx, "Dispatching message", "to", details.To)

	timer := prometheus.NewTimer(providerRequestDurationHist.WithLabelValues(s.provider.GetName()))
	resp, err := s.provider.Send(ctx, details)
	timer.ObserveDuration()

	if err != nil {
		dispatchOutcomeCounter.WithLabelValues(s.provider.GetName(), "provider_error").Inc()
		logger.WarnContext(ctx, "Dispatch failed", "error", err)
		var providerErr *domain.ProviderError
		if !errors.As(err, &providerErr) {
			err = &domain.ProviderError{Provider: s.provider.GetName(), Err: err}
		}
		return nil, err
	}

	dispatchOutcomeCounter.WithLabelValues(s.provider.GetName(), "success").Inc()
	logger.InfoContext(ctx, "Dispatch succeeded", "provider_message_id", resp.ProviderMessageID)
	return resp, nil
}

// Submit runs one send action end to end and maps the outcome to a user-facing result.
func (s *DispatchService) Submit(ctx context.Context, creds domain.Credentials, msg domain.OutboundMessage) domain.DispatchResult {
	resp, err := s.Send(ctx, creds, msg)
	if err != nil {
		return domain.DispatchResult{Success: false, Message: BannerText(err)}
	}
	return domain.DispatchResult{Success: true, Message: successMessage, ProviderMessageID: resp.ProviderMessageID}
}

// BannerText renders err the way the result banner shows it.
func BannerText(err error) string {
	var providerErr *domain.ProviderError
	switch {
	case errors.Is(err, domain.ErrMissingCredentials):
		return "Please configure Twilio credentials in the sidebar first!"
	case errors.Is(err, domain.ErrMissingFields):
		return "Please fill in both phone number and message!"
	case errors.Is(err, domain.ErrInvalidRecipientFormat):
		return "Phone number must include country code (e.g., +1)"
	case errors.As(err, &providerErr):
		return "Error sending message: " + providerErr.Error()
	default:
		return "Error sending message: " + err.Error()
	}
}
