package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/aradsms/wa_sender/internal/wa_sender_service/domain"
	"github.com/go-playground/validator/v10"
)

// Validator applies the send-form checks in a fixed order:
// credentials, then field presence, then recipient format. Only the first failure is reported.
type Validator struct {
	validate *validator.Validate
}

// NewValidator wraps v; nil selects a fresh validator.New().
func NewValidator(v *validator.Validate) *Validator {
	if v == nil {
		v = validator.New()
	}
	return &Validator{validate: v}
}

func (v *Validator) Validate(ctx context.Context, creds domain.Credentials, msg domain.OutboundMessage) error {
	if err := v.validate.StructCtx(ctx, creds); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return domain.ErrMissingCredentials
		}
		return fmt.Errorf("validate credentials: %w", err)
	}

	if err := v.validate.StructCtx(ctx, msg); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate message: %w", err)
		}
		// An empty recipient fails "required" and never reaches "startswith".
		for _, fe := range fieldErrs {
			if fe.Tag() == "required" {
				return domain.ErrMissingFields
			}
		}
		return domain.ErrInvalidRecipientFormat
	}
	return nil
}
