package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aradsms/wa_sender/internal/wa_sender_service/app"
	"github.com/aradsms/wa_sender/internal/wa_sender_service/domain"
	"github.com/go-chi/chi/v5"
	chi_middleware "github.com/go-chi/chi/v5/middleware"
)

// MessageHandler exposes the send action as JSON for scripts.
type MessageHandler struct {
	dispatcher *app.DispatchService
	logger     *slog.Logger
}

func NewMessageHandler(dispatcher *app.DispatchService, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{
		dispatcher: dispatcher,
		logger:     logger.With("handler", "message"),
	}
}

// RegisterRoutes registers message routes with the given router.
func (h *MessageHandler) RegisterRoutes(r chi.Router) {
	r.Post("/messages/send", h.handleSendMessage)
}

func (h *MessageHandler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.With("request_id", chi_middleware.GetReqID(ctx))

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "Failed to decode send message request", "error", err)
		h.jsonError(w, r, logger, "Invalid request payload: "+err.Error(), "INVALID_PAYLOAD", http.StatusBadRequest)
		return
	}

	creds := domain.Credentials{AccountSID: req.AccountSID, AuthToken: req.AuthToken}
	resp, err := h.dispatcher.Send(ctx, creds, domain.OutboundMessage{Recipient: req.Recipient, Body: req.Message})
	if err != nil {
		var providerErr *domain.ProviderError
		status := http.StatusBadRequest
		if errors.As(err, &providerErr) {
			status = http.StatusBadGateway
		}
		h.jsonError(w, r, logger, app.BannerText(err), domain.ErrorCode(err), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(SendMessageResponse{
		Success:           true,
		Message:           "WhatsApp message sent successfully!",
		ProviderMessageID: resp.ProviderMessageID,
	})
}

func (h *MessageHandler) jsonError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, message, code string, statusCode int) {
	logger.WarnContext(r.Context(), "API Error Response", "status_code", statusCode, "code", code)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(GenericErrorResponse{Error: message, Code: code})
}
