package http

import (
	"log/slog"
	"net/http"

	"github.com/aradsms/wa_sender/internal/wa_sender_service/app"
	"github.com/aradsms/wa_sender/internal/wa_sender_service/domain"
	"github.com/aradsms/wa_sender/internal/wa_sender_service/session"
	"github.com/go-chi/chi/v5"
	chi_middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/schema"
)

// pageData feeds templates/index.html.
type pageData struct {
	CredentialsConfigured bool
	Recipient             string
	Message               string
	Result                *domain.DispatchResult
}

// FormHandler serves the single-page sender UI.
type FormHandler struct {
	dispatcher *app.DispatchService
	sessions   *session.Store
	decoder    *schema.Decoder
	logger     *slog.Logger
}

func NewFormHandler(dispatcher *app.DispatchService, sessions *session.Store, logger *slog.Logger) *FormHandler {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return &FormHandler{
		dispatcher: dispatcher,
		sessions:   sessions,
		decoder:    decoder,
		logger:     logger.With("handler", "form"),
	}
}

// RegisterRoutes registers the UI routes with the given router.
func (h *FormHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleIndex)
	r.Post("/credentials", h.handleSaveCredentials)
	r.Post("/credentials/clear", h.handleClearCredentials)
	r.Post("/send", h.handleSend)
}

func (h *FormHandler) handleIndex(w http.ResponseWriter, r *http.Request) {
	id := h.sessions.Ensure(w, r)
	creds, _ := h.sessions.Credentials(id)
	h.render(w, r, http.StatusOK, pageData{CredentialsConfigured: creds.Configured()})
}

func (h *FormHandler) handleSaveCredentials(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.With("request_id", chi_middleware.GetReqID(ctx))

	var form CredentialsForm
	if !h.decodeForm(w, r, logger, &form) {
		return
	}
	id := h.sessions.Ensure(w, r)
	h.sessions.SetCredentials(id, domain.Credentials{AccountSID: form.AccountSID, AuthToken: form.AuthToken})
	logger.InfoContext(ctx, "Session credentials updated",
		"account_sid_present", form.AccountSID != "", "auth_token_present", form.AuthToken != "")

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *FormHandler) handleClearCredentials(w http.ResponseWriter, r *http.Request) {
	id := h.sessions.Ensure(w, r)
	h.sessions.ClearCredentials(id)
	h.logger.InfoContext(r.Context(), "Session credentials cleared", "request_id", chi_middleware.GetReqID(r.Context()))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *FormHandler) handleSend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.With("request_id", chi_middleware.GetReqID(ctx))

	var form SendForm
	if !h.decodeForm(w, r, logger, &form) {
		return
	}
	id := h.sessions.Ensure(w, r)
	creds, _ := h.sessions.Credentials(id)

	result := h.dispatcher.Submit(ctx, creds, domain.OutboundMessage{Recipient: form.Recipient, Body: form.Message})
	logger.InfoContext(ctx, "Send action finished", "success", result.Success)

	h.render(w, r, http.StatusOK, pageData{
		CredentialsConfigured: creds.Configured(),
		Recipient:             form.Recipient,
		Message:               form.Message,
		Result:                &result,
	})
}

func (h *FormHandler) decodeForm(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dst any) bool {
	if err := r.ParseForm(); err != nil {
		logger.WarnContext(r.Context(), "Failed to parse form", "error", err)
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return false
	}
	if err := h.decoder.Decode(dst, r.PostForm); err != nil {
		logger.WarnContext(r.Context(), "Failed to decode form", "error", err)
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return false
	}
	return true
}

func (h *FormHandler) render(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, data); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to render page", "error", err)
	}
}
