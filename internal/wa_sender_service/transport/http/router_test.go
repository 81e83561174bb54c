package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aradsms/wa_sender/internal/wa_sender_service/app"
	"github.com/aradsms/wa_sender/internal/wa_sender_service/domain"
	"github.com/aradsms/wa_sender/internal/wa_sender_service/provider"
	"github.com/aradsms/wa_sender/internal/wa_sender_service/session"
	httptransport "github.com/aradsms/wa_sender/internal/wa_sender_service/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAdapter is a mock implementation of provider.Adapter
type MockAdapter struct {
	mock.Mock
}

func (m *MockAdapter) Send(ctx context.Context, details provider.SendRequestDetails) (*provider.SendResponseDetails, error) {
	args := m.Called(ctx, details)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.SendResponseDetails), args.Error(1)
}

func (m *MockAdapter) GetName() string { return "mock-adapter" }

type testEnv struct {
	server  *httptest.Server
	client  *http.Client
	adapter *MockAdapter
	store   *session.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	adapter := new(MockAdapter)
	store := session.NewStore(time.Hour, logger)
	handler := httptransport.NewRouter(httptransport.RouterOptions{
		Dispatcher:         app.NewDispatchService(adapter, app.NewValidator(nil), logger),
		Sessions:           store,
		Logger:             logger,
		CORSAllowedOrigins: []string{"https://example.com"},
		MetricsEnabled:     true,
	})
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testEnv{server: server, client: &http.Client{Jar: jar}, adapter: adapter, store: store}
}

func (e *testEnv) postForm(t *testing.T, path string, values url.Values) (int, string) {
	t.Helper()
	resp, err := e.client.PostForm(e.server.URL+path, values)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, html.UnescapeString(string(body))
}

func (e *testEnv) saveCredentials(t *testing.T, sid, token string) string {
	t.Helper()
	status, body := e.postForm(t, "/credentials", url.Values{"account_sid": {sid}, "auth_token": {token}})
	require.Equal(t, http.StatusOK, status) // after following the 303 back to /
	return body
}

func TestIndex_ShowsCredentialsWarning(t *testing.T) {
	env := newTestEnv(t)
	resp, err := env.client.Get(env.server.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(body), "Please enter credentials")
	assert.Contains(t, string(body), "Setup Instructions")
	assert.NotContains(t, string(body), `id="result"`)
}

func TestSaveCredentials_ShowsConfigured(t *testing.T) {
	env := newTestEnv(t)
	body := env.saveCredentials(t, "AC123", "tok1")

	assert.Contains(t, body, "Credentials configured")
	assert.NotContains(t, body, "tok1") // the token is never echoed back
	assert.Equal(t, 1, env.store.Len())
}

func TestClearCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.saveCredentials(t, "AC123", "tok1")

	status, body := env.postForm(t, "/credentials/clear", url.Values{})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Please enter credentials")
}

func TestSend_Success(t *testing.T) {
	env := newTestEnv(t)
	env.saveCredentials(t, "AC123", "tok1")

	env.adapter.On("Send", mock.Anything, mock.MatchedBy(func(d provider.SendRequestDetails) bool {
		return d.To == "whatsapp:+5493516760000" &&
			d.From == "whatsapp:+14155238886" &&
			d.Content == "hello" &&
			d.Credentials == domain.Credentials{AccountSID: "AC123", AuthToken: "tok1"}
	})).Return(&provider.SendResponseDetails{ProviderMessageID: "SM1"}, nil).Once()

	status, body := env.postForm(t, "/send", url.Values{"recipient": {"+5493516760000"}, "message": {"hello"}})

	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "WhatsApp message sent successfully!")
	assert.Contains(t, body, `value="+5493516760000"`)
	env.adapter.AssertExpectations(t)
}

func TestSend_WithoutCredentials(t *testing.T) {
	env := newTestEnv(t)
	status, body := env.postForm(t, "/send", url.Values{"recipient": {"+5493516760000"}, "message": {"hello"}})

	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Please configure Twilio credentials in the sidebar first!")
	env.adapter.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSend_MissingFields(t *testing.T) {
	env := newTestEnv(t)
	env.saveCredentials(t, "AC123", "tok1")

	_, body := env.postForm(t, "/send", url.Values{"recipient": {"+5493516760000"}})
	assert.Contains(t, body, "Please fill in both phone number and message!")
	env.adapter.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSend_InvalidRecipient(t *testing.T) {
	env := newTestEnv(t)
	env.saveCredentials(t, "AC123", "tok1")

	_, body := env.postForm(t, "/send", url.Values{"recipient": {"5493516760000"}, "message": {"hello"}})
	assert.Contains(t, body, "Phone number must include country code (e.g., +1)")
	env.adapter.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSend_ProviderError(t *testing.T) {
	env := newTestEnv(t)
	env.saveCredentials(t, "AC123", "tok1")
	env.adapter.On("Send", mock.Anything, mock.Anything).
		Return(nil, &domain.ProviderError{Provider: "mock-adapter", Err: errors.New("ApiError 63007: channel not found")}).Once()

	_, body := env.postForm(t, "/send", url.Values{"recipient": {"+5493516760000"}, "message": {"hello"}})

	assert.Contains(t, body, "Error sending message: ApiError 63007: channel not found")
	assert.NotContains(t, body, "sent successfully")
	env.adapter.AssertNumberOfCalls(t, "Send", 1)
}

func TestSend_ResultIsNotSticky(t *testing.T) {
	env := newTestEnv(t)
	env.saveCredentials(t, "AC123", "tok1")
	_, body := env.postForm(t, "/send", url.Values{"recipient": {"549"}, "message": {"hello"}})
	require.Contains(t, body, `id="result"`)

	resp, err := env.client.Get(env.server.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	page, _ := io.ReadAll(resp.Body)
	assert.NotContains(t, string(page), `id="result"`)
}

func postJSON(t *testing.T, env *testEnv, payload any) (*http.Response, []byte) {
	t.Helper()
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := env.client.Post(env.server.URL+"/api/v1/messages/send", "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestAPISend(t *testing.T) {
	valid := httptransport.SendMessageRequest{AccountSID: "AC123", AuthToken: "tok1", Recipient: "+5493516760000", Message: "hello"}

	t.Run("success", func(t *testing.T) {
		env := newTestEnv(t)
		env.adapter.On("Send", mock.Anything, mock.MatchedBy(func(d provider.SendRequestDetails) bool {
			return d.To == "whatsapp:+5493516760000" && d.From == domain.SandboxSender
		})).Return(&provider.SendResponseDetails{ProviderMessageID: "SM42"}, nil).Once()

		resp, body := postJSON(t, env, valid)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out httptransport.SendMessageResponse
		require.NoError(t, json.Unmarshal(body, &out))
		assert.True(t, out.Success)
		assert.Equal(t, "SM42", out.ProviderMessageID)
	})

	t.Run("validation codes", func(t *testing.T) {
		cases := map[string]httptransport.SendMessageRequest{
			"MISSING_CREDENTIALS":      {Recipient: "+1", Message: "x"},
			"MISSING_FIELDS":           {AccountSID: "AC123", AuthToken: "tok1", Recipient: "+1"},
			"INVALID_RECIPIENT_FORMAT": {AccountSID: "AC123", AuthToken: "tok1", Recipient: "1", Message: "x"},
		}
		for code, req := range cases {
			env := newTestEnv(t)
			resp, body := postJSON(t, env, req)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, code)

			var out httptransport.GenericErrorResponse
			require.NoError(t, json.Unmarshal(body, &out))
			assert.Equal(t, code, out.Code)
			env.adapter.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		}
	})

	t.Run("provider error", func(t *testing.T) {
		env := newTestEnv(t)
		env.adapter.On("Send", mock.Anything, mock.Anything).
			Return(nil, &domain.ProviderError{Err: errors.New("Authenticate")}).Once()

		resp, body := postJSON(t, env, valid)
		require.Equal(t, http.StatusBadGateway, resp.StatusCode)

		var out httptransport.GenericErrorResponse
		require.NoError(t, json.Unmarshal(body, &out))
		assert.Equal(t, "PROVIDER_ERROR", out.Code)
		assert.Equal(t, "Error sending message: Authenticate", out.Error)
	})

	t.Run("bad payload", func(t *testing.T) {
		env := newTestEnv(t)
		resp, err := env.client.Post(env.server.URL+"/api/v1/messages/send", "application/json", strings.NewReader("{"))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestAPISend_CORSPreflight(t *testing.T) {
	env := newTestEnv(t)
	req, err := http.NewRequest(http.MethodOptions, env.server.URL+"/api/v1/messages/send", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := env.client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "https://example.com", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestHealthAndMetrics(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.client.Get(env.server.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = env.client.Get(env.server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "http_requests_total")
}
