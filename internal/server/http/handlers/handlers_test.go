package handlers_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ndrsndbk/stampbot/internal/server/http/handlers"
	"github.com/ndrsndbk/stampbot/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newWebhookRouter(facade handlers.WebhookFacade) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := handlers.NewWebhookHandler(facade, logger)
	router := gin.New()
	router.GET("/", handlers.Health)
	router.GET("/webhook", h.Verify)
	router.POST("/webhook", h.Receive)
	return router
}

func TestHealth(t *testing.T) {
	router := newWebhookRouter(&test.WebhookFacadeStub{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK || w.Body.String() != "OK" {
		t.Fatalf("expected 200 OK, got %d %q", w.Code, w.Body.String())
	}
}

func TestVerifyEchoesChallenge(t *testing.T) {
	facade := &test.WebhookFacadeStub{
		VerifySubscriptionFn: func(mode, token string) bool {
			return mode == "subscribe" && token == "secret-token"
		},
	}
	router := newWebhookRouter(facade)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=subscribe&hub.verify_token=secret-token&hub.challenge=12345", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "12345" {
		t.Fatalf("expected challenge echoed, got %q", w.Body.String())
	}
}

func TestVerifyRejectsBadToken(t *testing.T) {
	facade := &test.WebhookFacadeStub{
		VerifySubscriptionFn: func(mode, token string) bool { return false },
	}
	router := newWebhookRouter(facade)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=12345", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if w.Body.String() != "Verification failed" {
		t.Fatalf("unexpected body %q", w.Body.String())
	}
}

func TestReceiveRejectsBadSignature(t *testing.T) {
	facade := &test.WebhookFacadeStub{
		VerifySignatureFn: func(body []byte, header string) bool { return false },
	}
	router := newWebhookRouter(facade)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{"entry":[]}`))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if len(facade.Handled) != 0 {
		t.Fatalf("expected no dispatch on rejected signature, got %d", len(facade.Handled))
	}
}

func TestReceivePassesRawBodyToVerifier(t *testing.T) {
	const body = `{"entry":[]}`
	var seen string
	facade := &test.WebhookFacadeStub{
		VerifySignatureFn: func(b []byte, header string) bool {
			seen = string(b)
			return true
		},
	}
	router := newWebhookRouter(facade)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("X-Hub-Signature-256", "sha256=abc")
	router.ServeHTTP(w, req)

	if seen != body {
		t.Fatalf("expected verifier to see raw body %q, got %q", body, seen)
	}
}

func TestReceiveMalformedJSONAnswersOK(t *testing.T) {
	facade := &test.WebhookFacadeStub{}
	router := newWebhookRouter(facade)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("not json"))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("expected 200 ok, got %d %q", w.Code, w.Body.String())
	}
	if len(facade.Handled) != 0 {
		t.Fatalf("expected no dispatch for malformed payload, got %d", len(facade.Handled))
	}
}

func TestReceiveDispatchesEachMessage(t *testing.T) {
	facade := &test.WebhookFacadeStub{}
	router := newWebhookRouter(facade)

	const payload = `{
		"object": "instagram",
		"entry": [
			{"id": "1", "messaging": [
				{"sender": {"id": "111"}, "message": {"mid": "m1", "text": "STAMP"}},
				{"sender": {"id": "222"}, "message": {"mid": "m2", "text": "CARD"}}
			]},
			{"id": "2", "messaging": [
				{"sender": {"id": "333"}, "message": {"mid": "m3", "text": "REPORT"}}
			]}
		]
	}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(payload))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	want := []test.HandledMessage{
		{SenderID: "111", Text: "STAMP"},
		{SenderID: "222", Text: "CARD"},
		{SenderID: "333", Text: "REPORT"},
	}
	if len(facade.Handled) != len(want) {
		t.Fatalf("expected %d dispatches, got %d", len(want), len(facade.Handled))
	}
	for i, h := range facade.Handled {
		if h != want[i] {
			t.Fatalf("dispatch %d: expected %+v, got %+v", i, want[i], h)
		}
	}
}

func TestReceiveSkipsIncompleteEvents(t *testing.T) {
	facade := &test.WebhookFacadeStub{}
	router := newWebhookRouter(facade)

	const payload = `{
		"entry": [
			{"id": "1", "messaging": [
				{"message": {"mid": "m1", "text": "STAMP"}},
				{"sender": {"id": ""}, "message": {"mid": "m2", "text": "STAMP"}},
				{"sender": {"id": "444"}},
				{"sender": {"id": "555"}, "message": {"mid": "m3", "text": ""}}
			]}
		]
	}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(payload))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(facade.Handled) != 1 {
		t.Fatalf("expected only the complete event dispatched, got %d", len(facade.Handled))
	}
	if facade.Handled[0].SenderID != "555" || facade.Handled[0].Text != "" {
		t.Fatalf("unexpected dispatch %+v", facade.Handled[0])
	}
}

func TestReceiveEmptyEnvelopeAnswersOK(t *testing.T) {
	facade := &test.WebhookFacadeStub{}
	router := newWebhookRouter(facade)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{}"))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("expected 200 ok, got %d %q", w.Code, w.Body.String())
	}
	if len(facade.Handled) != 0 {
		t.Fatalf("expected no dispatches, got %d", len(facade.Handled))
	}
}
