package router

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ndrsndbk/stampbot/internal/server/http/handlers"
	testhelpers "github.com/ndrsndbk/stampbot/internal/test"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := &testhelpers.WebhookFacadeStub{
		VerifySubscriptionFn: func(mode, token string) bool {
			return mode == "subscribe" && token == "token"
		},
	}
	engine := Setup(facade, logger)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for health, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=token&hub.challenge=42", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for verification, got %d", resp.Code)
	}

	payload := `{"entry":[{"messaging":[{"sender":{"id":"9"},"message":{"text":"CARD"}}]}]}`
	req = httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(payload))
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for webhook event, got %d", resp.Code)
	}
	if len(facade.Handled) != 1 || facade.Handled[0].SenderID != "9" {
		t.Fatalf("expected one dispatched message, got %+v", facade.Handled)
	}
}

var _ handlers.WebhookFacade = (*testhelpers.WebhookFacadeStub)(nil)
