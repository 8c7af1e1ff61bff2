package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ndrsndbk/stampbot/internal/server/http/dto"
)

const signatureHeader = "X-Hub-Signature-256"

// WebhookHandler serves the Meta webhook endpoint: the GET verification
// handshake and the POST event stream.
type WebhookHandler struct {
	facade WebhookFacade
	logger *slog.Logger
}

func NewWebhookHandler(facade WebhookFacade, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{facade: facade, logger: logger}
}

// Verify answers the subscription handshake. Meta sends hub.mode,
// hub.verify_token and hub.challenge; a matching token echoes the
// challenge back, anything else gets 403.
func (h *WebhookHandler) Verify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if h.facade.VerifySubscription(mode, token) {
		h.logger.Info("webhook subscription verified")
		c.String(http.StatusOK, challenge)
		return
	}
	h.logger.Warn("webhook subscription rejected", slog.String("mode", mode))
	c.String(http.StatusForbidden, "Verification failed")
}

// Receive handles an event delivery. The raw body is read before any
// JSON decoding because the signature covers the exact bytes sent.
// Processing failures never surface to Meta: the platform retries on
// non-2xx responses and a retry storm helps nobody, so everything past
// the signature check answers 200.
func (h *WebhookHandler) Receive(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.logger.Warn("failed to read webhook body", slog.Any("error", err))
		c.String(http.StatusOK, "ok")
		return
	}

	if !h.facade.VerifySignature(body, c.GetHeader(signatureHeader)) {
		h.logger.Warn("webhook signature mismatch")
		c.String(http.StatusForbidden, "invalid signature")
		return
	}

	var event dto.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		h.logger.Warn("failed to decode webhook payload", slog.Any("error", err))
		c.String(http.StatusOK, "ok")
		return
	}

	for _, entry := range event.Entry {
		for _, msg := range entry.Messaging {
			if msg.Sender == nil || msg.Sender.ID == "" || msg.Message == nil {
				continue
			}
			h.facade.HandleMessage(c.Request.Context(), msg.Sender.ID, msg.Message.Text)
		}
	}

	c.String(http.StatusOK, "ok")
}
