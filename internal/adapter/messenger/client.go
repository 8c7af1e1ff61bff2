package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	domainErrors "github.com/ndrsndbk/stampbot/internal/domain/errors"
)

// Client sends direct messages through the Meta Graph API on behalf of
// the business account. Without credentials every send degrades to a
// logged no-op so the webhook keeps answering 200.
type Client struct {
	baseURL    string
	apiVersion string
	businessID string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

type recipient struct {
	ID string `json:"id"`
}

type attachmentPayload struct {
	URL string `json:"url"`
}

type attachment struct {
	Type    string            `json:"type"`
	Payload attachmentPayload `json:"payload"`
}

type message struct {
	Text       string      `json:"text,omitempty"`
	Attachment *attachment `json:"attachment,omitempty"`
}

type sendRequest struct {
	Recipient     recipient `json:"recipient"`
	MessagingType string    `json:"messaging_type"`
	Message       message   `json:"message"`
}

// NewClient creates a Graph API messaging client.
func NewClient(baseURL, apiVersion, businessID, token string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiVersion: apiVersion,
		businessID: businessID,
		token:      token,
		logger:     logger,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// SendText delivers a plain text reply. Empty text is silently dropped.
func (c *Client) SendText(ctx context.Context, recipientID, text string) error {
	if text == "" {
		return nil
	}
	return c.send(ctx, sendRequest{
		Recipient:     recipient{ID: recipientID},
		MessagingType: "RESPONSE",
		Message:       message{Text: text},
	})
}

// SendImage delivers an image attachment. The channel has no native
// caption field, so a non-empty caption goes out as a follow-up text.
func (c *Client) SendImage(ctx context.Context, recipientID, imageURL, caption string) error {
	err := c.send(ctx, sendRequest{
		Recipient:     recipient{ID: recipientID},
		MessagingType: "RESPONSE",
		Message: message{
			Attachment: &attachment{
				Type:    "image",
				Payload: attachmentPayload{URL: imageURL},
			},
		},
	})
	if err != nil {
		return err
	}
	if caption == "" {
		return nil
	}
	return c.SendText(ctx, recipientID, caption)
}

func (c *Client) send(ctx context.Context, payload sendRequest) error {
	if c.businessID == "" || c.token == "" {
		c.logger.Warn("messaging credentials not configured, dropping send",
			slog.String("recipient", payload.Recipient.ID),
		)
		return domainErrors.ErrNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/%s/%s/messages", c.baseURL, c.apiVersion, c.businessID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Error("graph api send failed",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(detail)),
		)
		return fmt.Errorf("graph api send: %s", resp.Status)
	}

	c.logger.Info("graph api send ok", slog.String("recipient", payload.Recipient.ID))
	return nil
}
