package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"clinic-whatsapp-scheduler/config"

	"github.com/sirupsen/logrus"
)

// Client sends text messages through the WhatsApp Cloud API
// (POST {base}/{phone-number-id}/messages).
type Client struct {
	httpClient    *http.Client
	log           *logrus.Logger
	baseURL       string
	apiToken      string
	phoneNumberID string
}

func NewClient(cfg config.WhatsAppConfig, log *logrus.Logger) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		log:           log,
		baseURL:       cfg.BaseURL,
		apiToken:      cfg.APIToken,
		phoneNumberID: cfg.PhoneNumberID,
	}
}

type textMessage struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             textBody `json:"text"`
}

type textBody struct {
	Body string `json:"body"`
}

// SendText delivers one outbound text message. Callers treat delivery as
// best-effort; the returned error is for logging only.
func (c *Client) SendText(ctx context.Context, to, text string) error {
	payload, err := json.Marshal(textMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             textBody{Body: text},
	})
	if err != nil {
		return fmt.Errorf("encode whatsapp message: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build whatsapp request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send whatsapp message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("whatsapp api returned %d: %s", resp.StatusCode, string(body))
	}

	c.log.Debugf("Sent WhatsApp message to %s", to)
	return nil
}
