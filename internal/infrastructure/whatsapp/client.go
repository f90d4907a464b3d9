// Package whatsapp delivers outbound messages through the WhatsApp Business
// send API.
package whatsapp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"resty.dev/v3"

	"taborra-server/whatsapp-bridge/internal/infrastructure/logger"
	"taborra-server/whatsapp-bridge/internal/utils/platformerrors"
)

// Client posts messages to the Graph API for a single business phone number.
type Client struct {
	client      *resty.Client
	baseURL     string
	phoneID     string
	accessToken string
	timeout     time.Duration
}

type textPayload struct {
	Body string `json:"body"`
}

type imagePayload struct {
	Link    string `json:"link"`
	Caption string `json:"caption,omitempty"`
}

type sendRequest struct {
	MessagingProduct string        `json:"messaging_product"`
	To               string        `json:"to"`
	Type             string        `json:"type"`
	Text             *textPayload  `json:"text,omitempty"`
	Image            *imagePayload `json:"image,omitempty"`
}

func NewClient(client *resty.Client, baseURL, phoneID, accessToken string, timeout time.Duration) *Client {
	return &Client{
		client:      client,
		baseURL:     strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		phoneID:     phoneID,
		accessToken: accessToken,
		timeout:     timeout,
	}
}

// SendText delivers a plain text message to the recipient phone number and
// returns the provider's raw JSON response body.
func (c *Client) SendText(ctx context.Context, to, body string) (string, error) {
	return c.send(ctx, sendRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             &textPayload{Body: body},
	})
}

// SendImage delivers an image by link with an optional caption.
func (c *Client) SendImage(ctx context.Context, to, link, caption string) (string, error) {
	return c.send(ctx, sendRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "image",
		Image:            &imagePayload{Link: link, Caption: caption},
	})
}

func (c *Client) send(ctx context.Context, payload sendRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", c.accessToken)).
		SetBody(payload).
		Post(fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneID))
	if err != nil {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"whatsapp send failed", err, "")
	}
	if resp.IsError() {
		log := logger.GetLogger()
		log.Error().
			Int("status", resp.StatusCode()).
			Str("to", payload.To).
			Str("body", strings.TrimSpace(resp.String())).
			Msg("whatsapp send failed")
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			fmt.Sprintf("whatsapp send failed with status %d", resp.StatusCode()), nil, "")
	}

	return resp.String(), nil
}
