// Package twilio sends WhatsApp messages through Twilio's Messages API.
package twilio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.twilio.com"

// Client talks to the Twilio REST API over HTTP. It implements the
// dispatch Transport interface.
type Client struct {
	accountSID   string
	authToken    string
	whatsAppFrom string
	baseURL      string
	httpClient   *http.Client
}

type Option func(*Client)

// WithBaseURL overrides the API endpoint, used for testing.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(accountSID, authToken, whatsAppFrom string, opts ...Option) *Client {
	c := &Client{
		accountSID:   accountSID,
		authToken:    authToken,
		whatsAppFrom: whatsAppFrom,
		baseURL:      defaultBaseURL,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type messageResponse struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Send delivers one WhatsApp message with an optional media attachment
// and returns the provider message SID.
func (c *Client) Send(ctx context.Context, phone, body, attachmentURL string) (string, error) {
	form := url.Values{}
	form.Set("From", "whatsapp:"+c.whatsAppFrom)
	form.Set("To", "whatsapp:"+phone)
	form.Set("Body", body)
	if attachmentURL != "" {
		form.Set("MediaUrl", attachmentURL)
	}

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build twilio request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("twilio request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read twilio response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return "", fmt.Errorf("twilio error (status %d): %s", resp.StatusCode, apiErr.Message)
		}
		return "", fmt.Errorf("twilio error (status %d)", resp.StatusCode)
	}

	var msg messageResponse
	if err := json.Unmarshal(respBody, &msg); err != nil {
		return "", fmt.Errorf("failed to decode twilio response: %w", err)
	}

	return msg.SID, nil
}
