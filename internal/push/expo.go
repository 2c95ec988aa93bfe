// Package push delivers mobile notifications through Expo's push API.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"club-app-go/internal/domain/notify"
)

const (
	defaultPushURL = "https://exp.host/--/api/v2/push/send"
	defaultTimeout = 15 * time.Second

	// Expo rejects requests with more than 100 messages.
	chunkSize = 100
)

type Config struct {
	URL     string
	Enabled bool
	Timeout time.Duration
}

type Client struct {
	cfg    Config
	client *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.URL == "" {
		cfg.URL = defaultPushURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Enabled() bool {
	return c.cfg.Enabled
}

// IsValidToken filters out tokens that are syntactically not Expo push
// tokens before they reach the provider.
func (c *Client) IsValidToken(token string) bool {
	return (strings.HasPrefix(token, "ExponentPushToken[") || strings.HasPrefix(token, "ExpoPushToken[")) &&
		strings.HasSuffix(token, "]") &&
		len(token) > len("ExpoPushToken[]")
}

func (c *Client) Chunk(messages []notify.PushMessage) [][]notify.PushMessage {
	if len(messages) == 0 {
		return nil
	}

	chunks := make([][]notify.PushMessage, 0, (len(messages)+chunkSize-1)/chunkSize)
	for start := 0; start < len(messages); start += chunkSize {
		end := start + chunkSize
		if end > len(messages) {
			end = len(messages)
		}
		chunks = append(chunks, messages[start:end])
	}
	return chunks
}

func (c *Client) SendChunk(ctx context.Context, chunk []notify.PushMessage) error {
	payload, err := json.Marshal(chunk)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("expo: status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	return nil
}
