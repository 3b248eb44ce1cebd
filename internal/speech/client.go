// Package speech transcribes Telegram voice messages through the Whisper API.
package speech

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"
)

type Client struct {
	client *openai.Client
}

// New builds a client for the given key. A non-empty baseURL points the
// client at an OpenAI-compatible server instead of the default endpoint.
func New(apiKey, baseURL string) *Client {
	if baseURL == "" {
		return &Client{client: openai.NewClient(apiKey)}
	}
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL
	return &Client{client: openai.NewClientWithConfig(config)}
}

// Transcribe converts an OGG voice recording to Russian text.
func (c *Client) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		Reader:   audio,
		FilePath: filename,
		Language: "ru",
	})
	if err != nil {
		return "", fmt.Errorf("failed to transcribe audio: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", fmt.Errorf("empty transcription")
	}
	return text, nil
}
