package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/deepikaoppangi/lbg-financial-overview/internal/config"
	"github.com/sirupsen/logrus"
)

const (
	systemMessage = "You are a safe, conservative banking assistant. Do not invent numbers."
	temperature   = 0.2

	// maxResponseBytes caps how much of a completion response is read
	maxResponseBytes = 1 << 20
)

// ErrEmptyCompletion is returned when the API answers without any choice text
var ErrEmptyCompletion = errors.New("completion returned no text")

// Client handles integration with the OpenAI chat completions API
type Client struct {
	baseURL string
	model   string
	client  *http.Client
	log     *logrus.Logger
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NewClient initializes a new OpenAI client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.OpenAIURL, "/"),
		model:   cfg.OpenAIModel,
		client: &http.Client{
			Timeout: cfg.OpenAITimeout,
		},
		log: log,
	}
}

// buildRequest encodes the chat completion payload for a prompt
func (c *Client) buildRequest(prompt string) ([]byte, error) {
	return json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemMessage},
			{Role: "user", Content: prompt},
		},
		Temperature: temperature,
	})
}

// sendRequest posts the payload and returns the raw response body
func (c *Client) sendRequest(ctx context.Context, apiKey string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	c.log.Debugf("OpenAI response: %d bytes", len(body))
	return body, nil
}

// parseResponse extracts the first choice's text
func (c *Client) parseResponse(body []byte) (string, error) {
	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

// Complete sends one prompt and returns the generated text. There are no retries.
func (c *Client) Complete(ctx context.Context, apiKey, prompt string) (string, error) {
	payload, err := c.buildRequest(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	body, err := c.sendRequest(ctx, apiKey, payload)
	if err != nil {
		return "", err
	}

	text, err := c.parseResponse(body)
	if err != nil {
		return "", err
	}

	c.log.WithField("model", c.model).Infof("Completion received (%d chars)", len(text))
	return text, nil
}
