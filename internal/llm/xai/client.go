// Package xai implements llm.Client against the xAI OpenAI-compatible
// chat completions endpoint.
package xai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"candidature-backend/internal/llm"
)

const (
	defaultBaseURL = "https://api.x.ai/v1"
	defaultModel   = "grok-3-mini"
)

// Client calls the xAI chat completions API.
type Client struct {
	apiKey     string
	model      string
	profile    llm.Profile
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a new xAI client.
func NewClient(apiKey, model string, profile llm.Profile) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("XAI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	return &Client{
		apiKey:     apiKey,
		model:      model,
		profile:    profile,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}, nil
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
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GenerateLetter sends the letter prompt and returns the first choice.
func (c *Client) GenerateLetter(ctx context.Context, company, title, description, cvText string) (string, error) {
	prompt := llm.BuildLetterPrompt(c.profile, company, title, description, cvText)

	payload, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("xai: decode response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if parsed.Error != nil {
			return "", fmt.Errorf("xai: %s", parsed.Error.Message)
		}
		return "", fmt.Errorf("xai: status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("xai: empty completion")
	}
	return parsed.Choices[0].Message.Content, nil
}

var _ llm.Client = (*Client)(nil)
