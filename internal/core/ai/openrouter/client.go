package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"recipe-assistant/internal/core/ai/provider"

	"github.com/go-resty/resty/v2"
)

const (
	// DefaultBaseURL OpenRouter API 位址
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	// DefaultModel 預設模型
	DefaultModel = "google/gemini-2.5-flash"
)

// Client OpenRouter API 客戶端
type Client struct {
	client *resty.Client
	model  string
}

// Message 消息結構
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request 表示 API 請求
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

// Response OpenRouter 響應結構
type Response struct {
	ID      string `json:"id"`
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// NewClient 創建新的 OpenRouter 客戶端
func NewClient(cfg provider.Config) (*Client, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.APIKey).
		SetHeader("X-Title", "Smart Recipe Assistant")

	return &Client{client: client, model: cfg.Model}, nil
}

// Name 提供者名稱
func (c *Client) Name() string { return provider.NameOpenRouter }

// Model 模型名稱
func (c *Client) Model() string { return c.model }

// Complete 生成回應
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	req := Request{
		Model: c.model,
		Messages: []Message{
			{Role: "user", Content: prompt},
		},
		MaxTokens:   1024,
		Temperature: 0.7,
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("failed to send request to OpenRouter: %w", err)
	}

	if resp.IsError() {
		return "", &provider.APIError{
			Provider: provider.NameOpenRouter,
			Status:   resp.StatusCode(),
			Body:     provider.Truncate(resp.String(), 200),
		}
	}

	var result Response
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse OpenRouter response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", provider.ErrEmptyCompletion
	}

	return result.Choices[0].Message.Content, nil
}
