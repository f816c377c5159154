// Package langchain 以 langchaingo 連接 OpenAI 相容的 chat completion 端點
package langchain

import (
	"context"
	"fmt"
	"net/http"

	"recipe-assistant/internal/core/ai/provider"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// DefaultModel 預設模型
const DefaultModel = "gpt-4o-mini"

// Client OpenAI 相容提供者
type Client struct {
	llm   llms.Model
	model string
}

// NewClient 創建客戶端；BaseURL 為空時使用 OpenAI 官方端點
func NewClient(cfg provider.Config) (*Client, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
		openai.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}

	return &Client{llm: llm, model: cfg.Model}, nil
}

// Name 提供者名稱
func (c *Client) Name() string { return provider.NameOpenAI }

// Model 模型名稱
func (c *Client) Model() string { return c.model }

// Complete 生成回應
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	text, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt, llms.WithTemperature(0.7))
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	return text, nil
}
