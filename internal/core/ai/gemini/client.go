package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"recipe-assistant/internal/core/ai/provider"
	"recipe-assistant/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL Gemini REST API 位址
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	// DefaultModel 預設模型
	DefaultModel = "gemini-2.5-flash"
)

// Client Gemini generateContent 客戶端
type Client struct {
	client *resty.Client
	model  string
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// NewClient 創建 Gemini 客戶端
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
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", cfg.APIKey)

	return &Client{client: client, model: cfg.Model}, nil
}

// Name 提供者名稱
func (c *Client) Name() string { return provider.NameGemini }

// Model 模型名稱
func (c *Client) Model() string { return c.model }

// Complete 生成回應
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	req := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("model", c.model).
		SetBody(req).
		Post("/models/{model}:generateContent")
	if err != nil {
		return "", fmt.Errorf("failed to send request to Gemini: %w", err)
	}

	if resp.IsError() {
		return "", &provider.APIError{
			Provider: provider.NameGemini,
			Status:   resp.StatusCode(),
			Body:     provider.Truncate(resp.String(), 200),
		}
	}

	var result generateResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse Gemini response: %w", err)
	}

	if len(result.Candidates) == 0 {
		if result.PromptFeedback.BlockReason != "" {
			common.LogDebug("Gemini 拒絕回應", zap.String("block_reason", result.PromptFeedback.BlockReason))
		}
		return "", provider.ErrEmptyCompletion
	}

	var sb strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}
