package provider

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// 支援的提供者名稱
const (
	NameGemini     = "gemini"
	NameOpenRouter = "openrouter"
	NameOpenAI     = "openai"
)

var (
	// ErrMissingCredentials 未設定 API 金鑰
	ErrMissingCredentials = errors.New("generative provider credentials not configured")
	// ErrEmptyCompletion 提供者回應中沒有文字
	ErrEmptyCompletion = errors.New("empty completion")
)

// Completer 定義文字生成提供者介面；單次呼叫、不串流、不重試
type Completer interface {
	// Complete 送出 prompt 並回傳生成文字
	Complete(ctx context.Context, prompt string) (string, error)

	// Name 提供者名稱
	Name() string

	// Model 使用中的模型名稱
	Model() string
}

// Config 定義 AI 提供者配置
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Validate 檢查必要欄位
func (c Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingCredentials
	}
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

// APIError 提供者回傳非 2xx 狀態
type APIError struct {
	Provider string
	Status   int
	Body     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API returned status %d: %s", e.Provider, e.Status, e.Body)
}

// Truncate 截斷過長的回應內容，避免寫入日誌
func Truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
