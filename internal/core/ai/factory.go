package ai

import (
	"fmt"
	"strings"

	"recipe-assistant/internal/core/ai/gemini"
	"recipe-assistant/internal/core/ai/langchain"
	"recipe-assistant/internal/core/ai/openrouter"
	"recipe-assistant/internal/core/ai/provider"
)

// NewCompleter 依名稱建立生成提供者；
// 金鑰缺失時回傳 provider.ErrMissingCredentials
func NewCompleter(name string, cfg provider.Config) (provider.Completer, error) {
	var (
		completer provider.Completer
		err       error
	)

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", provider.NameGemini:
		var c *gemini.Client
		c, err = gemini.NewClient(cfg)
		completer = c
	case provider.NameOpenRouter:
		var c *openrouter.Client
		c, err = openrouter.NewClient(cfg)
		completer = c
	case provider.NameOpenAI:
		var c *langchain.Client
		c, err = langchain.NewClient(cfg)
		completer = c
	default:
		return nil, fmt.Errorf("unknown generative provider %q", name)
	}

	// 避免回傳包著 nil 指標的介面
	if err != nil {
		return nil, err
	}
	return completer, nil
}
