package resolver

import (
	"context"
	"fmt"
	"strings"

	"recipe-assistant/internal/core/ai/provider"
	"recipe-assistant/internal/core/format"
	"recipe-assistant/internal/core/query"
)

// DefaultLowConfidenceMarkers 代表模型無法回答的常見語句
var DefaultLowConfidenceMarkers = []string{
	"i'm sorry",
	"i am sorry",
	"i can't",
	"i cannot",
	"i'm not able",
	"i am not able",
	"unable to help",
	"as an ai",
}

const promptTemplate = `You are a helpful recipe assistant. The user said: %q.
If the user listed ingredients, suggest 3-5 dishes that use them and give one recipe in Markdown.
If the user asked how to make a dish or for its ingredients, reply with a Markdown recipe containing an "Ingredients" list and numbered "Steps".
Keep the answer concise.`

// BuildPrompt 將原始查詢嵌入提示詞
func BuildPrompt(raw string) string {
	return fmt.Sprintf(promptTemplate, strings.TrimSpace(raw))
}

// Acceptability 判斷生成文字是否可作為回覆
type Acceptability func(text string) bool

// RejectLowConfidence 拒絕含有任一低信心語句的文字（不分大小寫）
func RejectLowConfidence(markers []string) Acceptability {
	lowered := make([]string, 0, len(markers))
	for _, m := range markers {
		m = strings.ToLower(strings.TrimSpace(m))
		if m != "" {
			lowered = append(lowered, m)
		}
	}
	return func(text string) bool {
		t := strings.ToLower(text)
		for _, m := range lowered {
			if strings.Contains(t, m) {
				return false
			}
		}
		return true
	}
}

// GenerativeTier 交由文字生成提供者回答
type GenerativeTier struct {
	completer provider.Completer
	cause     error
	accept    Acceptability
	formatter *format.Formatter
}

// NewGenerativeTier 建立生成 tier。
// completer 為 nil 時 tier 永遠回報無法使用，cause 為原因（例如缺少金鑰）。
func NewGenerativeTier(completer provider.Completer, cause error, accept Acceptability, formatter *format.Formatter) *GenerativeTier {
	if accept == nil {
		accept = RejectLowConfidence(DefaultLowConfidenceMarkers)
	}
	if completer == nil && cause == nil {
		cause = provider.ErrMissingCredentials
	}
	return &GenerativeTier{
		completer: completer,
		cause:     cause,
		accept:    accept,
		formatter: formatter,
	}
}

// Name tier 名稱
func (t *GenerativeTier) Name() TierName { return TierGenerative }

// Attempt 單次呼叫提供者；空白或不可接受的文字視為沒有結果
func (t *GenerativeTier) Attempt(ctx context.Context, q *query.Query) (*Result, error) {
	if t.completer == nil {
		return nil, &TierUnavailableError{Tier: TierGenerative, Err: t.cause}
	}

	text, err := t.completer.Complete(ctx, BuildPrompt(q.Raw))
	if err != nil {
		return nil, &TierUnavailableError{Tier: TierGenerative, Err: err}
	}

	if strings.TrimSpace(text) == "" || !t.accept(text) {
		return nil, nil
	}
	return &Result{Tier: TierGenerative, Reply: t.formatter.Generated(text)}, nil
}
