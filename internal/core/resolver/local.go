package resolver

import (
	"context"

	"recipe-assistant/internal/core/catalog"
	"recipe-assistant/internal/core/format"
	"recipe-assistant/internal/core/query"
)

// LocalTier 以本地目錄比對
type LocalTier struct {
	matcher   *catalog.Matcher
	formatter *format.Formatter
}

// NewLocalTier 建立本地 tier
func NewLocalTier(matcher *catalog.Matcher, formatter *format.Formatter) *LocalTier {
	return &LocalTier{matcher: matcher, formatter: formatter}
}

// Name tier 名稱
func (t *LocalTier) Name() TierName { return TierLocal }

// Attempt 回傳所有最高分食譜
func (t *LocalTier) Attempt(_ context.Context, q *query.Query) (*Result, error) {
	recipes := t.matcher.Match(q.Corrected)
	if len(recipes) == 0 {
		return nil, nil
	}
	return &Result{
		Tier:    TierLocal,
		Reply:   t.formatter.Recipes(recipes),
		Recipes: recipes,
	}, nil
}

// CannedTier 最後的固定回覆，永不失敗
type CannedTier struct {
	formatter *format.Formatter
}

// NewCannedTier 建立固定回覆 tier
func NewCannedTier(formatter *format.Formatter) *CannedTier {
	return &CannedTier{formatter: formatter}
}

// Name tier 名稱
func (t *CannedTier) Name() TierName { return TierCanned }

// Attempt 回傳固定道歉訊息
func (t *CannedTier) Attempt(context.Context, *query.Query) (*Result, error) {
	return &Result{Tier: TierCanned, Reply: t.formatter.Canned()}, nil
}
