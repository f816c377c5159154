package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recipe-assistant/internal/core/query"
	"recipe-assistant/internal/pkg/common"

	"go.uber.org/zap"
)

// ErrNoResult 所有 tier 都沒有回覆（未設定 CANNED 時才會發生）
var ErrNoResult = errors.New("no tier produced a reply")

// Resolver 依序執行各 tier，取第一個有結果者
type Resolver struct {
	parser   *query.Parser
	tiers    []Tier
	observer Observer
}

// Option Resolver 設定選項
type Option func(*Resolver)

// WithObserver 設定 tier 結果觀察者
func WithObserver(o Observer) Option {
	return func(r *Resolver) {
		r.observer = o
	}
}

// New 建立 Resolver；tiers 的順序即執行順序
func New(parser *query.Parser, tiers []Tier, opts ...Option) *Resolver {
	r := &Resolver{
		parser: parser,
		tiers:  append([]Tier(nil), tiers...),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Tiers 回傳 tier 名稱，依執行順序
func (r *Resolver) Tiers() []TierName {
	names := make([]TierName, 0, len(r.tiers))
	for _, t := range r.tiers {
		names = append(names, t.Name())
	}
	return names
}

// Parse 將原始輸入轉為 Query，不執行任何 tier
func (r *Resolver) Parse(raw string) (*query.Query, error) {
	if query.IsBlank(raw) {
		return nil, common.ErrMissingPrompt
	}
	return r.parser.Parse(raw), nil
}

// Resolve 解析查詢並回傳第一個成功 tier 的結果。
// 空白輸入回傳 ValidationError，且不執行任何 tier。
// 客戶端斷線不會中斷解析，每個外部呼叫由各自的逾時控制。
func (r *Resolver) Resolve(ctx context.Context, raw string) (*Result, error) {
	q, err := r.Parse(raw)
	if err != nil {
		return nil, err
	}

	requestID := common.RequestIDFrom(ctx)
	ctx = context.WithoutCancel(common.WithRequestID(ctx, requestID))

	common.LogDebug("查詢解析",
		zap.String("request_id", requestID),
		zap.String("raw", q.Raw),
		zap.Strings("tokens", q.Tokens),
		zap.Strings("corrected", q.Corrected),
	)

	for _, tier := range r.tiers {
		start := time.Now()
		result, err := attempt(ctx, tier, q)
		elapsed := time.Since(start)

		outcome := classify(result, err)
		r.observe(tier.Name(), outcome, elapsed)
		common.LogTierOutcome(requestID, string(tier.Name()), string(outcome), elapsed, err)

		if err != nil || result == nil {
			continue
		}
		if result.Tier == "" {
			result.Tier = tier.Name()
		}
		return result, nil
	}

	return nil, ErrNoResult
}

func (r *Resolver) observe(tier TierName, outcome Outcome, elapsed time.Duration) {
	if r.observer != nil {
		r.observer.ObserveTier(tier, outcome, elapsed.Seconds())
	}
}

// attempt 執行單一 tier，panic 轉為錯誤以免影響後續 tier
func attempt(ctx context.Context, tier Tier, q *query.Query) (result *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = fmt.Errorf("%s tier panicked: %v", tier.Name(), rec)
		}
	}()
	return tier.Attempt(ctx, q)
}

func classify(result *Result, err error) Outcome {
	switch {
	case errors.Is(err, ErrTierUnavailable):
		return OutcomeUnavailable
	case err != nil:
		return OutcomeError
	case result == nil:
		return OutcomeMiss
	default:
		return OutcomeHit
	}
}
