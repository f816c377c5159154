package resolver

import (
	"context"
	"errors"
	"fmt"

	"recipe-assistant/internal/core/catalog"
	"recipe-assistant/internal/core/mealdb"
	"recipe-assistant/internal/core/query"
)

// TierName 解析層級名稱
type TierName string

// 固定的解析順序
const (
	TierLocal          TierName = "LOCAL"
	TierGenerative     TierName = "GENERATIVE"
	TierExternalSearch TierName = "EXTERNAL_SEARCH"
	TierCanned         TierName = "CANNED"
)

// Outcome 單一 tier 的執行結果
type Outcome string

const (
	OutcomeHit         Outcome = "hit"
	OutcomeMiss        Outcome = "miss"
	OutcomeError       Outcome = "error"
	OutcomeUnavailable Outcome = "unavailable"
)

// ErrTierUnavailable 外部協作者無法使用（缺金鑰、網路、格式錯誤等）
var ErrTierUnavailable = errors.New("tier unavailable")

// TierUnavailableError 包裝 tier 失敗的原因
type TierUnavailableError struct {
	Tier TierName
	Err  error
}

func (e *TierUnavailableError) Error() string {
	return fmt.Sprintf("%s tier unavailable: %v", e.Tier, e.Err)
}

// Unwrap 取得原始錯誤
func (e *TierUnavailableError) Unwrap() error {
	return e.Err
}

// Is 讓 errors.Is(err, ErrTierUnavailable) 成立
func (e *TierUnavailableError) Is(target error) bool {
	return target == ErrTierUnavailable
}

// Result 成功解析的回覆
type Result struct {
	Tier    TierName
	Reply   string
	Recipes []catalog.Recipe // LOCAL
	Hits    []mealdb.Hit     // EXTERNAL_SEARCH
}

// Tier 解析策略。
// 回傳 (nil, nil) 表示沒有結果，回傳錯誤表示失敗；兩者都會進入下一層。
type Tier interface {
	Name() TierName
	Attempt(ctx context.Context, q *query.Query) (*Result, error)
}

// Observer 接收每個 tier 的執行結果
type Observer interface {
	ObserveTier(tier TierName, outcome Outcome, seconds float64)
}
