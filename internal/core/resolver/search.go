package resolver

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"recipe-assistant/internal/core/format"
	"recipe-assistant/internal/core/mealdb"
	"recipe-assistant/internal/core/query"
	"recipe-assistant/internal/pkg/common"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

// MaxSearchHits 外部搜尋回覆最多列出的餐點數
const MaxSearchHits = 8

var ingredientIntentPattern = regexp.MustCompile(`(?i)\bingredients?\s+(?:for|of|in)\s+(.+)`)

// RecipeSearcher 外部食譜搜尋服務
type RecipeSearcher interface {
	Search(ctx context.Context, keyword string) ([]mealdb.Hit, error)
	LookupIngredients(ctx context.Context, mealName string) (*mealdb.Hit, bool, error)
}

// IngredientIntent 取出「ingredients for <dish>」中的菜名，沒有時回傳空字串
func IngredientIntent(raw string) string {
	m := ingredientIntentPattern.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(m[1]), ".?!"))
}

// SearchTier 以修正後 token 查詢外部食譜服務
type SearchTier struct {
	searcher  RecipeSearcher
	formatter *format.Formatter
	pool      *ants.Pool
}

// NewSearchTier 建立外部搜尋 tier；workers 為背景查詢的 worker 數。
// pool 滿載時不等待，該次查詢改在呼叫端的 goroutine 執行，請求之間不會互相阻塞。
func NewSearchTier(searcher RecipeSearcher, formatter *format.Formatter, workers int) (*SearchTier, error) {
	if workers < 1 {
		workers = 1
	}
	pool, err := ants.NewPool(workers, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}
	return &SearchTier{searcher: searcher, formatter: formatter, pool: pool}, nil
}

// Name tier 名稱
func (t *SearchTier) Name() TierName { return TierExternalSearch }

// Release 釋放 worker pool
func (t *SearchTier) Release() {
	if t.pool != nil {
		t.pool.Release()
	}
}

// Attempt 先處理食材查詢意圖，再依 token 搜尋並彙整
func (t *SearchTier) Attempt(ctx context.Context, q *query.Query) (*Result, error) {
	requestID := common.RequestIDFrom(ctx)

	if dish := IngredientIntent(q.Raw); dish != "" {
		hit, found, err := t.searcher.LookupIngredients(ctx, dish)
		switch {
		case err != nil:
			common.LogWarn("食材查詢失敗", zap.String("request_id", requestID), zap.String("dish", dish), zap.Error(err))
		case found:
			return &Result{
				Tier:  TierExternalSearch,
				Reply: t.formatter.Ingredients(*hit),
				Hits:  []mealdb.Hit{*hit},
			}, nil
		}
	}

	terms := q.SearchTerms()
	if len(terms) == 0 {
		return nil, nil
	}

	hits := Aggregate(t.searchAll(ctx, requestID, terms), MaxSearchHits)
	if len(hits) == 0 {
		return nil, nil
	}
	return &Result{
		Tier:  TierExternalSearch,
		Reply: t.formatter.Hits(hits),
		Hits:  hits,
	}, nil
}

// searchAll 平行查詢每個 term，結果依 term 順序排列；失敗的查詢視為沒有結果。
// Submit 失敗（pool 已滿或已釋放）時直接執行。
func (t *SearchTier) searchAll(ctx context.Context, requestID string, terms []string) [][]mealdb.Hit {
	results := make([][]mealdb.Hit, len(terms))
	var wg sync.WaitGroup

	for i, term := range terms {
		run := func() {
			defer wg.Done()
			hits, err := t.searcher.Search(ctx, term)
			if err != nil {
				common.LogWarn("外部搜尋失敗", zap.String("request_id", requestID), zap.String("term", term), zap.Error(err))
				return
			}
			results[i] = hits
		}

		wg.Add(1)
		if err := t.pool.Submit(run); err != nil {
			run()
		}
	}

	wg.Wait()
	return results
}

// Aggregate 依序合併搜尋結果，以名稱去重（先出現者優先）並限制數量
func Aggregate(groups [][]mealdb.Hit, limit int) []mealdb.Hit {
	seen := make(map[string]struct{})
	out := make([]mealdb.Hit, 0, limit)
	for _, group := range groups {
		for _, hit := range group {
			if _, dup := seen[hit.Name]; dup {
				continue
			}
			seen[hit.Name] = struct{}{}
			out = append(out, hit)
			if len(out) == limit {
				return out
			}
		}
	}
	return out
}
