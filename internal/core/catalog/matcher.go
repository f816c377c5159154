package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// TiePolicy 多個食譜同分時的處理方式
type TiePolicy string

const (
	// TieAll 回傳所有最高分食譜
	TieAll TiePolicy = "all"
	// TieFirst 只回傳目錄順序最前的最高分食譜
	TieFirst TiePolicy = "first"
)

// ParseTiePolicy 解析設定值，空字串視為 TieAll
func ParseTiePolicy(s string) (TiePolicy, error) {
	switch TiePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", TieAll:
		return TieAll, nil
	case TieFirst:
		return TieFirst, nil
	default:
		return "", fmt.Errorf("unknown tie policy %q", s)
	}
}

// MatchScore 單一食譜的比對分數
type MatchScore struct {
	Recipe Recipe
	Score  int
}

// Contains 關鍵字與 token 的雙向包含判斷。
// 與拼字修正是不同的判斷，兩者不可混用。
func Contains(keyword, token string) bool {
	if keyword == "" || token == "" {
		return false
	}
	return strings.Contains(keyword, token) || strings.Contains(token, keyword)
}

// Matcher 以修正後 token 對本地目錄評分
type Matcher struct {
	catalog *Catalog
	policy  TiePolicy
}

// NewMatcher 建立 Matcher
func NewMatcher(catalog *Catalog, policy TiePolicy) *Matcher {
	if policy == "" {
		policy = TieAll
	}
	return &Matcher{catalog: catalog, policy: policy}
}

// Scores 依目錄順序回傳每個食譜的分數（含 0 分）
func (m *Matcher) Scores(corrected []string) []MatchScore {
	scores := make([]MatchScore, 0, len(m.catalog.recipes))
	for _, recipe := range m.catalog.recipes {
		scores = append(scores, MatchScore{Recipe: recipe, Score: score(recipe, corrected)})
	}
	return scores
}

// Match 回傳最高分（>0）的食譜，依目錄順序
func (m *Matcher) Match(corrected []string) []Recipe {
	scores := m.Scores(corrected)

	positive := scores[:0]
	for _, s := range scores {
		if s.Score > 0 {
			positive = append(positive, s)
		}
	}
	if len(positive) == 0 {
		return nil
	}

	sort.SliceStable(positive, func(i, j int) bool {
		return positive[i].Score > positive[j].Score
	})

	top := positive[0].Score
	matched := make([]Recipe, 0, len(positive))
	for _, s := range positive {
		if s.Score != top {
			break
		}
		matched = append(matched, s.Recipe)
		if m.policy == TieFirst {
			break
		}
	}
	return matched
}

// score 計算有多少 token 命中食譜任一關鍵字
func score(recipe Recipe, corrected []string) int {
	n := 0
	for _, token := range corrected {
		for _, kw := range recipe.Keywords {
			if Contains(kw, token) {
				n++
				break
			}
		}
	}
	return n
}
