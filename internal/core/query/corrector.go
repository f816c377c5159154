package query

import (
	"strings"
	"unicode/utf8"
)

// correctionRatio 可接受的相對編輯距離（以候選字長度計）
const correctionRatio = 35 // percent

// Corrector 以固定詞彙表修正拼字錯誤的 token。
// 詞彙表順序有意義：距離相同時取較前面的詞。
type Corrector struct {
	vocabulary []string
}

// NewCorrector 建立修正器，詞彙表會被轉為小寫並複製
func NewCorrector(vocabulary []string) *Corrector {
	vocab := make([]string, 0, len(vocabulary))
	for _, word := range vocabulary {
		word = strings.ToLower(strings.TrimSpace(word))
		if word != "" {
			vocab = append(vocab, word)
		}
	}
	return &Corrector{vocabulary: vocab}
}

// Vocabulary 回傳詞彙表副本
func (c *Corrector) Vocabulary() []string {
	return append([]string(nil), c.vocabulary...)
}

// Correct 回傳與 token 最接近的詞彙；距離超過門檻時原樣回傳
func (c *Corrector) Correct(token string) string {
	if utf8.RuneCountInString(token) <= 1 || len(c.vocabulary) == 0 {
		return token
	}

	best := ""
	bestDist := -1
	for _, word := range c.vocabulary {
		dist := Levenshtein(token, word)
		if bestDist < 0 || dist < bestDist {
			best, bestDist = word, dist
			if dist == 0 {
				break
			}
		}
	}

	if bestDist <= Threshold(best) {
		return best
	}
	return token
}

// CorrectAll 修正每個 token 並去重，保留首次出現順序
func (c *Corrector) CorrectAll(tokens []string) []string {
	corrected := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		fixed := c.Correct(token)
		if _, dup := seen[fixed]; dup {
			continue
		}
		seen[fixed] = struct{}{}
		corrected = append(corrected, fixed)
	}
	return corrected
}

// Threshold 候選詞可接受的最大編輯距離：max(1, floor(len*0.35))
func Threshold(candidate string) int {
	limit := utf8.RuneCountInString(candidate) * correctionRatio / 100
	if limit < 1 {
		return 1
	}
	return limit
}

// Levenshtein 計算兩字串（以 rune 為單位）的編輯距離，
// 插入、刪除、替換成本皆為 1
func Levenshtein(a, b string) int {
	r1 := []rune(a)
	r2 := []rune(b)
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(r2)]
}
