package query

import (
	"regexp"
	"strings"
)

var (
	// 視為空白的標點
	punctuationPattern = regexp.MustCompile(`[,;!?]`)

	// 連接詞 and / with 只在完整單字時切分；& 與空白一律切分
	separatorPattern = regexp.MustCompile(`\b(?:and|with)\b|&|\s+`)
)

// Tokenize 將原始查詢轉為小寫、去除標點、依連接詞與空白切分，
// 並依首次出現順序去重
func Tokenize(raw string) []string {
	normalized := punctuationPattern.ReplaceAllString(strings.ToLower(raw), " ")

	fragments := separatorPattern.Split(normalized, -1)
	tokens := make([]string, 0, len(fragments))
	seen := make(map[string]struct{}, len(fragments))
	for _, fragment := range fragments {
		token := strings.TrimSpace(fragment)
		if token == "" {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		tokens = append(tokens, token)
	}
	return tokens
}
