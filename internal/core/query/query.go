package query

import (
	"strings"
	"unicode/utf8"
)

// Query 單次請求的查詢內容
type Query struct {
	Raw       string   // 使用者原始輸入
	Tokens    []string // 正規化後的 token，依首次出現順序
	Corrected []string // 修正後去重的 token，保留順序供外部查詢使用
}

// SearchTerms 回傳長度至少為 2 的修正後 token
func (q *Query) SearchTerms() []string {
	terms := make([]string, 0, len(q.Corrected))
	for _, token := range q.Corrected {
		if utf8.RuneCountInString(token) >= 2 {
			terms = append(terms, token)
		}
	}
	return terms
}

// Parser 將原始文字轉為 Query
type Parser struct {
	corrector *Corrector
}

// NewParser 建立 Parser
func NewParser(corrector *Corrector) *Parser {
	return &Parser{corrector: corrector}
}

// Parse 執行切詞與修正；呼叫端需先確認 raw 非空白
func (p *Parser) Parse(raw string) *Query {
	tokens := Tokenize(raw)
	return &Query{
		Raw:       raw,
		Tokens:    tokens,
		Corrected: p.corrector.CorrectAll(tokens),
	}
}

// IsBlank 判斷查詢是否沒有可用內容
func IsBlank(raw string) bool {
	return strings.TrimSpace(raw) == ""
}
