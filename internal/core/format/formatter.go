package format

import (
	"fmt"
	"strings"

	"recipe-assistant/internal/core/catalog"
	"recipe-assistant/internal/core/mealdb"
)

// 固定回覆文字
const (
	HitsHeading  = "🍴 Here are some dishes based on your ingredients:"
	HitsClosing  = "Would you like the recipe for any of these?"
	CannedReply  = "😕 Sorry, I couldn’t find a recipe for that. Try: 'chicken', 'paneer', or 'sandwich'."
	blockDivider = "\n\n"
)

// Formatter 將各 tier 的結果轉為 Markdown 回覆，輸出只取決於輸入
type Formatter struct{}

// New 建立 Formatter
func New() *Formatter {
	return &Formatter{}
}

// Recipes 以空行分隔輸出多個本地食譜
func (f *Formatter) Recipes(recipes []catalog.Recipe) string {
	blocks := make([]string, 0, len(recipes))
	for _, r := range recipes {
		blocks = append(blocks, f.Recipe(r))
	}
	return strings.Join(blocks, blockDivider)
}

// Recipe 輸出單一食譜：標題、食材清單、編號步驟
func (f *Formatter) Recipe(r catalog.Recipe) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🍽️ **%s**\n\n### 🧂 Ingredients\n", r.Name)
	for _, ingredient := range r.Ingredients {
		fmt.Fprintf(&sb, "- %s\n", ingredient)
	}
	sb.WriteString("\n### 👨‍🍳 Steps\n")
	for i, step := range r.Steps {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%d. %s", i+1, step)
	}
	return sb.String()
}

// Hits 輸出外部搜尋結果清單，結尾詢問是否需要食譜
func (f *Formatter) Hits(hits []mealdb.Hit) string {
	blocks := make([]string, 0, len(hits))
	for _, hit := range hits {
		blocks = append(blocks, hitBlock(hit))
	}
	return HitsHeading + blockDivider + strings.Join(blocks, blockDivider) + blockDivider + HitsClosing
}

// Ingredients 輸出單一餐點的食材清單
func (f *Formatter) Ingredients(hit mealdb.Hit) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🍽️ **%s**\n\n### 🧂 Ingredients", hit.Name)
	for _, line := range hit.IngredientLines {
		fmt.Fprintf(&sb, "\n- %s", line)
	}
	if hit.Thumbnail != "" {
		fmt.Fprintf(&sb, "\n\n![%s](%s)", hit.Name, hit.Thumbnail)
	}
	return sb.String()
}

// Generated 生成文字原樣輸出（去除前後空白）
func (f *Formatter) Generated(text string) string {
	return strings.TrimSpace(text)
}

// Canned 無任何結果時的固定回覆
func (f *Formatter) Canned() string {
	return CannedReply
}

func hitBlock(hit mealdb.Hit) string {
	block := fmt.Sprintf("🍽️ **%s**", hit.Name)
	if hit.Thumbnail != "" {
		block += fmt.Sprintf("\n![%s](%s)", hit.Name, hit.Thumbnail)
	}
	return block
}
