package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed recipes.yaml
var defaultCatalog []byte

var (
	// ErrDuplicateRecipe 目錄中出現同名食譜
	ErrDuplicateRecipe = errors.New("duplicate recipe name")
	// ErrInvalidRecipe 食譜缺少必要欄位
	ErrInvalidRecipe = errors.New("invalid recipe")
)

// Recipe 本地精選食譜，載入後唯讀
type Recipe struct {
	Name        string   `yaml:"name" json:"name"`
	Keywords    []string `yaml:"keywords" json:"keywords"`
	Ingredients []string `yaml:"ingredients" json:"ingredients"`
	Steps       []string `yaml:"steps" json:"steps"`
}

// Catalog 本地食譜與修正詞彙表
type Catalog struct {
	recipes    []Recipe
	vocabulary []string
}

type catalogFile struct {
	Vocabulary []string `yaml:"vocabulary"`
	Recipes    []Recipe `yaml:"recipes"`
}

// Default 載入內嵌的預設目錄
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load 從 YAML 檔案載入目錄；path 為空時使用內嵌預設目錄
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse 解析 YAML 內容並驗證
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(file.Recipes, file.Vocabulary)
}

// New 以食譜與詞彙表建立目錄，關鍵字會轉為小寫
func New(recipes []Recipe, vocabulary []string) (*Catalog, error) {
	seen := make(map[string]struct{}, len(recipes))
	normalized := make([]Recipe, 0, len(recipes))

	for i, r := range recipes {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: recipe #%d has no name", ErrInvalidRecipe, i+1)
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRecipe, name)
		}
		seen[key] = struct{}{}

		keywords := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				keywords = append(keywords, kw)
			}
		}
		if len(keywords) == 0 {
			return nil, fmt.Errorf("%w: %s has no keywords", ErrInvalidRecipe, name)
		}

		normalized = append(normalized, Recipe{
			Name:        name,
			Keywords:    keywords,
			Ingredients: append([]string(nil), r.Ingredients...),
			Steps:       append([]string(nil), r.Steps...),
		})
	}

	vocab := make([]string, 0, len(vocabulary))
	for _, word := range vocabulary {
		word = strings.ToLower(strings.TrimSpace(word))
		if word != "" {
			vocab = append(vocab, word)
		}
	}

	return &Catalog{recipes: normalized, vocabulary: vocab}, nil
}

// Recipes 依目錄順序回傳食譜副本
func (c *Catalog) Recipes() []Recipe {
	return append([]Recipe(nil), c.recipes...)
}

// Vocabulary 回傳修正詞彙表副本
func (c *Catalog) Vocabulary() []string {
	return append([]string(nil), c.vocabulary...)
}

// Len 食譜數量
func (c *Catalog) Len() int {
	return len(c.recipes)
}
