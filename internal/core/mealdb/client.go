package mealdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"recipe-assistant/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL TheMealDB API 位址（不含金鑰）
	DefaultBaseURL = "https://www.themealdb.com/api/json/v1"
	// DefaultAPIKey 公開測試金鑰
	DefaultAPIKey = "1"

	// MaxHitsPerSearch 每次搜尋最多回傳的結果數
	MaxHitsPerSearch = 5

	maxIngredientSlots = 20
)

// ErrUnexpectedStatus API 回傳非 2xx 狀態
var ErrUnexpectedStatus = errors.New("mealdb returned unexpected status")

// Hit 外部搜尋結果，Name 為去重依據
type Hit struct {
	ID              string   `json:"id,omitempty"`
	Name            string   `json:"name"`
	Thumbnail       string   `json:"thumbnail,omitempty"`
	IngredientLines []string `json:"ingredients,omitempty"`
}

// Config TheMealDB 客戶端設定
type Config struct {
	BaseURL       string
	APIKey        string
	Timeout       time.Duration
	RatePerSecond float64 // <= 0 表示不限速
	Burst         int
}

// Client TheMealDB 搜尋客戶端
type Client struct {
	client  *resty.Client
	limiter *rate.Limiter
	timeout time.Duration
}

type searchResponse struct {
	Meals []map[string]any `json:"meals"`
}

// NewClient 創建客戶端
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = DefaultAPIKey
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	client := resty.New().
		SetBaseURL(baseURL + "/" + apiKey).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "recipe-assistant/1.0")

	return &Client{
		client:  client,
		limiter: rate.NewLimiter(limit, burst),
		timeout: timeout,
	}
}

// Search 以關鍵字搜尋餐點，最多回傳 MaxHitsPerSearch 筆；
// 發生錯誤時回傳空切片與錯誤
func (c *Client) Search(ctx context.Context, keyword string) ([]Hit, error) {
	meals, err := c.search(ctx, keyword)
	if err != nil {
		return []Hit{}, err
	}

	hits := make([]Hit, 0, min(len(meals), MaxHitsPerSearch))
	for _, meal := range meals {
		hit := toHit(meal, false)
		if hit.Name == "" {
			continue
		}
		hits = append(hits, hit)
		if len(hits) == MaxHitsPerSearch {
			break
		}
	}

	common.LogDebug("MealDB 搜尋完成", zap.String("keyword", keyword), zap.Int("hits", len(hits)))
	return hits, nil
}

// LookupIngredients 查詢指定菜名的食材清單；沒有同名餐點時回傳 false
func (c *Client) LookupIngredients(ctx context.Context, mealName string) (*Hit, bool, error) {
	name := strings.TrimSpace(mealName)
	if name == "" {
		return nil, false, nil
	}

	meals, err := c.search(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if len(meals) == 0 {
		return nil, false, nil
	}

	// 只接受名稱相同（不分大小寫）的餐點，部分符合交由一般搜尋處理
	for _, meal := range meals {
		if strings.EqualFold(field(meal, "strMeal"), name) {
			hit := toHit(meal, true)
			return &hit, true, nil
		}
	}
	return nil, false, nil
}

// search 執行單次查詢；限速等待與請求共用同一個逾時
func (c *Client) search(ctx context.Context, term string) ([]map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("s", term).
		Get("/search.php")
	if err != nil {
		return nil, fmt.Errorf("failed to send request to MealDB: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode())
	}

	var result searchResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse MealDB response: %w", err)
	}
	return result.Meals, nil
}

func toHit(meal map[string]any, withIngredients bool) Hit {
	hit := Hit{
		ID:        field(meal, "idMeal"),
		Name:      field(meal, "strMeal"),
		Thumbnail: field(meal, "strMealThumb"),
	}
	if !withIngredients {
		return hit
	}

	for i := 1; i <= maxIngredientSlots; i++ {
		ingredient := field(meal, fmt.Sprintf("strIngredient%d", i))
		if ingredient == "" {
			continue
		}
		measure := field(meal, fmt.Sprintf("strMeasure%d", i))
		hit.IngredientLines = append(hit.IngredientLines, strings.TrimSpace(measure+" "+ingredient))
	}
	return hit
}

// field 讀取字串欄位，null 或非字串視為空
func field(meal map[string]any, key string) string {
	s, _ := meal[key].(string)
	return strings.TrimSpace(s)
}
