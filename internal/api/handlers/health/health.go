package health

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// RootMessage GET / 的存活訊息
const RootMessage = "🍳 Smart Recipe Assistant backend running (LocalDB → Gemini → MealDB)"

// Info 服務狀態資訊
type Info struct {
	Version             string
	Provider            string
	GenerativeAvailable bool
	CatalogRecipes      int
	Tiers               []string
}

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status     string                 `json:"status"`
	Timestamp  time.Time              `json:"timestamp"`
	Version    string                 `json:"version"`
	Tiers      []string               `json:"tiers"`
	Generative GenerativeStatus       `json:"generative"`
	Catalog    CatalogStatus          `json:"catalog"`
	Runtime    map[string]interface{} `json:"runtime"`
}

// GenerativeStatus 生成提供者狀態
type GenerativeStatus struct {
	Provider  string `json:"provider"`
	Available bool   `json:"available"`
}

// CatalogStatus 本地目錄狀態
type CatalogStatus struct {
	Recipes int `json:"recipes"`
}

// Handler 健康檢查處理器
type Handler struct {
	info Info
}

// NewHandler 創建健康檢查處理器
func NewHandler(info Info) *Handler {
	return &Handler{info: info}
}

// Root 回傳純文字存活訊息
func (h *Handler) Root(c *gin.Context) {
	c.String(http.StatusOK, RootMessage)
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.info.Version,
		Tiers:     h.info.Tiers,
		Generative: GenerativeStatus{
			Provider:  h.info.Provider,
			Available: h.info.GenerativeAvailable,
		},
		Catalog: CatalogStatus{Recipes: h.info.CatalogRecipes},
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":  m.Alloc,
				"sys":    m.Sys,
				"num_gc": m.NumGC,
			},
		},
	})
}

// ReadinessCheck 就緒檢查：本地目錄必須有食譜
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if h.info.CatalogRecipes == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"reason": "catalog is empty",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
