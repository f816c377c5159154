package api

import (
	"time"

	"recipe-assistant/internal/api/handlers/chat"
	"recipe-assistant/internal/api/handlers/health"
	"recipe-assistant/internal/api/middleware"
	"recipe-assistant/internal/infrastructure/config"
	"recipe-assistant/internal/metrics"
	"recipe-assistant/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies 路由需要的服務
type Dependencies struct {
	Resolver chat.Resolver
	Health   health.Info
	Metrics  *metrics.Recorder // nil 時不提供 /metrics
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件；request ID 需最先產生，供後續日誌使用。
	// 指標放在 Recovery 外層，panic 的請求也會被計入
	router.Use(requestid.New())
	if deps.Metrics != nil {
		router.Use(middleware.Metrics(deps.Metrics))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	// CORS 設置
	router.Use(cors.New(corsConfig(cfg.CORS.AllowedOrigins)))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))

	healthHandler := health.NewHandler(deps.Health)
	chatHandler := chat.NewHandler(deps.Resolver)

	// 健康檢查路由
	router.GET("/", healthHandler.Root)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	if deps.Metrics != nil && cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(deps.Metrics.Handler()))
	}

	// 聊天路由，/api/chat 為相容舊版前端的別名
	router.POST("/chat", chatHandler.Chat)
	router.POST("/api/chat", chatHandler.Chat)

	common.LogInfo("Router setup completed",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.Strings("allowed_origins", cfg.CORS.AllowedOrigins),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router
}

// corsConfig 依允許來源建立 CORS 設定；包含 "*" 時允許所有來源
func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}

	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	return c
}
