package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Generative GenerativeConfig `mapstructure:"generative"`
	MealDB     MealDBConfig     `mapstructure:"mealdb"`
	Catalog    CatalogConfig    `mapstructure:"catalog"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	LogLevel   string           `mapstructure:"log_level"`
	LogDir     string           `mapstructure:"log_dir"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// CORSConfig 跨域設定
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GenerativeConfig 文字生成提供者設定；金鑰缺失不是錯誤
type GenerativeConfig struct {
	Provider             string        `mapstructure:"provider"`
	GeminiAPIKey         string        `mapstructure:"gemini_api_key"`
	OpenRouterAPIKey     string        `mapstructure:"openrouter_api_key"`
	OpenAIAPIKey         string        `mapstructure:"openai_api_key"`
	Model                string        `mapstructure:"model"`
	BaseURL              string        `mapstructure:"base_url"`
	Timeout              time.Duration `mapstructure:"timeout"`
	LowConfidenceMarkers []string      `mapstructure:"low_confidence_markers"`
}

// APIKey 回傳目前提供者使用的金鑰
func (g GenerativeConfig) APIKey() string {
	switch strings.ToLower(g.Provider) {
	case "openrouter":
		return g.OpenRouterAPIKey
	case "openai":
		return g.OpenAIAPIKey
	default:
		return g.GeminiAPIKey
	}
}

// MealDBConfig TheMealDB 設定
type MealDBConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	APIKey        string        `mapstructure:"api_key"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RatePerSecond float64       `mapstructure:"rate_per_second"`
	Burst         int           `mapstructure:"burst"`
	Workers       int           `mapstructure:"workers"`
}

// CatalogConfig 本地目錄設定
type CatalogConfig struct {
	Path      string `mapstructure:"path"`
	TiePolicy string `mapstructure:"tie_policy"`
}

// MetricsConfig 指標設定
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LoadConfig 載入設定：.env（若存在）→ 環境變數 → 預設值
func LoadConfig() (*Config, error) {
	// 加載 .env 文件，不存在時略過
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	// 設定環境變數前綴
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定環境變量
	bindings := map[string]string{
		"server.port":                   "PORT",
		"log_level":                     "LOG_LEVEL",
		"log_dir":                       "LOG_DIR",
		"cors.allowed_origins":          "ALLOWED_ORIGINS",
		"generative.provider":           "GENERATIVE_PROVIDER",
		"generative.gemini_api_key":     "GEMINI_API_KEY",
		"generative.openrouter_api_key": "OPENROUTER_API_KEY",
		"generative.openai_api_key":     "OPENAI_API_KEY",
		"generative.model":              "GENERATIVE_MODEL",
		"generative.base_url":           "GENERATIVE_BASE_URL",
		"mealdb.api_key":                "MEALDB_API_KEY",
		"mealdb.workers":                "MEALDB_WORKERS",
		"catalog.path":                  "CATALOG_PATH",
		"catalog.tie_policy":            "TIE_POLICY",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, "APP_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	// 解析設定
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// MaskAPIKey 遮罩 API Key，只顯示前後各 4 個字符
func MaskAPIKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "recipe-assistant")

	// 伺服器設定
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "5s")
	v.SetDefault("server.max_body_bytes", 64*1024)

	v.SetDefault("cors.allowed_origins", []string{"*"})

	// 生成提供者設定
	v.SetDefault("generative.provider", "gemini")
	v.SetDefault("generative.model", "")
	v.SetDefault("generative.base_url", "")
	v.SetDefault("generative.timeout", "20s")
	v.SetDefault("generative.low_confidence_markers", []string{
		"i'm sorry", "i am sorry", "i can't", "i cannot", "i'm not able", "i am not able", "unable to help", "as an ai",
	})

	// TheMealDB 設定
	v.SetDefault("mealdb.base_url", "https://www.themealdb.com/api/json/v1")
	v.SetDefault("mealdb.api_key", "1")
	v.SetDefault("mealdb.timeout", "8s")
	v.SetDefault("mealdb.rate_per_second", 5.0)
	v.SetDefault("mealdb.burst", 5)
	v.SetDefault("mealdb.workers", 4)

	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.tie_policy", "all")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_dir", "")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", config.Server.Port)
	}
	if config.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("invalid max body bytes")
	}
	if config.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid shutdown timeout")
	}

	// 驗證外部呼叫逾時，不允許無限等待
	if config.Generative.Timeout <= 0 {
		return fmt.Errorf("invalid generative timeout")
	}
	if config.MealDB.Timeout <= 0 {
		return fmt.Errorf("invalid mealdb timeout")
	}

	switch strings.ToLower(config.Generative.Provider) {
	case "gemini", "openrouter", "openai":
	default:
		return fmt.Errorf("unknown generative provider %q", config.Generative.Provider)
	}

	if config.MealDB.Workers <= 0 {
		return fmt.Errorf("invalid mealdb workers")
	}
	if config.MealDB.RatePerSecond < 0 {
		return fmt.Errorf("invalid mealdb rate")
	}

	switch strings.ToLower(config.Catalog.TiePolicy) {
	case "all", "first":
	default:
		return fmt.Errorf("unknown tie policy %q", config.Catalog.TiePolicy)
	}

	if config.Metrics.Enabled && !strings.HasPrefix(config.Metrics.Path, "/") {
		return fmt.Errorf("metrics path must start with /")
	}

	return nil
}
