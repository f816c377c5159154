// Package app 依設定組裝解析流程，供 HTTP 服務與 CLI 共用
package app

import (
	"errors"
	"fmt"

	"recipe-assistant/internal/core/ai"
	"recipe-assistant/internal/core/ai/provider"
	"recipe-assistant/internal/core/catalog"
	"recipe-assistant/internal/core/mealdb"
	"recipe-assistant/internal/core/resolver"
	"recipe-assistant/internal/infrastructure/config"
	"recipe-assistant/internal/metrics"
	"recipe-assistant/internal/pkg/common"

	"go.uber.org/zap"
)

// App 組裝完成的服務
type App struct {
	Catalog   *catalog.Catalog
	TiePolicy catalog.TiePolicy
	Completer provider.Completer // 未設定金鑰時為 nil
	Resolver  *resolver.Resolver
	Metrics   *metrics.Recorder // 停用指標時為 nil
}

// New 載入目錄、建立外部客戶端並組裝 tier 鏈
func New(cfg *config.Config) (*App, error) {
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	policy, err := catalog.ParseTiePolicy(cfg.Catalog.TiePolicy)
	if err != nil {
		return nil, err
	}

	completer, completerErr := ai.NewCompleter(cfg.Generative.Provider, provider.Config{
		APIKey:  cfg.Generative.APIKey(),
		Model:   cfg.Generative.Model,
		BaseURL: cfg.Generative.BaseURL,
		Timeout: cfg.Generative.Timeout,
	})
	switch {
	case errors.Is(completerErr, provider.ErrMissingCredentials):
		common.LogWarn("未設定生成提供者金鑰，GENERATIVE tier 將被略過",
			zap.String("provider", cfg.Generative.Provider))
	case completerErr != nil:
		return nil, fmt.Errorf("create generative provider: %w", completerErr)
	default:
		common.LogInfo("生成提供者就緒",
			zap.String("provider", completer.Name()),
			zap.String("model", completer.Model()),
			zap.String("key", config.MaskAPIKey(cfg.Generative.APIKey())),
		)
	}

	searcher := mealdb.NewClient(mealdb.Config{
		BaseURL:       cfg.MealDB.BaseURL,
		APIKey:        cfg.MealDB.APIKey,
		Timeout:       cfg.MealDB.Timeout,
		RatePerSecond: cfg.MealDB.RatePerSecond,
		Burst:         cfg.MealDB.Burst,
	})

	a := &App{
		Catalog:   cat,
		TiePolicy: policy,
		Completer: completer,
	}

	deps := resolver.Dependencies{
		Catalog:       cat,
		TiePolicy:     policy,
		Completer:     completer,
		CompleterErr:  completerErr,
		Accept:        resolver.RejectLowConfidence(cfg.Generative.LowConfidenceMarkers),
		Searcher:      searcher,
		SearchWorkers: cfg.MealDB.Workers,
	}
	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New()
		deps.Observer = a.Metrics
	}

	a.Resolver, err = resolver.Build(deps)
	if err != nil {
		return nil, fmt.Errorf("build resolver: %w", err)
	}

	common.LogInfo("解析流程就緒",
		zap.Int("recipes", cat.Len()),
		zap.Int("vocabulary", len(cat.Vocabulary())),
		zap.String("tie_policy", string(policy)),
	)
	return a, nil
}

// TierNames 以字串回傳 tier 順序
func (a *App) TierNames() []string {
	tiers := a.Resolver.Tiers()
	names := make([]string, 0, len(tiers))
	for _, t := range tiers {
		names = append(names, string(t))
	}
	return names
}

// Close 釋放資源
func (a *App) Close() {
	if a.Resolver != nil {
		a.Resolver.Close()
	}
}
