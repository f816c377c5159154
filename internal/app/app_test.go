package app

import (
	"os"
	"path/filepath"
	"testing"

	"recipe-assistant/internal/core/catalog"
	"recipe-assistant/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "")
	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	return cfg
}

func TestNew_WithoutCredentials(t *testing.T) {
	cfg := loadConfig(t)

	a, err := New(cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.Completer)
	assert.NotNil(t, a.Metrics)
	assert.Equal(t, 5, a.Catalog.Len())
	assert.Equal(t, catalog.TieAll, a.TiePolicy)
	assert.Equal(t, []string{"LOCAL", "GENERATIVE", "EXTERNAL_SEARCH", "CANNED"}, a.TierNames())
}

func TestNew_WithCredentials(t *testing.T) {
	cfg := loadConfig(t)
	cfg.Generative.Provider = "openrouter"
	cfg.Generative.OpenRouterAPIKey = "or-key"
	cfg.Metrics.Enabled = false

	a, err := New(cfg)
	require.NoError(t, err)
	defer a.Close()

	require.NotNil(t, a.Completer)
	assert.Equal(t, "openrouter", a.Completer.Name())
	assert.Nil(t, a.Metrics)
}

func TestNew_CustomCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := "vocabulary: [toast]\nrecipes:\n  - name: Toast\n    keywords: [toast]\n    ingredients: [bread]\n    steps: [toast it]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := loadConfig(t)
	cfg.Catalog.Path = path
	cfg.Catalog.TiePolicy = "first"

	a, err := New(cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, 1, a.Catalog.Len())
	assert.Equal(t, catalog.TieFirst, a.TiePolicy)
}

func TestNew_Errors(t *testing.T) {
	cfg := loadConfig(t)
	cfg.Catalog.Path = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := New(cfg)
	assert.Error(t, err)

	cfg = loadConfig(t)
	cfg.Generative.Provider = "bard"
	cfg.Generative.GeminiAPIKey = "k"
	_, err = New(cfg)
	assert.Error(t, err)
}
