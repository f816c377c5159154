package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"recipe-assistant/internal/core/catalog"
	"recipe-assistant/internal/core/format"
	"recipe-assistant/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"recipectl"}, args...))
	return out.String(), err
}

func findStringFlag(flags []cli.Flag, name string) *cli.StringFlag {
	for _, flag := range flags {
		if f, ok := flag.(*cli.StringFlag); ok && f.Name == name {
			return f
		}
	}
	return nil
}

func TestGlobalFlags(t *testing.T) {
	app := newApp()

	t.Run("log-level defaults to warn", func(t *testing.T) {
		f := findStringFlag(app.Flags, "log-level")
		require.NotNil(t, f)
		assert.Equal(t, "warn", f.Value)
		assert.Equal(t, []string{"l"}, f.Aliases)
	})

	t.Run("catalog has no default value", func(t *testing.T) {
		f := findStringFlag(app.Flags, "catalog")
		require.NotNil(t, f)
		assert.Empty(t, f.Value)
	})

	t.Run("invalid log level is rejected", func(t *testing.T) {
		_, err := runApp(t, "--log-level", "loud", "vocab")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestCommands(t *testing.T) {
	app := newApp()
	names := make([]string, 0, len(app.Commands))
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)
	}
	assert.Equal(t, []string{"ask", "explain", "vocab"}, names)
}

func TestVocabCommand(t *testing.T) {
	out, err := runApp(t, "vocab")
	require.NoError(t, err)

	cat, err := catalog.Default()
	require.NoError(t, err)
	assert.Equal(t, strings.Join(cat.Vocabulary(), "\n")+"\n", out)
}

func TestVocabCommand_CustomCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.yaml")
	data := []byte(`vocabulary: [pasta, tomato]
recipes:
  - name: Pasta
    keywords: [pasta]
    ingredients: [pasta]
    steps: [Boil.]
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	out, err := runApp(t, "--catalog", path, "vocab")
	require.NoError(t, err)
	assert.Equal(t, "pasta\ntomato\n", out)
}

func TestExplainCommand(t *testing.T) {
	out, err := runApp(t, "explain", "chiken", "biryani")
	require.NoError(t, err)

	assert.Contains(t, out, "tokens:    chiken biryani\n")
	assert.Contains(t, out, "corrected: chicken biryani\n")
	assert.Contains(t, out, "local match: Chicken Biryani\n")
}

func TestExplainCommand_NoMatch(t *testing.T) {
	out, err := runApp(t, "explain", "xyzzyplonk")
	require.NoError(t, err)
	assert.Contains(t, out, "local match: none")
}

func TestExplainCommand_InvalidTiePolicy(t *testing.T) {
	_, err := runApp(t, "explain", "--tie-policy", "random", "egg")
	require.Error(t, err)
}

func TestPromptRequired(t *testing.T) {
	for _, cmd := range []string{"ask", "explain"} {
		_, err := runApp(t, cmd, "  ")
		require.Error(t, err, cmd)
		assert.Equal(t, common.MissingPromptMessage, err.Error(), cmd)
	}
}

func TestAskCommand_LocalTier(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GENERATIVE_PROVIDER", "gemini")

	out, err := runApp(t, "ask", "--show-tier", "egg")
	require.NoError(t, err)

	cat, err := catalog.Default()
	require.NoError(t, err)
	assert.Equal(t, "[LOCAL]\n"+format.New().Recipe(cat.Recipes()[2])+"\n", out)
}
