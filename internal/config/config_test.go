package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "bolt://localhost:7687", cfg.Memgraph.URI)
	assert.Equal(t, "token", cfg.Import.Matcher)
	assert.Equal(t, 0.6, cfg.Import.MatchThreshold)
	assert.NotEmpty(t, cfg.Enrichment.Details)
	assert.NotEmpty(t, cfg.Enrichment.WorkItem)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[llm]
provider = "openai"
model = "gpt-4o"

[import]
matcher = "llm"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, "llm", cfg.Import.Matcher)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, "bolt://localhost:7687", cfg.Memgraph.URI)
	assert.NotEmpty(t, cfg.Enrichment.Details)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
