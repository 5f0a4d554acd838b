package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// EnrichmentPrompts are fmt templates for the LLM calls. Slots are positional:
// Details takes (feature names, screen names, source text), WorkItem takes
// (request text, related context).
type EnrichmentPrompts struct {
	Details  string `toml:"details"`
	WorkItem string `toml:"work_item"`
}

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

// ImportConfig tunes the import/merge pipeline.
type ImportConfig struct {
	// Matcher selects the name matcher: "token" (deterministic, default) or
	// "llm".
	Matcher string `toml:"matcher"`
	// MatchThreshold is the similarity floor for the token matcher.
	MatchThreshold float64 `toml:"match_threshold"`
}

type Config struct {
	LLM        LLMConfig         `toml:"llm"`
	Memgraph   MemgraphConfig    `toml:"memgraph"`
	Import     ImportConfig      `toml:"import"`
	Enrichment EnrichmentPrompts `toml:"enrichment"`
}

const defaultDetailsPrompt = `You are enriching a project plan.

Features:
%s
Screens:
%s
<SOURCE>
%s
</SOURCE>

For the overall idea and for each feature and screen named above, derive structured details from the SOURCE text.
Return ONLY a JSON object of this shape:
{
  "idea": {"summary": "...", "problem": "...", "audience": "..."},
  "features": [
    {"name": "...", "summary": "...", "problem": "...", "user_story": "...",
     "acceptance_criteria": ["..."], "priority": "low|medium|high|critical",
     "status": "planned|in-progress|testing|completed", "complexity": "low|medium|high",
     "dependencies": ["..."], "risks": ["..."], "metrics": ["..."]}
  ],
  "screens": [
    {"name": "...", "purpose": "...", "key_elements": ["..."], "user_actions": ["..."],
     "states": ["..."], "navigation": "...", "data_sources": ["..."]}
  ]
}
Use the exact names given. Omit any field you cannot derive.`

const defaultWorkItemPrompt = `Write a concise work-item description for this request:

%s

Related project context:
%s

Return ONLY a JSON object: {"description": "..."}`

// Default returns the built-in configuration; a TOML file overlays it.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: "ollama",
			Model:    "gpt-oss:latest",
			BaseURL:  "http://localhost:11434",
		},
		Memgraph: MemgraphConfig{
			URI: "bolt://localhost:7687",
		},
		Import: ImportConfig{
			Matcher:        "token",
			MatchThreshold: 0.6,
		},
		Enrichment: EnrichmentPrompts{
			Details:  defaultDetailsPrompt,
			WorkItem: defaultWorkItemPrompt,
		},
	}
}

// Load reads a TOML file over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}
