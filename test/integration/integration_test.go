//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideagraph/loom/internal/config"
	"github.com/ideagraph/loom/internal/core"
	"github.com/ideagraph/loom/internal/core/model"
	"github.com/ideagraph/loom/internal/driver"
	"github.com/ideagraph/loom/internal/llm"
	"github.com/joho/godotenv"
)

func TestFullFlow(t *testing.T) {
	// Load environment if present
	_ = godotenv.Load("../../.env")

	uri := os.Getenv("MEMGRAPH_URI")
	if uri == "" {
		t.Skip("Skipping integration test: MEMGRAPH_URI not set")
	}
	user := os.Getenv("MEMGRAPH_USER")
	pwd := os.Getenv("MEMGRAPH_PASSWORD")

	d, err := driver.NewMemgraphDriver(uri, user, pwd)
	require.NoError(t, err)
	defer d.Close(context.Background())

	ctx := context.Background()
	require.NoError(t, d.BuildIndices(ctx))

	cfg, err := config.Load("../../config/config.toml")
	if err != nil {
		cfg = config.Default()
	}

	// LLM is optional: without it the pipeline imports name-only.
	var llmClient llm.Client
	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		cfg.LLM.Provider = provider
		if model := os.Getenv("LLM_MODEL"); model != "" {
			cfg.LLM.Model = model
		}
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
		cfg.LLM.APIKey = os.Getenv("LLM_API_KEY")
		llmClient, err = llm.NewClient(ctx, cfg.LLM)
		require.NoError(t, err)
	}

	store := driver.NewProjectStore(d)
	pipeline := core.NewPipeline(llmClient, cfg)

	projectID := fmt.Sprintf("test-project-%s", uuid.New().String())
	require.NoError(t, store.CreateProject(ctx, projectID, "Integration Test Project"))

	// Step 1: import a dialogue into a fresh graph.
	text := `Human: I want to build a recipe sharing app with React and PostgreSQL.

Features:
- User Authentication
- Recipe Search

TODO: set up the repository
Assistant: Sounds good. Redis would help with caching search results.`

	imported := pipeline.ImportText(ctx, "Recipe App", text)
	require.NotEmpty(t, imported.Graph.Nodes)
	require.NoError(t, store.SaveGraph(ctx, projectID, imported.Graph))

	loaded, err := store.LoadGraph(ctx, projectID)
	require.NoError(t, err)
	assert.Len(t, loaded.Nodes, len(imported.Graph.Nodes))
	assert.Len(t, loaded.Edges, len(imported.Graph.Edges))

	// Step 2: merge follow-up text against the stored graph.
	summaries, err := store.LoadSummaries(ctx, projectID)
	require.NoError(t, err)
	require.NotEmpty(t, summaries)

	followUp := `Features:
- User Authentication
- Meal Planning
`
	merged := pipeline.Merge(ctx, followUp, summaries)
	for _, update := range merged.Updates {
		require.NoError(t, store.ApplyUpdate(ctx, projectID, update))
	}
	require.NoError(t, store.SaveGraph(ctx, projectID, merged.Graph))

	// The matched feature must not reappear; the new one must.
	final, err := store.LoadGraph(ctx, projectID)
	require.NoError(t, err)
	authCount := 0
	planningCount := 0
	for _, n := range final.Nodes {
		if n.Type != model.NodeFeature {
			continue
		}
		switch model.NodeName(n.Data) {
		case "User Authentication":
			authCount++
		case "Meal Planning":
			planningCount++
		}
	}
	assert.Equal(t, 1, authCount)
	assert.Equal(t, 1, planningCount)

	// Cleanup
	_, _ = d.ExecuteQuery(ctx, `MATCH (n {project_id: $pid}) DETACH DELETE n`,
		map[string]interface{}{"pid": projectID})
	_, _ = d.ExecuteQuery(ctx, `MATCH (p:Project {uuid: $pid}) DETACH DELETE p`,
		map[string]interface{}{"pid": projectID})
}
