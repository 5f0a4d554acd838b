package driver

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideagraph/loom/internal/core/model"
)

type mockCall struct {
	Query  string
	Params map[string]interface{}
}

type MockDriver struct {
	Calls      []mockCall
	MockResult neo4j.EagerResult
	Err        error
}

func (m *MockDriver) ExecuteQuery(_ context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.Calls = append(m.Calls, mockCall{Query: query, Params: params})
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	return m.MockResult, nil
}

func (m *MockDriver) BuildIndices(context.Context) error { return nil }
func (m *MockDriver) Close(context.Context) error        { return nil }

func (m *MockDriver) last() mockCall {
	return m.Calls[len(m.Calls)-1]
}

func TestSaveGraphWritesNodesThenEdges(t *testing.T) {
	mock := &MockDriver{}
	store := NewProjectStore(mock)

	g := model.Graph{
		Nodes: []model.GraphNode{
			{
				ID:       "feature-1-0",
				Type:     model.NodeFeature,
				Position: model.Position{X: 400, Y: 140},
				Data:     model.FeatureData{Name: "Auth", Priority: "high"},
			},
		},
		Edges: []model.GraphEdge{
			{ID: "edge-a-b", Source: "a", Target: "b"},
		},
	}
	require.NoError(t, store.SaveGraph(context.Background(), "p1", g))
	require.Len(t, mock.Calls, 2)

	node := mock.Calls[0]
	assert.Equal(t, SaveNodeQuery, node.Query)
	assert.Equal(t, "feature-1-0", node.Params["uuid"])
	assert.Equal(t, "p1", node.Params["project_id"])
	assert.Equal(t, "feature", node.Params["type"])
	assert.Equal(t, "Auth", node.Params["name"])
	assert.Contains(t, node.Params["data"], `"priority":"high"`)

	edge := mock.Calls[1]
	assert.Equal(t, SaveEdgeQuery, edge.Query)
	assert.Equal(t, "a", edge.Params["source_uuid"])
	assert.Equal(t, "b", edge.Params["target_uuid"])
}

func TestLoadGraphDecodesTypedData(t *testing.T) {
	data, err := model.MarshalData(model.FeatureData{Name: "Auth", Status: "planned"})
	require.NoError(t, err)

	mock := &MockDriver{
		MockResult: neo4j.EagerResult{
			Records: []*neo4j.Record{
				{
					Keys:   []string{"uuid", "type", "name", "x", "y", "data"},
					Values: []interface{}{"feature-1-0", "feature", "Auth", 400.0, 140.0, data},
				},
			},
		},
	}
	store := NewProjectStore(mock)

	g, err := store.LoadGraph(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, g.Nodes, 1)

	node := g.Nodes[0]
	assert.Equal(t, "feature-1-0", node.ID)
	assert.Equal(t, model.NodeFeature, node.Type)
	assert.Equal(t, 400.0, node.Position.X)
	decoded, ok := node.Data.(model.FeatureData)
	require.True(t, ok)
	assert.Equal(t, "Auth", decoded.Name)
	assert.Equal(t, "planned", decoded.Status)
}

func TestLoadSummariesReportsPopulatedFields(t *testing.T) {
	mock := &MockDriver{
		MockResult: neo4j.EagerResult{
			Records: []*neo4j.Record{
				{
					Keys: []string{"uuid", "type", "name", "x", "y", "data"},
					Values: []interface{}{"feature-1-0", "feature", "Auth", 400.0, 140.0,
						`{"name": "Auth", "summary": "Login", "problem": ""}`},
				},
			},
		},
	}
	store := NewProjectStore(mock)

	summaries, err := store.LoadSummaries(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, "feature-1-0", s.ID)
	assert.Equal(t, model.NodeFeature, s.Type)
	assert.Equal(t, "Auth", s.Name)
	assert.Equal(t, []string{"name", "summary"}, s.PopulatedFields)
}

func TestApplyUpdateMergesIntoStoredData(t *testing.T) {
	mock := &MockDriver{
		MockResult: neo4j.EagerResult{
			Records: []*neo4j.Record{
				{
					Keys:   []string{"data"},
					Values: []interface{}{`{"name": "Auth", "summary": ""}`},
				},
			},
		},
	}
	store := NewProjectStore(mock)

	err := store.ApplyUpdate(context.Background(), "p1", model.FieldUpdate{
		EntityID: "feature-1-0",
		Type:     model.NodeFeature,
		Fields:   map[string]interface{}{"summary": "Login flows"},
	})
	require.NoError(t, err)
	require.Len(t, mock.Calls, 2)

	write := mock.last()
	assert.Equal(t, SetNodeDataQuery, write.Query)

	var stored map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(write.Params["data"].(string)), &stored))
	assert.Equal(t, "Auth", stored["name"])
	assert.Equal(t, "Login flows", stored["summary"])
}

func TestApplyUpdateMissingNode(t *testing.T) {
	store := NewProjectStore(&MockDriver{})

	err := store.ApplyUpdate(context.Background(), "p1", model.FieldUpdate{EntityID: "gone"})
	assert.Error(t, err)
}

func TestStorePropagatesDriverErrors(t *testing.T) {
	store := NewProjectStore(&MockDriver{Err: errors.New("connection reset")})

	assert.Error(t, store.CreateProject(context.Background(), "p1", "Test"))
	_, err := store.LoadGraph(context.Background(), "p1")
	assert.Error(t, err)
}
