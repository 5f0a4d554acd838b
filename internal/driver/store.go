package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ideagraph/loom/internal/core/merge"
	"github.com/ideagraph/loom/internal/core/model"
)

// ProjectStore persists project graphs through a GraphDriver. Node payloads
// are stored as a JSON property; applying a FieldUpdate is a read-modify-write
// of that property, so concurrent merges into one project must be serialized
// by the caller.
type ProjectStore struct {
	Driver GraphDriver
}

func NewProjectStore(d GraphDriver) *ProjectStore {
	return &ProjectStore{Driver: d}
}

func (s *ProjectStore) CreateProject(ctx context.Context, id, name string) error {
	_, err := s.Driver.ExecuteQuery(ctx, SaveProjectQuery, map[string]interface{}{
		"uuid":       id,
		"name":       name,
		"created_at": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

// SaveGraph persists every node, then every edge, of one generation.
func (s *ProjectStore) SaveGraph(ctx context.Context, projectID string, g model.Graph) error {
	for _, node := range g.Nodes {
		data, err := model.MarshalData(node.Data)
		if err != nil {
			return err
		}
		_, err = s.Driver.ExecuteQuery(ctx, SaveNodeQuery, map[string]interface{}{
			"uuid":       node.ID,
			"project_id": projectID,
			"type":       string(node.Type),
			"name":       model.NodeName(node.Data),
			"x":          node.Position.X,
			"y":          node.Position.Y,
			"data":       data,
		})
		if err != nil {
			return fmt.Errorf("failed to save node %s: %w", node.ID, err)
		}
	}
	for _, edge := range g.Edges {
		_, err := s.Driver.ExecuteQuery(ctx, SaveEdgeQuery, map[string]interface{}{
			"uuid":        edge.ID,
			"project_id":  projectID,
			"source_uuid": edge.Source,
			"target_uuid": edge.Target,
		})
		if err != nil {
			return fmt.Errorf("failed to save edge %s: %w", edge.ID, err)
		}
	}
	return nil
}

// LoadGraph returns the persisted graph of a project.
func (s *ProjectStore) LoadGraph(ctx context.Context, projectID string) (model.Graph, error) {
	var g model.Graph

	nodes, err := s.Driver.ExecuteQuery(ctx, ProjectNodesQuery, map[string]interface{}{"project_id": projectID})
	if err != nil {
		return g, err
	}
	for _, rec := range nodes.Records {
		uuid, _ := rec.Get("uuid")
		nodeType, _ := rec.Get("type")
		x, _ := rec.Get("x")
		y, _ := rec.Get("y")
		rawData, _ := rec.Get("data")

		t := model.NodeType(asString(nodeType))
		data, err := model.UnmarshalData(t, asString(rawData))
		if err != nil {
			continue
		}
		g.Nodes = append(g.Nodes, model.GraphNode{
			ID:       asString(uuid),
			Type:     t,
			Position: model.Position{X: asFloat(x), Y: asFloat(y)},
			Data:     data,
		})
	}

	edges, err := s.Driver.ExecuteQuery(ctx, ProjectEdgesQuery, map[string]interface{}{"project_id": projectID})
	if err != nil {
		return g, err
	}
	for _, rec := range edges.Records {
		uuid, _ := rec.Get("uuid")
		source, _ := rec.Get("source")
		target, _ := rec.Get("target")
		g.Edges = append(g.Edges, model.GraphEdge{
			ID:     asString(uuid),
			Source: asString(source),
			Target: asString(target),
		})
	}

	return g, nil
}

// LoadSummaries snapshots a project's nodes for one merge cycle.
func (s *ProjectStore) LoadSummaries(ctx context.Context, projectID string) ([]model.EntitySummary, error) {
	result, err := s.Driver.ExecuteQuery(ctx, ProjectNodesQuery, map[string]interface{}{"project_id": projectID})
	if err != nil {
		return nil, err
	}

	var summaries []model.EntitySummary
	for _, rec := range result.Records {
		uuid, _ := rec.Get("uuid")
		nodeType, _ := rec.Get("type")
		name, _ := rec.Get("name")
		rawData, _ := rec.Get("data")

		var fields map[string]interface{}
		if err := json.Unmarshal([]byte(asString(rawData)), &fields); err != nil {
			fields = map[string]interface{}{}
		}

		summaries = append(summaries, model.EntitySummary{
			ID:              asString(uuid),
			Type:            model.NodeType(asString(nodeType)),
			Name:            asString(name),
			PopulatedFields: merge.PopulatedFields(fields),
		})
	}
	return summaries, nil
}

// ApplyUpdate fills the staged fields into a node's stored payload.
func (s *ProjectStore) ApplyUpdate(ctx context.Context, projectID string, update model.FieldUpdate) error {
	result, err := s.Driver.ExecuteQuery(ctx, NodeDataQuery, map[string]interface{}{
		"uuid":       update.EntityID,
		"project_id": projectID,
	})
	if err != nil {
		return err
	}
	if len(result.Records) == 0 {
		return fmt.Errorf("node %s not found", update.EntityID)
	}

	rawData, _ := result.Records[0].Get("data")
	fields := map[string]interface{}{}
	if err := json.Unmarshal([]byte(asString(rawData)), &fields); err != nil {
		return fmt.Errorf("failed to decode node %s data: %w", update.EntityID, err)
	}
	for k, v := range update.Fields {
		fields[k] = v
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode node %s data: %w", update.EntityID, err)
	}

	_, err = s.Driver.ExecuteQuery(ctx, SetNodeDataQuery, map[string]interface{}{
		"uuid":       update.EntityID,
		"project_id": projectID,
		"data":       string(data),
	})
	return err
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asFloat(v interface{}) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int64:
		return float64(x)
	}
	return 0
}
