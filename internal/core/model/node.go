package model

// NodeType discriminates the five project-graph node kinds.
type NodeType string

const (
	NodeIdea      NodeType = "idea"
	NodeFeature   NodeType = "feature"
	NodeScreen    NodeType = "screen"
	NodeTechStack NodeType = "techStack"
	NodePrompt    NodeType = "prompt"
)

// Position is a node's canvas coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData is the tagged per-type payload of a GraphNode. Each variant has a
// fixed field set with one canonical empty value per field (empty string,
// empty slice), so merge logic never has to distinguish "absent" from "empty".
type NodeData interface {
	Kind() NodeType
	// Fields returns the mutable field values keyed by field name, as consumed
	// by the merge strategy. The primary name field is included; merge skips it.
	Fields() map[string]interface{}
}

type IdeaData struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Summary     string   `json:"summary"`
	Problem     string   `json:"problem"`
	Audience    string   `json:"audience"`
	Expanded    bool     `json:"expanded"`
	Version     int      `json:"version"`
	Tags        []string `json:"tags"`
}

type FeatureData struct {
	Name               string   `json:"name"`
	Summary            string   `json:"summary"`
	Problem            string   `json:"problem"`
	UserStory          string   `json:"userStory"`
	AcceptanceCriteria []string `json:"acceptanceCriteria"`
	Priority           string   `json:"priority"`
	Status             string   `json:"status"`
	Complexity         string   `json:"complexity"`
	Dependencies       []string `json:"dependencies"`
	Risks              []string `json:"risks"`
	Metrics            []string `json:"metrics"`
	EffortHours        int      `json:"effortHours"`
	Expanded           bool     `json:"expanded"`
	Completed          bool     `json:"completed"`
	Version            int      `json:"version"`
	Tags               []string `json:"tags"`
}

type ScreenData struct {
	Name        string   `json:"name"`
	Purpose     string   `json:"purpose"`
	KeyElements []string `json:"keyElements"`
	UserActions []string `json:"userActions"`
	States      []string `json:"states"`
	Navigation  string   `json:"navigation"`
	DataSources []string `json:"dataSources"`
	Expanded    bool     `json:"expanded"`
	Completed   bool     `json:"completed"`
	Version     int      `json:"version"`
	Tags        []string `json:"tags"`
}

type TechStackData struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Reason   string   `json:"reason"`
	Expanded bool     `json:"expanded"`
	Version  int      `json:"version"`
	Tags     []string `json:"tags"`
}

type PromptData struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Order     int      `json:"order"`
	Expanded  bool     `json:"expanded"`
	Completed bool     `json:"completed"`
	Version   int      `json:"version"`
	Tags      []string `json:"tags"`
}

func (IdeaData) Kind() NodeType      { return NodeIdea }
func (FeatureData) Kind() NodeType   { return NodeFeature }
func (ScreenData) Kind() NodeType    { return NodeScreen }
func (TechStackData) Kind() NodeType { return NodeTechStack }
func (PromptData) Kind() NodeType    { return NodePrompt }

func (d IdeaData) Fields() map[string]interface{} {
	return map[string]interface{}{
		"title":       d.Title,
		"description": d.Description,
		"summary":     d.Summary,
		"problem":     d.Problem,
		"audience":    d.Audience,
	}
}

func (d FeatureData) Fields() map[string]interface{} {
	return map[string]interface{}{
		"name":               d.Name,
		"summary":            d.Summary,
		"problem":            d.Problem,
		"userStory":          d.UserStory,
		"acceptanceCriteria": d.AcceptanceCriteria,
		"priority":           d.Priority,
		"status":             d.Status,
		"complexity":         d.Complexity,
		"dependencies":       d.Dependencies,
		"risks":              d.Risks,
		"metrics":            d.Metrics,
	}
}

func (d ScreenData) Fields() map[string]interface{} {
	return map[string]interface{}{
		"name":        d.Name,
		"purpose":     d.Purpose,
		"keyElements": d.KeyElements,
		"userActions": d.UserActions,
		"states":      d.States,
		"navigation":  d.Navigation,
		"dataSources": d.DataSources,
	}
}

func (d TechStackData) Fields() map[string]interface{} {
	return map[string]interface{}{
		"name":     d.Name,
		"category": d.Category,
		"reason":   d.Reason,
	}
}

func (d PromptData) Fields() map[string]interface{} {
	return map[string]interface{}{
		"title":   d.Title,
		"content": d.Content,
	}
}

// GraphNode is one node of a generated project graph.
type GraphNode struct {
	ID       string   `json:"id"`
	Type     NodeType `json:"type"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
}

// GraphEdge connects two nodes of the same generation.
type GraphEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Graph is one generation's node/edge set.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// ProtectedFields can never be written by merge logic: UI state, completion
// flags, version counters, tag lists and effort estimates belong to the user.
var ProtectedFields = map[string]bool{
	"expanded":    true,
	"completed":   true,
	"version":     true,
	"tags":        true,
	"effortHours": true,
}

// PrimaryNameField returns the per-type field that names the entity. Merge
// logic never overwrites it; renames are a user operation.
func PrimaryNameField(t NodeType) string {
	switch t {
	case NodeIdea, NodePrompt:
		return "title"
	default:
		return "name"
	}
}

// EmptyData returns the canonical zero payload for a node type.
func EmptyData(t NodeType) NodeData {
	switch t {
	case NodeIdea:
		return IdeaData{Tags: []string{}}
	case NodeFeature:
		return FeatureData{Tags: []string{}, AcceptanceCriteria: []string{}, Dependencies: []string{}, Risks: []string{}, Metrics: []string{}}
	case NodeScreen:
		return ScreenData{Tags: []string{}, KeyElements: []string{}, UserActions: []string{}, States: []string{}, DataSources: []string{}}
	case NodeTechStack:
		return TechStackData{Tags: []string{}}
	case NodePrompt:
		return PromptData{Tags: []string{}}
	}
	return nil
}
