package model

// ExtractedItem is a normalized, typed name pulled out of raw input.
type ExtractedItem struct {
	Name string   `json:"name"`
	Type NodeType `json:"type"`
}

// EntitySummary is a read-only snapshot of one existing graph node, built by
// the caller at the start of a merge cycle and held constant for its duration.
type EntitySummary struct {
	ID              string   `json:"id"`
	Type            NodeType `json:"type"`
	Name            string   `json:"name"`
	PopulatedFields []string `json:"populatedFields"`
}

// FieldUpdate is the minimal fill set for one matched entity. It never carries
// a protected field or the primary name field, and it is never empty: "nothing
// to fill" is represented by omitting the update entirely.
type FieldUpdate struct {
	EntityID string                 `json:"entityId"`
	Type     NodeType               `json:"type"`
	Fields   map[string]interface{} `json:"fields"`
}
