package model

// Enrichment types mirror the JSON contract of the LLM enrichment call: the
// service receives feature/screen names plus source text and returns one field
// object per item. Every field is optional on the wire; the sanitizer coerces
// enums and clamps lengths before these values reach merge or graph generation.

type IdeaDetails struct {
	Summary  string `json:"summary,omitempty"`
	Problem  string `json:"problem,omitempty"`
	Audience string `json:"audience,omitempty"`
}

type FeatureDetails struct {
	Name               string   `json:"name"`
	Summary            string   `json:"summary,omitempty"`
	Problem            string   `json:"problem,omitempty"`
	UserStory          string   `json:"user_story,omitempty"`
	AcceptanceCriteria []string `json:"acceptance_criteria,omitempty"`
	Priority           string   `json:"priority,omitempty"`
	Status             string   `json:"status,omitempty"`
	Complexity         string   `json:"complexity,omitempty"`
	Dependencies       []string `json:"dependencies,omitempty"`
	Risks              []string `json:"risks,omitempty"`
	Metrics            []string `json:"metrics,omitempty"`
}

type ScreenDetails struct {
	Name        string   `json:"name"`
	Purpose     string   `json:"purpose,omitempty"`
	KeyElements []string `json:"key_elements,omitempty"`
	UserActions []string `json:"user_actions,omitempty"`
	States      []string `json:"states,omitempty"`
	Navigation  string   `json:"navigation,omitempty"`
	DataSources []string `json:"data_sources,omitempty"`
}

// Enrichment is the parsed, sanitized response for one enrichment call,
// keyed by the item names that were sent.
type Enrichment struct {
	Idea     *IdeaDetails              `json:"idea,omitempty"`
	Features map[string]FeatureDetails `json:"features"`
	Screens  map[string]ScreenDetails  `json:"screens"`
}

// CandidateFields flattens feature details into the field bag consumed by the
// merge strategy. Keys use the node-data field names, not the wire names.
func (d FeatureDetails) CandidateFields() map[string]interface{} {
	return map[string]interface{}{
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

func (d ScreenDetails) CandidateFields() map[string]interface{} {
	return map[string]interface{}{
		"purpose":     d.Purpose,
		"keyElements": d.KeyElements,
		"userActions": d.UserActions,
		"states":      d.States,
		"navigation":  d.Navigation,
		"dataSources": d.DataSources,
	}
}
