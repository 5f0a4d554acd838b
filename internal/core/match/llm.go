package match

import (
	"context"
	"fmt"
	"strings"

	"github.com/ideagraph/loom/internal/core/common"
	"github.com/ideagraph/loom/internal/core/model"
	"github.com/ideagraph/loom/internal/llm"
)

// LLMMatcher asks a language model to pair extracted names with existing
// entities. It enforces same-type scoping and one-to-one pairing on the
// model's answer; anything the model invents is discarded.
type LLMMatcher struct {
	LLM llm.Client
}

func NewLLMMatcher(client llm.Client) *LLMMatcher {
	return &LLMMatcher{LLM: client}
}

type llmMatchPair struct {
	Name       string  `json:"name"`
	ExistingID string  `json:"existing_id"`
	Confidence float64 `json:"confidence"`
}

type llmMatchResult struct {
	Matches []llmMatchPair `json:"matches"`
}

func (m *LLMMatcher) Match(ctx context.Context, extracted []model.ExtractedItem, existing []model.EntitySummary) (Result, error) {
	if len(extracted) == 0 || len(existing) == 0 {
		return Result{Unmatched: extracted}, nil
	}

	prompt := fmt.Sprintf(`
<NEW ITEMS>
%s</NEW ITEMS>

<EXISTING ENTITIES>
%s</EXISTING ENTITIES>

Instructions:
Identify which NEW ITEMS refer to the same thing as an EXISTING ENTITY of the same type, tolerating minor wording differences.
Return a JSON object with key "matches", a list of objects with "name" (new item name), "existing_id" (existing entity id), and "confidence" (float).

Example JSON:
{
  "matches": [
    {"name": "Auth", "existing_id": "feature-1700000000000-0", "confidence": 0.9}
  ]
}
`, serializeItems(extracted), serializeEntities(existing))

	response, err := m.LLM.Generate(ctx, prompt)
	if err != nil {
		return Result{}, fmt.Errorf("failed to generate match result: %w", err)
	}

	parsed, err := common.ParseJSON[llmMatchResult](response)
	if err != nil {
		return Result{}, fmt.Errorf("failed to parse match result: %w", err)
	}

	byID := map[string]model.EntitySummary{}
	for _, e := range existing {
		byID[e.ID] = e
	}
	byName := map[string]model.ExtractedItem{}
	for _, item := range extracted {
		byName[strings.ToLower(item.Name)] = item
	}

	usedName := map[string]bool{}
	usedID := map[string]bool{}
	var result Result
	for _, p := range parsed.Matches {
		item, okItem := byName[strings.ToLower(p.Name)]
		entity, okEntity := byID[p.ExistingID]
		if !okItem || !okEntity || item.Type != entity.Type {
			continue
		}
		key := strings.ToLower(item.Name)
		if usedName[key] || usedID[entity.ID] {
			continue
		}
		usedName[key] = true
		usedID[entity.ID] = true
		result.Matches = append(result.Matches, Pair{ExtractedName: item.Name, ExistingID: entity.ID})
	}
	for _, item := range extracted {
		if !usedName[strings.ToLower(item.Name)] {
			result.Unmatched = append(result.Unmatched, item)
		}
	}
	return result, nil
}

func serializeItems(items []model.ExtractedItem) string {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "- Name: %s, Type: %s\n", item.Name, item.Type)
	}
	return b.String()
}

func serializeEntities(entities []model.EntitySummary) string {
	var b strings.Builder
	for _, e := range entities {
		fmt.Fprintf(&b, "- ID: %s, Name: %s, Type: %s\n", e.ID, e.Name, e.Type)
	}
	return b.String()
}
