// Package enrich is the client side of the extraction-service boundary: it
// sends feature/screen names plus source text to the LLM and returns per-item
// structured field values, sanitized before anyone downstream sees them.
package enrich

import (
	"context"
	"fmt"
	"strings"

	"github.com/ideagraph/loom/internal/config"
	"github.com/ideagraph/loom/internal/core/common"
	"github.com/ideagraph/loom/internal/core/model"
	"github.com/ideagraph/loom/internal/core/relevance"
	"github.com/ideagraph/loom/internal/core/sanitize"
	"github.com/ideagraph/loom/internal/llm"
)

// sourceTextMax bounds how much source text goes into one enrichment prompt.
const sourceTextMax = 8000

type Enricher struct {
	LLM     llm.Client
	Prompts config.EnrichmentPrompts
}

func NewEnricher(client llm.Client, prompts config.EnrichmentPrompts) *Enricher {
	return &Enricher{LLM: client, Prompts: prompts}
}

// wire shape of the details response; names are matched back case-insensitively.
type detailsPayload struct {
	Idea     *model.IdeaDetails     `json:"idea"`
	Features []model.FeatureDetails `json:"features"`
	Screens  []model.ScreenDetails  `json:"screens"`
}

// Enrich derives structured details for the named items from the source text.
// Items the model does not answer for are simply absent from the result maps.
func (e *Enricher) Enrich(ctx context.Context, featureNames, screenNames []string, sourceText string) (*model.Enrichment, error) {
	prompt := fmt.Sprintf(e.Prompts.Details,
		bulletList(featureNames),
		bulletList(screenNames),
		common.Truncate(sourceText, sourceTextMax))

	response, err := e.LLM.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate enrichment: %w", err)
	}

	payload, err := common.ParseJSON[detailsPayload](response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse enrichment: %w", err)
	}

	result := &model.Enrichment{
		Features: map[string]model.FeatureDetails{},
		Screens:  map[string]model.ScreenDetails{},
	}
	if payload.Idea != nil {
		idea := sanitize.IdeaDetails(*payload.Idea)
		result.Idea = &idea
	}

	wanted := nameIndex(featureNames)
	for _, d := range payload.Features {
		if canonical, ok := wanted[strings.ToLower(strings.TrimSpace(d.Name))]; ok {
			d.Name = canonical
			result.Features[canonical] = sanitize.FeatureDetails(d)
		}
	}
	wanted = nameIndex(screenNames)
	for _, d := range payload.Screens {
		if canonical, ok := wanted[strings.ToLower(strings.TrimSpace(d.Name))]; ok {
			d.Name = canonical
			result.Screens[canonical] = sanitize.ScreenDetails(d)
		}
	}

	return result, nil
}

type descriptionPayload struct {
	Description string `json:"description"`
}

// DescribeWorkItem writes a work-item description for the request, folding in
// the most relevant existing items as context.
func (e *Enricher) DescribeWorkItem(ctx context.Context, request string, candidates []relevance.Candidate) (string, error) {
	var related strings.Builder
	for _, scored := range relevance.Rank(request, candidates, 0) {
		fmt.Fprintf(&related, "- %s", scored.Name)
		if scored.Detail != "" {
			fmt.Fprintf(&related, ": %s", scored.Detail)
		}
		related.WriteString("\n")
	}
	if related.Len() == 0 {
		related.WriteString("(none)\n")
	}

	prompt := fmt.Sprintf(e.Prompts.WorkItem, request, related.String())
	response, err := e.LLM.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate work item: %w", err)
	}

	payload, err := common.ParseJSON[descriptionPayload](response)
	if err != nil {
		return "", fmt.Errorf("failed to parse work item: %w", err)
	}
	return sanitize.Text(payload.Description), nil
}

func bulletList(names []string) string {
	if len(names) == 0 {
		return "(none)\n"
	}
	var b strings.Builder
	for _, n := range names {
		fmt.Fprintf(&b, "- %s\n", n)
	}
	return b.String()
}

func nameIndex(names []string) map[string]string {
	idx := map[string]string{}
	for _, n := range names {
		idx[strings.ToLower(strings.TrimSpace(n))] = n
	}
	return idx
}
