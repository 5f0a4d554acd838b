// Package core wires the import-and-merge pipeline: format detection, turn
// parsing, heuristic extraction, list normalization, LLM enrichment, name
// matching, fill-only-if-empty merging and graph generation. Everything below
// the enrichment call is pure; callers own persistence and serialization of
// writes to the destination graph.
package core

import (
	"context"
	"log"
	"strings"

	"github.com/ideagraph/loom/internal/config"
	"github.com/ideagraph/loom/internal/core/enrich"
	"github.com/ideagraph/loom/internal/core/extract"
	"github.com/ideagraph/loom/internal/core/graphgen"
	"github.com/ideagraph/loom/internal/core/match"
	"github.com/ideagraph/loom/internal/core/merge"
	"github.com/ideagraph/loom/internal/core/model"
	"github.com/ideagraph/loom/internal/core/normalize"
	"github.com/ideagraph/loom/internal/core/transcript"
	"github.com/ideagraph/loom/internal/llm"
)

type Pipeline struct {
	Enricher *enrich.Enricher
	Matcher  match.Matcher
	// fallback guards merge flows against an LLM matcher failure: the merge
	// itself degrades to deterministic matching instead of aborting.
	fallback match.Matcher
}

// NewPipeline builds a pipeline from config. llmClient may be nil, in which
// case imports run name-only with no enrichment.
func NewPipeline(llmClient llm.Client, cfg *config.Config) *Pipeline {
	p := &Pipeline{
		fallback: &match.TokenSetMatcher{Threshold: cfg.Import.MatchThreshold},
	}
	p.Matcher = p.fallback
	if llmClient != nil {
		p.Enricher = enrich.NewEnricher(llmClient, cfg.Enrichment)
		if cfg.Import.Matcher == "llm" {
			p.Matcher = match.NewLLMMatcher(llmClient)
		}
	}
	return p
}

// ImportResult is one fresh import: the parse outcome plus the generated graph.
type ImportResult struct {
	Source   model.SourceKind `json:"source"`
	Document string           `json:"document"`
	Graph    model.Graph      `json:"graph"`
}

// MergeResult is one reconciliation against an existing graph: field fills for
// matched entities, new nodes/edges for unmatched items.
type MergeResult struct {
	Updates []model.FieldUpdate `json:"updates"`
	Graph   model.Graph         `json:"graph"`
}

// Fields is wizard/document input: an idea plus raw list fields in whatever
// loose shape the user supplied.
type Fields struct {
	IdeaTitle   string `json:"ideaTitle"`
	Description string `json:"description"`
	FeaturesRaw string `json:"features"`
	ScreensRaw  string `json:"screens"`
	TechRaw     string `json:"techStack"`
	PromptsRaw  string `json:"prompts"`
}

// ImportText turns raw conversational or document text into a fresh project
// graph. Enrichment failure is not fatal: the graph is built name-only.
func (p *Pipeline) ImportText(ctx context.Context, ideaTitle, raw string) ImportResult {
	parsed := transcript.Parse(raw)
	all := turnText(parsed.Turns)

	features := extract.Features(all)
	tech := extract.TechStack(all)
	tasks := extract.Tasks(all)

	enrichment := p.enrichOrNil(ctx, features, nil, parsed.Document)

	graph := graphgen.Generate(
		ideaInput(ideaTitle, firstHuman(parsed.Turns), enrichment),
		featureInputs(features, enrichment),
		nil,
		techInputs(tech),
		promptInputs(tasks),
		graphgen.Options{},
	)

	return ImportResult{Source: parsed.Source, Document: parsed.Document, Graph: graph}
}

// ImportFields turns wizard/document field values into a fresh project graph.
func (p *Pipeline) ImportFields(ctx context.Context, fields Fields) ImportResult {
	features := normalize.FeatureList(fields.FeaturesRaw, "name", "title", "feature")
	screens := normalize.ScreenList(fields.ScreensRaw, "name", "title", "screen")
	tech := normalize.List(fields.TechRaw, "name", "title", "technology")
	prompts := normalize.List(fields.PromptsRaw, "title", "name", "prompt")

	source := fields.Description
	enrichment := p.enrichOrNil(ctx, features, screens, source)

	graph := graphgen.Generate(
		ideaInput(fields.IdeaTitle, fields.Description, enrichment),
		featureInputs(features, enrichment),
		screenInputs(screens, enrichment),
		techInputs(tech),
		promptInputs(prompts),
		graphgen.Options{},
	)

	return ImportResult{Source: model.SourceGeneric, Document: fields.Description, Graph: graph}
}

// Merge reconciles raw text against a snapshot of an existing graph. Matched
// items yield field fills (never overwriting populated, protected or name
// fields); unmatched items become new nodes wired without an idea node.
func (p *Pipeline) Merge(ctx context.Context, raw string, existing []model.EntitySummary) MergeResult {
	parsed := transcript.Parse(raw)
	all := turnText(parsed.Turns)

	extracted := extractedItems(
		extract.Features(all),
		extract.TechStack(all),
		extract.Tasks(all),
	)

	matched := p.matchItems(ctx, extracted, existing)

	var featureNames, screenNames []string
	for _, pair := range matched.Matches {
		switch typeOf(pair.ExistingID, existing) {
		case model.NodeFeature:
			featureNames = append(featureNames, pair.ExtractedName)
		case model.NodeScreen:
			screenNames = append(screenNames, pair.ExtractedName)
		}
	}
	for _, item := range matched.Unmatched {
		if item.Type == model.NodeFeature {
			featureNames = append(featureNames, item.Name)
		}
	}

	enrichment := p.enrichOrNil(ctx, featureNames, screenNames, parsed.Document)

	updates := buildUpdates(matched.Matches, existing, enrichment)

	var newFeatures []string
	var newTech []graphgen.Tech
	var newPrompts []graphgen.Prompt
	for _, item := range matched.Unmatched {
		switch item.Type {
		case model.NodeFeature:
			newFeatures = append(newFeatures, item.Name)
		case model.NodeTechStack:
			newTech = append(newTech, graphgen.Tech{Name: item.Name})
		case model.NodePrompt:
			newPrompts = append(newPrompts, graphgen.Prompt{Title: item.Name, Content: item.Name})
		}
	}

	graph := graphgen.Generate(
		graphgen.Idea{},
		featureInputs(newFeatures, enrichment),
		nil,
		newTech,
		newPrompts,
		graphgen.Options{SkipIdeaNode: true},
	)

	return MergeResult{Updates: updates, Graph: graph}
}

func (p *Pipeline) matchItems(ctx context.Context, extracted []model.ExtractedItem, existing []model.EntitySummary) match.Result {
	result, err := p.Matcher.Match(ctx, extracted, existing)
	if err != nil {
		log.Printf("matcher failed, falling back to token matching: %v", err)
		result, _ = p.fallback.Match(ctx, extracted, existing)
	}
	return result
}

// enrichOrNil treats an enrichment failure as "no candidate data available":
// the pipeline proceeds name-only.
func (p *Pipeline) enrichOrNil(ctx context.Context, featureNames, screenNames []string, sourceText string) *model.Enrichment {
	if p.Enricher == nil {
		return nil
	}
	enrichment, err := p.Enricher.Enrich(ctx, featureNames, screenNames, sourceText)
	if err != nil {
		log.Printf("enrichment unavailable, importing name-only: %v", err)
		return nil
	}
	return enrichment
}

func buildUpdates(pairs []match.Pair, existing []model.EntitySummary, enrichment *model.Enrichment) []model.FieldUpdate {
	if enrichment == nil {
		return nil
	}
	byID := map[string]model.EntitySummary{}
	for _, e := range existing {
		byID[e.ID] = e
	}

	var updates []model.FieldUpdate
	for _, pair := range pairs {
		entity, ok := byID[pair.ExistingID]
		if !ok {
			continue
		}
		var candidate map[string]interface{}
		switch entity.Type {
		case model.NodeFeature:
			if d, ok := enrichment.Features[pair.ExtractedName]; ok {
				candidate = d.CandidateFields()
			}
		case model.NodeScreen:
			if d, ok := enrichment.Screens[pair.ExtractedName]; ok {
				candidate = d.CandidateFields()
			}
		}
		if candidate == nil {
			continue
		}
		if update := merge.BuildFieldUpdate(entity.ID, entity.Type, entity.PopulatedFields, candidate); update != nil {
			updates = append(updates, *update)
		}
	}
	return updates
}

func extractedItems(features, tech, tasks []string) []model.ExtractedItem {
	var items []model.ExtractedItem
	for _, name := range features {
		items = append(items, model.ExtractedItem{Name: name, Type: model.NodeFeature})
	}
	for _, name := range tech {
		items = append(items, model.ExtractedItem{Name: name, Type: model.NodeTechStack})
	}
	for _, name := range tasks {
		items = append(items, model.ExtractedItem{Name: name, Type: model.NodePrompt})
	}
	return items
}

func typeOf(id string, existing []model.EntitySummary) model.NodeType {
	for _, e := range existing {
		if e.ID == id {
			return e.Type
		}
	}
	return ""
}

func ideaInput(title, description string, enrichment *model.Enrichment) graphgen.Idea {
	idea := graphgen.Idea{Title: title, Description: description}
	if idea.Title == "" {
		idea.Title = "Imported Project"
	}
	if enrichment != nil {
		idea.Details = enrichment.Idea
	}
	return idea
}

func featureInputs(names []string, enrichment *model.Enrichment) []graphgen.Feature {
	var inputs []graphgen.Feature
	for _, name := range names {
		f := graphgen.Feature{Name: name}
		if enrichment != nil {
			if d, ok := enrichment.Features[name]; ok {
				f.Details = &d
			}
		}
		inputs = append(inputs, f)
	}
	return inputs
}

func screenInputs(names []string, enrichment *model.Enrichment) []graphgen.Screen {
	var inputs []graphgen.Screen
	for _, name := range names {
		s := graphgen.Screen{Name: name}
		if enrichment != nil {
			if d, ok := enrichment.Screens[name]; ok {
				s.Details = &d
			}
		}
		inputs = append(inputs, s)
	}
	return inputs
}

func techInputs(names []string) []graphgen.Tech {
	var inputs []graphgen.Tech
	for _, name := range names {
		inputs = append(inputs, graphgen.Tech{Name: name})
	}
	return inputs
}

func promptInputs(tasks []string) []graphgen.Prompt {
	var inputs []graphgen.Prompt
	for _, task := range tasks {
		inputs = append(inputs, graphgen.Prompt{Title: promptTitle(task), Content: task})
	}
	return inputs
}

func promptTitle(task string) string {
	title := normalize.CompactName(task)
	if len(title) > 60 {
		title = strings.TrimSpace(title[:60])
	}
	return title
}

func firstHuman(turns []model.ConversationTurn) string {
	for _, t := range turns {
		if t.Role == model.RoleHuman {
			return t.Text
		}
	}
	return ""
}

func turnText(turns []model.ConversationTurn) string {
	var parts []string
	for _, t := range turns {
		parts = append(parts, t.Text)
	}
	return strings.Join(parts, "\n")
}
