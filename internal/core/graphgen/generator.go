// Package graphgen builds the project graph: deterministic column layout,
// collision-free node ids, and the fixed wiring policy (idea fans out to
// features and tech stack, features round-robin onto screens, screens feed the
// first prompt, prompts chain in build order).
package graphgen

import (
	"fmt"
	"time"

	"github.com/ideagraph/loom/internal/core/model"
)

// Column x-coordinates per type, left to right, and the vertical row spacing.
const (
	ideaX      = 80.0
	featureX   = 400.0
	screenX    = 720.0
	techX      = 1040.0
	promptX    = 1360.0
	rowSpacing = 140.0
)

// Options controls one generation call.
type Options struct {
	// SkipIdeaNode suppresses the idea node and idea-sourced edges, for
	// merging into a graph that already owns its idea.
	SkipIdeaNode bool
	// Stamp is the id discriminator; zero means current Unix milliseconds.
	Stamp int64
}

// Idea is the hub input.
type Idea struct {
	Title       string
	Description string
	Details     *model.IdeaDetails
}

// Feature is one feature-column input, optionally enriched.
type Feature struct {
	Name    string
	Details *model.FeatureDetails
}

// Screen is one screen-column input, optionally enriched.
type Screen struct {
	Name    string
	Details *model.ScreenDetails
}

// Tech is one tech-stack-column input.
type Tech struct {
	Name     string
	Category string
}

// Prompt is one build-instruction input.
type Prompt struct {
	Title   string
	Content string
}

// Generate builds the full node/edge graph. Zero-length inputs are valid and
// collapse their column and associated edges to nothing.
func Generate(idea Idea, features []Feature, screens []Screen, tech []Tech, prompts []Prompt, opts Options) model.Graph {
	stamp := opts.Stamp
	if stamp == 0 {
		stamp = time.Now().UnixMilli()
	}

	maxRows := len(features)
	for _, n := range []int{len(screens), len(tech), len(prompts), 1} {
		if n > maxRows {
			maxRows = n
		}
	}
	// Columns center on the same midpoint regardless of their own length.
	rowY := func(count, i int) float64 {
		return float64(maxRows-count)*rowSpacing/2 + float64(i)*rowSpacing
	}

	var g model.Graph

	var ideaID string
	if !opts.SkipIdeaNode {
		ideaID = fmt.Sprintf("idea-%d", stamp)
		data := model.IdeaData{
			Title:       idea.Title,
			Description: idea.Description,
			Tags:        []string{},
		}
		if idea.Details != nil {
			data.Summary = idea.Details.Summary
			data.Problem = idea.Details.Problem
			data.Audience = idea.Details.Audience
		}
		g.Nodes = append(g.Nodes, model.GraphNode{
			ID:       ideaID,
			Type:     model.NodeIdea,
			Position: model.Position{X: ideaX, Y: rowY(1, 0)},
			Data:     data,
		})
	}

	featureIDs := make([]string, len(features))
	for i, f := range features {
		featureIDs[i] = fmt.Sprintf("feature-%d-%d", stamp, i)
		g.Nodes = append(g.Nodes, model.GraphNode{
			ID:       featureIDs[i],
			Type:     model.NodeFeature,
			Position: model.Position{X: featureX, Y: rowY(len(features), i)},
			Data:     featureData(f),
		})
	}

	screenIDs := make([]string, len(screens))
	for i, s := range screens {
		screenIDs[i] = fmt.Sprintf("screen-%d-%d", stamp, i)
		g.Nodes = append(g.Nodes, model.GraphNode{
			ID:       screenIDs[i],
			Type:     model.NodeScreen,
			Position: model.Position{X: screenX, Y: rowY(len(screens), i)},
			Data:     screenData(s),
		})
	}

	techIDs := make([]string, len(tech))
	for i, t := range tech {
		techIDs[i] = fmt.Sprintf("techStack-%d-%d", stamp, i)
		category := t.Category
		if category == "" {
			category = "other"
		}
		g.Nodes = append(g.Nodes, model.GraphNode{
			ID:       techIDs[i],
			Type:     model.NodeTechStack,
			Position: model.Position{X: techX, Y: rowY(len(tech), i)},
			Data:     model.TechStackData{Name: t.Name, Category: category, Tags: []string{}},
		})
	}

	promptIDs := make([]string, len(prompts))
	for i, p := range prompts {
		if len(prompts) == 1 {
			promptIDs[i] = fmt.Sprintf("prompt-%d", stamp)
		} else {
			promptIDs[i] = fmt.Sprintf("prompt-%d-%d", stamp, i)
		}
		g.Nodes = append(g.Nodes, model.GraphNode{
			ID:       promptIDs[i],
			Type:     model.NodePrompt,
			Position: model.Position{X: promptX, Y: rowY(len(prompts), i)},
			Data:     model.PromptData{Title: p.Title, Content: p.Content, Order: i, Tags: []string{}},
		})
	}

	addEdge := func(source, target string) {
		g.Edges = append(g.Edges, model.GraphEdge{
			ID:     fmt.Sprintf("edge-%s-%s", source, target),
			Source: source,
			Target: target,
		})
	}

	if ideaID != "" {
		for _, id := range featureIDs {
			addEdge(ideaID, id)
		}
		for _, id := range techIDs {
			addEdge(ideaID, id)
		}
	}

	if len(screenIDs) > 0 {
		for i, id := range featureIDs {
			addEdge(id, screenIDs[i%len(screenIDs)])
		}
		if len(promptIDs) > 0 {
			for _, id := range screenIDs {
				addEdge(id, promptIDs[0])
			}
		}
	}

	for i := 1; i < len(promptIDs); i++ {
		addEdge(promptIDs[i-1], promptIDs[i])
	}

	return g
}

func featureData(f Feature) model.FeatureData {
	data, _ := model.EmptyData(model.NodeFeature).(model.FeatureData)
	data.Name = f.Name
	data.Priority = "medium"
	data.Status = "planned"
	data.Complexity = "medium"
	if d := f.Details; d != nil {
		data.Summary = d.Summary
		data.Problem = d.Problem
		data.UserStory = d.UserStory
		if len(d.AcceptanceCriteria) > 0 {
			data.AcceptanceCriteria = d.AcceptanceCriteria
		}
		if d.Priority != "" {
			data.Priority = d.Priority
		}
		if d.Status != "" {
			data.Status = d.Status
		}
		if d.Complexity != "" {
			data.Complexity = d.Complexity
		}
		if len(d.Dependencies) > 0 {
			data.Dependencies = d.Dependencies
		}
		if len(d.Risks) > 0 {
			data.Risks = d.Risks
		}
		if len(d.Metrics) > 0 {
			data.Metrics = d.Metrics
		}
	}
	return data
}

func screenData(s Screen) model.ScreenData {
	data, _ := model.EmptyData(model.NodeScreen).(model.ScreenData)
	data.Name = s.Name
	if d := s.Details; d != nil {
		data.Purpose = d.Purpose
		if len(d.KeyElements) > 0 {
			data.KeyElements = d.KeyElements
		}
		if len(d.UserActions) > 0 {
			data.UserActions = d.UserActions
		}
		if len(d.States) > 0 {
			data.States = d.States
		}
		data.Navigation = d.Navigation
		if len(d.DataSources) > 0 {
			data.DataSources = d.DataSources
		}
	}
	return data
}
