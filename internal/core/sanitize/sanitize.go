// Package sanitize narrows enrichment-service output before it reaches merge
// or graph generation: enum fields are coerced against fixed allow-sets with a
// documented default, and text/list fields are clamped to fixed maximums.
// Invalid values are silently replaced, never rejected.
package sanitize

import (
	"strings"

	"github.com/ideagraph/loom/internal/core/common"
	"github.com/ideagraph/loom/internal/core/model"
)

const (
	// MaxTextLen clamps free-text fields (summary, user story, purpose, ...).
	MaxTextLen = 500
	// MaxListItems and MaxItemLen clamp list fields.
	MaxListItems = 8
	MaxItemLen   = 200
)

const (
	DefaultPriority   = "medium"
	DefaultStatus     = "planned"
	DefaultComplexity = "medium"
	DefaultCategory   = "other"
)

var (
	priorities   = map[string]bool{"low": true, "medium": true, "high": true, "critical": true}
	statuses     = map[string]bool{"planned": true, "in-progress": true, "testing": true, "completed": true}
	complexities = map[string]bool{"low": true, "medium": true, "high": true}
	categories   = map[string]bool{"frontend": true, "backend": true, "database": true, "devops": true, "ai": true, "other": true}
)

func enum(s string, allowed map[string]bool, fallback string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if allowed[s] {
		return s
	}
	return fallback
}

func Priority(s string) string   { return enum(s, priorities, DefaultPriority) }
func Status(s string) string     { return enum(s, statuses, DefaultStatus) }
func Complexity(s string) string { return enum(s, complexities, DefaultComplexity) }
func Category(s string) string   { return enum(s, categories, DefaultCategory) }

// Text trims and clamps a free-text field.
func Text(s string) string {
	return common.Truncate(strings.TrimSpace(s), MaxTextLen)
}

// List clamps a list field to MaxListItems entries of MaxItemLen characters,
// dropping blanks.
func List(items []string) []string {
	var out []string
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, common.Truncate(item, MaxItemLen))
		if len(out) == MaxListItems {
			break
		}
	}
	return out
}

// FeatureDetails returns a copy with every field sanitized.
func FeatureDetails(d model.FeatureDetails) model.FeatureDetails {
	d.Summary = Text(d.Summary)
	d.Problem = Text(d.Problem)
	d.UserStory = Text(d.UserStory)
	d.AcceptanceCriteria = List(d.AcceptanceCriteria)
	d.Priority = Priority(d.Priority)
	d.Status = Status(d.Status)
	d.Complexity = Complexity(d.Complexity)
	d.Dependencies = List(d.Dependencies)
	d.Risks = List(d.Risks)
	d.Metrics = List(d.Metrics)
	return d
}

// ScreenDetails returns a copy with every field sanitized.
func ScreenDetails(d model.ScreenDetails) model.ScreenDetails {
	d.Purpose = Text(d.Purpose)
	d.KeyElements = List(d.KeyElements)
	d.UserActions = List(d.UserActions)
	d.States = List(d.States)
	d.Navigation = Text(d.Navigation)
	d.DataSources = List(d.DataSources)
	return d
}

// IdeaDetails returns a copy with every field sanitized.
func IdeaDetails(d model.IdeaDetails) model.IdeaDetails {
	d.Summary = Text(d.Summary)
	d.Problem = Text(d.Problem)
	d.Audience = Text(d.Audience)
	return d
}
