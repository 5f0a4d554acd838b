package transcript

import (
	"fmt"
	"strings"

	"github.com/ideagraph/loom/internal/core/common"
	"github.com/ideagraph/loom/internal/core/extract"
	"github.com/ideagraph/loom/internal/core/model"
)

const (
	descriptionMax = 2000
	summaryTurnMax = 600
	// summaryTurns caps how many substantive turns land in the summary
	// section; substantiveMin is the length floor for "substantive".
	summaryTurns   = 5
	substantiveMin = 80
)

func sourceLabel(kind model.SourceKind) string {
	switch kind {
	case model.SourceTranscript:
		return "Claude Code"
	case model.SourceDialogue:
		return "Chat"
	default:
		return "Text"
	}
}

// Compose assembles parsed turns into the normalized markdown document the
// import pipeline consumes as if it were a pasted source document. Section
// order is fixed; empty sections other than Description are omitted.
func Compose(result model.ParseResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Session Import\n\n", sourceLabel(result.Source))

	if result.SessionID != "" {
		fmt.Fprintf(&b, "**Session ID:** %s\n", result.SessionID)
	}
	if result.ProjectDir != "" {
		fmt.Fprintf(&b, "**Project:** %s\n", result.ProjectDir)
	}
	if result.Branch != "" {
		fmt.Fprintf(&b, "**Branch:** %s\n", result.Branch)
	}
	if result.SessionID != "" || result.ProjectDir != "" || result.Branch != "" {
		b.WriteString("\n")
	}

	b.WriteString("## Description\n\n")
	if desc := firstHumanText(result.Turns); desc != "" {
		b.WriteString(common.Truncate(desc, descriptionMax))
	}
	b.WriteString("\n")

	all := allText(result.Turns)
	writeListSection(&b, "Features", extract.Features(all))
	writeListSection(&b, "Tech Stack", extract.TechStack(all))
	writeListSection(&b, "Tasks", extract.Tasks(all))

	if summary := summaryTexts(result.Turns); len(summary) > 0 {
		b.WriteString("\n## Conversation Summary\n\n")
		for _, s := range summary {
			fmt.Fprintf(&b, "- %s\n", common.Truncate(s, summaryTurnMax))
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeListSection(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## %s\n\n", heading)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

func firstHumanText(turns []model.ConversationTurn) string {
	for _, t := range turns {
		if t.Role == model.RoleHuman {
			return t.Text
		}
	}
	return ""
}

func allText(turns []model.ConversationTurn) string {
	var parts []string
	for _, t := range turns {
		parts = append(parts, t.Text)
	}
	return strings.Join(parts, "\n")
}

// summaryTexts picks up to summaryTurns substantive assistant turns, or early
// human turns when no assistant turn qualifies.
func summaryTexts(turns []model.ConversationTurn) []string {
	var picked []string
	for _, t := range turns {
		if t.Role == model.RoleAssistant && len(t.Text) >= substantiveMin {
			picked = append(picked, collapseWhitespace(t.Text))
			if len(picked) == summaryTurns {
				return picked
			}
		}
	}
	if len(picked) > 0 {
		return picked
	}
	for _, t := range turns {
		if t.Role == model.RoleHuman {
			picked = append(picked, collapseWhitespace(t.Text))
			if len(picked) == summaryTurns {
				break
			}
		}
	}
	return picked
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
