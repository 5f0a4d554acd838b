package transcript

import (
	"strings"
	"testing"

	"github.com/ideagraph/loom/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeSectionsAndMetadata(t *testing.T) {
	long := strings.Repeat("x", substantiveMin)
	result := model.ParseResult{
		Source:     model.SourceTranscript,
		SessionID:  "sess-1",
		ProjectDir: "/tmp/app",
		Branch:     "main",
		Turns: []model.ConversationTurn{
			{Role: model.RoleHuman, Text: "Build a bookstore.\n\nFeatures:\n- Search by title\n- Wishlist\n\nWe will use React and Redis.\nTODO: sketch the schema"},
			{Role: model.RoleAssistant, Text: "Plan: " + long},
		},
	}

	doc := Compose(result)

	assert.True(t, strings.HasPrefix(doc, "# Claude Code Session Import\n"))
	assert.Contains(t, doc, "**Session ID:** sess-1")
	assert.Contains(t, doc, "**Project:** /tmp/app")
	assert.Contains(t, doc, "**Branch:** main")

	// Section order is fixed.
	order := []string{"## Description", "## Features", "## Tech Stack", "## Tasks", "## Conversation Summary"}
	last := -1
	for _, heading := range order {
		idx := strings.Index(doc, heading)
		require.GreaterOrEqual(t, idx, 0, heading)
		assert.Greater(t, idx, last)
		last = idx
	}

	assert.Contains(t, doc, "- Search by title")
	assert.Contains(t, doc, "- Wishlist")
	assert.Contains(t, doc, "- React")
	assert.Contains(t, doc, "- Redis")
	assert.Contains(t, doc, "- sketch the schema")
}

func TestComposeTruncatesLongDescription(t *testing.T) {
	result := model.ParseResult{
		Source: model.SourceGeneric,
		Turns:  []model.ConversationTurn{{Role: model.RoleHuman, Text: strings.Repeat("a", descriptionMax+500)}},
	}

	doc := Compose(result)
	desc := doc[strings.Index(doc, "## Description"):strings.Index(doc, "## Conversation Summary")]
	assert.Contains(t, desc, "...")
	assert.LessOrEqual(t, len(desc), descriptionMax+100)
}

func TestComposeSummaryPrefersSubstantiveAssistantTurns(t *testing.T) {
	long := strings.Repeat("assistant detail ", 10)
	result := model.ParseResult{
		Source: model.SourceDialogue,
		Turns: []model.ConversationTurn{
			{Role: model.RoleHuman, Text: "question"},
			{Role: model.RoleAssistant, Text: "ok"}, // below the substantive floor
			{Role: model.RoleAssistant, Text: long},
		},
	}

	doc := Compose(result)
	summary := doc[strings.Index(doc, "## Conversation Summary"):]
	assert.Contains(t, summary, "assistant detail")
	assert.NotContains(t, summary, "- ok\n")
}

func TestComposeSummaryFallsBackToHumanTurns(t *testing.T) {
	result := model.ParseResult{
		Source: model.SourceDialogue,
		Turns: []model.ConversationTurn{
			{Role: model.RoleHuman, Text: "first ask"},
			{Role: model.RoleAssistant, Text: "ok"},
			{Role: model.RoleHuman, Text: "second ask"},
		},
	}

	doc := Compose(result)
	summary := doc[strings.Index(doc, "## Conversation Summary"):]
	assert.Contains(t, summary, "first ask")
	assert.Contains(t, summary, "second ask")
}

func TestComposeOmitsEmptySections(t *testing.T) {
	result := model.ParseResult{
		Source: model.SourceGeneric,
		Turns:  []model.ConversationTurn{{Role: model.RoleHuman, Text: "nothing listy here"}},
	}

	doc := Compose(result)
	assert.Contains(t, doc, "## Description")
	assert.NotContains(t, doc, "## Features")
	assert.NotContains(t, doc, "## Tech Stack")
	assert.NotContains(t, doc, "## Tasks")
}
