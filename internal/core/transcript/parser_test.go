package transcript

import (
	"strings"
	"testing"

	"github.com/ideagraph/loom/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTranscript = `{"type":"user","sessionId":"sess-42","cwd":"/home/dev/shop","gitBranch":"main","message":{"role":"user","content":"Build me a storefront with product search"}}
{"type":"assistant","message":{"role":"assistant","content":[{"type":"text","text":"Sure. I suggest a catalog page, a cart, and checkout. We can use React and PostgreSQL for the stack and keep search server-side."}]}}
{"type":"assistant","message":{"role":"assistant","content":[{"type":"tool_use","id":"t1","name":"write_file"}]}}
{"type":"user","message":{"role":"user","content":[{"type":"tool_result","tool_use_id":"t1"}]}}
{"type":"system","subtype":"error","message":{"role":"system","content":"boom"}}`

func TestDetectTranscript(t *testing.T) {
	assert.Equal(t, model.SourceTranscript, Detect(sampleTranscript))
}

func TestDetectRejectsPartialJSONLines(t *testing.T) {
	// One prose line among the objects disqualifies the strict
	// one-object-per-line format.
	text := sampleTranscript + "\nand then we talked some more"
	assert.Equal(t, model.SourceGeneric, Detect(text))
}

func TestDetectDialogue(t *testing.T) {
	text := "Human: I want a recipe app\nAssistant: Great, let's plan it."
	assert.Equal(t, model.SourceDialogue, Detect(text))

	// A single role marker is not a dialogue.
	assert.Equal(t, model.SourceGeneric, Detect("Human: hello there, nothing else"))
}

func TestDetectGeneric(t *testing.T) {
	assert.Equal(t, model.SourceGeneric, Detect("A project plan.\nNo dialogue at all."))
}

func TestParseTranscriptSkipsToolOnlyAndSystemTurns(t *testing.T) {
	result := Parse(sampleTranscript)

	// 1 user text turn + 1 assistant text turn survive; the tool-use-only
	// turn, the tool-result-only turn and the system turn do not.
	require.Len(t, result.Turns, 2)
	assert.Equal(t, model.RoleHuman, result.Turns[0].Role)
	assert.Equal(t, "Build me a storefront with product search", result.Turns[0].Text)
	assert.Equal(t, model.RoleAssistant, result.Turns[1].Role)

	assert.Equal(t, "sess-42", result.SessionID)
	assert.Equal(t, "/home/dev/shop", result.ProjectDir)
	assert.Equal(t, "main", result.Branch)
}

func TestParseTranscriptKeepsTextBlocksOfMixedTurn(t *testing.T) {
	text := `{"type":"user","message":{"role":"user","content":"hi"}}
{"type":"assistant","message":{"role":"assistant","content":[{"type":"tool_use","id":"t1"},{"type":"text","text":"first"},{"type":"text","text":"second"}]}}`

	result := Parse(text)
	require.Len(t, result.Turns, 2)
	assert.Equal(t, "first\nsecond", result.Turns[1].Text)
}

func TestParseTranscriptSkipsPlaceholders(t *testing.T) {
	text := `{"type":"user","message":{"role":"user","content":"real question"}}
{"type":"user","message":{"role":"user","content":"[Request interrupted by user]"}}`

	result := Parse(text)
	require.Len(t, result.Turns, 1)
	assert.Equal(t, "real question", result.Turns[0].Text)
}

func TestParseTranscriptSkipsMalformedLines(t *testing.T) {
	// The malformed line sits past the detection sample window, so the text
	// still detects as a transcript; the line itself is skipped, not fatal.
	var b strings.Builder
	for i := 0; i < 11; i++ {
		b.WriteString(`{"type":"user","message":{"role":"user","content":"turn"}}` + "\n")
	}
	b.WriteString("{broken\n")
	b.WriteString(`{"type":"assistant","message":{"role":"assistant","content":"done"}}`)

	result := Parse(b.String())
	assert.Equal(t, model.SourceTranscript, result.Source)
	assert.Len(t, result.Turns, 12)
}

func TestParseDialogue(t *testing.T) {
	text := `ignored preamble
User: I want a habit tracker
AI: Noted. Daily streaks and reminders?
user: yes, plus charts`

	result := Parse(text)
	require.Len(t, result.Turns, 3)
	assert.Equal(t, model.RoleHuman, result.Turns[0].Role)
	assert.Equal(t, "I want a habit tracker", result.Turns[0].Text)
	assert.Equal(t, model.RoleAssistant, result.Turns[1].Role)
	assert.Equal(t, model.RoleHuman, result.Turns[2].Role)
}

func TestParseGenericWrapsWholeInput(t *testing.T) {
	text := "Just a document describing an app."
	result := Parse(text)
	assert.Equal(t, model.SourceGeneric, result.Source)
	require.Len(t, result.Turns, 1)
	assert.Equal(t, model.RoleHuman, result.Turns[0].Role)
	assert.Equal(t, text, result.Turns[0].Text)
}
