package transcript

import (
	"encoding/json"
	"strings"

	"github.com/ideagraph/loom/internal/core/model"
)

// transcriptLine is one event-log entry. Only the fields the parser consumes
// are declared; everything else on the line is ignored.
type transcriptLine struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId"`
	Cwd       string `json:"cwd"`
	GitBranch string `json:"gitBranch"`
	Timestamp string `json:"timestamp"`
	Message   *struct {
		Role    string          `json:"role"`
		Content json.RawMessage `json:"content"`
	} `json:"message"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// placeholderTurns are no-op interrupt/continuation strings some agent logs
// emit as standalone user turns. They carry no content worth importing.
var placeholderTurns = map[string]bool{
	"[request interrupted by user]":              true,
	"[request interrupted by user for tool use]": true,
	"[continue]": true,
	"continue":   true,
}

// Parse classifies raw text and extracts its ordered turns plus session
// metadata, then composes the normalized markdown document. Malformed
// individual transcript lines are skipped, never fatal.
func Parse(text string) model.ParseResult {
	var result model.ParseResult
	switch Detect(text) {
	case model.SourceTranscript:
		result = parseTranscript(text)
	case model.SourceDialogue:
		result = parseDialogue(text)
	default:
		result = model.ParseResult{
			Source: model.SourceGeneric,
			Turns:  []model.ConversationTurn{{Role: model.RoleHuman, Text: text}},
		}
	}
	result.Document = Compose(result)
	return result
}

func parseTranscript(text string) model.ParseResult {
	result := model.ParseResult{Source: model.SourceTranscript}

	for _, raw := range strings.Split(text, "\n") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		var line transcriptLine
		if err := json.Unmarshal([]byte(raw), &line); err != nil {
			continue
		}

		// First-seen session metadata wins.
		if result.SessionID == "" && line.SessionID != "" {
			result.SessionID = line.SessionID
		}
		if result.ProjectDir == "" && line.Cwd != "" {
			result.ProjectDir = line.Cwd
		}
		if result.Branch == "" && line.GitBranch != "" {
			result.Branch = line.GitBranch
		}

		// Snapshot/system/summary entries are not turns.
		if line.Type != "user" && line.Type != "assistant" {
			continue
		}
		if line.Message == nil {
			continue
		}

		turnText, ok := contentText(line.Message.Content)
		if !ok {
			continue
		}
		if placeholderTurns[strings.ToLower(strings.TrimSpace(turnText))] {
			continue
		}

		role := model.RoleAssistant
		if line.Type == "user" {
			role = model.RoleHuman
		}
		result.Turns = append(result.Turns, model.ConversationTurn{
			Role:      role,
			Text:      turnText,
			Timestamp: line.Timestamp,
		})
	}

	return result
}

// contentText flattens a message content value, which is either a plain string
// or a list of content blocks. A turn made exclusively of tool_use/tool_result
// blocks yields ok=false; a mixed turn keeps only its text blocks, joined by
// newlines.
func contentText(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		return s, s != ""
	}

	var blocks []contentBlock
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return "", false
	}

	var parts []string
	for _, b := range blocks {
		if b.Type == "text" && strings.TrimSpace(b.Text) != "" {
			parts = append(parts, strings.TrimSpace(b.Text))
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "\n"), true
}

func parseDialogue(text string) model.ParseResult {
	result := model.ParseResult{Source: model.SourceDialogue}

	markers := dialogueMarker.FindAllStringSubmatchIndex(text, -1)
	for i, m := range markers {
		role := roleForMarker(text[m[2]:m[3]])
		start := m[1]
		end := len(text)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}
		segment := strings.TrimSpace(text[start:end])
		if segment == "" {
			continue
		}
		result.Turns = append(result.Turns, model.ConversationTurn{Role: role, Text: segment})
	}

	return result
}
