package transcript

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/ideagraph/loom/internal/core/model"
)

// detectSampleLines bounds how many non-empty lines are inspected when testing
// for the one-object-per-line transcript format.
const detectSampleLines = 10

// dialogueMarker matches a role tag at the start of a line. The tag set maps
// onto the two turn roles in roleForMarker.
var dialogueMarker = regexp.MustCompile(`(?mi)^(human|user|assistant|claude|ai):[ \t]*`)

// Detect classifies raw text as a structured transcript, a plain role-tagged
// dialogue, or generic prose. Transcripts are strictly one JSON object per
// line: a single unparseable sampled line disqualifies the format, and at
// least one sampled object must carry a recognizable turn-type marker.
func Detect(text string) model.SourceKind {
	if isTranscript(text) {
		return model.SourceTranscript
	}
	if len(dialogueMarker.FindAllStringIndex(text, 3)) >= 2 {
		return model.SourceDialogue
	}
	return model.SourceGeneric
}

func isTranscript(text string) bool {
	sampled := 0
	hasTurnType := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if sampled >= detectSampleLines {
			break
		}
		sampled++

		var obj map[string]json.RawMessage
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			return false
		}
		var kind string
		if raw, ok := obj["type"]; ok {
			_ = json.Unmarshal(raw, &kind)
		}
		if kind == "user" || kind == "assistant" {
			hasTurnType = true
		}
	}
	return sampled > 0 && hasTurnType
}

func roleForMarker(marker string) model.Role {
	switch strings.ToLower(marker) {
	case "human", "user":
		return model.RoleHuman
	default:
		return model.RoleAssistant
	}
}
