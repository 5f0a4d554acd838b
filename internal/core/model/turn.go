package model

// Role tags one side of a parsed conversation.
type Role string

const (
	RoleHuman     Role = "human"
	RoleAssistant Role = "assistant"
)

// SourceKind classifies the raw input format.
type SourceKind string

const (
	// SourceTranscript is a structured event-log transcript, one JSON object
	// per line, as written by agent session logs.
	SourceTranscript SourceKind = "transcript"
	// SourceDialogue is a plain role-tagged dialogue ("Human: ... Assistant: ...").
	SourceDialogue SourceKind = "dialogue"
	// SourceGeneric is anything else, treated as a single human-authored blob.
	SourceGeneric SourceKind = "generic"
)

// ConversationTurn is one (role, text) turn. Immutable once produced.
type ConversationTurn struct {
	Role      Role   `json:"role"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ParseResult is the output of one parse call: turns plus session metadata and
// the composed markdown document the import pipeline consumes.
type ParseResult struct {
	Source     SourceKind         `json:"source"`
	Turns      []ConversationTurn `json:"turns"`
	SessionID  string             `json:"sessionId,omitempty"`
	ProjectDir string             `json:"projectDir,omitempty"`
	Branch     string             `json:"branch,omitempty"`
	Document   string             `json:"document"`
}
