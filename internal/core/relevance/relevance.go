// Package relevance scores candidate features/screens against a text fragment
// by token overlap expanded through a fixed domain synonym table. It selects
// which existing context to fold into a generated work-item description.
package relevance

import (
	"sort"
	"strings"
)

// DefaultMinScore is the threshold applied when callers pass a non-positive
// minimum.
const DefaultMinScore = 0.08

const synonymWeight = 0.6

// detailWeight discounts the secondary descriptive field so a strong name
// match is never diluted by a weak description.
const detailWeight = 0.7

// Candidate is one scoreable item: a name plus an optional descriptive field
// (summary or purpose).
type Candidate struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Detail string `json:"detail,omitempty"`
}

// Scored pairs a candidate with its relevance score.
type Scored struct {
	Candidate
	Score float64 `json:"score"`
}

// synonymGroups are the fixed domain groups. A token belongs to a group when
// it substring-matches (either direction) any member.
var synonymGroups = [][]string{
	{"auth", "authentication", "login", "signin", "signup", "register", "password", "credentials", "oauth", "sso", "account"},
	{"database", "db", "storage", "persistence", "postgres", "mysql", "mongo", "sql", "schema"},
	{"dashboard", "overview", "analytics", "metrics", "stats", "charts", "reporting"},
	{"ui", "interface", "design", "layout", "theme", "styling", "responsive"},
	{"api", "endpoint", "rest", "graphql", "webhook", "integration"},
	{"payment", "billing", "checkout", "subscription", "stripe", "invoice", "pricing"},
	{"search", "filter", "query", "find", "sort", "browse"},
	{"upload", "file", "image", "media", "attachment", "import", "export"},
	{"notification", "alert", "email", "push", "reminder", "message"},
	{"testing", "test", "qa", "validation", "coverage"},
	{"deployment", "deploy", "hosting", "ci", "release", "infrastructure"},
	{"user", "users", "profile", "member", "customer", "persona"},
	{"team", "collaboration", "sharing", "invite", "workspace", "permission", "role"},
	{"editor", "content", "post", "article", "draft", "publish", "blog"},
	{"listing", "catalog", "feed", "gallery", "directory", "marketplace"},
	{"navigation", "menu", "sidebar", "routing", "breadcrumb", "tabs"},
	{"form", "input", "field", "validation", "wizard", "survey"},
	{"onboarding", "welcome", "tutorial", "walkthrough", "setup", "getting-started"},
}

// Rank scores candidates against the prompt and returns the subset scoring at
// or above minScore, sorted descending by score (original order on ties).
func Rank(prompt string, candidates []Candidate, minScore float64) []Scored {
	if minScore <= 0 {
		minScore = DefaultMinScore
	}

	direct := tokenSet(prompt)
	synonyms := expand(direct)

	var out []Scored
	for _, c := range candidates {
		score := fieldScore(c.Name, direct, synonyms)
		if detail := detailWeight * fieldScore(c.Detail, direct, synonyms); detail > score {
			score = detail
		}
		if score >= minScore {
			out = append(out, Scored{Candidate: c, Score: score})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Tokenize lower-cases and splits on non-alphanumeric/hyphen runs, dropping
// single-character tokens.
func Tokenize(s string) []string {
	var tokens []string
	for _, t := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r == '-' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	}) {
		if len(t) > 1 {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func tokenSet(s string) map[string]bool {
	set := map[string]bool{}
	for _, t := range Tokenize(s) {
		set[t] = true
	}
	return set
}

// expand collects every member of each synonym group triggered by a prompt
// token.
func expand(direct map[string]bool) map[string]bool {
	expanded := map[string]bool{}
	for _, group := range synonymGroups {
		triggered := false
		for token := range direct {
			for _, member := range group {
				if substringMatch(token, member) {
					triggered = true
					break
				}
			}
			if triggered {
				break
			}
		}
		if triggered {
			for _, member := range group {
				expanded[member] = true
			}
		}
	}
	return expanded
}

func substringMatch(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// fieldScore is the weighted fraction of the field's tokens that match the
// prompt: direct matches count 1.0, synonym matches 0.6, capped at 1.0.
func fieldScore(field string, direct, synonyms map[string]bool) float64 {
	tokens := Tokenize(field)
	if len(tokens) == 0 {
		return 0
	}

	var weight float64
	for _, t := range tokens {
		switch {
		case direct[t]:
			weight += 1.0
		case synonymHit(t, synonyms):
			weight += synonymWeight
		}
	}

	score := weight / float64(len(tokens))
	if score > 1 {
		score = 1
	}
	return score
}

func synonymHit(token string, synonyms map[string]bool) bool {
	if synonyms[token] {
		return true
	}
	for member := range synonyms {
		if substringMatch(token, member) {
			return true
		}
	}
	return false
}
