// Package extract pulls draft feature, technology and task lists out of
// concatenated conversation text with fixed heuristic vocabularies. The
// pattern tables are package variables so recall tuning is a configuration
// change, not a rewrite. Extractors never fail: no matches means empty list.
package extract

import (
	"regexp"
	"strings"
)

const (
	maxFeatures   = 15
	maxTech       = 12
	maxTasks      = 10
	minItemLen    = 3
	maxFeatureLen = 100
	maxTaskLen    = 160
)

// FeatureHeadings is the heading vocabulary under which bulleted items are
// read as features.
var FeatureHeadings = []string{"features", "functionality", "capabilities", "requirements"}

var (
	bulletLine  = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+(.+)$`)
	headingLine = regexp.MustCompile(`^\s*(?:#{1,6}\s+)?([^:#][^:]*?):?\s*$`)
)

// techPattern maps a word-boundary regex to a canonical technology name.
// First mention in the text wins; canonical casing is preserved.
type techPattern struct {
	re   *regexp.Regexp
	name string
}

// TechPatterns is the fixed technology vocabulary, scanned in table order but
// reported in order of first occurrence.
var TechPatterns = []techPattern{
	{regexp.MustCompile(`(?i)\bnext\.?js\b`), "Next.js"},
	{regexp.MustCompile(`(?i)\breact(?:\.js)?\b`), "React"},
	{regexp.MustCompile(`(?i)\bvue(?:\.js)?\b`), "Vue"},
	{regexp.MustCompile(`(?i)\bangular\b`), "Angular"},
	{regexp.MustCompile(`(?i)\bsvelte(?:kit)?\b`), "Svelte"},
	{regexp.MustCompile(`(?i)\bnode(?:\.js)?\b`), "Node.js"},
	{regexp.MustCompile(`(?i)\bexpress(?:\.js)?\b`), "Express"},
	{regexp.MustCompile(`(?i)\bfastapi\b`), "FastAPI"},
	{regexp.MustCompile(`(?i)\bdjango\b`), "Django"},
	{regexp.MustCompile(`(?i)\bflask\b`), "Flask"},
	{regexp.MustCompile(`(?i)\brails\b`), "Ruby on Rails"},
	{regexp.MustCompile(`(?i)\bgolang\b`), "Go"},
	{regexp.MustCompile(`(?i)\bpython\b`), "Python"},
	{regexp.MustCompile(`(?i)\btypescript\b`), "TypeScript"},
	{regexp.MustCompile(`(?i)\bjavascript\b`), "JavaScript"},
	{regexp.MustCompile(`(?i)\bpostgres(?:ql)?\b`), "PostgreSQL"},
	{regexp.MustCompile(`(?i)\bmysql\b`), "MySQL"},
	{regexp.MustCompile(`(?i)\bsqlite\b`), "SQLite"},
	{regexp.MustCompile(`(?i)\bmongodb?\b`), "MongoDB"},
	{regexp.MustCompile(`(?i)\bredis\b`), "Redis"},
	{regexp.MustCompile(`(?i)\bsupabase\b`), "Supabase"},
	{regexp.MustCompile(`(?i)\bfirebase\b`), "Firebase"},
	{regexp.MustCompile(`(?i)\bprisma\b`), "Prisma"},
	{regexp.MustCompile(`(?i)\bgraphql\b`), "GraphQL"},
	{regexp.MustCompile(`(?i)\btailwind(?:\s*css)?\b`), "Tailwind CSS"},
	{regexp.MustCompile(`(?i)\bdocker\b`), "Docker"},
	{regexp.MustCompile(`(?i)\bkubernetes\b`), "Kubernetes"},
	{regexp.MustCompile(`(?i)\bvercel\b`), "Vercel"},
	{regexp.MustCompile(`(?i)\bnetlify\b`), "Netlify"},
	{regexp.MustCompile(`(?i)\baws\b`), "AWS"},
	{regexp.MustCompile(`(?i)\bjest\b`), "Jest"},
	{regexp.MustCompile(`(?i)\bvitest\b`), "Vitest"},
	{regexp.MustCompile(`(?i)\bcypress\b`), "Cypress"},
	{regexp.MustCompile(`(?i)\bplaywright\b`), "Playwright"},
	{regexp.MustCompile(`(?i)\bredux\b`), "Redux"},
	{regexp.MustCompile(`(?i)\bzustand\b`), "Zustand"},
	{regexp.MustCompile(`(?i)\bopenai\b`), "OpenAI"},
	{regexp.MustCompile(`(?i)\b(?:anthropic|claude)\b`), "Anthropic Claude"},
	{regexp.MustCompile(`(?i)\bgemini\b`), "Google Gemini"},
	{regexp.MustCompile(`(?i)\bstripe\b`), "Stripe"},
}

// TaskMarkers prefix lines that read as work items.
var TaskMarkers = []string{"todo", "fixme", "task:", "next:", "next step", "action item"}

var checkboxLine = regexp.MustCompile(`^\s*[-*]\s*\[[ xX]\]\s+(.+)$`)

// Features collects bulleted or numbered items under a feature-vocabulary
// heading, case-insensitively deduplicated and length-bounded.
func Features(text string) []string {
	var out []string
	seen := map[string]bool{}
	lines := strings.Split(text, "\n")

	inSection := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if m := bulletLine.FindStringSubmatch(line); m != nil {
			if !inSection {
				continue
			}
			item := strings.TrimSpace(m[1])
			key := strings.ToLower(item)
			if len(item) < minItemLen || len(item) > maxFeatureLen || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, item)
			if len(out) == maxFeatures {
				break
			}
			continue
		}
		inSection = isFeatureHeading(trimmed)
	}
	return out
}

func isFeatureHeading(line string) bool {
	m := headingLine.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	text := strings.ToLower(strings.TrimSpace(m[1]))
	for _, h := range FeatureHeadings {
		if strings.Contains(text, h) {
			return true
		}
	}
	return false
}

// TechStack reports canonical technology names mentioned in the text, ordered
// by first occurrence.
func TechStack(text string) []string {
	type hit struct {
		pos  int
		name string
	}
	var hits []hit
	for _, p := range TechPatterns {
		if loc := p.re.FindStringIndex(text); loc != nil {
			hits = append(hits, hit{loc[0], p.name})
		}
	}
	// Insertion sort by position; the table is small.
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].pos < hits[j-1].pos; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}
	var out []string
	for _, h := range hits {
		out = append(out, h.name)
		if len(out) == maxTech {
			break
		}
	}
	return out
}

// Tasks collects marker-prefixed and checkbox-style lines.
func Tasks(text string) []string {
	var out []string
	seen := map[string]bool{}

	add := func(item string) bool {
		item = strings.TrimSpace(strings.TrimLeft(item, ":- "))
		key := strings.ToLower(item)
		if len(item) < minItemLen || len(item) > maxTaskLen || seen[key] {
			return len(out) < maxTasks
		}
		seen[key] = true
		out = append(out, item)
		return len(out) < maxTasks
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if m := checkboxLine.FindStringSubmatch(line); m != nil {
			if !add(m[1]) {
				break
			}
			continue
		}
		lower := strings.ToLower(trimmed)
		for _, marker := range TaskMarkers {
			if strings.HasPrefix(lower, marker) {
				if !add(trimmed[len(marker):]) {
					return out
				}
				break
			}
		}
	}
	return out
}
