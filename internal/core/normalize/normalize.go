// Package normalize converts loosely structured list fields — delimited
// strings, JSON arrays of strings or objects, markdown/box-drawn tables — into
// deduplicated, order-preserving lists of clean item names. Unparseable JSON
// falls back to free-text splitting; nothing here ever fails.
package normalize

import (
	"encoding/json"
	"regexp"
	"strings"
)

// metadataPrefixes mark key:value lines that describe plan structure rather
// than name an item.
var metadataPrefixes = []string{"phase", "owner", "plan item id", "linked", "metadata"}

var (
	bulletPrefix  = regexp.MustCompile(`^(?:[-*•>]+|\d+[.)])\s*`)
	tableDivider  = regexp.MustCompile(`^[\s|│┌┬┐├┼┤└┴┘─╔╦╗╠╬╣╚╩╝═+:=-]+$`)
	tableCellSep  = regexp.MustCompile(`[|│║]`)
	nameSeparator = regexp.MustCompile(`\s+[—–-]\s+|:\s+`)
)

const minCompactLen = 3

// List normalizes a raw field into clean item names. For a JSON array, string
// elements are taken directly and object elements are read via the first
// present key from preferredKeys, in order. Anything else is split on
// newline/comma/semicolon with bullet, ordinal and quote syntax stripped.
func List(raw string, preferredKeys ...string) []string {
	return dedupe(items(raw, false, preferredKeys))
}

// ScreenList is the table-aware variant: pipe- or box-drawing-delimited rows
// contribute their second cell as the item name, with header and divider rows
// skipped.
func ScreenList(raw string, preferredKeys ...string) []string {
	return dedupe(items(raw, true, preferredKeys))
}

// FeatureList additionally compacts each name: a line that embeds a long
// description after a separator keeps only the leading name portion.
func FeatureList(raw string, preferredKeys ...string) []string {
	var out []string
	for _, item := range items(raw, false, preferredKeys) {
		out = append(out, CompactName(item))
	}
	return dedupe(out)
}

// CompactName keeps the portion of a line before the first " — ", " - " or
// ": " separator, provided the remainder names something (3+ characters).
func CompactName(s string) string {
	if loc := nameSeparator.FindStringIndex(s); loc != nil {
		head := strings.TrimSpace(s[:loc[0]])
		if len(head) >= minCompactLen {
			return head
		}
	}
	return s
}

func items(raw string, tableAware bool, preferredKeys []string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	if strings.HasPrefix(trimmed, "[") {
		if fromJSON, ok := jsonItems(trimmed, preferredKeys); ok {
			return fromJSON
		}
	}

	return textItems(trimmed, tableAware)
}

func jsonItems(raw string, preferredKeys []string) ([]string, bool) {
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elems); err != nil {
		return nil, false
	}

	var out []string
	for _, elem := range elems {
		var s string
		if err := json.Unmarshal(elem, &s); err == nil {
			if name := cleanItem(s); name != "" {
				out = append(out, name)
			}
			continue
		}
		var obj map[string]interface{}
		if err := json.Unmarshal(elem, &obj); err != nil {
			continue
		}
		for _, key := range preferredKeys {
			if v, ok := obj[key].(string); ok {
				if name := cleanItem(v); name != "" {
					out = append(out, name)
					break
				}
			}
		}
	}
	return out, true
}

func textItems(raw string, tableAware bool) []string {
	var out []string
	headerSeen := false
	for _, line := range strings.Split(raw, "\n") {
		if tableAware && strings.TrimSpace(line) != "" && tableDivider.MatchString(line) {
			continue
		}
		if tableAware && tableCellSep.MatchString(line) {
			if name, ok := tableRowItem(line, &headerSeen); ok {
				out = append(out, name)
			}
			continue
		}
		for _, part := range strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ';'
		}) {
			if name := cleanItem(part); name != "" {
				out = append(out, name)
			}
		}
	}
	return out
}

// tableRowItem extracts the item name from a table row: the second cell when
// the row has two or more, otherwise the only cell. Divider rows and the
// header row are skipped.
func tableRowItem(line string, headerSeen *bool) (string, bool) {
	if tableDivider.MatchString(line) {
		return "", false
	}
	var cells []string
	for _, cell := range tableCellSep.Split(line, -1) {
		cell = strings.TrimSpace(cell)
		if cell != "" {
			cells = append(cells, cell)
		}
	}
	if len(cells) == 0 {
		return "", false
	}

	name := cells[0]
	if len(cells) >= 2 {
		name = cells[1]
	}
	if !*headerSeen {
		*headerSeen = true
		switch strings.ToLower(name) {
		case "#", "screen", "name", "screen name":
			return "", false
		}
	}
	name = cleanItem(name)
	return name, name != ""
}

// cleanItem strips bullet/ordinal prefixes and surrounding quotes, and drops
// metadata-looking or JSON-syntax lines entirely.
func cleanItem(s string) string {
	s = strings.TrimSpace(s)
	s = bulletPrefix.ReplaceAllString(s, "")
	s = strings.Trim(s, `"'`+"`")
	s = strings.TrimSpace(s)
	if s == "" || isMetadata(s) || isSyntaxNoise(s) {
		return ""
	}
	return s
}

func isMetadata(s string) bool {
	colon := strings.Index(s, ":")
	if colon <= 0 {
		return false
	}
	key := strings.ToLower(strings.TrimSpace(s[:colon]))
	for _, p := range metadataPrefixes {
		if key == p || strings.HasPrefix(key, p+" ") {
			return true
		}
	}
	return false
}

func isSyntaxNoise(s string) bool {
	switch s[0] {
	case '{', '}', '[', ']':
		return true
	}
	return strings.Contains(s, `":`) || strings.Contains(s, "},") || strings.Contains(s, "],")
}

// dedupe removes case-insensitive duplicates, keeping first-seen order and
// casing.
func dedupe(items []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, item := range items {
		key := strings.ToLower(item)
		if item == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}
