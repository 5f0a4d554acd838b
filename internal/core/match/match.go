// Package match pairs newly extracted item names with existing graph entities
// of the same type. The similarity function is pluggable behind Matcher; the
// default is deterministic token-set similarity, with an LLM-backed
// implementation available as an alternative.
package match

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/ideagraph/loom/internal/core/model"
)

// Pair links one extracted name to one existing entity.
type Pair struct {
	ExtractedName string `json:"extractedName"`
	ExistingID    string `json:"existingId"`
}

// Result partitions extracted items into matched pairs and the unmatched
// remainder. Every existing entity matches at most one extracted item and
// vice versa.
type Result struct {
	Matches   []Pair                `json:"matches"`
	Unmatched []model.ExtractedItem `json:"unmatched"`
}

type Matcher interface {
	Match(ctx context.Context, extracted []model.ExtractedItem, existing []model.EntitySummary) (Result, error)
}

// DefaultThreshold is the token-set Jaccard similarity floor for a pairing.
const DefaultThreshold = 0.6

// TokenSetMatcher matches case-insensitively on normalized names: exact
// equality, or token-set Jaccard similarity at or above Threshold. Pairing is
// greedy, highest score first.
type TokenSetMatcher struct {
	Threshold float64
}

func NewTokenSetMatcher() *TokenSetMatcher {
	return &TokenSetMatcher{Threshold: DefaultThreshold}
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

func normalizeName(s string) string {
	return strings.TrimSpace(nonAlnum.ReplaceAllString(strings.ToLower(s), " "))
}

// Similarity returns 1 for equal normalized names, otherwise the Jaccard
// similarity of their token sets.
func Similarity(a, b string) float64 {
	na, nb := normalizeName(a), normalizeName(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}

	sa := map[string]bool{}
	for _, t := range strings.Fields(na) {
		sa[t] = true
	}
	sb := map[string]bool{}
	for _, t := range strings.Fields(nb) {
		sb[t] = true
	}

	shared := 0
	union := len(sb)
	for t := range sa {
		if sb[t] {
			shared++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}

func (m *TokenSetMatcher) Match(_ context.Context, extracted []model.ExtractedItem, existing []model.EntitySummary) (Result, error) {
	threshold := m.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	type scored struct {
		extIdx int
		exIdx  int
		score  float64
	}
	var pairs []scored
	for i, item := range extracted {
		for j, entity := range existing {
			if item.Type != entity.Type {
				continue
			}
			if s := Similarity(item.Name, entity.Name); s >= threshold {
				pairs = append(pairs, scored{i, j, s})
			}
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].score > pairs[j].score })

	usedExt := map[int]bool{}
	usedEx := map[int]bool{}
	var result Result
	for _, p := range pairs {
		if usedExt[p.extIdx] || usedEx[p.exIdx] {
			continue
		}
		usedExt[p.extIdx] = true
		usedEx[p.exIdx] = true
		result.Matches = append(result.Matches, Pair{
			ExtractedName: extracted[p.extIdx].Name,
			ExistingID:    existing[p.exIdx].ID,
		})
	}
	for i, item := range extracted {
		if !usedExt[i] {
			result.Unmatched = append(result.Unmatched, item)
		}
	}
	return result, nil
}
