// Package match finds fuzzy identity matches between the internal
// registration list and the external league roster, and derives the
// outstanding set: internal records no external identity confirmed.
//
// Similarity is pluggable behind the Scorer type so the matching rules
// (single best match per query, first-occurrence tie-break, strict
// threshold) stay fixed while the string metric can vary.
package match

import (
	"math"

	"github.com/agnivade/levenshtein"

	"github.com/actonians/regsync/pkg/identity"
)

// DefaultThreshold is the similarity score a best match must strictly
// exceed to confirm a registration. Tolerates minor typo and spelling
// variation while rejecting distinct individuals.
const DefaultThreshold = 90

// Scorer scores the similarity of two index keys from 0 (disjoint) to
// 100 (identical). Implementations must be deterministic.
type Scorer func(a, b string) int

// LevenshteinScorer is the default Scorer: normalized edit distance,
// 100 * (1 - distance/maxLen), rounded to the nearest integer.
func LevenshteinScorer(a, b string) int {
	if a == b {
		return 100
	}
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	return int(math.Round(100 * (1 - float64(dist)/float64(maxLen))))
}

// Result records the best internal candidate for one external identity.
type Result struct {
	ExternalKey string
	InternalKey string
	Index       int // index into the internal list, -1 when it is empty
	Score       int
}

// Best returns the single best-scoring internal candidate for an
// external key. Ties break to the first occurrence in the internal
// list. An empty internal list yields Index -1 and Score 0.
func Best(internal []identity.Identity, externalKey string, score Scorer) Result {
	if score == nil {
		score = LevenshteinScorer
	}

	best := Result{ExternalKey: externalKey, Index: -1}
	for i, in := range internal {
		if s := score(externalKey, in.Key); s > best.Score || best.Index == -1 {
			best.Index = i
			best.InternalKey = in.Key
			best.Score = s
		}
	}
	return best
}

// Outstanding classifies every internal record and returns the indices
// of those no external identity confirmed. A confirmation requires the
// best-match score to be strictly greater than the threshold.
//
// Matching is positional over the identity list, not a key-deduplicated
// lookup, so duplicate internal keys are independent records. Each
// confirmed external query consumes a single internal record: the first
// not-yet-confirmed index among those sharing the best score, falling
// back to the overall first occurrence when all of them are already
// confirmed. Two identical external entries therefore confirm two
// internal duplicates, not one twice.
//
// Degenerate inputs follow the set-difference reading: an empty
// external roster leaves every internal record outstanding; an empty
// internal list yields an empty result.
func Outstanding(internal, external []identity.Identity, threshold int, score Scorer) []int {
	if score == nil {
		score = LevenshteinScorer
	}

	confirmed := make([]bool, len(internal))
	for _, ext := range external {
		bestScore := -1
		first := -1
		firstUnconfirmed := -1
		for i, in := range internal {
			s := score(ext.Key, in.Key)
			switch {
			case s > bestScore:
				bestScore = s
				first = i
				firstUnconfirmed = -1
				if !confirmed[i] {
					firstUnconfirmed = i
				}
			case s == bestScore && firstUnconfirmed == -1 && !confirmed[i]:
				firstUnconfirmed = i
			}
		}

		if first == -1 || bestScore <= threshold {
			continue
		}
		if firstUnconfirmed != -1 {
			confirmed[firstUnconfirmed] = true
		} else {
			confirmed[first] = true
		}
	}

	outstanding := make([]int, 0, len(internal))
	for i := range internal {
		if !confirmed[i] {
			outstanding = append(outstanding, i)
		}
	}
	return outstanding
}
