package annotate

import (
	"sort"

	"github.com/eslsoft/readflow/internal/entity"
)

// AcceptedSpan is a collocation that survived overlap resolution, annotated
// with whether it matched a studied phrase.
type AcceptedSpan struct {
	entity.Collocation
	Studied bool
}

// ResolveCollocations resolves overlaps among candidate collocations for one
// sentence. Candidates are ranked studied-first, then longer span, then
// higher confidence, then earlier start; the ranked list is walked greedily,
// accepting a candidate only when none of its word indices has been claimed
// by a higher-ranked span. Malformed spans (inverted or out of range for the
// sentence's word count) are dropped: detection input is inherently noisy.
func ResolveCollocations(candidates []entity.Collocation, wordCount int, studied []NormalizedPhrase) []AcceptedSpan {
	if len(candidates) == 0 || wordCount == 0 {
		return nil
	}

	ranked := make([]AcceptedSpan, 0, len(candidates))
	for _, c := range candidates {
		if c.StartWordIdx < 0 || c.EndWordIdx < c.StartWordIdx || c.EndWordIdx >= wordCount {
			continue
		}
		ranked = append(ranked, AcceptedSpan{Collocation: c, Studied: IsStudiedPhrase(c.Text, studied)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Studied != b.Studied {
			return a.Studied
		}
		alen := a.EndWordIdx - a.StartWordIdx
		blen := b.EndWordIdx - b.StartWordIdx
		if alen != blen {
			return alen > blen
		}
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		return a.StartWordIdx < b.StartWordIdx
	})

	claimed := make(map[int]struct{}, wordCount)
	accepted := make([]AcceptedSpan, 0, len(ranked))
	for _, span := range ranked {
		conflict := false
		for w := span.StartWordIdx; w <= span.EndWordIdx; w++ {
			if _, taken := claimed[w]; taken {
				conflict = true
				break
			}
		}
		if conflict {
			continue
		}
		for w := span.StartWordIdx; w <= span.EndWordIdx; w++ {
			claimed[w] = struct{}{}
		}
		accepted = append(accepted, span)
	}

	sort.Slice(accepted, func(i, j int) bool {
		return accepted[i].StartWordIdx < accepted[j].StartWordIdx
	})
	return accepted
}
