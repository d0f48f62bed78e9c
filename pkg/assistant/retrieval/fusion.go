package retrieval

import (
	"sort"
	"strings"

	"pos-intelligence-be/internal/repository/contract"
)

// fillerWords are stripped from the question before the lexical branch so
// ts_rank matches on the entities rather than the phrasing.
var fillerWords = map[string]struct{}{
	"give": {}, "me": {}, "show": {}, "tell": {}, "what": {},
	"is": {}, "the": {}, "of": {}, "specs": {}, "spec": {},
}

// SearchTerms reduces a question to its content words for lexical search.
func SearchTerms(question string) string {
	var kept []string
	for _, word := range strings.Fields(strings.ToLower(question)) {
		if _, filler := fillerWords[word]; !filler {
			kept = append(kept, word)
		}
	}
	return strings.Join(kept, " ")
}

// FuseOptions parameterize the weighted merge of the two search branches.
type FuseOptions struct {
	Floor         float64
	VectorWeight  float64
	LexicalWeight float64
	Limit         int
}

// Fuse outer-joins the two branch result sets by document id, treats a
// missing branch score as zero, keeps a hit when its vector score clears
// the floor or it has any lexical match, and ranks by the weighted sum.
func Fuse(vectorHits, lexicalHits []*contract.RetrievalHit, opts FuseOptions) []*contract.RetrievalHit {
	merged := make(map[string]*contract.RetrievalHit, len(vectorHits)+len(lexicalHits))
	order := make([]string, 0, len(vectorHits)+len(lexicalHits))

	for _, hit := range vectorHits {
		key := hit.Id.String()
		merged[key] = hit
		order = append(order, key)
	}
	for _, hit := range lexicalHits {
		key := hit.Id.String()
		if existing, found := merged[key]; found {
			existing.LexicalScore = hit.LexicalScore
		} else {
			merged[key] = hit
			order = append(order, key)
		}
	}

	fused := make([]*contract.RetrievalHit, 0, len(order))
	for _, key := range order {
		hit := merged[key]
		if hit.VectorScore >= opts.Floor || hit.LexicalScore > 0 {
			fused = append(fused, hit)
		}
	}

	rank := func(h *contract.RetrievalHit) float64 {
		return h.VectorScore*opts.VectorWeight + h.LexicalScore*opts.LexicalWeight
	}
	sort.SliceStable(fused, func(i, j int) bool {
		return rank(fused[i]) > rank(fused[j])
	})

	if opts.Limit > 0 && len(fused) > opts.Limit {
		fused = fused[:opts.Limit]
	}
	return fused
}
