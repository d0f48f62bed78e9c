package retrieval

import (
	"testing"

	"pos-intelligence-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func hit(id uuid.UUID, title string, vector, lexical float64) *contract.RetrievalHit {
	return &contract.RetrievalHit{
		Id:           id,
		DocumentType: "product_spec",
		Title:        title,
		Content:      "content",
		VectorScore:  vector,
		LexicalScore: lexical,
	}
}

func TestFuseWeightedRanking(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	// a: 0.7*0.9+0.3*0.0 = 0.63
	// b: 0.7*0.6+0.3*0.8 = 0.66
	// c: 0.7*0.8+0.3*0.1 = 0.59
	fused := Fuse(
		[]*contract.RetrievalHit{hit(a, "a", 0.9, 0), hit(b, "b", 0.6, 0), hit(c, "c", 0.8, 0)},
		[]*contract.RetrievalHit{hit(b, "b", 0, 0.8), hit(c, "c", 0, 0.1)},
		FuseOptions{Floor: 0.5, VectorWeight: 0.7, LexicalWeight: 0.3, Limit: 6},
	)

	assert.Len(t, fused, 3)
	assert.Equal(t, "b", fused[0].Title)
	assert.Equal(t, "a", fused[1].Title)
	assert.Equal(t, "c", fused[2].Title)

	// Branch scores merged onto one hit.
	assert.Equal(t, 0.6, fused[0].VectorScore)
	assert.Equal(t, 0.8, fused[0].LexicalScore)
}

func TestFuseLexicalOnlyHitIncluded(t *testing.T) {
	a := uuid.New()

	fused := Fuse(
		nil,
		[]*contract.RetrievalHit{hit(a, "lexical only", 0, 0.4)},
		FuseOptions{Floor: 0.5, VectorWeight: 0.7, LexicalWeight: 0.3, Limit: 6},
	)

	assert.Len(t, fused, 1)
	assert.Equal(t, "lexical only", fused[0].Title)
	assert.Zero(t, fused[0].VectorScore)
}

func TestFuseDropsBelowFloorWithoutLexical(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	fused := Fuse(
		[]*contract.RetrievalHit{hit(a, "weak", 0.3, 0), hit(b, "strong", 0.9, 0)},
		nil,
		FuseOptions{Floor: 0.5, VectorWeight: 0.7, LexicalWeight: 0.3, Limit: 6},
	)

	assert.Len(t, fused, 1)
	assert.Equal(t, "strong", fused[0].Title)
}

func TestFuseRespectsLimit(t *testing.T) {
	var vectorHits []*contract.RetrievalHit
	for i := 0; i < 10; i++ {
		vectorHits = append(vectorHits, hit(uuid.New(), "doc", 0.9, 0))
	}

	fused := Fuse(vectorHits, nil, FuseOptions{Floor: 0.5, VectorWeight: 0.7, LexicalWeight: 0.3, Limit: 6})

	assert.Len(t, fused, 6)
}

func TestSearchTerms(t *testing.T) {
	tests := []struct {
		question string
		want     string
	}{
		{"give me the specs of iPhone 15", "iphone 15"},
		{"What is the price of Pixel 7a", "price pixel 7a"},
		{"koombiyo delays", "koombiyo delays"},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			assert.Equal(t, tt.want, SearchTerms(tt.question))
		})
	}
}
