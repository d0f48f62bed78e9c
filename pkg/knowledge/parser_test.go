package knowledge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleDocuments = `TYPE: product_spec
TITLE: iPhone 15 Specifications
CONTENT: Display: 6.1 inch Super Retina XDR OLED
Chip: A16 Bionic
Camera: 48MP main
SOURCE: manufacturer_website
________________________________________
TYPE: delivery_issue
TITLE: Koombiyo Courier Delays Jan 2026
CONTENT: All orders via Koombiyo face delays Jan 4-8 due to vehicle breakdowns.
SOURCE: HEAD OFFICE
________________________________________
TITLE: Return Policy
CONTENT: Returns accepted within 14 days with original packaging.
`

func TestParseDocuments(t *testing.T) {
	records := ParseDocuments(sampleDocuments)

	assert.Len(t, records, 3)

	assert.Equal(t, "product_spec", records[0].DocumentType)
	assert.Equal(t, "iPhone 15 Specifications", records[0].Title)
	assert.True(t, strings.HasPrefix(records[0].Content, "Display: 6.1 inch"))
	assert.True(t, strings.Contains(records[0].Content, "Camera: 48MP main"))
	assert.Equal(t, "manufacturer_website", records[0].Source)

	assert.Equal(t, "delivery_issue", records[1].DocumentType)
	assert.Equal(t, "HEAD OFFICE", records[1].Source)

	// Missing tags fall back to defaults.
	assert.Equal(t, "product_spec", records[2].DocumentType)
	assert.Equal(t, "Return Policy", records[2].Title)
	assert.Equal(t, "Unknown", records[2].Source)
}

func TestParseDocumentsChunkWithoutTags(t *testing.T) {
	records := ParseDocuments("just some free text about warranties")

	assert.Len(t, records, 1)
	assert.Equal(t, "Untitled Document", records[0].Title)
	assert.Equal(t, "just some free text about warranties", records[0].Content)
}

func TestParseDocumentsSkipsEmptyChunks(t *testing.T) {
	records := ParseDocuments("__________\n\n__________\nTITLE: Only One\nCONTENT: body\n__________\n  \n")

	assert.Len(t, records, 1)
	assert.Equal(t, "Only One", records[0].Title)
	assert.Equal(t, "body", records[0].Content)
}

func TestEmbeddingTextJoinsTitleAndContent(t *testing.T) {
	rec := Record{Title: "Return Policy", Content: "14 days"}
	assert.Equal(t, "Return Policy 14 days", rec.EmbeddingText())
}
