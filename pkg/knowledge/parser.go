// Package knowledge parses tagged document files into records ready for
// embedding and ingestion.
package knowledge

import (
	"regexp"
	"strings"
)

const (
	defaultDocumentType = "product_spec"
	defaultTitle        = "Untitled Document"
	defaultSource       = "Unknown"
)

var (
	recordDelimiter = regexp.MustCompile(`_{10,}`)

	typePattern    = regexp.MustCompile(`(?i)TYPE:\s*(.*?)(?:\s*TITLE:|\s*CONTENT:|$)`)
	titlePattern   = regexp.MustCompile(`(?i)TITLE:\s*(.*?)(?:\s*CONTENT:|$)`)
	contentPattern = regexp.MustCompile(`(?is)CONTENT\s*:\s*(.*?)(?:\s*SOURCE:|$)`)
	sourcePattern  = regexp.MustCompile(`(?i)SOURCE:\s*(.*)`)
)

// Record is one parsed document, pre-embedding.
type Record struct {
	DocumentType string
	Title        string
	Content      string
	Source       string
}

// EmbeddingText is what the embedder sees: title and body together, so a
// title-only question can still match the vector.
func (r Record) EmbeddingText() string {
	return r.Title + " " + r.Content
}

// ParseDocuments splits raw text on runs of 10+ underscores and extracts
// TYPE, TITLE, CONTENT and SOURCE tags from each chunk. Missing tags fall
// back to defaults; a chunk with no CONTENT tag keeps its full text as the
// content.
func ParseDocuments(raw string) []Record {
	var records []Record
	for _, chunk := range recordDelimiter.Split(raw, -1) {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		records = append(records, Record{
			DocumentType: extract(typePattern, chunk, defaultDocumentType),
			Title:        extract(titlePattern, chunk, defaultTitle),
			Content:      extract(contentPattern, chunk, chunk),
			Source:       extract(sourcePattern, chunk, defaultSource),
		})
	}
	return records
}

func extract(pattern *regexp.Regexp, chunk, fallback string) string {
	match := pattern.FindStringSubmatch(chunk)
	if match == nil {
		return fallback
	}
	value := strings.TrimSpace(match[1])
	if value == "" {
		return fallback
	}
	return value
}
