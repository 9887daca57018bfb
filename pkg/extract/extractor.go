package extract

import "context"

// TextExtractor turns an uploaded document into plain text. The ancestry
// parser is format-agnostic; swapping a real PDF extractor in here is the
// only change needed to support genuine reports.
type TextExtractor interface {
	// ExtractPlainText returns the text content of the document.
	ExtractPlainText(ctx context.Context, filename, mimeType string, data []byte) (string, error)
}
