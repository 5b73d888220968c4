package pdfextract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PageText is the trimmed text of one page that contained something other than whitespace.
type PageText struct {
	Page int    `json:"page"`
	Text string `json:"text"`
}

// Document is the result of extracting a PDF.
type Document struct {
	Text      string
	Pages     int
	PageTexts []PageText
}

// WordCount returns the number of whitespace separated words in the full text.
func (d *Document) WordCount() int {
	return len(strings.Fields(d.Text))
}

// ExtractionError reports a PDF that could not be opened or parsed.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract pdf %q failed: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Extractor reads PDFs from disk.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (x *Extractor) Extract(path string) (*Document, error) {
	return Extract(path)
}

// Extract opens the PDF at path and returns its text, page count and the non-blank pages.
func Extract(path string) (doc *Document, err error) {
	// the pdf reader panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = &ExtractionError{Path: path, Err: fmt.Errorf("parser panic: %v", r)}
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, &ExtractionError{Path: path, Err: err}
	}
	defer f.Close()

	numPages := reader.NumPage()
	doc = &Document{
		Pages:     numPages,
		PageTexts: make([]PageText, 0, numPages),
	}

	var full strings.Builder
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		raw, err := page.GetPlainText(nil)
		if err != nil {
			return nil, &ExtractionError{Path: path, Err: fmt.Errorf("page %d: %w", i, err)}
		}
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		if full.Len() > 0 {
			full.WriteString("\n\n")
		}
		full.WriteString(text)
		doc.PageTexts = append(doc.PageTexts, PageText{Page: i, Text: text})
	}
	doc.Text = full.String()
	return doc, nil
}
