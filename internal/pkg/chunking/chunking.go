package chunking

import (
	"errors"
	"fmt"
	"strings"

	"studycompanion/internal/pkg/pdfextract"
)

const (
	DefaultSize    = 2000
	DefaultOverlap = 200
)

var ErrInvalidConfiguration = errors.New("invalid chunking configuration")

// Chunk is a contiguous word range of a document's text.
type Chunk struct {
	Index     int
	Text      string
	WordCount int
	StartWord int
	// PageHint is an estimate, see Split. Nil when no page texts were supplied.
	PageHint *int
}

// PageLabel renders the page hint as "p. N", or "" when there is none.
func (c Chunk) PageLabel() string {
	if c.PageHint == nil {
		return ""
	}
	return fmt.Sprintf("p. %d", *c.PageHint)
}

// EndWord is the exclusive end offset of the chunk in the document's word stream.
func (c Chunk) EndWord() int {
	return c.StartWord + c.WordCount
}

// Chunker splits text into word windows of Size words, consecutive windows sharing Overlap words.
type Chunker struct {
	Size    int
	Overlap int
}

func New(size, overlap int) (*Chunker, error) {
	c := &Chunker{Size: size, Overlap: overlap}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Chunker) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("%w: chunk size %d must be positive", ErrInvalidConfiguration, c.Size)
	}
	if c.Overlap < 0 {
		return fmt.Errorf("%w: overlap %d must not be negative", ErrInvalidConfiguration, c.Overlap)
	}
	if c.Overlap >= c.Size {
		return fmt.Errorf("%w: overlap %d must be smaller than chunk size %d", ErrInvalidConfiguration, c.Overlap, c.Size)
	}
	return nil
}

// Split cuts text into overlapping chunks covering every word.
//
// When pages is non-empty each chunk gets a page hint computed by linear interpolation:
// floor(start/totalWords * len(pages)) + 1. This assumes every page carries the same number of
// words and is only a label, it is wrong for pages of very uneven density.
func (c *Chunker) Split(text string, pages []pdfextract.PageText) ([]Chunk, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	words := strings.Fields(text)
	total := len(words)
	if total == 0 {
		return nil, nil
	}

	step := c.Size - c.Overlap
	chunks := make([]Chunk, 0, total/step+1)
	for start := 0; start < total; start += step {
		end := start + c.Size
		if end > total {
			end = total
		}
		chunk := Chunk{
			Index:     len(chunks),
			Text:      strings.Join(words[start:end], " "),
			WordCount: end - start,
			StartWord: start,
		}
		if len(pages) > 0 {
			hint := start*len(pages)/total + 1
			chunk.PageHint = &hint
		}
		chunks = append(chunks, chunk)
	}
	return chunks, nil
}
