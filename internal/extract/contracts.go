package extract

import "context"

// TextView holds the two textual views of one document: the raw
// concatenation of every fragment in document order, and the paired view
// that reconstructs label/value lines from fragment positions. Both are
// immutable once produced.
type TextView struct {
	Raw    string
	Paired string
	Pages  int
}

// Fragment is one positioned run of text as reported by the PDF text layer,
// prior to any line reconstruction.
type Fragment struct {
	Text string
	X    float64
	Y    float64
}

// TextExtractor is the interface the pipeline depends on.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (TextView, error)
}
