package llm

import (
	"context"

	"github.com/dentalops/vob-extractor/internal/vob"
)

// ExtractRequest carries the document text handed to an extractor.
type ExtractRequest struct {
	RawText      string
	FilenameHint string
}

// FieldExtractor is the interface the pipeline depends on. The heuristic
// matcher and the Gemini client are interchangeable behind it: same record
// shape, same fields-found semantics.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, req ExtractRequest) (*vob.BenefitsRecord, []byte /*rawJSON*/, error)
}
