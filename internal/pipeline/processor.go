// Package pipeline coordinates document text extraction and field parsing
// into a single processing flow with optional job bookkeeping.
package pipeline

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dentalops/vob-extractor/constants"
	"github.com/dentalops/vob-extractor/internal/common"
	"github.com/dentalops/vob-extractor/internal/extract"
	"github.com/dentalops/vob-extractor/internal/llm"
	"github.com/dentalops/vob-extractor/internal/match"
	"github.com/dentalops/vob-extractor/internal/repository"
	"github.com/dentalops/vob-extractor/internal/vob"
)

// Outcome is the result of processing one document.
type Outcome struct {
	JobID       uuid.UUID
	Record      *vob.BenefitsRecord
	FieldsFound int
	Method      constants.ExtractionMethod
	Pages       int
	RawTextLen  int
}

// Processor runs extract then parse for each uploaded document. The AI
// extractor is optional; when it is absent or fails, the heuristic
// matcher produces the result.
type Processor struct {
	extractor extract.TextExtractor
	matcher   *match.Matcher
	ai        llm.FieldExtractor
	jobs      repository.ExtractJobRepository
	minAILen  int
	log       *slog.Logger
}

type Option func(*Processor)

// WithAI attaches an AI field extractor. minTextLen is the smallest raw
// text size worth sending; shorter documents go straight to heuristics.
func WithAI(ai llm.FieldExtractor, minTextLen int) Option {
	return func(p *Processor) {
		p.ai = ai
		p.minAILen = minTextLen
	}
}

// WithJobRepository enables persisted job tracking. Without it the
// processor runs statelessly, which the CLI relies on.
func WithJobRepository(jobs repository.ExtractJobRepository) Option {
	return func(p *Processor) { p.jobs = jobs }
}

func NewProcessor(extractor extract.TextExtractor, matcher *match.Matcher, log *slog.Logger, opts ...Option) *Processor {
	if log == nil {
		log = slog.Default()
	}
	p := &Processor{
		extractor: extractor,
		matcher:   matcher,
		log:       log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process extracts text from data and parses benefit fields out of it.
// Extraction failures are terminal. Parsing never fails: the heuristic
// matcher always returns a record, possibly with zero fields found.
func (p *Processor) Process(ctx context.Context, filename string, data []byte) (*Outcome, error) {
	reqID := common.RequestIDFromContext(ctx)
	log := p.log.With("req_id", reqID, "filename", filename)
	if office := common.OfficeIDFromContext(ctx); office != "" {
		log = log.With("office_id", office)
	}

	jobID, err := p.startJob(ctx, filename)
	if err != nil {
		return nil, err
	}

	view, err := p.extractor.Extract(ctx, data)
	if err != nil {
		log.Warn("pipeline.extract.failed", "err", err)
		p.failJob(ctx, jobID, err)
		return nil, err
	}
	if p.jobs != nil {
		if err := p.jobs.FinishExtract(ctx, jobID, view.Pages, len(view.Raw)); err != nil {
			log.Warn("pipeline.job.finish_extract_failed", "job_id", jobID, "err", err)
		}
	}
	log.Info("pipeline.extract.ok", "pages", view.Pages, "text_bytes", len(view.Raw))

	record, method, rawResult := p.parse(ctx, log, filename, view)
	found := record.FieldsFound()
	log.Info("pipeline.parse.ok", "method", method, "fields_found", found)

	if p.jobs != nil {
		if err := p.jobs.FinishParse(ctx, jobID, method, found, rawResult); err != nil {
			log.Warn("pipeline.job.finish_parse_failed", "job_id", jobID, "err", err)
		}
	}

	return &Outcome{
		JobID:       jobID,
		Record:      record,
		FieldsFound: found,
		Method:      method,
		Pages:       view.Pages,
		RawTextLen:  len(view.Raw),
	}, nil
}

// parse tries the AI extractor when it is configured and the document
// has enough text, and falls back to heuristics on any AI error. The
// caller never sees AI failures.
func (p *Processor) parse(ctx context.Context, log *slog.Logger, filename string, view extract.TextView) (*vob.BenefitsRecord, constants.ExtractionMethod, []byte) {
	if p.ai != nil && len(view.Raw) >= p.minAILen {
		record, raw, err := p.ai.ExtractFields(ctx, llm.ExtractRequest{
			RawText:      view.Raw,
			FilenameHint: filename,
		})
		if err == nil && record != nil {
			return record, constants.MethodGemini, raw
		}
		log.Warn("pipeline.ai.fallback", "err", err)
	}

	record := p.matcher.Match(view)
	raw, err := json.Marshal(record)
	if err != nil {
		raw = nil
	}
	return record, constants.MethodHeuristic, raw
}

func (p *Processor) startJob(ctx context.Context, filename string) (uuid.UUID, error) {
	if p.jobs == nil {
		return uuid.New(), nil
	}
	return p.jobs.Start(ctx, filename)
}

func (p *Processor) failJob(ctx context.Context, jobID uuid.UUID, cause error) {
	if p.jobs == nil {
		return
	}
	if err := p.jobs.FinishFailure(ctx, jobID, cause.Error()); err != nil {
		p.log.Warn("pipeline.job.finish_failure_failed", "job_id", jobID, "err", err)
	}
}
