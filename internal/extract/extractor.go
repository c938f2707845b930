package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/dentalops/vob-extractor/constants"
	"github.com/dentalops/vob-extractor/internal/common"
)

// DefaultLineTolerance is the vertical distance (in PDF units) under which
// two fragments are considered part of the same visual line.
const DefaultLineTolerance = 5.0

type Config struct {
	LineTolerance float64 // 0 -> DefaultLineTolerance
	MaxPages      int     // 0 = no limit
}

// Extractor turns a PDF byte stream into a TextView.
type Extractor struct {
	cfg    Config
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.LineTolerance <= 0 {
		cfg.LineTolerance = DefaultLineTolerance
	}
	return &Extractor{cfg: cfg, logger: logger}
}

var _ TextExtractor = (*Extractor)(nil)

// Extract validates the document signature, reads positioned text fragments
// from every page, and assembles the raw and paired views. An empty or
// image-only document yields near-empty views, not an error.
func (e *Extractor) Extract(ctx context.Context, data []byte) (view TextView, err error) {
	start := time.Now()

	if !bytes.HasPrefix(data, []byte(constants.PDFMagic)) {
		return TextView{}, common.NewAppError("BAD_SIGNATURE",
			"document does not start with %PDF", common.ErrInvalidDocument)
	}

	// The underlying parser panics on some malformed cross-reference
	// tables; treat that the same as a parse failure.
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("extract.pdf.panic", "recovered", r)
			view = TextView{}
			err = common.NewAppError("PARSE_PANIC",
				fmt.Sprintf("document parsing panicked: %v", r), common.ErrInvalidDocument)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return TextView{}, classifyOpenError(err)
	}

	totalPages := reader.NumPage()
	pagesToRead := totalPages
	if e.cfg.MaxPages > 0 && e.cfg.MaxPages < totalPages {
		pagesToRead = e.cfg.MaxPages
	}

	pages := make([][]Fragment, 0, pagesToRead)
	for i := 1; i <= pagesToRead; i++ {
		if err := ctx.Err(); err != nil {
			return TextView{}, err
		}
		p := reader.Page(i)
		if p.V.IsNull() {
			pages = append(pages, nil)
			continue
		}
		pages = append(pages, pageFragments(p))
	}

	view = TextView{
		Raw:    buildRawText(pages),
		Paired: buildPairedText(pages, e.cfg.LineTolerance),
		Pages:  totalPages,
	}

	e.logger.Debug("extract.pdf.ok",
		"pages", totalPages,
		"raw_bytes", len(view.Raw),
		"paired_lines", strings.Count(view.Paired, "\n")+1,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return view, nil
}

// pageFragments collects the page's positioned text runs, dropping
// whitespace-only runs.
func pageFragments(p pdf.Page) []Fragment {
	content := p.Content()
	frags := make([]Fragment, 0, len(content.Text))
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		frags = append(frags, Fragment{Text: t.S, X: t.X, Y: t.Y})
	}
	return frags
}

// classifyOpenError maps a document-open failure onto the terminal error
// taxonomy: password protection is its own failure mode, everything else is
// an unreadable document.
func classifyOpenError(err error) error {
	if isEncryptedErr(err) {
		return common.NewAppError("PROTECTED",
			"document is password-protected", common.ErrProtectedDocument)
	}
	return common.NewAppError("PARSE_FAILED",
		fmt.Sprintf("open document: %v", err), common.ErrInvalidDocument)
}

func isEncryptedErr(err error) bool {
	if errors.Is(err, pdf.ErrInvalidPassword) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "password") || strings.Contains(msg, "encrypt")
}
