package gemini

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/dentalops/vob-extractor/internal/common"
	"github.com/dentalops/vob-extractor/internal/llm"
	"github.com/dentalops/vob-extractor/internal/vob"
)

var _ llm.FieldExtractor = (*Client)(nil)

// generateFunc is one completion attempt: document text in, model text out.
type generateFunc func(ctx context.Context, req llm.ExtractRequest) (string, error)

// ExtractFields implements llm.FieldExtractor against the Gemini
// generateContent API. Transient quota/rate failures are retried with a
// linearly increasing, context-cancellable backoff; every failure mode maps
// to common.ErrAIService so callers can fall back to the heuristic matcher
// without inspecting details.
func (c *Client) ExtractFields(ctx context.Context, req llm.ExtractRequest) (*vob.BenefitsRecord, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"text_len", len(req.RawText),
	)

	if c.cfg.APIKey == "" {
		return nil, nil, common.NewAppError("AI_NOT_CONFIGURED", "GEMINI_API_KEY not set", common.ErrAIService)
	}

	var raw string
	var lastErr error
	for attempt := 0; attempt < c.cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				c.log.Warn("llm.extract.cancelled", "req_id", rid, "cause", ctx.Err())
				return nil, nil, common.NewAppError("AI_CANCELLED", "extraction cancelled", common.ErrAIService)
			case <-time.After(c.cfg.RetryDelay * time.Duration(attempt)):
			}
			c.log.Warn("llm.extract.retry", "req_id", rid, "attempt", attempt+1, "error", lastErr)
		}

		raw, lastErr = c.generate(ctx, req)
		if lastErr == nil {
			break
		}
		if !isRetryable(lastErr) {
			break
		}
	}
	if lastErr != nil {
		c.log.Error("llm.extract.failed",
			"req_id", rid, "error", lastErr,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, nil, common.NewAppError("AI_GENERATE", "gemini generation failed", common.ErrAIService)
	}

	rec, err := llm.DecodeRecord([]byte(raw), c.log)
	if err != nil {
		c.log.Error("llm.extract.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, []byte(raw), common.NewAppError("AI_BAD_JSON", "gemini response is not a valid record", common.ErrAIService)
	}

	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"fields_found", rec.FieldsFound(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rec, []byte(raw), nil
}

// generateContent performs one attempt against the live API.
func (c *Client) generateContent(ctx context.Context, req llm.ExtractRequest) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	client, err := genai.NewClient(attemptCtx, &genai.ClientConfig{
		APIKey:  c.cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", common.WrapError(err, "create genai client")
	}

	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(c.cfg.Temperature),
		TopK:             genai.Ptr(c.cfg.TopK),
		ResponseMIMEType: "application/json",
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: llm.BuildSystemPrompt()},
			},
		},
	}

	result, err := client.Models.GenerateContent(
		attemptCtx,
		c.cfg.Model,
		genai.Text(llm.BuildUserPrompt(req)),
		config,
	)
	if err != nil {
		return "", common.WrapError(err, "generate content")
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", common.NewAppError("AI_EMPTY", "empty completion", nil)
	}
	return text, nil
}

// isRetryable reports whether an attempt hit a transient quota/rate/server
// condition worth retrying. Client-side errors (bad request, invalid key)
// are not retried.
func isRetryable(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"429", "quota", "rate limit", "resource exhausted",
		"500", "503", "unavailable", "deadline exceeded", "timeout",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
