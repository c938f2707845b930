package gemini

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dentalops/vob-extractor/internal/common"
	"github.com/dentalops/vob-extractor/internal/llm"
)

const validResponse = `{"patientInfo":{"patientName":"Jane Doe"}}`

func testClient(t *testing.T, gen generateFunc) *Client {
	t.Helper()
	c := NewClient(Config{
		APIKey:      "test-key",
		MaxAttempts: 3,
		RetryDelay:  time.Millisecond,
	}, nil)
	c.generate = gen
	return c
}

func TestExtractFieldsRetriesTransientErrors(t *testing.T) {
	calls := 0
	delay := 10 * time.Millisecond
	c := testClient(t, func(ctx context.Context, req llm.ExtractRequest) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("googleapi: Error 429: quota exceeded")
		}
		return validResponse, nil
	})
	c.cfg.RetryDelay = delay

	start := time.Now()
	rec, _, err := c.ExtractFields(context.Background(), llm.ExtractRequest{RawText: "text"})
	if err != nil {
		t.Fatalf("ExtractFields() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("attempts = %d, want 3", calls)
	}
	if rec.PatientInfo.PatientName != "Jane Doe" {
		t.Errorf("patientName = %q", rec.PatientInfo.PatientName)
	}
	// waits grow linearly: delay*1 before attempt 2, delay*2 before attempt 3
	if elapsed := time.Since(start); elapsed < 3*delay {
		t.Errorf("elapsed = %v, want at least %v of backoff", elapsed, 3*delay)
	}
}

func TestExtractFieldsExhaustsAttempts(t *testing.T) {
	calls := 0
	c := testClient(t, func(ctx context.Context, req llm.ExtractRequest) (string, error) {
		calls++
		return "", errors.New("503 service unavailable")
	})

	_, _, err := c.ExtractFields(context.Background(), llm.ExtractRequest{RawText: "text"})
	if err == nil {
		t.Fatal("ExtractFields() succeeded with failing generation")
	}
	if calls != 3 {
		t.Errorf("attempts = %d, want 3", calls)
	}
	if !errors.Is(err, common.ErrAIService) {
		t.Errorf("err = %v, want ErrAIService", err)
	}
	var appErr *common.AppError
	if !errors.As(err, &appErr) || appErr.Code != "AI_GENERATE" {
		t.Errorf("err = %v, want AppError AI_GENERATE", err)
	}
}

func TestExtractFieldsDoesNotRetryClientErrors(t *testing.T) {
	calls := 0
	c := testClient(t, func(ctx context.Context, req llm.ExtractRequest) (string, error) {
		calls++
		return "", errors.New("400 invalid request: API key not valid")
	})

	_, _, err := c.ExtractFields(context.Background(), llm.ExtractRequest{RawText: "text"})
	if err == nil {
		t.Fatal("ExtractFields() succeeded with failing generation")
	}
	if calls != 1 {
		t.Errorf("attempts = %d, want 1 for a non-retryable error", calls)
	}
}

func TestExtractFieldsCancellationAbortsBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := testClient(t, func(ctx context.Context, req llm.ExtractRequest) (string, error) {
		cancel()
		return "", errors.New("429 quota exceeded")
	})
	c.cfg.RetryDelay = time.Hour

	start := time.Now()
	_, _, err := c.ExtractFields(ctx, llm.ExtractRequest{RawText: "text"})
	if err == nil {
		t.Fatal("ExtractFields() succeeded after cancellation")
	}
	if !errors.Is(err, common.ErrAIService) {
		t.Errorf("err = %v, want ErrAIService", err)
	}
	var appErr *common.AppError
	if !errors.As(err, &appErr) || appErr.Code != "AI_CANCELLED" {
		t.Errorf("err = %v, want AppError AI_CANCELLED", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("cancellation waited %v, backoff select did not abort", elapsed)
	}
}

func TestExtractFieldsBadJSONResponse(t *testing.T) {
	c := testClient(t, func(ctx context.Context, req llm.ExtractRequest) (string, error) {
		return "I am sorry, I cannot help with that.", nil
	})

	_, _, err := c.ExtractFields(context.Background(), llm.ExtractRequest{RawText: "text"})
	if !errors.Is(err, common.ErrAIService) {
		t.Errorf("err = %v, want ErrAIService", err)
	}
	var appErr *common.AppError
	if !errors.As(err, &appErr) || appErr.Code != "AI_BAD_JSON" {
		t.Errorf("err = %v, want AppError AI_BAD_JSON", err)
	}
}

func TestExtractFieldsWithoutKey(t *testing.T) {
	c := NewClient(Config{APIKey: "k"}, nil)
	c.cfg.APIKey = ""

	_, _, err := c.ExtractFields(context.Background(), llm.ExtractRequest{RawText: "text"})
	var appErr *common.AppError
	if !errors.As(err, &appErr) || appErr.Code != "AI_NOT_CONFIGURED" {
		t.Errorf("err = %v, want AppError AI_NOT_CONFIGURED", err)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"googleapi: Error 429: quota exceeded", true},
		{"generation failed: resource exhausted", true},
		{"503 Service Unavailable", true},
		{"Post https://...: context deadline exceeded", true},
		{"rate limit reached", true},
		{"400 invalid argument", false},
		{"API key not valid", false},
		{"403 permission denied", false},
	}
	for _, tt := range tests {
		if got := isRetryable(errors.New(tt.msg)); got != tt.want {
			t.Errorf("isRetryable(%q) = %v, want %v", tt.msg, got, tt.want)
		}
	}
}
