package gemini

import (
	"log/slog"
	"os"
	"time"
)

// Config for the Gemini client.
type Config struct {
	APIKey      string        // if empty, falls back to env GEMINI_API_KEY
	Model       string        // e.g. "gemini-2.0-flash"
	Temperature float32       // deterministic-leaning default 0.1
	TopK        float32       // default 1
	Timeout     time.Duration // per-attempt timeout
	MaxAttempts int           // total attempts including the first
	RetryDelay  time.Duration // base delay; grows linearly per attempt
}

type Client struct {
	cfg Config
	log *slog.Logger

	// generate performs one completion attempt. Overridable so the retry
	// policy can be exercised without the live API.
	generate generateFunc
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.1
	}
	if cfg.TopK <= 0 {
		cfg.TopK = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{cfg: cfg, log: logger}
	c.generate = c.generateContent
	return c
}
