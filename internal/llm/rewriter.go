package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	apperrors "github.com/seanankenbruck/ti-bot/internal/errors"
	"github.com/seanankenbruck/ti-bot/internal/observability"
)

const (
	DefaultRewriteTimeout = 15 * time.Second
	DefaultTemperature    = 0.7
)

var tones = map[string]string{
	"staff":      "friendly",
	"room":       "helpful",
	"department": "informative",
	"general":    "calm",
	"chat":       "warm",
	"service":    "friendly",
	"error":      "apologetic",
}

// ToneFor returns the style hint for an intent. Intents without an entry
// get "friendly".
func ToneFor(intent string) string {
	if tone, ok := tones[intent]; ok {
		return tone
	}
	return "friendly"
}

// BuildPrompt renders the rewrite instruction for a raw answer
func BuildPrompt(text, intent string) string {
	return fmt.Sprintf("Rewrite this in a natural, friendly tone (no greetings).\nStyle: %s\n\nAnswer:\n%s", ToneFor(intent), text)
}

// RewriterConfig tunes a Rewriter
type RewriterConfig struct {
	Timeout     time.Duration
	Temperature float32
	MaxTokens   int

	// RequestsPerSecond and Burst bound outgoing rewrites; zero disables the limit
	RequestsPerSecond float64
	Burst             int
}

// Rewriter restyles raw answers through a Completer. It never retries or
// waits: a refused, failed or slow rewrite is reported as an error and
// RewriteOrRaw falls back to the raw text.
type Rewriter struct {
	completer   Completer
	cache       Cache
	limiter     *rate.Limiter
	timeout     time.Duration
	temperature float32
	maxTokens   int
	logger      *observability.Logger
}

// NewRewriter creates a rewriter. cache may be nil.
func NewRewriter(completer Completer, cache Cache, cfg RewriterConfig, logger *observability.Logger) *Rewriter {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultRewriteTimeout
	}
	if logger == nil {
		logger = observability.NewLogger("rewriter")
	}

	r := &Rewriter{
		completer:   completer,
		cache:       cache,
		timeout:     cfg.Timeout,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		logger:      logger,
	}
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		r.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return r
}

// Rewrite returns the restyled text, trimmed
func (r *Rewriter) Rewrite(ctx context.Context, text, intent string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	provider := r.completer.Name()

	key := CacheKey(intent, text)
	if r.cache != nil {
		cached, ok, err := r.cache.Get(ctx, key)
		switch {
		case err != nil:
			r.logger.Warn(ctx, "Rewrite cache read failed", map[string]interface{}{
				"error": apperrors.NewCacheReadError(err, key).Error(),
			})
		case ok:
			observability.RecordRewriteCache(true)
			observability.RecordRewriteMetrics(provider, observability.RewriteCached, 0)
			return cached, nil
		default:
			observability.RecordRewriteCache(false)
		}
	}

	if r.limiter != nil && !r.limiter.Allow() {
		return "", apperrors.NewLLMRateLimitError(provider)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	resp, err := r.completer.Complete(ctx, Request{
		Prompt:      BuildPrompt(text, intent),
		Temperature: r.temperature,
		MaxTokens:   r.maxTokens,
	})
	if err != nil {
		return "", apperrors.NewLLMRewriteError(err, provider)
	}

	rewritten := strings.TrimSpace(resp.Text)
	if rewritten == "" {
		return "", apperrors.NewLLMRewriteError(ErrEmptyCompletion, provider)
	}
	observability.RecordRewriteMetrics(provider, observability.RewriteOK, time.Since(start))

	if r.cache != nil {
		if err := r.cache.Set(ctx, key, rewritten); err != nil {
			r.logger.Warn(ctx, "Rewrite cache write failed", map[string]interface{}{
				"error": apperrors.NewCacheWriteError(err, key).Error(),
			})
		}
	}

	return rewritten, nil
}

// RewriteOrRaw rewrites text, returning it unchanged on any failure
func (r *Rewriter) RewriteOrRaw(ctx context.Context, text, intent string) string {
	rewritten, err := r.Rewrite(ctx, text, intent)
	if err != nil {
		r.logger.Warn(ctx, "Rewrite failed, serving raw answer", map[string]interface{}{
			"intent": intent,
			"error":  err.Error(),
		})
		observability.RecordRewriteMetrics(r.completer.Name(), observability.RewriteFallback, 0)
		return text
	}
	return rewritten
}

// Identity is a rewriter that returns every answer unchanged. It is used
// when no provider key is configured.
type Identity struct{}

// Rewrite returns text unchanged
func (Identity) Rewrite(_ context.Context, text, _ string) (string, error) {
	return text, nil
}

// RewriteOrRaw returns text unchanged
func (Identity) RewriteOrRaw(_ context.Context, text, _ string) string {
	observability.RecordRewriteMetrics("identity", observability.RewriteSkipped, 0)
	return text
}
