// Package processor wires the classifier, resolvers and tone rewriter into
// the single question-answering pipeline and exposes it over HTTP.
package processor

import (
	"context"
	"strings"
	"time"

	"github.com/seanankenbruck/ti-bot/internal/intent"
	"github.com/seanankenbruck/ti-bot/internal/llm"
	"github.com/seanankenbruck/ti-bot/internal/observability"
	"github.com/seanankenbruck/ti-bot/internal/resolver"
)

// MissingQuestionText answers a request that carries no question
const MissingQuestionText = "Please type a question so I can help you."

// AskResponse is the JSON envelope returned for every question
type AskResponse struct {
	Intent   string  `json:"intent"`
	Answer   string  `json:"answer"`
	Photo    *string `json:"photo"`
	NotFound bool    `json:"not_found"`
}

// Rewriter restyles a raw answer. Implementations must return the raw text
// unchanged when rewriting fails.
type Rewriter interface {
	RewriteOrRaw(ctx context.Context, text, intent string) string
}

// notFoundPhrases mark an answer as a miss, matched case-insensitively
var notFoundPhrases = []string{
	"don't have information",
	"don't have any information",
	"can't find information",
	"not available",
	"please check the name",
	"double-check",
	"doesn't exist",
	"might not exist",
	"sorry",
	"i don't know",
}

// IsNotFoundAnswer reports whether an answer reads as "no information"
func IsNotFoundAnswer(answer string) bool {
	lower := strings.ToLower(answer)
	for _, phrase := range notFoundPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// Router answers questions: classify, resolve, rewrite, respond
type Router struct {
	classifier *intent.Classifier
	resolver   *resolver.Resolver
	rewriter   Rewriter
	logger     *observability.Logger
}

// NewRouter creates a router. A nil rewriter passes answers through unchanged.
func NewRouter(res *resolver.Resolver, rewriter Rewriter, logger *observability.Logger) *Router {
	if rewriter == nil {
		rewriter = llm.Identity{}
	}
	if logger == nil {
		logger = observability.NewLogger("router")
	}
	return &Router{
		classifier: intent.NewClassifier(),
		resolver:   res,
		rewriter:   rewriter,
		logger:     logger,
	}
}

// Ask answers one question. It never fails: misses, rewrite failures and
// resolver faults all come back as an ordinary envelope.
func (rt *Router) Ask(ctx context.Context, question string) *AskResponse {
	start := time.Now()

	label, rule := rt.classifier.ClassifyWithRule(question)
	raw := rt.resolver.Resolve(ctx, label, question)
	answer := rt.rewriter.RewriteOrRaw(ctx, raw.Text, string(label))

	resp := &AskResponse{Intent: string(label), Answer: answer}
	switch label {
	case intent.Creator, intent.University, intent.AboutBot:
		resp.Photo = photo(raw.Photo)
	case intent.Staff:
		// The rewrite may soften the wording, so judge the raw answer
		resp.Photo = photo(raw.Photo)
		resp.NotFound = raw.NotFound || IsNotFoundAnswer(raw.Text)
	default:
		resp.NotFound = IsNotFoundAnswer(answer)
	}

	duration := time.Since(start)
	observability.RecordAskMetrics(resp.Intent, duration, resp.NotFound)
	rt.logger.Info(ctx, "Question answered", map[string]interface{}{
		"intent":      resp.Intent,
		"rule":        rule,
		"not_found":   resp.NotFound,
		"rewritten":   answer != raw.Text,
		"duration_ms": duration.Milliseconds(),
	})

	return resp
}

// MissingQuestion is the envelope for a request without a question
func (rt *Router) MissingQuestion() *AskResponse {
	return &AskResponse{
		Intent:   string(intent.General),
		Answer:   MissingQuestionText,
		NotFound: true,
	}
}

func photo(url string) *string {
	if url == "" {
		return nil
	}
	return &url
}
