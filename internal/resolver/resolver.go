// Package resolver turns a classified question into a raw answer by
// searching the reference tables.
package resolver

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/seanankenbruck/ti-bot/internal/fuzzy"
	"github.com/seanankenbruck/ti-bot/internal/intent"
	"github.com/seanankenbruck/ti-bot/internal/observability"
	"github.com/seanankenbruck/ti-bot/internal/tables"
)

// Match thresholds on the 0-100 similarity scale
const (
	StaffThreshold      = 60
	VisitThreshold      = 65
	DepartmentThreshold = 70
	GeneralThreshold    = 55
)

// DefaultPublicBaseURL is where photos are served when no base URL is configured
const DefaultPublicBaseURL = "http://127.0.0.1:8001"

// Answer is a resolver's raw, not yet rewritten, reply
type Answer struct {
	Text     string
	Photo    string
	NotFound bool
}

// Resolver answers questions for every intent against one set of tables.
// It is safe for concurrent use.
type Resolver struct {
	tables  *tables.Tables
	baseURL string
	logger  *observability.Logger

	rngMu sync.Mutex
	rng   *rand.Rand

	// scoreFunc scores general Q&A rows; replaceable in tests
	scoreFunc func(a, b string) int
}

// Option configures a Resolver
type Option func(*Resolver)

// WithPublicBaseURL sets the base URL photo links are built on
func WithPublicBaseURL(baseURL string) Option {
	return func(r *Resolver) {
		if baseURL != "" {
			r.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithRand sets the random source used to pick chat replies
func WithRand(rng *rand.Rand) Option {
	return func(r *Resolver) {
		r.rng = rng
	}
}

// WithLogger sets the logger used to report recovered faults
func WithLogger(logger *observability.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// New creates a resolver over the given tables
func New(t *tables.Tables, opts ...Option) *Resolver {
	r := &Resolver{
		tables:    t,
		baseURL:   DefaultPublicBaseURL,
		logger:    observability.NewLogger("resolver"),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		scoreFunc: fuzzy.PartialRatio,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve dispatches the question to the resolver for its label
func (r *Resolver) Resolve(ctx context.Context, label intent.Label, question string) Answer {
	switch label {
	case intent.Creator:
		return r.Creator()
	case intent.AboutBot:
		return r.AboutBot()
	case intent.University:
		return r.University()
	case intent.Staff:
		return r.Staff(question)
	case intent.Service:
		return Answer{Text: r.Service(question)}
	case intent.Room:
		return Answer{Text: r.Room(question)}
	case intent.Department:
		return Answer{Text: r.Department(question)}
	case intent.Chat:
		return Answer{Text: r.Chat(question)}
	default:
		return Answer{Text: r.General(ctx, question)}
	}
}

// PhotoURL builds the public link for a photo file name, or "" when the
// cell holds no usable file name
func (r *Resolver) PhotoURL(file string) string {
	file = strings.TrimSpace(file)
	switch strings.ToLower(file) {
	case "", "nan", "none":
		return ""
	}
	return r.baseURL + "/photos/" + file
}
