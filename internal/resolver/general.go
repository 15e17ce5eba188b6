package resolver

import (
	"context"
	"strings"

	apperrors "github.com/seanankenbruck/ti-bot/internal/errors"
	"github.com/seanankenbruck/ti-bot/internal/fuzzy"
	"github.com/seanankenbruck/ti-bot/internal/observability"
)

// Replies of the general resolver
const (
	GeneralNotFound = "Sorry, I don't have information about this right now."
	GeneralFault    = "It seems like we have a server error for this question — it will be fixed as soon as possible."
)

// General answers from the general Q&A sheet. Each row is scored as
// 60% example question and 40% intent label similarity. A fault while
// scanning is logged and answered with GeneralFault.
func (r *Resolver) General(ctx context.Context, question string) (answer string) {
	defer func() {
		if rec := recover(); rec != nil {
			err := apperrors.NewResolverFaultError(rec, "general")
			r.logger.Error(ctx, "General resolver failed", err, map[string]interface{}{
				"question": question,
			})
			observability.RecordResolverFault("general")
			answer = GeneralFault
		}
	}()

	q := fuzzy.Normalize(question)

	found := false
	bestScore := 0
	var response string
	for _, row := range r.tables.General() {
		// cells holding only punctuation normalize to spaces
		intentText := strings.TrimSpace(fuzzy.Normalize(row.Intent))
		exampleText := strings.TrimSpace(fuzzy.Normalize(row.Example))
		if intentText == "" && exampleText == "" {
			continue
		}

		var intentScore, exampleScore int
		if intentText != "" {
			intentScore = r.scoreFunc(q, intentText)
		}
		if exampleText != "" {
			exampleScore = r.scoreFunc(q, exampleText)
		}

		combined := int(float64(exampleScore)*0.6 + float64(intentScore)*0.4)
		if combined > bestScore {
			found, bestScore, response = true, combined, row.Response
		}
	}

	if found && bestScore >= GeneralThreshold {
		return response
	}
	return GeneralNotFound
}
