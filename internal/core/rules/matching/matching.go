// Package matching links an external bank transaction to the spend intent it
// most likely settles. It performs no writes.
package matching

import (
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
)

const (
	defaultWindow        = 14 * 24 * time.Hour
	defaultMaxCandidates = 5

	// createdAfterPenalty ranks intents created after the posting below every
	// intent created before it.
	createdAfterPenalty = 100 * 365 * 24 * time.Hour
)

// Eligible reports whether an intent can settle the bank transaction: same team,
// identical amount, matchable status and created within the window around the posting.
func Eligible(bankTx domain.PlaidBankTransaction, intent domain.SpendIntent, window time.Duration) bool {
	if intent.TeamID != bankTx.TeamID || intent.AmountCents != bankTx.AmountCents {
		return false
	}
	if !intent.Status.IsMatchable() {
		return false
	}
	return absDuration(intent.CreatedAt.Sub(bankTx.PostedDate)) <= window
}

// Score is the time distance between creation and posting, plus a fixed
// penalty when the intent was created after the posting. Posted dates carry no
// time of day, so "after" means a later UTC calendar day.
func Score(bankTx domain.PlaidBankTransaction, intent domain.SpendIntent) (time.Duration, bool) {
	distance := absDuration(intent.CreatedAt.Sub(bankTx.PostedDate))
	after := utcDay(intent.CreatedAt).After(utcDay(bankTx.PostedDate))
	if after {
		distance += createdAfterPenalty
	}
	return distance, after
}

// Match scores every eligible candidate and picks the lowest score. The top
// candidates are returned whether or not a match is found.
func Match(bankTx domain.PlaidBankTransaction, candidates []domain.SpendIntent, policy domain.Policy) domain.MatchResult {
	window := policy.MatchWindow
	if window <= 0 {
		window = defaultWindow
	}
	limit := policy.MaxMatchCandidates
	if limit <= 0 {
		limit = defaultMaxCandidates
	}

	scored := make([]domain.MatchCandidate, 0, len(candidates))
	for _, intent := range candidates {
		if !Eligible(bankTx, intent, window) {
			continue
		}
		score, after := Score(bankTx, intent)
		scored = append(scored, domain.MatchCandidate{
			SpendIntentID:      intent.SpendIntentID,
			AmountCents:        intent.AmountCents,
			Status:             intent.Status,
			CreatedAt:          intent.CreatedAt,
			Score:              score,
			CreatedAfterPosted: after,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score < scored[j].Score
		}
		return scored[i].SpendIntentID < scored[j].SpendIntentID
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}

	if len(scored) == 0 {
		return domain.MatchResult{
			Reason: fmt.Sprintf("no spend intent for %d cents created within %d days of %s in a matchable status (%d considered)",
				bankTx.AmountCents, int(window.Hours()/24), bankTx.PostedDate.Format(time.DateOnly), len(candidates)),
			Candidates: scored,
		}
	}

	best := scored[0]
	id := best.SpendIntentID
	var reason string
	switch {
	case best.CreatedAfterPosted:
		reason = fmt.Sprintf("exact amount, created %s after posting", roundDays(best.Score-createdAfterPenalty))
	case best.CreatedAt.After(bankTx.PostedDate):
		reason = "exact amount, created on the posting day"
	default:
		reason = fmt.Sprintf("exact amount, created %s before posting", roundDays(best.Score))
	}
	return domain.MatchResult{
		Matched:       true,
		SpendIntentID: &id,
		Reason:        reason,
		Candidates:    scored,
	}
}

func roundDays(d time.Duration) string {
	days := d.Hours() / 24
	if days < 1 {
		return d.Round(time.Minute).String()
	}
	return fmt.Sprintf("%.1f days", days)
}

func utcDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
