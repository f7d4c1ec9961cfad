package matching_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	"github.com/SscSPs/team_cfo_backend/internal/core/rules/matching"
)

var posted = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

func bankTx() domain.PlaidBankTransaction {
	return domain.PlaidBankTransaction{
		BankTransactionID:     "bank-1",
		TeamID:                "team-1",
		ExternalTransactionID: "ext-1",
		AmountCents:           25000,
		PostedDate:            posted,
	}
}

func intent(id string, createdAt time.Time) domain.SpendIntent {
	return domain.SpendIntent{
		SpendIntentID: id,
		TeamID:        "team-1",
		AmountCents:   25000,
		Status:        domain.SpendIntentAuthorized,
		AuditFields:   domain.AuditFields{CreatedAt: createdAt},
	}
}

func days(n int) time.Duration { return time.Duration(n) * 24 * time.Hour }

func TestMatch_PrefersClosestPriorIntent(t *testing.T) {
	candidates := []domain.SpendIntent{
		intent("far-before", posted.Add(-days(10))),
		intent("near-after", posted.Add(days(1))),
		intent("near-before", posted.Add(-days(2))),
	}

	result := matching.Match(bankTx(), candidates, domain.DefaultPolicy())

	require.True(t, result.Matched)
	require.NotNil(t, result.SpendIntentID)
	assert.Equal(t, "near-before", *result.SpendIntentID)
	require.Len(t, result.Candidates, 3)
	assert.Equal(t, "far-before", result.Candidates[1].SpendIntentID)
	assert.Equal(t, "near-after", result.Candidates[2].SpendIntentID)
	assert.True(t, result.Candidates[2].CreatedAfterPosted)
}

func TestMatch_AfterPostingOnlyWhenNothingPrior(t *testing.T) {
	result := matching.Match(bankTx(), []domain.SpendIntent{intent("after", posted.Add(days(3)))}, domain.DefaultPolicy())

	require.True(t, result.Matched)
	assert.Equal(t, "after", *result.SpendIntentID)
	assert.Contains(t, result.Reason, "after posting")
}

func TestMatch_SameDayIsNotAfterPosting(t *testing.T) {
	candidates := []domain.SpendIntent{
		intent("two-weeks-before", posted.Add(-days(13))),
		intent("posting-morning", posted.Add(9*time.Hour)),
	}

	result := matching.Match(bankTx(), candidates, domain.DefaultPolicy())

	require.True(t, result.Matched)
	assert.Equal(t, "posting-morning", *result.SpendIntentID)
	assert.False(t, result.Candidates[0].CreatedAfterPosted)
	assert.Equal(t, 9*time.Hour, result.Candidates[0].Score)
	assert.Contains(t, result.Reason, "posting day")

	score, after := matching.Score(bankTx(), intent("next-day", posted.Add(days(1)+time.Minute)))
	assert.True(t, after)
	assert.Greater(t, score, days(365))
}

func TestMatch_Filters(t *testing.T) {
	otherTeam := intent("other-team", posted)
	otherTeam.TeamID = "team-2"

	offByOne := intent("amount", posted)
	offByOne.AmountCents = 25001

	settled := intent("settled", posted)
	settled.Status = domain.SpendIntentSettled

	tooOld := intent("too-old", posted.Add(-days(14)-time.Second))
	tooNew := intent("too-new", posted.Add(days(14)+time.Second))

	result := matching.Match(bankTx(), []domain.SpendIntent{otherTeam, offByOne, settled, tooOld, tooNew}, domain.DefaultPolicy())

	assert.False(t, result.Matched)
	assert.Nil(t, result.SpendIntentID)
	assert.Empty(t, result.Candidates)
	assert.NotEmpty(t, result.Reason)
}

func TestMatch_WindowIsInclusive(t *testing.T) {
	pending := intent("edge-before", posted.Add(-days(14)))
	pending.Status = domain.SpendIntentAuthorizationPending
	edgeAfter := intent("edge-after", posted.Add(days(14)))
	edgeAfter.Status = domain.SpendIntentOutstanding

	result := matching.Match(bankTx(), []domain.SpendIntent{edgeAfter, pending}, domain.DefaultPolicy())

	require.True(t, result.Matched)
	assert.Equal(t, "edge-before", *result.SpendIntentID)
	assert.Len(t, result.Candidates, 2)
}

func TestMatch_ReturnsTopFive(t *testing.T) {
	var candidates []domain.SpendIntent
	for i := 0; i < 8; i++ {
		candidates = append(candidates, intent(fmt.Sprintf("si-%d", i), posted.Add(-time.Duration(i+1)*time.Hour)))
	}

	result := matching.Match(bankTx(), candidates, domain.DefaultPolicy())

	require.True(t, result.Matched)
	assert.Equal(t, "si-0", *result.SpendIntentID)
	require.Len(t, result.Candidates, 5)
	for i := 1; i < len(result.Candidates); i++ {
		assert.LessOrEqual(t, result.Candidates[i-1].Score, result.Candidates[i].Score)
	}
}

func TestMatch_TieBreakIsDeterministic(t *testing.T) {
	a := intent("b-intent", posted.Add(-days(1)))
	b := intent("a-intent", posted.Add(-days(1)))

	first := matching.Match(bankTx(), []domain.SpendIntent{a, b}, domain.DefaultPolicy())
	second := matching.Match(bankTx(), []domain.SpendIntent{b, a}, domain.DefaultPolicy())

	assert.Equal(t, "a-intent", *first.SpendIntentID)
	assert.Equal(t, first, second)
}
