package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nadzrin/tawarruq_financing_app/internal/core/domain"
)

func TestIsReviewTransitionAllowed(t *testing.T) {
	tests := []struct {
		from    domain.ReviewStatus
		to      domain.ReviewStatus
		allowed bool
	}{
		{domain.ReviewPending, domain.ReviewApproved, true},
		{domain.ReviewPending, domain.ReviewRejected, true},
		{domain.ReviewPending, domain.ReviewDisbursed, false},
		{domain.ReviewPending, domain.ReviewPending, false},
		{domain.ReviewRejected, domain.ReviewPending, true},
		{domain.ReviewRejected, domain.ReviewApproved, false},
		{domain.ReviewRejected, domain.ReviewDisbursed, false},
		{domain.ReviewApproved, domain.ReviewDisbursed, true},
		{domain.ReviewApproved, domain.ReviewPending, false},
		{domain.ReviewApproved, domain.ReviewRejected, false},
		{domain.ReviewDisbursed, domain.ReviewPending, false},
		{domain.ReviewDisbursed, domain.ReviewApproved, false},
		{domain.ReviewDisbursed, domain.ReviewRejected, false},
	}

	for _, tt := range tests {
		got := domain.IsReviewTransitionAllowed(tt.from, tt.to)
		assert.Equal(t, tt.allowed, got, "%s -> %s", tt.from, tt.to)
	}
}

func TestReviewStatusFor(t *testing.T) {
	// Every in-flight processing status presents as pending
	for _, s := range []domain.FinancingStatus{
		domain.StatusDraft,
		domain.StatusSubmitted,
		domain.StatusT1Pending,
		domain.StatusT1Validated,
		domain.StatusT2Pending,
		domain.StatusT2Validated,
	} {
		assert.Equal(t, domain.ReviewPending, domain.ReviewStatusFor(s))
	}

	assert.Equal(t, domain.ReviewApproved, domain.ReviewStatusFor(domain.StatusApproved))
	assert.Equal(t, domain.ReviewRejected, domain.ReviewStatusFor(domain.StatusBlocked))
	assert.Equal(t, domain.ReviewDisbursed, domain.ReviewStatusFor(domain.StatusDisbursed))
}

func TestFinancingStatusRoundTrip(t *testing.T) {
	// Mapping a review decision to a financing status and back preserves it
	for _, s := range []domain.ReviewStatus{
		domain.ReviewApproved,
		domain.ReviewRejected,
		domain.ReviewDisbursed,
	} {
		assert.Equal(t, s, domain.ReviewStatusFor(domain.FinancingStatusFor(s)))
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, domain.StatusApproved.IsTerminal())
	assert.True(t, domain.StatusBlocked.IsTerminal())
	assert.True(t, domain.StatusDisbursed.IsTerminal())

	assert.False(t, domain.StatusDraft.IsTerminal())
	assert.False(t, domain.StatusSubmitted.IsTerminal())
	assert.False(t, domain.StatusT1Pending.IsTerminal())
	assert.False(t, domain.StatusT1Validated.IsTerminal())
	assert.False(t, domain.StatusT2Pending.IsTerminal())
	assert.False(t, domain.StatusT2Validated.IsTerminal())
}
