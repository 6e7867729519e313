package domain

// ReviewStatus is the simplified 4-value status vocabulary used by the
// administrative review path. It is deliberately a distinct type from
// FinancingStatus: the two vocabularies are separate external contracts and
// must never be mixed (an admin "approve" must not be applicable to an
// application that is mid-T1 processing).
type ReviewStatus string

const (
	ReviewPending   ReviewStatus = "pending"
	ReviewApproved  ReviewStatus = "approved"
	ReviewRejected  ReviewStatus = "rejected"
	ReviewDisbursed ReviewStatus = "disbursed"
)

// reviewTransitions is the allow-list of manually-triggered status changes,
// keyed by current status. Disbursed is final; rejected applications may be
// reopened.
var reviewTransitions = map[ReviewStatus][]ReviewStatus{
	ReviewPending:   {ReviewApproved, ReviewRejected},
	ReviewRejected:  {ReviewPending},
	ReviewApproved:  {ReviewDisbursed},
	ReviewDisbursed: {},
}

// IsReviewTransitionAllowed reports whether an administrative status change
// from one review status to another is legal.
func IsReviewTransitionAllowed(from, to ReviewStatus) bool {
	for _, allowed := range reviewTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ReviewStatusFor adapts the detailed processing status to the review
// vocabulary at the administrative boundary. Every in-flight processing
// state presents as pending; blocked presents as rejected.
func ReviewStatusFor(s FinancingStatus) ReviewStatus {
	switch s {
	case StatusApproved:
		return ReviewApproved
	case StatusBlocked:
		return ReviewRejected
	case StatusDisbursed:
		return ReviewDisbursed
	default:
		return ReviewPending
	}
}

// FinancingStatusFor maps an administrative review decision back onto the
// processing vocabulary for persistence.
func FinancingStatusFor(s ReviewStatus) FinancingStatus {
	switch s {
	case ReviewApproved:
		return StatusApproved
	case ReviewRejected:
		return StatusBlocked
	case ReviewDisbursed:
		return StatusDisbursed
	default:
		return StatusSubmitted
	}
}
