package dto

import "github.com/nadzrin/tawarruq_financing_app/internal/core/domain"

// ChangeReviewStatusRequest is the payload for an administrative status
// change. Target uses the simplified review vocabulary, never the detailed
// processing statuses.
type ChangeReviewStatusRequest struct {
	Target domain.ReviewStatus `json:"target" binding:"required,oneof=pending approved rejected disbursed"`
}
