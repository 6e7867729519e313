package dto

import (
	"time"

	"github.com/nadzrin/tawarruq_financing_app/internal/core/domain"
)

// AuditLogResponse is the API representation of one audit trail entry.
type AuditLogResponse struct {
	AuditID   string           `json:"auditID"`
	Action    string           `json:"action"`
	ActorID   string           `json:"actorID"`
	ActorType domain.ActorType `json:"actorType"`
	Details   map[string]any   `json:"details,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// ToAuditLogResponses converts a slice of domain audit entries.
func ToAuditLogResponses(entries []domain.AuditLog) []AuditLogResponse {
	responses := make([]AuditLogResponse, len(entries))
	for i, e := range entries {
		responses[i] = AuditLogResponse{
			AuditID:   e.AuditID,
			Action:    e.Action,
			ActorID:   e.ActorID,
			ActorType: e.ActorType,
			Details:   e.Details,
			CreatedAt: e.CreatedAt,
		}
	}
	return responses
}
