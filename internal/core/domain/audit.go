package domain

import "time"

// ActorType identifies who (or what) performed an audited action.
type ActorType string

const (
	ActorSystem ActorType = "system"
	ActorUser   ActorType = "user"
	ActorAPI    ActorType = "api"
)

// AuditLog is an append-only record of an action taken against a financing
// application.
type AuditLog struct {
	AuditID     string         `json:"auditID"`
	FinancingID string         `json:"financingID"`
	Action      string         `json:"action"`
	ActorID     string         `json:"actorID"`
	ActorType   ActorType      `json:"actorType"`
	Details     map[string]any `json:"details,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}
