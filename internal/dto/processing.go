package dto

// ProcessingResult is the stable contract returned by every Tawarruq
// processing step. Status pages and administrative actions depend on this
// shape; failures are expressed here, never as panics.
type ProcessingResult struct {
	Success   bool           `json:"success"`
	NewStatus string         `json:"newStatus"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
}
