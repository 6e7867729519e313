package services

import (
	"context"

	"github.com/nadzrin/tawarruq_financing_app/internal/dto"
)

// TawarruqProcessorSvc drives an application through the Tawarruq state
// machine. Every method returns a structured result rather than an error for
// flow-level failures; the error return is reserved for infrastructure
// problems where not even a result could be produced.
type TawarruqProcessorSvc interface {
	// ProcessT1 executes and validates the bank's commodity purchase.
	// Requires status submitted; moves to t1_validated or blocked.
	ProcessT1(ctx context.Context, applicationID string) dto.ProcessingResult

	// ProcessT2 executes the customer's resale and runs the full Shariah
	// compliance check. Requires status t1_validated or t2_pending; moves to
	// t2_validated or blocked.
	ProcessT2(ctx context.Context, applicationID string) dto.ProcessingResult

	// ApproveApplication moves t2_validated to approved. Purely mechanical:
	// compliance has already been certified by ProcessT2.
	ApproveApplication(ctx context.Context, applicationID string) dto.ProcessingResult

	// ProcessFullFlow chains T1, T2 and approval with a settlement pause
	// between the two legs, short-circuiting on the first failure.
	ProcessFullFlow(ctx context.Context, applicationID string) dto.ProcessingResult
}
