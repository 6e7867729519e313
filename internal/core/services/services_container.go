package services

import (
	portsrepo "github.com/nadzrin/tawarruq_financing_app/internal/core/ports/repositories"
	portssvc "github.com/nadzrin/tawarruq_financing_app/internal/core/ports/services"
	"github.com/nadzrin/tawarruq_financing_app/internal/platform/config"
	"github.com/nadzrin/tawarruq_financing_app/internal/platform/lock"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, venue portssvc.VenueClient, locker lock.Locker) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Venue = venue

	container.Application = NewApplicationService(
		repos.ApplicationRepo,
		repos.TradeRepo,
		repos.ValidationRepo,
		repos.AuditRepo,
	)

	container.Tawarruq = NewTawarruqService(
		repos.ApplicationRepo,
		repos.TradeRepo,
		repos.ValidationRepo,
		repos.AuditRepo,
		venue,
		NewValidationService(),
		locker,
		TawarruqConfig{
			BankName:        cfg.BankName,
			SettlementPause: cfg.SettlementPause,
			LockTTL:         cfg.LockTTL,
		},
	)

	container.Review = NewReviewService(repos.ApplicationRepo, repos.AuditRepo)

	return container
}
