package services

import (
	portsrepo "github.com/psoares/finsync/internal/core/ports/repositories"
	portssvc "github.com/psoares/finsync/internal/core/ports/services"
	"github.com/psoares/finsync/pkg/config"
)

// NewServiceContainer wires the service layer from the repository provider.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	validator := NewOwnershipValidator(repos.Ownership)

	return &portssvc.ServiceContainer{
		Sync:     NewSyncService(repos, validator, WithSyncPageSize(cfg.SyncPageSize)),
		UserData: NewUserDataService(repos),
	}
}
