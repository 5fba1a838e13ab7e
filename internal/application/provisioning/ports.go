package provisioning

import (
	"context"

	"github.com/jhoicas/agency-api/internal/domain/repository"
)

// TenantTxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que un tenant y sus filas sembradas (navegación, pipeline,
// permisos) se crean todas o ninguna.
type TenantTxRunner interface {
	RunTenant(ctx context.Context, fn func(
		agencyRepo repository.AgencyRepository,
		subAccountRepo repository.SubAccountRepository,
		userRepo repository.UserRepository,
	) error) error
}
