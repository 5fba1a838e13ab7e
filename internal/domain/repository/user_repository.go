package repository

import (
	"context"

	"github.com/jhoicas/agency-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos Get*/Find* devuelven (nil, nil) cuando no hay fila.
type UserRepository interface {
	// Upsert crea o actualiza el usuario usando el email como clave única (atómico).
	Upsert(ctx context.Context, user *entity.User) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetDetailsByEmail carga además la agencia (con navegación y sub-cuentas) y los permisos.
	GetDetailsByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindAgencyOwner devuelve el AGENCY_OWNER de la agencia.
	FindAgencyOwner(ctx context.Context, agencyID string) (*entity.User, error)
	// FindFirstBySubAccount devuelve algún usuario de la agencia dueña de la sub-cuenta.
	FindFirstBySubAccount(ctx context.Context, subAccountID string) (*entity.User, error)
	// AssignAgency conecta el usuario con ese email a la agencia. ErrUserNotFound si no existe.
	AssignAgency(ctx context.Context, email, agencyID string) error
}
