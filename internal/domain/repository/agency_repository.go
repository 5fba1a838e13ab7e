package repository

import (
	"context"

	"github.com/jhoicas/agency-api/internal/domain/entity"
)

// AgencyRepository define el puerto de persistencia para Agency (DIP).
type AgencyRepository interface {
	// Upsert inserta o actualiza por ID; created indica si la fila es nueva.
	Upsert(ctx context.Context, agency *entity.Agency) (created bool, err error)
	GetByID(ctx context.Context, id string) (*entity.Agency, error)
	Update(ctx context.Context, agency *entity.Agency) error
	Delete(ctx context.Context, id string) error
	CreateSidebarOptions(ctx context.Context, options []entity.SidebarOption) error
}
