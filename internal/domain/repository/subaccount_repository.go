package repository

import (
	"context"

	"github.com/jhoicas/agency-api/internal/domain/entity"
)

// SubAccountRepository define el puerto de persistencia para SubAccount y sus filas sembradas.
type SubAccountRepository interface {
	// Upsert inserta o actualiza por ID; created indica si la fila es nueva.
	Upsert(ctx context.Context, sub *entity.SubAccount) (created bool, err error)
	GetByID(ctx context.Context, id string) (*entity.SubAccount, error)
	CreatePermission(ctx context.Context, p *entity.Permission) error
	CreatePipeline(ctx context.Context, p *entity.Pipeline) error
	CreateSidebarOptions(ctx context.Context, options []entity.SidebarOption) error
}
