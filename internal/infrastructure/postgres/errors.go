package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/agency-api/internal/domain"
)

// mapPostgresError traduce errores de PostgreSQL a errores de dominio.
// Los errores que no son de PostgreSQL se devuelven sin cambios.
func mapPostgresError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		if pgErr.ConstraintName == "users_email_key" {
			return fmt.Errorf("%w: %s", domain.ErrEmailAlreadyExists, pgErr.Detail)
		}
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, pgErr.ConstraintName)
	case pgerrcode.ForeignKeyViolation:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, pgErr.Detail)
	case pgerrcode.CheckViolation, pgerrcode.NotNullViolation, pgerrcode.InvalidTextRepresentation:
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, pgErr.Message)
	case pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected:
		return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.Message)
	case pgerrcode.QueryCanceled:
		return fmt.Errorf("consulta cancelada: %w", err)
	}
	return fmt.Errorf("postgres [%s]: %s: %w", pgErr.Code, pgErr.Message, err)
}
