package contract

import (
	"errors"
	"strings"

	contracterrors "school-hris/internal/contract/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// mapRepositoryError translates storage failures into feature errors. The
// partial unique index on (employee_id) WHERE status = 'Active' is the
// backstop for the single-active-contract invariant; the supersede step in
// the service is the fast path.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return contracterrors.ErrContractNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_contracts_employee_active" {
			return contracterrors.ErrActiveContractExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_contracts_employee_active") {
		return contracterrors.ErrActiveContractExists
	}

	return err
}
