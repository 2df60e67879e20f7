package leavecredit

import (
	"errors"
	"strings"

	leavecrediterrors "school-hris/internal/leavecredit/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapRepositoryError translates storage failures into feature errors. The
// composite unique index on (employee_id, school_year) is the backstop for
// the one-ledger-row-per-year invariant.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_leave_credits_employee_year" {
			return leavecrediterrors.ErrLedgerRowExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_leave_credits_employee_year") {
		return leavecrediterrors.ErrLedgerRowExists
	}

	return err
}
