package profilechange

import (
	"errors"
	"strings"

	profilechangeerrors "school-hris/internal/profilechange/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapRepositoryError translates storage failures into feature errors. The
// partial unique index on (employee_id) WHERE status = 'pending' backstops
// the one-pending-request invariant under concurrent submits.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_profile_changes_employee_pending" {
			return profilechangeerrors.ErrPendingRequestExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_profile_changes_employee_pending") {
		return profilechangeerrors.ErrPendingRequestExists
	}

	return err
}
