package leavecredit

import (
	"context"
	"database/sql"
	"errors"
	"time"

	leavecrediterrors "school-hris/internal/leavecredit/errors"
	"school-hris/internal/schoolyear"
	"school-hris/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leavecredit_service.go -destination=mock/leavecredit_service_mock.go -package=mock
type Service interface {
	Initialize(ctx context.Context, req InitializeRequest) (LeaveCreditResponse, error)
	Get(ctx context.Context, employeeID, schoolYear string) (LeaveCreditResponse, error)
	ApplyLeaveUsage(ctx context.Context, leaveID string) error
	Rollover(ctx context.Context, newSchoolYear string) (RolloverResult, error)
	ChangeEmploymentType(ctx context.Context, employeeID string, req ChangeEmploymentTypeRequest) (LeaveCreditResponse, error)
	SummaryByType(ctx context.Context, schoolYear string) ([]TypeSummary, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavecredit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavecredit.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// Initialize creates the ledger row for an employee and school year. It is
// idempotent: an existing row is returned untouched.
func (s *service) Initialize(ctx context.Context, req InitializeRequest) (LeaveCreditResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	year := req.SchoolYear
	if year == "" {
		year = schoolyear.Current()
	}
	if _, err := schoolyear.Parse(year); err != nil {
		return LeaveCreditResponse{}, leavecrediterrors.ErrInvalidSchoolYear
	}

	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return LeaveCreditResponse{}, leavecrediterrors.ErrInvalidEmployeeID
	}

	exists, err := s.repo.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		s.logger.Error("initialize credits employee lookup failed", zap.Error(err))
		return LeaveCreditResponse{}, err
	}
	if !exists {
		return LeaveCreditResponse{}, leavecrediterrors.ErrEmployeeNotFound
	}

	if existing, err := s.repo.FindByEmployeeAndYear(ctx, req.EmployeeID, year); err == nil {
		return mapToResponse(*existing), nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return LeaveCreditResponse{}, err
	}

	lc := &LeaveCredit{
		ID:             uuid.New(),
		EmployeeID:     employeeUUID,
		SchoolYear:     year,
		EmploymentType: req.EmploymentType,
		TotalCredits:   Allocation(req.EmploymentType),
	}
	if err := s.repo.Create(ctx, lc); err != nil {
		mapped := mapRepositoryError(err)
		if errors.Is(mapped, leavecrediterrors.ErrLedgerRowExists) {
			// lost a race with a concurrent initialize; the winner's row is ours
			if existing, ferr := s.repo.FindByEmployeeAndYear(ctx, req.EmployeeID, year); ferr == nil {
				return mapToResponse(*existing), nil
			}
		}
		s.logger.Error("initialize credits persist failed", zap.Error(err))
		return LeaveCreditResponse{}, mapped
	}

	s.logger.Info("leave credits initialized",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("school_year", year),
		zap.String("employment_type", req.EmploymentType),
	)
	return mapToResponse(*lc), nil
}

// Get returns the ledger row for the given year, lazily initializing it
// from the employee's active contract type when missing.
func (s *service) Get(ctx context.Context, employeeID, schoolYear string) (LeaveCreditResponse, error) {
	year := schoolYear
	if year == "" {
		year = schoolyear.Current()
	}
	if _, err := schoolyear.Parse(year); err != nil {
		return LeaveCreditResponse{}, leavecrediterrors.ErrInvalidSchoolYear
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return LeaveCreditResponse{}, leavecrediterrors.ErrInvalidEmployeeID
	}

	lc, err := s.repo.FindByEmployeeAndYear(ctx, employeeID, year)
	if err == nil {
		return mapToResponse(*lc), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return LeaveCreditResponse{}, err
	}

	exists, err := s.repo.EmployeeExists(ctx, employeeID)
	if err != nil {
		return LeaveCreditResponse{}, err
	}
	if !exists {
		return LeaveCreditResponse{}, leavecrediterrors.ErrEmployeeNotFound
	}

	employmentType, err := s.repo.GetActiveContractType(ctx, employeeID)
	if err != nil {
		return LeaveCreditResponse{}, err
	}
	if employmentType == "" {
		employmentType = TypePermanent
	}

	return s.Initialize(ctx, InitializeRequest{
		EmployeeID:     employeeID,
		EmploymentType: employmentType,
		SchoolYear:     year,
	})
}

// ApplyLeaveUsage debits an approved leave against the ledger. Each leave
// is debited at most once; the applied marker on the leave row guards
// against re-approval replays.
func (s *service) ApplyLeaveUsage(ctx context.Context, leaveID string) error {
	if _, err := uuid.Parse(leaveID); err != nil {
		return leavecrediterrors.ErrLeaveNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("apply usage begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	leave, err := qtx.FindLeave(ctx, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leavecrediterrors.ErrLeaveNotFound
		}
		return err
	}
	if leave.CreditApplied {
		s.logger.Debug("leave usage already applied", zap.String("leave_id", leaveID))
		return nil
	}

	days := leave.DaysCount
	if days.IsZero() {
		// inclusive day count, derived when the request never carried one
		days = inclusiveDays(leave.StartDate, leave.EndDate)
	}
	year := leave.SchoolYear
	if year == "" {
		year = schoolyear.ForDate(leave.StartDate)
	}

	lc, err := qtx.FindByEmployeeAndYear(ctx, leave.EmployeeID, year)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		employmentType, terr := qtx.GetActiveContractType(ctx, leave.EmployeeID)
		if terr != nil {
			return terr
		}
		if employmentType == "" {
			employmentType = TypePermanent
		}
		employeeUUID, perr := uuid.Parse(leave.EmployeeID)
		if perr != nil {
			return leavecrediterrors.ErrInvalidEmployeeID
		}
		lc = &LeaveCredit{
			ID:             uuid.New(),
			EmployeeID:     employeeUUID,
			SchoolYear:     year,
			EmploymentType: employmentType,
			TotalCredits:   Allocation(employmentType),
		}
		if cerr := qtx.Create(ctx, lc); cerr != nil {
			return mapRepositoryError(cerr)
		}
	}

	lc.UsedCredits = lc.UsedCredits.Add(days)
	if err := qtx.Update(ctx, lc); err != nil {
		s.logger.Error("apply usage persist failed", zap.Error(err))
		return err
	}
	if err := qtx.MarkLeaveApplied(ctx, leaveID, days, year); err != nil {
		s.logger.Error("apply usage mark failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("apply usage commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("leave usage applied",
		zap.String("leave_id", leaveID),
		zap.String("employee_id", leave.EmployeeID),
		zap.String("school_year", year),
		zap.String("days", days.String()),
	)
	return nil
}

// Rollover opens the given school year for every eligible employee,
// closing out the year before it. Remaining credits carry over up to the
// cap; the rest is forfeited, with an equal capped slice recorded as
// monetizable on the closed year's row.
func (s *service) Rollover(ctx context.Context, newSchoolYear string) (RolloverResult, error) {
	prevYear, err := schoolyear.Previous(newSchoolYear)
	if err != nil {
		return RolloverResult{}, leavecrediterrors.ErrInvalidSchoolYear
	}

	eligible, err := s.repo.FindEligibleForRollover(ctx)
	if err != nil {
		s.logger.Error("rollover eligibility query failed", zap.Error(err))
		return RolloverResult{}, err
	}

	result := RolloverResult{
		Message:    "leave credits reset for school year " + newSchoolYear,
		SchoolYear: newSchoolYear,
		Details:    make([]RolloverDetail, 0, len(eligible)),
	}

	for _, emp := range eligible {
		detail, err := s.rolloverEmployee(ctx, emp, prevYear, newSchoolYear)
		if err != nil {
			s.logger.Warn("rollover skipped employee",
				zap.String("employee_id", emp.EmployeeID),
				zap.Error(err),
			)
			detail.EmployeeID = emp.EmployeeID
			detail.EmploymentType = emp.EmploymentType
			detail.Error = err.Error()
			result.Details = append(result.Details, detail)
			continue
		}
		result.EmployeesProcessed++
		result.Details = append(result.Details, detail)
	}

	s.logger.Info("leave credit rollover finished",
		zap.String("from", prevYear),
		zap.String("to", newSchoolYear),
		zap.Int("employees_processed", result.EmployeesProcessed),
	)
	return result, nil
}

// rolloverEmployee runs one employee's year close in its own transaction so
// one bad row cannot poison the whole batch.
func (s *service) rolloverEmployee(ctx context.Context, emp EligibleEmployee, fromYear, nextYear string) (RolloverDetail, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RolloverDetail{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	var remaining decimal.Decimal
	prev, err := qtx.FindByEmployeeAndYear(ctx, emp.EmployeeID, fromYear)
	switch {
	case err == nil:
		remaining = prev.Remaining()
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// no ledger last year; the new year starts clean
		remaining = decimal.Zero
		prev = nil
	default:
		return RolloverDetail{}, err
	}

	carried := decimal.Min(remaining, carryOverCap)
	forfeited := decimal.Max(decimal.Zero, remaining.Sub(carryOverCap))
	monetizable := decimal.Min(remaining, carryOverCap)

	if prev != nil {
		prev.MonetizableCredits = monetizable
		prev.ForfeitedCredits = forfeited
		if err := qtx.Update(ctx, prev); err != nil {
			return RolloverDetail{}, err
		}
	}

	if _, err := qtx.FindByEmployeeAndYear(ctx, emp.EmployeeID, nextYear); err == nil {
		// already rolled over; re-running the reset must not double-credit
		if cerr := tx.Commit(); cerr != nil {
			return RolloverDetail{}, cerr
		}
		return RolloverDetail{
			EmployeeID:         emp.EmployeeID,
			EmploymentType:     emp.EmploymentType,
			PreviousRemaining:  remaining,
			CarriedOverCredits: carried,
			ForfeitedCredits:   forfeited,
			MonetizableCredits: monetizable,
		}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return RolloverDetail{}, err
	}

	employeeUUID, err := uuid.Parse(emp.EmployeeID)
	if err != nil {
		return RolloverDetail{}, leavecrediterrors.ErrInvalidEmployeeID
	}
	next := &LeaveCredit{
		ID:                 uuid.New(),
		EmployeeID:         employeeUUID,
		SchoolYear:         nextYear,
		EmploymentType:     emp.EmploymentType,
		TotalCredits:       Allocation(emp.EmploymentType),
		CarriedOverCredits: carried,
	}
	if err := qtx.Create(ctx, next); err != nil {
		return RolloverDetail{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return RolloverDetail{}, err
	}

	return RolloverDetail{
		EmployeeID:         emp.EmployeeID,
		EmploymentType:     emp.EmploymentType,
		PreviousRemaining:  remaining,
		CarriedOverCredits: carried,
		ForfeitedCredits:   forfeited,
		MonetizableCredits: monetizable,
	}, nil
}

// ChangeEmploymentType re-bases the current year's allocation on the new
// type. Used and carried-over credits survive the change.
func (s *service) ChangeEmploymentType(ctx context.Context, employeeID string, req ChangeEmploymentTypeRequest) (LeaveCreditResponse, error) {
	year := req.SchoolYear
	if year == "" {
		year = schoolyear.Current()
	}
	if _, err := schoolyear.Parse(year); err != nil {
		return LeaveCreditResponse{}, leavecrediterrors.ErrInvalidSchoolYear
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return LeaveCreditResponse{}, leavecrediterrors.ErrInvalidEmployeeID
	}

	lc, err := s.repo.FindByEmployeeAndYear(ctx, employeeID, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.Initialize(ctx, InitializeRequest{
				EmployeeID:     employeeID,
				EmploymentType: req.EmploymentType,
				SchoolYear:     year,
			})
		}
		return LeaveCreditResponse{}, err
	}

	lc.EmploymentType = req.EmploymentType
	lc.TotalCredits = Allocation(req.EmploymentType)
	if err := s.repo.Update(ctx, lc); err != nil {
		s.logger.Error("change employment type persist failed", zap.Error(err))
		return LeaveCreditResponse{}, err
	}

	s.logger.Info("employment type changed",
		zap.String("employee_id", employeeID),
		zap.String("school_year", year),
		zap.String("employment_type", req.EmploymentType),
	)
	return mapToResponse(*lc), nil
}

func (s *service) SummaryByType(ctx context.Context, schoolYear string) ([]TypeSummary, error) {
	year := schoolYear
	if year == "" {
		year = schoolyear.Current()
	}
	if _, err := schoolyear.Parse(year); err != nil {
		return nil, leavecrediterrors.ErrInvalidSchoolYear
	}
	return s.repo.SummaryByType(ctx, year)
}

// inclusiveDays counts calendar days between two dates, both ends
// included. The bounds are pinned to UTC midnight first so the division
// never sees a DST-shortened day.
func inclusiveDays(start, end time.Time) decimal.Decimal {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return decimal.NewFromInt(int64(e.Sub(s).Hours()/24) + 1)
}

func mapToResponse(lc LeaveCredit) LeaveCreditResponse {
	return LeaveCreditResponse{
		EmployeeID:         lc.EmployeeID.String(),
		SchoolYear:         lc.SchoolYear,
		EmploymentType:     lc.EmploymentType,
		TotalCredits:       lc.TotalCredits,
		UsedCredits:        lc.UsedCredits,
		RemainingCredits:   lc.Remaining(),
		CarriedOverCredits: lc.CarriedOverCredits,
		MonetizableCredits: lc.MonetizableCredits,
		ForfeitedCredits:   lc.ForfeitedCredits,
	}
}
