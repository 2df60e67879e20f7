package leavecredit

import (
	"context"
	"database/sql"
	"time"

	"school-hris/internal/shared/connection"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LeaveUsage is the slice of a leave row the ledger needs to debit usage.
type LeaveUsage struct {
	ID            string
	EmployeeID    string
	StartDate     time.Time
	EndDate       time.Time
	DaysCount     decimal.Decimal
	SchoolYear    string
	CreditApplied bool
}

// EligibleEmployee is one employee qualifying for the year rollover.
type EligibleEmployee struct {
	EmployeeID     string
	EmploymentType string
}

//go:generate mockgen -source=leavecredit_repo.go -destination=mock/leavecredit_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, lc *LeaveCredit) error
	Update(ctx context.Context, lc *LeaveCredit) error
	FindByEmployeeAndYear(ctx context.Context, employeeID, schoolYear string) (*LeaveCredit, error)
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	GetActiveContractType(ctx context.Context, employeeID string) (string, error)
	FindEligibleForRollover(ctx context.Context) ([]EligibleEmployee, error)
	SummaryByType(ctx context.Context, schoolYear string) ([]TypeSummary, error)
	FindLeave(ctx context.Context, leaveID string) (*LeaveUsage, error)
	MarkLeaveApplied(ctx context.Context, leaveID string, days decimal.Decimal, schoolYear string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds every statement onto the caller's transaction; the
// check-and-set on credit_applied is only atomic inside it.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.BindTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, lc *LeaveCredit) error {
	return r.db.WithContext(ctx).Create(lc).Error
}

func (r *repository) Update(ctx context.Context, lc *LeaveCredit) error {
	return r.db.WithContext(ctx).Save(lc).Error
}

func (r *repository) FindByEmployeeAndYear(ctx context.Context, employeeID, schoolYear string) (*LeaveCredit, error) {
	var lc LeaveCredit
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("school_year = ?", schoolYear).
		First(&lc).Error
	return &lc, err
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

// GetActiveContractType returns the contract type backing the employee's
// active contract, or "" when none exists.
func (r *repository) GetActiveContractType(ctx context.Context, employeeID string) (string, error) {
	var contractType string
	err := r.db.WithContext(ctx).
		Table("contracts").
		Select("contract_type").
		Where("employee_id = ?", employeeID).
		Where("status = ?", "Active").
		Where("deleted_at IS NULL").
		Limit(1).
		Scan(&contractType).Error
	return contractType, err
}

// FindEligibleForRollover lists employees with an active-family status and
// an active contract, together with that contract's type.
func (r *repository) FindEligibleForRollover(ctx context.Context) ([]EligibleEmployee, error) {
	var eligible []EligibleEmployee
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("employees.id::text AS employee_id, contracts.contract_type AS employment_type").
		Joins("JOIN contracts ON contracts.employee_id = employees.id AND contracts.status = 'Active' AND contracts.deleted_at IS NULL").
		Where("LOWER(employees.status) IN ?", []string{"active", "probationary"}).
		Where("employees.deleted_at IS NULL").
		Scan(&eligible).Error
	return eligible, err
}

func (r *repository) SummaryByType(ctx context.Context, schoolYear string) ([]TypeSummary, error) {
	var summaries []TypeSummary
	err := r.db.WithContext(ctx).
		Model(&LeaveCredit{}).
		Select("employment_type, COUNT(*) AS employees, SUM(total_credits) AS total_credits, SUM(used_credits) AS used_credits").
		Where("school_year = ?", schoolYear).
		Group("employment_type").
		Order("employment_type ASC").
		Scan(&summaries).Error
	return summaries, err
}

func (r *repository) FindLeave(ctx context.Context, leaveID string) (*LeaveUsage, error) {
	var usage LeaveUsage
	err := r.db.WithContext(ctx).
		Table("leaves").
		Select("id::text, employee_id::text, start_date, end_date, COALESCE(days_count, 0) AS days_count, COALESCE(school_year, '') AS school_year, credit_applied").
		Where("id = ?", leaveID).
		First(&usage).Error
	return &usage, err
}

// MarkLeaveApplied back-fills the derived leave fields and flips the
// applied marker that keeps usage debits idempotent.
func (r *repository) MarkLeaveApplied(ctx context.Context, leaveID string, days decimal.Decimal, schoolYear string) error {
	return r.db.WithContext(ctx).
		Table("leaves").
		Where("id = ?", leaveID).
		Updates(map[string]any{
			"days_count":     days,
			"school_year":    schoolYear,
			"credit_applied": true,
		}).Error
}
