package app

import (
	"school-hris/internal/audit"
	"school-hris/internal/certificate"
	"school-hris/internal/contract"
	"school-hris/internal/department"
	"school-hris/internal/document"
	"school-hris/internal/employee"
	"school-hris/internal/leave"
	"school-hris/internal/leavecredit"
	"school-hris/internal/notification"
	"school-hris/internal/profilechange"

	"gorm.io/gorm"
)

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&employee.Employee{},
		&department.Department{},
		&department.Designation{},
		&contract.Contract{},
		&leave.Leave{},
		&leavecredit.LeaveCredit{},
		&document.Document{},
		&certificate.Certificate{},
		&profilechange.ProfileChangeRequest{},
		&notification.Notification{},
		&audit.AuditLog{},
	); err != nil {
		return err
	}

	// partial unique indexes and support tables gorm tags cannot express
	statements := []string{
		`CREATE TABLE IF NOT EXISTS counters (
			counter_type varchar(50) PRIMARY KEY,
			last_value bigint NOT NULL,
			updated_at timestamptz NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS outbox_events (
			id uuid PRIMARY KEY,
			request_id varchar(64),
			aggregate_type varchar(50) NOT NULL,
			aggregate_id varchar(64) NOT NULL,
			event_type varchar(64) NOT NULL,
			topic varchar(128) NOT NULL,
			payload jsonb NOT NULL,
			status varchar(16) NOT NULL DEFAULT 'pending',
			retry_count int NOT NULL DEFAULT 0,
			error_message text,
			next_retry_at timestamptz,
			created_at timestamptz NOT NULL DEFAULT now(),
			updated_at timestamptz NOT NULL DEFAULT now(),
			processed_at timestamptz
		)`,
		`CREATE INDEX IF NOT EXISTS idx_outbox_events_status_created
			ON outbox_events (status, created_at)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_contracts_employee_active
			ON contracts (employee_id) WHERE status = 'Active' AND deleted_at IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_profile_changes_employee_pending
			ON profile_change_requests (employee_id) WHERE status = 'pending' AND deleted_at IS NULL`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
