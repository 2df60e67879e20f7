package leavecredit_test

import (
	"context"
	"testing"

	"school-hris/internal/leavecredit"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// The credit_applied check-and-set is only atomic when the read and the
// flip share one transaction, so WithTx must move the statements off the
// pool and onto the caller's tx.
func TestLeaveCreditRepository_WithTx(t *testing.T) {
	ctx := context.Background()

	poolDB, poolMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { poolDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: poolDB}), &gorm.Config{})
	assert.NoError(t, err)

	txDB, txMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { txDB.Close() })

	txMock.ExpectBegin()
	tx, err := txDB.Begin()
	assert.NoError(t, err)

	t.Run("success applied marker flips on the transaction connection", func(t *testing.T) {
		txMock.ExpectExec(`UPDATE "leaves" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := leavecredit.NewRepository(gormDB).WithTx(tx)
		err := repo.MarkLeaveApplied(ctx, uuid.New().String(), decimal.NewFromInt(5), "2026-2027")

		// the pool mock has no expectations, so a statement leaking onto
		// the pool would surface here as an error
		assert.NoError(t, err)
		assert.NoError(t, txMock.ExpectationsWereMet())
		assert.NoError(t, poolMock.ExpectationsWereMet())
	})
}
