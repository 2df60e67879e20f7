package contract_test

import (
	"context"
	"testing"

	"school-hris/internal/contract"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// The single-active-contract invariant depends on the supersede update and
// the insert committing together, so statements issued through WithTx must
// run on the service's transaction, not on the pool.
func TestContractRepository_WithTx(t *testing.T) {
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

	t.Run("success update runs on the transaction connection", func(t *testing.T) {
		txMock.ExpectExec(`UPDATE "contracts" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := contract.NewRepository(gormDB).WithTx(tx)
		err := repo.TerminateActiveByEmployee(ctx, uuid.New().String(), "Contract renewed")

		// the pool mock has no expectations, so a statement leaking onto
		// the pool would surface here as an error
		assert.NoError(t, err)
		assert.NoError(t, txMock.ExpectationsWereMet())
		assert.NoError(t, poolMock.ExpectationsWereMet())
	})

	t.Run("success base repository keeps the pool", func(t *testing.T) {
		// without a bound tx, gorm wraps the write in its own transaction
		poolMock.ExpectBegin()
		poolMock.ExpectExec(`UPDATE "contracts" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		poolMock.ExpectCommit()

		repo := contract.NewRepository(gormDB)
		err := repo.TerminateActiveByEmployee(ctx, uuid.New().String(), "New contract created")

		assert.NoError(t, err)
		assert.NoError(t, poolMock.ExpectationsWereMet())
	})
}
