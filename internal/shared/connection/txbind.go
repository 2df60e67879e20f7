package connection

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// BindTx returns a gorm handle whose statements execute on the caller's
// open transaction instead of the pool. *sql.Tx satisfies gorm's ConnPool,
// and because it cannot begin a nested transaction gorm skips its own
// per-statement wrapping. The Context forces a statement clone so the
// parent handle keeps its pool.
func BindTx(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	sess := db.Session(&gorm.Session{NewDB: true, Context: context.Background()})
	sess.Statement.ConnPool = tx
	return sess
}
