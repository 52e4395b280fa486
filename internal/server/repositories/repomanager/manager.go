// Package repomanager vends repositories bound to a database handle and
// owns schema migrations and transactions.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/placeholder/internal/dbx"
	"github.com/dmitrijs2005/placeholder/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	// DB is the non-transactional handle for single statements.
	DB() dbx.DBTX
	// WithTx runs fn in one transaction; repositories built from the
	// supplied handle take part in it.
	WithTx(ctx context.Context, fn dbx.TxFunc) error
	Users(db dbx.DBTX) users.Repository
	Close() error
}
