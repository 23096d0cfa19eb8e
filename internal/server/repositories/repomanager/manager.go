// Package repomanager provides a factory for repositories bound to a shared
// database handle or transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/spendtrack/spendtrack/internal/dbx"
	"github.com/spendtrack/spendtrack/internal/server/repositories/expenses"
	"github.com/spendtrack/spendtrack/internal/server/repositories/refreshtokens"
	"github.com/spendtrack/spendtrack/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to the given DBTX. Passing a
// transaction handle binds all returned repositories to that transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Expenses(db dbx.DBTX) expenses.Repository
}
