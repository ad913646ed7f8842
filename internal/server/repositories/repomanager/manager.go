// Package repomanager wires the database handle, repositories, and
// migrations together behind a single interface.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/tasklist/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/tasklist/internal/server/repositories/users"
)

type RepositoryManager interface {
	Conn() *sql.DB
	Users() users.Repository
	Tasks() tasks.Repository
	RunMigrations(ctx context.Context) error
	Close() error
}
