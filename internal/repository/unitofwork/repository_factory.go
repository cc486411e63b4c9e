package unitofwork

import "context"

type RepositoryFactory interface {
	// NewUnitOfWork fails with database.ErrUnavailable when the store
	// cannot be reached.
	NewUnitOfWork(ctx context.Context) (UnitOfWork, error)
}
