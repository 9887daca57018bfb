package unitofwork

import "context"

// RepositoryFactory opens units of work bound to a request context.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
