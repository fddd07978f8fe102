package port

import "context"

// Transactor runs a function within a single database transaction. Repository
// calls made with the context passed to fn join that transaction, so a guard
// check and the write it protects commit or roll back as one unit.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
