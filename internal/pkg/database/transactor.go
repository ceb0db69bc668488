package database

import "context"

// Transactor runs fn inside a single store transaction. Repositories called with the
// ctx handed to fn take part in that transaction; a non-nil return rolls it back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
