package shared

import "context"

// UnitOfWork executes a function atomically against the persistent store.
// Every write issued through the derived context commits together or not at
// all; returning an error from fn rolls the whole unit back.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
