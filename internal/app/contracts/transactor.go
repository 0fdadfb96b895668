package contracts

import "context"

// Transactor runs fn inside a single transaction. Repository calls made with
// the ctx handed to fn participate in it; if fn returns an error nothing it
// wrote is visible afterwards.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
