package app

import (
	"context"
)

// KV is the durable key-value store the cart is written to.
// Get reports ok=false when the key has never been set.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}
