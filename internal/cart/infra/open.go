// Package infra picks the durable store the cart is persisted to.
package infra

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dwikikusuma/gomarketplace/internal/cart/app"
	"github.com/dwikikusuma/gomarketplace/internal/cart/infra/bunt"
	"github.com/dwikikusuma/gomarketplace/internal/cart/infra/memory"
	"github.com/dwikikusuma/gomarketplace/internal/cart/infra/redis"
	"github.com/dwikikusuma/gomarketplace/internal/cart/infra/traced"
	"github.com/dwikikusuma/gomarketplace/pkg/config"
)

type Store interface {
	app.KV
	app.Pinger
}

// Open returns the configured backend wrapped with tracing. Close releases
// the underlying connection or file.
func Open(ctx context.Context, cfg config.Store, log *slog.Logger) (Store, io.Closer, error) {
	var (
		kv     app.KV
		closer io.Closer
	)

	switch cfg.Backend {
	case config.StoreBunt, "":
		s, err := bunt.Open(cfg.BuntPath)
		if err != nil {
			return nil, nil, err
		}
		kv, closer = s, s
	case config.StoreRedis:
		s, err := redis.NewStore(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		kv, closer = s, s
	case config.StoreMemory:
		s := memory.NewStore()
		kv, closer = s, s
	default:
		return nil, nil, fmt.Errorf("unknown cart store backend %q", cfg.Backend)
	}

	backend := cfg.Backend
	if backend == "" {
		backend = config.StoreBunt
	}
	return traced.Wrap(kv, backend, nil, log), closer, nil
}
