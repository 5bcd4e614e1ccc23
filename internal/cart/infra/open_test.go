package infra

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dwikikusuma/gomarketplace/pkg/config"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		s, closer, err := Open(ctx, config.Store{Backend: config.StoreMemory}, nil)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		defer closer.Close()
		if err := s.Set(ctx, "k", "v"); err != nil {
			t.Fatalf("Set: %v", err)
		}
		if err := s.Ping(ctx); err != nil {
			t.Fatalf("Ping: %v", err)
		}
	})

	t.Run("bunt", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cart.db")
		s, closer, err := Open(ctx, config.Store{Backend: config.StoreBunt, BuntPath: path}, nil)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		defer closer.Close()
		if err := s.Set(ctx, "k", "v"); err != nil {
			t.Fatalf("Set: %v", err)
		}
	})

	t.Run("unknown -> error", func(t *testing.T) {
		if _, _, err := Open(ctx, config.Store{Backend: "etcd"}, nil); err == nil {
			t.Fatalf("expected error")
		}
	})
}
