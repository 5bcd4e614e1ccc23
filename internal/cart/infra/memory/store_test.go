package memory

import (
	"context"
	"testing"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	t.Run("missing key -> not ok", func(t *testing.T) {
		_, ok, err := s.Get(ctx, "@GoMarketplace")
		if err != nil || ok {
			t.Fatalf("got ok=%v err=%v", ok, err)
		}
	})

	t.Run("set then get", func(t *testing.T) {
		if err := s.Set(ctx, "@GoMarketplace", "[]"); err != nil {
			t.Fatalf("Set: %v", err)
		}
		v, ok, err := s.Get(ctx, "@GoMarketplace")
		if err != nil || !ok || v != "[]" {
			t.Fatalf("got (%q,%v,%v)", v, ok, err)
		}
	})

	t.Run("cancelled ctx -> error", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if err := s.Set(cctx, "k", "v"); err == nil {
			t.Fatalf("expected error on cancelled context")
		}
	})
}
