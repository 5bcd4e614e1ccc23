package bunt

import (
	"context"
	"path/filepath"
	"testing"
)

func TestStoreInMemory(t *testing.T) {
	ctx := context.Background()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if _, ok, err := s.Get(ctx, "@GoMarketplace"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "@GoMarketplace", `[{"id":"p1"}]`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := s.Get(ctx, "@GoMarketplace")
	if err != nil || !ok || v != `[{"id":"p1"}]` {
		t.Fatalf("got (%q,%v,%v)", v, ok, err)
	}
	if err := s.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}

func TestStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cart.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Set(ctx, "@GoMarketplace", "[]"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	v, ok, err := reopened.Get(ctx, "@GoMarketplace")
	if err != nil || !ok || v != "[]" {
		t.Fatalf("got (%q,%v,%v)", v, ok, err)
	}
}

func TestStoreClosed(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_ = s.Close()

	if err := s.Ping(context.Background()); err == nil {
		t.Fatalf("expected error from closed store")
	}
}
