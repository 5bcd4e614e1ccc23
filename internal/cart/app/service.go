package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/dwikikusuma/gomarketplace/internal/cart/domain"
)

const DefaultStorageKey = "@GoMarketplace"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrCorruptCart  = errors.New("corrupt persisted cart")
)

// Service owns the cart for the lifetime of the process. Every mutation
// runs read-modify-persist under mu, and the in-memory cart only moves
// forward once the durable write has succeeded.
type Service struct {
	kv  KV
	key string
	log *slog.Logger

	mu   sync.Mutex
	cart domain.Cart
}

func NewService(kv KV, key string, log *slog.Logger) *Service {
	if strings.TrimSpace(key) == "" {
		key = DefaultStorageKey
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		kv:   kv,
		key:  key,
		log:  log.With(slog.String("component", "cart")),
		cart: domain.Cart{},
	}
}

func (s *Service) Key() string { return s.key }

// Load replaces the in-memory cart with the persisted one. A missing key
// leaves the cart as it is.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}
	if !ok {
		s.log.Debug("no persisted cart", slog.String("key", s.key))
		return nil
	}

	c, err := decodeCart(raw)
	if err != nil {
		s.log.Error("persisted cart is unreadable", slog.String("key", s.key), slog.Any("err", err))
		return fmt.Errorf("load cart: %w", err)
	}

	s.cart = c
	s.log.Debug("cart loaded", slog.Int("items", len(c)))
	return nil
}

func (s *Service) AddToCart(ctx context.Context, p domain.Product) error {
	// ids are matched verbatim everywhere; blank ones are rejected
	if strings.TrimSpace(p.ID) == "" || p.Price < 0 {
		return ErrInvalidInput
	}
	return s.mutate(ctx, "add", p.ID, func(c domain.Cart) domain.Cart {
		return c.Add(p)
	})
}

func (s *Service) Increment(ctx context.Context, id string) error {
	return s.mutate(ctx, "increment", id, func(c domain.Cart) domain.Cart {
		return c.Increment(id)
	})
}

func (s *Service) Decrement(ctx context.Context, id string) error {
	return s.mutate(ctx, "decrement", id, func(c domain.Cart) domain.Cart {
		return c.Decrement(id)
	})
}

// Products returns a copy of the cart in display order.
func (s *Service) Products() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

func (s *Service) Summary() domain.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Summarize(s.cart)
}

func (s *Service) mutate(ctx context.Context, op, id string, fn func(domain.Cart) domain.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := fn(s.cart)
	raw, err := encodeCart(next)
	if err != nil {
		return fmt.Errorf("%s %q: encode cart: %w", op, id, err)
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		s.log.Error("persist cart failed", slog.String("op", op), slog.String("id", id), slog.Any("err", err))
		return fmt.Errorf("%s %q: persist cart: %w", op, id, err)
	}

	s.cart = next
	s.log.Debug("cart updated", slog.String("op", op), slog.String("id", id), slog.Int("items", len(next)))
	return nil
}
