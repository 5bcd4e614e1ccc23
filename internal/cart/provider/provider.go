// Package provider scopes a cart to a context so consumers can reach it
// without a package-level singleton.
package provider

import (
	"context"
	"errors"

	"github.com/dwikikusuma/gomarketplace/internal/cart/domain"
)

var ErrNoProvider = errors.New("cart must be used within a cart provider")

// Cart is what consumers see. *app.Service satisfies it.
type Cart interface {
	Products() []domain.LineItem
	Summary() domain.Summary
	AddToCart(ctx context.Context, p domain.Product) error
	Increment(ctx context.Context, id string) error
	Decrement(ctx context.Context, id string) error
}

type ctxKey struct{}

func NewContext(ctx context.Context, c Cart) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

func From(ctx context.Context) (Cart, error) {
	if ctx == nil {
		return nil, ErrNoProvider
	}
	c, ok := ctx.Value(ctxKey{}).(Cart)
	if !ok || c == nil {
		return nil, ErrNoProvider
	}
	return c, nil
}
