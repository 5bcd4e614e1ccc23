package app

import (
	"encoding/json"
	"fmt"

	"github.com/dwikikusuma/gomarketplace/internal/cart/domain"
)

func encodeCart(c domain.Cart) (string, error) {
	if c == nil {
		c = domain.Cart{}
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeCart(raw string) (domain.Cart, error) {
	var c domain.Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCart, err)
	}
	if c == nil {
		// "null" decodes without error
		c = domain.Cart{}
	}
	return c, nil
}
