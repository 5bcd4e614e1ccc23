package domain

// Product is an add-to-cart candidate as it comes from the catalog.
type Product struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	ImageURL string  `json:"image_url"`
	Price    float64 `json:"price"`
}

type LineItem struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	ImageURL string  `json:"image_url"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Cart is an ordered sequence of line items, unique by ID.
// Insertion order is the display order.
type Cart []LineItem

func (c Cart) indexOf(id string) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}

func (c Cart) Find(id string) (LineItem, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c[i], true
	}
	return LineItem{}, false
}

// Clone returns a copy that shares no backing array with c.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// Add appends p with quantity 1, or bumps the quantity of the existing line.
func (c Cart) Add(p Product) Cart {
	out := c.Clone()
	if i := out.indexOf(p.ID); i >= 0 {
		out[i].Quantity++
		return out
	}
	return append(out, LineItem{
		ID:       p.ID,
		Title:    p.Title,
		ImageURL: p.ImageURL,
		Price:    p.Price,
		Quantity: 1,
	})
}

// Increment is a no-op when id is not in the cart.
func (c Cart) Increment(id string) Cart {
	out := c.Clone()
	if i := out.indexOf(id); i >= 0 {
		out[i].Quantity++
	}
	return out
}

// Decrement lowers the quantity of id and drops every line left at zero or below.
func (c Cart) Decrement(id string) Cart {
	out := make(Cart, 0, len(c))
	for _, item := range c {
		if item.ID == id {
			item.Quantity--
		}
		if item.Quantity > 0 {
			out = append(out, item)
		}
	}
	return out
}
