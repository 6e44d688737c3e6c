package domain

import "time"

// CartItem is a line in a shopping cart. Title, price and image are
// snapshotted from the product when the line is created, so later catalog
// edits never change what the customer already put in the cart.
type CartItem struct {
	ProductID  string `json:"product_id"`
	Title      string `json:"title"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"qty"`
	Image      string `json:"image,omitempty"`
}

// Cart is the shopping cart aggregate. Items are ordered most-recently-added
// first and keyed by product id: adding a product that is already present
// merges quantities instead of duplicating the line. Subtotal and ItemCount
// are always reductions over the current items, never stored.
type Cart struct {
	ID        string     `json:"id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// AddItem puts qty units of the product into the cart. Quantities below 1
// clamp to 1. A product already in the cart has its quantity increased; a new
// product is inserted at the front with a title/price/image snapshot taken
// now.
func (c *Cart) AddItem(p Product, qty int) {
	if qty < 1 {
		qty = 1
	}
	for i := range c.Items {
		if c.Items[i].ProductID == p.ID {
			c.Items[i].Quantity += qty
			return
		}
	}
	c.Items = append([]CartItem{{
		ProductID:  p.ID,
		Title:      p.Title,
		PriceCents: p.PriceCents,
		Quantity:   qty,
		Image:      p.PrimaryImage(),
	}}, c.Items...)
}

// RemoveItem deletes the line for the product. Removing a product that is
// not in the cart is a no-op.
func (c *Cart) RemoveItem(productID string) {
	out := c.Items[:0]
	for _, it := range c.Items {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}
	c.Items = out
}

// SetQuantity sets the line quantity for the product. Values below 1 clamp
// to 1; setting a quantity never removes a line. Unknown products are a
// no-op.
func (c *Cart) SetQuantity(productID string, qty int) {
	if qty < 1 {
		qty = 1
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = qty
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// Subtotal is the sum of price x quantity over all lines.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.PriceCents * int64(it.Quantity)
	}
	return total
}

// ItemCount is the sum of quantities over all lines.
func (c *Cart) ItemCount() int {
	var n int
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// Snapshot copies the current lines into order items detached from both the
// cart and the live catalog.
func (c *Cart) Snapshot() []OrderItem {
	items := make([]OrderItem, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, OrderItem{
			ProductID:  it.ProductID,
			Title:      it.Title,
			Quantity:   it.Quantity,
			PriceCents: it.PriceCents,
			Image:      it.Image,
		})
	}
	return items
}
