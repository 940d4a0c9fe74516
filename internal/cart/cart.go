package cart

import "storefront-service/internal/models"

// Item is one cart line. Name, price and image are snapshotted when the line
// is first added; later catalog edits do not touch an existing line.
type Item struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	ImageURL  string  `json:"image_url,omitempty"`
	Qty       int     `json:"qty"`
}

// Cart holds the lines for one session on one tenant, in insertion order.
// It is a plain value; persistence lives in redisclient.
type Cart struct {
	TenantSlug string `json:"tenant_slug"`
	Items      []Item `json:"items"`
}

func New(tenantSlug string) *Cart {
	return &Cart{TenantSlug: tenantSlug}
}

// AddItem increments the line for the product by one, inserting a new line
// with a fresh snapshot if none exists. No stock check is performed.
func (c *Cart) AddItem(p *models.Product) {
	for i := range c.Items {
		if c.Items[i].ProductID == p.ID {
			c.Items[i].Qty++
			return
		}
	}
	c.Items = append(c.Items, Item{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		ImageURL:  p.ImageURL,
		Qty:       1,
	})
}

// UpdateQuantity sets the line quantity exactly. A quantity below 1 removes
// the line; a quantity of 0 is never stored.
func (c *Cart) UpdateQuantity(productID string, qty int) {
	if qty < 1 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Qty = qty
			return
		}
	}
}

// RemoveItem deletes the line regardless of quantity.
func (c *Cart) RemoveItem(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart. Safe to call on an already-empty cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// Total is the sum of price times quantity across all lines.
func (c *Cart) Total() float64 {
	var total float64
	for _, it := range c.Items {
		total += it.UnitPrice * float64(it.Qty)
	}
	return total
}

// ItemCount is the sum of quantities, used for the cart badge.
func (c *Cart) ItemCount() int {
	var count int
	for _, it := range c.Items {
		count += it.Qty
	}
	return count
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
