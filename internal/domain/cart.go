package domain

// CartLine is one product's quantity-bearing entry in the shopping cart.
type CartLine struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Image       string  `json:"image,omitempty"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
	Color       string  `json:"color,omitempty"`
}

// LineTotal returns price multiplied by quantity. Missing price or a
// non-positive quantity contributes zero rather than an error.
func (l CartLine) LineTotal() float64 {
	if l.Price <= 0 || l.Quantity <= 0 {
		return 0
	}
	return l.Price * float64(l.Quantity)
}

// Cart is the ordered collection of cart lines. At most one line exists per
// product ID; a line's quantity is always >= 1 while it is in the cart.
type Cart []CartLine

// Total sums price*quantity over all lines. The result does not depend on
// line order.
func (c Cart) Total() float64 {
	var total float64
	for _, line := range c {
		total += line.LineTotal()
	}
	return total
}

// FindLine returns the index of the line with the given product ID, or -1.
func (c Cart) FindLine(id string) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}

// ItemCount returns the total number of units across all lines.
func (c Cart) ItemCount() int {
	var count int
	for _, line := range c {
		count += line.Quantity
	}
	return count
}
