package domain

// Favorite is a product snapshot saved to the favorites list.
type Favorite struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
}

// Favorites is a set of product snapshots keyed by product ID.
type Favorites []Favorite

// Contains reports whether a favorite with the given product ID exists.
func (f Favorites) Contains(id string) bool {
	for i := range f {
		if f[i].ID == id {
			return true
		}
	}
	return false
}
