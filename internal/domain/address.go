package domain

// Address is a delivery address entry. The ID is assigned by the caller as a
// millisecond timestamp string; uniqueness is not re-validated on insert.
type Address struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	IsDefault bool   `json:"isDefault"`
}

// DefaultAddress is seeded into an empty address book on first load so the
// checkout screen always has a deliverable address to show.
func DefaultAddress() Address {
	return Address{
		ID:        "1",
		Name:      "Chris Braun",
		Phone:     "+63(2)3735052",
		Address:   "11-A Miller Avenue, Barangay Bungad, Quezon City",
		IsDefault: true,
	}
}
