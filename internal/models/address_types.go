package models

// Address is the model for the 'addresses' table.
// At most one address per user carries is_default; the handlers clear the
// flag on siblings before setting it, there is no DB constraint for it.
type Address struct {
	ID         int64  `json:"id" db:"id"`
	UserID     int64  `json:"userId" db:"user_id"`
	Name       string `json:"name" db:"name"`
	Street     string `json:"street" db:"street"`
	City       string `json:"city" db:"city"`
	State      string `json:"state" db:"state"`
	PostalCode string `json:"postalCode" db:"postal_code"`
	Country    string `json:"country" db:"country"`
	IsDefault  bool   `json:"isDefault" db:"is_default"`
}
