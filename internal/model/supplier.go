package model

import "time"

// Supplier is a product source. Products reference suppliers weakly:
// deleting a supplier leaves its products untouched.
type Supplier struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	ContactEmail string    `json:"contactEmail" db:"contact_email"`
	ContactPhone string    `json:"contactPhone" db:"contact_phone"`
	Address      string    `json:"address" db:"address"`
	Rating       int       `json:"rating" db:"rating"`
	LastSupplied time.Time `json:"lastSupplied" db:"last_supplied"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// DefaultSupplierRating applies when a supplier is created without a rating.
const DefaultSupplierRating = 3
