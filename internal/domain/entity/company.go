package entity

import "time"

// Company representa un cliente, proveedor o fabricante. El nombre es único.
type Company struct {
	ID             string
	Name           string
	Description    string
	Website        string
	Address        string
	Phone          string
	Email          string
	Contact        string
	Notes          string
	IsCustomer     bool
	IsSupplier     bool
	IsManufacturer bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
