package entity

import "time"

// StockLocation ubicación física de existencias (jerárquica por ParentID).
type StockLocation struct {
	ID          string
	ParentID    string // vacío = raíz
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
