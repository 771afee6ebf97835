package entity

import "time"

// Part es un artículo del catálogo. Solo las partes Salable pueden venderse.
type Part struct {
	ID          string
	Name        string
	Description string
	IPN         string // número de parte interno
	Units       string
	Salable     bool
	Trackable   bool
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
