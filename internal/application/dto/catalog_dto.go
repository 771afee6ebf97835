package dto

import "time"

// CreatePartRequest entrada para crear una parte.
type CreatePartRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description"`
	IPN         string `json:"ipn"`
	Units       string `json:"units"`
	Salable     bool   `json:"salable"`
	Trackable   bool   `json:"trackable"`
}

// UpdatePartRequest entrada para actualizar una parte (campos opcionales).
type UpdatePartRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
	IPN         *string `json:"ipn"`
	Units       *string `json:"units"`
	Salable     *bool   `json:"salable"`
	Trackable   *bool   `json:"trackable"`
	Active      *bool   `json:"active"`
}

// PartResponse salida de una parte.
type PartResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IPN         string    `json:"ipn"`
	Units       string    `json:"units"`
	Salable     bool      `json:"salable"`
	Trackable   bool      `json:"trackable"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PartListResponse lista paginada de partes.
type PartListResponse struct {
	Items []PartResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// CreateCompanyRequest entrada para crear una empresa (cliente, proveedor o fabricante).
type CreateCompanyRequest struct {
	Name           string `json:"name" validate:"required,min=1,max=200"`
	Description    string `json:"description"`
	Website        string `json:"website"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Email          string `json:"email" validate:"omitempty,email"`
	Contact        string `json:"contact"`
	Notes          string `json:"notes"`
	IsCustomer     bool   `json:"is_customer"`
	IsSupplier     *bool  `json:"is_supplier"` // por defecto true
	IsManufacturer bool   `json:"is_manufacturer"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Website        string    `json:"website"`
	Address        string    `json:"address"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	Contact        string    `json:"contact"`
	Notes          string    `json:"notes"`
	IsCustomer     bool      `json:"is_customer"`
	IsSupplier     bool      `json:"is_supplier"`
	IsManufacturer bool      `json:"is_manufacturer"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ManufacturerMatchResponse candidatos sugeridos para un nombre de fabricante.
type ManufacturerMatchResponse struct {
	Name      string              `json:"name"`
	Threshold int                 `json:"threshold"`
	Exact     string              `json:"exact,omitempty"`
	Matches   []ManufacturerMatch `json:"matches"`
}

// ManufacturerMatch un candidato con su puntaje de similitud (0-100).
type ManufacturerMatch struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// CreateLocationRequest entrada para crear una ubicación de existencias.
type CreateLocationRequest struct {
	ParentID    string `json:"parent_id"`
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID          string    `json:"id"`
	ParentID    string    `json:"parent_id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// LocationListResponse lista paginada de ubicaciones.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
