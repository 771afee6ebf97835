package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)

// ValidationError error de validación recuperable que se reporta al llamador.
// Siempre satisface errors.Is(err, ErrInvalidInput).
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError construye un ValidationError para el campo indicado.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is permite comparar contra ErrInvalidInput y contra otro ValidationError con el mismo mensaje.
func (e *ValidationError) Is(target error) bool {
	if target == ErrInvalidInput {
		return true
	}
	var other *ValidationError
	if errors.As(target, &other) {
		return other.Field == e.Field && other.Message == e.Message
	}
	return false
}

// Errores de validación del libro de asignaciones de pedidos.
var (
	ErrOrderNotPending      = NewValidationError("status", "el pedido no está pendiente")
	ErrQuantityNotPositive  = NewValidationError("quantity", "la cantidad debe ser mayor que cero")
	ErrQuantityExceedsStock = NewValidationError("quantity", "la cantidad supera la existencia del lote")
	ErrPartMismatch         = NewValidationError("item", "el lote no corresponde a la parte de la línea")
	ErrStockNotAvailable    = NewValidationError("item", "el lote no está disponible")
	ErrPartNotSalable       = NewValidationError("part", "la parte no es vendible")
	ErrNotCustomer          = NewValidationError("customer", "la empresa no está marcada como cliente")
)
