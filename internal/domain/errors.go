package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrBranchNotFound    = errors.New("sucursal no encontrada")
	ErrProductNotFound   = errors.New("producto no encontrado")
	ErrCategoryNotFound  = errors.New("categoría no encontrada")
	ErrOrderNotFound     = errors.New("orden no encontrada")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidTransition = errors.New("transición de estado inválida")
)

// ValidationError describe un error de validación con detalle a nivel de campo.
// errors.Is(err, ErrInvalidInput) retorna true para que los handlers lo mapeen a 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validación: %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// Validation construye un ValidationError para el campo indicado.
func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// InsufficientStockError indica qué producto/sucursal quedó sin stock suficiente,
// con cantidad solicitada vs disponible. errors.Is(err, ErrInsufficientStock) retorna true.
type InsufficientStockError struct {
	ProductID string
	BranchID  string
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s en sucursal %s: solicitado %d, disponible %d",
		e.ProductID, e.BranchID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }
