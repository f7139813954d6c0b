package entity

import "github.com/shopspring/decimal"

// OrderItem representa una línea de una orden. Price captura el precio unitario
// al momento de la venta (independiente de cambios posteriores del producto).
// Se crea solo junto con la orden y no se modifica después.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int64           // >= 1
	Price     decimal.Decimal // precio unitario capturado
}
