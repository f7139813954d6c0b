package entity

import "time"

// Branch representa una sucursal física que posee su propio stock y sus órdenes.
type Branch struct {
	ID            string
	Name          string
	Location      string
	ContactNumber string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
