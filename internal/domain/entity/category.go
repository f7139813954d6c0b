package entity

import "time"

// Category representa una categoría de productos. El nombre es único.
// No puede eliminarse mientras existan productos que la referencien.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
