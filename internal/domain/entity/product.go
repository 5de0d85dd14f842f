package entity

import "time"

// Product representa un producto de la bodega, identificado por su código.
// Stock solo cambia a través del motor de movimientos; nunca baja de cero.
// MinimumStock = 0 desactiva las alertas de stock bajo.
type Product struct {
	Code         string
	Name         string
	Stock        int
	MinimumStock int
	RackCode     *string
	SupplierID   *string
	Category     string
	Status       string
	UnitMeasure  string
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BelowMinimum indica si el producto está en o bajo su mínimo (con alertas activas).
func (p *Product) BelowMinimum() bool {
	return p.MinimumStock > 0 && p.Stock <= p.MinimumStock
}

func (p *Product) String() string {
	return p.Name + " (" + p.Code + ")"
}
