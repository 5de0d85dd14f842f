package entity

import "time"

// StockAlert aviso de stock en o bajo el mínimo, generado tras confirmar un movimiento.
type StockAlert struct {
	ProductCode  string    `json:"product_code"`
	ProductName  string    `json:"product_name"`
	CurrentStock int       `json:"current_stock"`
	MinimumStock int       `json:"minimum_stock"`
	ActorID      string    `json:"actor_id,omitempty"`
	MovementID   string    `json:"movement_id"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// StockChange cambio neto de stock de un producto dentro de un movimiento confirmado.
// Product refleja el estado posterior al commit.
type StockChange struct {
	Product *Product
	Before  int
	After   int
}
