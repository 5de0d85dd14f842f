package entity

import "time"

// LedgerEntry fila del Kardex: un cambio de stock de un producto. Solo se agregan, nunca se
// actualizan ni borran. StockAfter de una fila es el StockBefore de la siguiente del mismo producto.
type LedgerEntry struct {
	ID          string
	Seq         int64 // orden global de inserción; desempata filas con el mismo timestamp
	ProductCode string
	Kind        MovementKind
	Quantity    int // positivo entrada, negativo salida
	StockBefore int
	StockAfter  int
	Reference   string
	CreatedAt   time.Time
}
