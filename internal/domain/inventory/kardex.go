package inventory

import (
	"time"

	"github.com/joachez17/bodega-api/internal/domain"
	"github.com/joachez17/bodega-api/internal/domain/entity"
)

// NextEntry calcula la siguiente fila del Kardex para un producto (servicio de dominio).
// StockAfter = StockBefore + delta; falla con *domain.InsufficientStockError si el resultado es negativo.
// No modifica product: la persistencia la hace quien llama.
func NextEntry(product *entity.Product, delta int, kind entity.MovementKind, reference string, at time.Time) (*entity.LedgerEntry, error) {
	after := product.Stock + delta
	if after < 0 {
		return nil, &domain.InsufficientStockError{
			ProductCode: product.Code,
			Requested:   -delta,
			Available:   product.Stock,
		}
	}
	return &entity.LedgerEntry{
		ProductCode: product.Code,
		Kind:        kind,
		Quantity:    delta,
		StockBefore: product.Stock,
		StockAfter:  after,
		Reference:   reference,
		CreatedAt:   at,
	}, nil
}

// VerifyChain comprueba la continuidad del Kardex de un producto: cada StockBefore debe ser
// el StockAfter de la fila anterior, y la última fila debe coincidir con el stock actual.
// entries debe venir en orden cronológico ascendente.
func VerifyChain(entries []*entity.LedgerEntry, currentStock int) bool {
	for i := 1; i < len(entries); i++ {
		if entries[i].StockBefore != entries[i-1].StockAfter {
			return false
		}
	}
	if len(entries) == 0 {
		return true
	}
	for _, e := range entries {
		if e.StockBefore+e.Quantity != e.StockAfter {
			return false
		}
	}
	return entries[len(entries)-1].StockAfter == currentStock
}
