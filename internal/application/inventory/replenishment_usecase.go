package inventory

import (
	"context"
	"sort"

	"github.com/joachez17/bodega-api/internal/application/dto"
	"github.com/joachez17/bodega-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición: productos en o bajo su stock mínimo.
type ReplenishmentUseCase struct {
	productRepo repository.ProductRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(productRepo repository.ProductRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{productRepo: productRepo}
}

// GenerateReplenishmentList devuelve los productos con MinimumStock > 0 y Stock <= MinimumStock,
// con la cantidad sugerida para llegar a 1.5 veces el mínimo. Orden: mayor déficit primero.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	products, err := uc.productRepo.ListBelowMinimum(ctx)
	if err != nil {
		return nil, err
	}
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(products))
	for _, p := range products {
		if !p.BelowMinimum() {
			continue
		}
		ideal := (p.MinimumStock*3 + 1) / 2 // ceil(min * 1.5)
		suggested := ideal - p.Stock
		if suggested < 0 {
			suggested = 0
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductCode:       p.Code,
			ProductName:       p.Name,
			CurrentStock:      p.Stock,
			MinimumStock:      p.MinimumStock,
			IdealStock:        ideal,
			SuggestedOrderQty: suggested,
			Deficit:           p.MinimumStock - p.Stock,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.Deficit != b.Deficit {
			return a.Deficit > b.Deficit
		}
		// Tiebreak: menos stock primero, luego código
		if a.CurrentStock != b.CurrentStock {
			return a.CurrentStock < b.CurrentStock
		}
		return a.ProductCode < b.ProductCode
	})

	// 1 = más urgente
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
