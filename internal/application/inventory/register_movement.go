package inventory

import (
	"context"

	"github.com/joachez17/bodega-api/internal/application/dto"
	"github.com/joachez17/bodega-api/internal/domain/entity"
)

// SubmitReceptionFromRequest adapta el request HTTP al caso de uso SubmitReception.
func (uc *MovementUseCase) SubmitReceptionFromRequest(ctx context.Context, actorID string, in dto.RegisterReceptionRequest) (*dto.MovementResponse, error) {
	m, err := uc.SubmitReception(ctx, ReceptionInput{
		SupplierID:  in.SupplierID,
		DocumentRef: in.DocumentRef,
		ActorID:     actorID,
		Lines:       toLineInputs(in.Lines),
	})
	if err != nil {
		return nil, err
	}
	return ToMovementResponse(m), nil
}

// SubmitDispatchFromRequest adapta el request HTTP al caso de uso SubmitDispatch.
func (uc *MovementUseCase) SubmitDispatchFromRequest(ctx context.Context, actorID string, in dto.RegisterDispatchRequest) (*dto.MovementResponse, error) {
	m, err := uc.SubmitDispatch(ctx, DispatchInput{
		RequesterName: in.RequesterName,
		AreaID:        in.AreaID,
		Reason:        in.Reason,
		ActorID:       actorID,
		Lines:         toLineInputs(in.Lines),
	})
	if err != nil {
		return nil, err
	}
	return ToMovementResponse(m), nil
}

func toLineInputs(lines []dto.MovementLineRequest) []LineInput {
	out := make([]LineInput, 0, len(lines))
	for _, l := range lines {
		out = append(out, LineInput{ProductCode: l.ProductCode, Quantity: l.Quantity})
	}
	return out
}

// ToMovementResponse convierte una cabecera con líneas a su DTO.
func ToMovementResponse(m *entity.Movement) *dto.MovementResponse {
	lines := make([]dto.MovementLineResponse, 0, len(m.Lines))
	for _, l := range m.Lines {
		lines = append(lines, dto.MovementLineResponse{Position: l.Position, ProductCode: l.ProductCode, Quantity: l.Quantity})
	}
	return &dto.MovementResponse{
		ID:            m.ID,
		Kind:          string(m.Kind),
		SupplierID:    m.SupplierID,
		DocumentRef:   m.DocumentRef,
		RequesterName: m.RequesterName,
		AreaID:        m.AreaID,
		Reason:        m.Reason,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
		Lines:         lines,
	}
}

// ToKardexResponse convierte el historial de un producto a su DTO.
func ToKardexResponse(p *entity.Product, entries []*entity.LedgerEntry) *dto.KardexResponse {
	out := &dto.KardexResponse{
		ProductCode:  p.Code,
		ProductName:  p.Name,
		CurrentStock: p.Stock,
		Entries:      make([]dto.LedgerEntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		out.Entries = append(out.Entries, dto.LedgerEntryResponse{
			Kind:        string(e.Kind),
			Quantity:    e.Quantity,
			StockBefore: e.StockBefore,
			StockAfter:  e.StockAfter,
			Reference:   e.Reference,
			CreatedAt:   e.CreatedAt,
		})
	}
	return out
}
