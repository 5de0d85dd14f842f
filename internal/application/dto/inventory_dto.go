package dto

import "time"

// MovementLineRequest línea de producto en una recepción o despacho.
type MovementLineRequest struct {
	ProductCode string `json:"product_code" validate:"required,max=50"`
	Quantity    int    `json:"quantity"`
}

// RegisterReceptionRequest body para POST /api/inventory/receptions.
type RegisterReceptionRequest struct {
	SupplierID  string                `json:"supplier_id" validate:"required"`
	DocumentRef string                `json:"document_ref" validate:"max=100"`
	Lines       []MovementLineRequest `json:"lines" validate:"dive"`
}

// RegisterDispatchRequest body para POST /api/inventory/dispatches.
type RegisterDispatchRequest struct {
	RequesterName string                `json:"requester_name" validate:"required,max=150"`
	AreaID        string                `json:"area_id"`
	Reason        string                `json:"reason" validate:"max=255"`
	Lines         []MovementLineRequest `json:"lines" validate:"dive"`
}

// MovementLineResponse salida de una línea.
type MovementLineResponse struct {
	Position    int    `json:"position"`
	ProductCode string `json:"product_code"`
	Quantity    int    `json:"quantity"`
}

// MovementResponse salida de una cabecera de recepción o despacho.
type MovementResponse struct {
	ID            string                 `json:"id"`
	Kind          string                 `json:"kind"`
	SupplierID    string                 `json:"supplier_id,omitempty"`
	DocumentRef   string                 `json:"document_ref,omitempty"`
	RequesterName string                 `json:"requester_name,omitempty"`
	AreaID        string                 `json:"area_id,omitempty"`
	Reason        string                 `json:"reason,omitempty"`
	CreatedBy     string                 `json:"created_by"`
	CreatedAt     time.Time              `json:"created_at"`
	Lines         []MovementLineResponse `json:"lines"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// LedgerEntryResponse fila del Kardex.
type LedgerEntryResponse struct {
	Kind        string    `json:"kind"`
	Quantity    int       `json:"quantity"`
	StockBefore int       `json:"stock_before"`
	StockAfter  int       `json:"stock_after"`
	Reference   string    `json:"reference"`
	CreatedAt   time.Time `json:"created_at"`
}

// KardexResponse historial de un producto.
type KardexResponse struct {
	ProductCode  string                `json:"product_code"`
	ProductName  string                `json:"product_name"`
	CurrentStock int                   `json:"current_stock"`
	Entries      []LedgerEntryResponse `json:"entries"`
}

// ReplenishmentSuggestionDTO representa una sugerencia de reposición para un producto
// que se encuentra en o por debajo de su stock mínimo.
type ReplenishmentSuggestionDTO struct {
	ProductCode       string `json:"product_code"`
	ProductName       string `json:"product_name"`
	CurrentStock      int    `json:"current_stock"`
	MinimumStock      int    `json:"minimum_stock"`
	IdealStock        int    `json:"ideal_stock"`         // ceil(MinimumStock * 1.5)
	SuggestedOrderQty int    `json:"suggested_order_qty"` // IdealStock - CurrentStock
	Deficit           int    `json:"deficit"`             // MinimumStock - CurrentStock
	Priority          int    `json:"priority"`            // 1 = más urgente
}
