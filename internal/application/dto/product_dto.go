package dto

import "time"

// CreateProductRequest entrada para crear un producto. El stock inicial entra siempre por recepción.
type CreateProductRequest struct {
	Code         string  `json:"code" validate:"required,code,max=50"`
	Name         string  `json:"name" validate:"required,min=1,max=255"`
	MinimumStock int     `json:"minimum_stock" validate:"min=0"`
	RackCode     *string `json:"rack_code" validate:"omitempty,max=50"`
	SupplierID   *string `json:"supplier_id"`
	Category     string  `json:"category" validate:"max=100"`
	Status       string  `json:"status" validate:"max=100"`
	UnitMeasure  string  `json:"unit_measure" validate:"max=50"`
	Notes        string  `json:"notes"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Stock).
type UpdateProductRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=255"`
	MinimumStock *int    `json:"minimum_stock" validate:"omitempty,min=0"`
	RackCode     *string `json:"rack_code" validate:"omitempty,max=50"`
	SupplierID   *string `json:"supplier_id"`
	Category     *string `json:"category" validate:"omitempty,max=100"`
	Status       *string `json:"status" validate:"omitempty,max=100"`
	UnitMeasure  *string `json:"unit_measure" validate:"omitempty,max=50"`
	Notes        *string `json:"notes"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Stock        int       `json:"stock"`
	MinimumStock int       `json:"minimum_stock"`
	LowStock     bool      `json:"low_stock"`
	RackCode     *string   `json:"rack_code,omitempty"`
	SupplierID   *string   `json:"supplier_id,omitempty"`
	Category     string    `json:"category"`
	Status       string    `json:"status"`
	UnitMeasure  string    `json:"unit_measure"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
