package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Tarjetas del panel de inicio de bodega: conteos, stock bajo y actividad reciente.
type DashboardSummaryDTO struct {
	ProductCount int `json:"product_count"`

	// Productos con alerta activa (mínimo > 0 y stock <= mínimo), los 5 con menos stock.
	LowStockCount int               `json:"low_stock_count"`
	LowStock      []LowStockItemDTO `json:"low_stock"`

	// Movimientos del día (00:00 – 23:59) y del mes en curso
	TodayReceptions int `json:"today_receptions"`
	TodayDispatches int `json:"today_dispatches"`
	MonthReceptions int `json:"month_receptions"`
	MonthDispatches int `json:"month_dispatches"`

	// Últimos 5 movimientos; respeta since/until si vienen en la query
	RecentMovements []MovementResponse `json:"recent_movements"`

	DateLabel string `json:"date_label"` // ej: "Octubre 2026"
}

// LowStockItemDTO producto en o bajo su mínimo para el widget del dashboard.
type LowStockItemDTO struct {
	ProductCode  string `json:"product_code"`
	ProductName  string `json:"product_name"`
	CurrentStock int    `json:"current_stock"`
	MinimumStock int    `json:"minimum_stock"`
}
