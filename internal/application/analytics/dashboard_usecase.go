// Package analytics contiene el resumen del panel de inicio de bodega.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/joachez17/bodega-api/internal/application/dto"
	"github.com/joachez17/bodega-api/internal/application/inventory"
	"github.com/joachez17/bodega-api/internal/domain/entity"
	"github.com/joachez17/bodega-api/internal/domain/repository"
)

const (
	dashboardLowStock = 5 // productos en el widget de stock bajo
	dashboardRecent   = 5 // movimientos en actividad reciente
)

// DashboardUseCase genera el resumen del día y del mes en curso.
// Solo lectura; no abre transacciones.
type DashboardUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	now          func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) *DashboardUseCase {
	return &DashboardUseCase{productRepo: productRepo, movementRepo: movementRepo, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO. since/until (opcionales) solo filtran la
// actividad reciente; los conteos de hoy y del mes siempre usan el calendario actual.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, since, until *time.Time) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	out := &dto.DashboardSummaryDTO{DateLabel: monthLabel(now)}
	var low []*entity.Product
	var recent []*entity.Movement

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := uc.productRepo.Count(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: productos: %w", err)
		}
		out.ProductCount = n
		return nil
	})
	g.Go(func() error {
		list, err := uc.productRepo.ListBelowMinimum(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: stock bajo: %w", err)
		}
		low = list
		return nil
	})
	counters := []struct {
		kind     entity.MovementKind
		from, to time.Time
		dst      *int
	}{
		{entity.MovementKindReception, todayStart, todayEnd, &out.TodayReceptions},
		{entity.MovementKindDispatch, todayStart, todayEnd, &out.TodayDispatches},
		{entity.MovementKindReception, monthStart, todayEnd, &out.MonthReceptions},
		{entity.MovementKindDispatch, monthStart, todayEnd, &out.MonthDispatches},
	}
	for _, c := range counters {
		g.Go(func() error {
			from, to := c.from, c.to
			_, total, err := uc.movementRepo.List(gctx, repository.MovementFilter{
				Kind: c.kind, Since: &from, Until: &to, Limit: 1,
			})
			if err != nil {
				return fmt.Errorf("dashboard: conteo de %s: %w", c.kind, err)
			}
			*c.dst = total
			return nil
		})
	}
	g.Go(func() error {
		list, _, err := uc.movementRepo.List(gctx, repository.MovementFilter{
			Since: since, Until: until, Limit: dashboardRecent,
		})
		if err != nil {
			return fmt.Errorf("dashboard: actividad reciente: %w", err)
		}
		recent = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.LowStockCount = len(low)
	sort.SliceStable(low, func(i, j int) bool { return low[i].Stock < low[j].Stock })
	if len(low) > dashboardLowStock {
		low = low[:dashboardLowStock]
	}
	out.LowStock = make([]dto.LowStockItemDTO, 0, len(low))
	for _, p := range low {
		out.LowStock = append(out.LowStock, dto.LowStockItemDTO{
			ProductCode:  p.Code,
			ProductName:  p.Name,
			CurrentStock: p.Stock,
			MinimumStock: p.MinimumStock,
		})
	}
	out.RecentMovements = make([]dto.MovementResponse, 0, len(recent))
	for _, m := range recent {
		out.RecentMovements = append(out.RecentMovements, *inventory.ToMovementResponse(m))
	}
	return out, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
