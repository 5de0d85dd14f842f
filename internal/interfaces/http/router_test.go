package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joachez17/bodega-api/internal/application/analytics"
	"github.com/joachez17/bodega-api/internal/application/audit"
	"github.com/joachez17/bodega-api/internal/application/dto"
	"github.com/joachez17/bodega-api/internal/application/inventory"
	"github.com/joachez17/bodega-api/internal/application/notification"
	"github.com/joachez17/bodega-api/internal/application/usecase"
	"github.com/joachez17/bodega-api/internal/domain/entity"
	"github.com/joachez17/bodega-api/internal/infrastructure/memory"
	apphttp "github.com/joachez17/bodega-api/internal/interfaces/http"
	"github.com/joachez17/bodega-api/pkg/logger"
)

type recordedAlerts struct {
	mu     sync.Mutex
	alerts []entity.StockAlert
}

func (r *recordedAlerts) Send(_ context.Context, a entity.StockAlert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, a)
	return nil
}

func (r *recordedAlerts) all() []entity.StockAlert {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.StockAlert(nil), r.alerts...)
}

type apiFixture struct {
	app    *fiber.App
	alerts *recordedAlerts
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	store := memory.NewStore()
	log := logger.Nop()
	alerts := &recordedAlerts{}
	recorder := audit.NewRecorder(store.Audit(), log)

	movementUC := inventory.NewMovementUseCase(
		store, store.Products(), store.Movements(), store.Ledger(), store.Suppliers(), store.Areas(),
		notification.NewNotifier(alerts, log), recorder, log,
		inventory.MovementConfig{TxTimeout: 2 * time.Second},
	)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		MovementUC:      movementUC,
		ReplenishmentUC: inventory.NewReplenishmentUseCase(store.Products()),
		ProductUC:       usecase.NewProductUseCase(store.Products(), store.Ledger(), store.Racks(), store.Suppliers(), recorder),
		CatalogUC:       usecase.NewCatalogUseCase(store.Suppliers(), store.Areas(), store.Racks(), recorder),
		AuditRecorder:   recorder,
		DashboardUC:     analytics.NewDashboardUseCase(store.Products(), store.Movements()),
		JWTSecret:       testJWTSecret,
	})
	return &apiFixture{app: app, alerts: alerts}
}

func (f *apiFixture) call(t *testing.T, method, path, role string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw := new(bytes.Buffer)
	_, err = raw.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, raw.Bytes()
}

// seed crea un proveedor, un área y el producto P1 (mínimo 5) con stock 10.
func (f *apiFixture) seed(t *testing.T) (supplierID, areaID string) {
	t.Helper()
	resp, raw := f.call(t, http.MethodPost, "/api/suppliers", "admin", dto.SupplierRequest{Name: "Distribuidora Norte"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var s dto.SupplierResponse
	require.NoError(t, json.Unmarshal(raw, &s))

	resp, raw = f.call(t, http.MethodPost, "/api/areas", "admin", dto.AreaRequest{Name: "Cocina"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var a dto.AreaResponse
	require.NoError(t, json.Unmarshal(raw, &a))

	resp, raw = f.call(t, http.MethodPost, "/api/products", "bodeguero", dto.CreateProductRequest{Code: "P1", Name: "Harina", MinimumStock: 5})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = f.call(t, http.MethodPost, "/api/inventory/receptions", "bodeguero", dto.RegisterReceptionRequest{
		SupplierID:  s.ID,
		DocumentRef: "FAC-001",
		Lines:       []dto.MovementLineRequest{{ProductCode: "P1", Quantity: 10}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	return s.ID, a.ID
}

func dispatch(areaID string, qty int) dto.RegisterDispatchRequest {
	return dto.RegisterDispatchRequest{
		RequesterName: "Chef Ana",
		AreaID:        areaID,
		Reason:        "servicio",
		Lines:         []dto.MovementLineRequest{{ProductCode: "P1", Quantity: qty}},
	}
}

func TestRouter_DespachoYAlertaDeStockMinimo(t *testing.T) {
	f := newAPI(t)
	_, areaID := f.seed(t)

	resp, raw := f.call(t, http.MethodPost, "/api/inventory/dispatches", "bodeguero", dispatch(areaID, 4))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var m dto.MovementResponse
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "Dispatch", m.Kind)
	assert.Equal(t, testUserID, m.CreatedBy)
	assert.Empty(t, f.alerts.all(), "stock 6 sobre mínimo 5 no alerta")

	resp, raw = f.call(t, http.MethodPost, "/api/inventory/dispatches", "bodeguero", dispatch(areaID, 2))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	got := f.alerts.all()
	require.Len(t, got, 1)
	assert.Equal(t, "P1", got[0].ProductCode)
	assert.Equal(t, 4, got[0].CurrentStock)
	assert.Equal(t, testUserID, got[0].ActorID)

	resp, raw = f.call(t, http.MethodGet, "/api/products/P1", "bodeguero", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var p dto.ProductResponse
	require.NoError(t, json.Unmarshal(raw, &p))
	assert.Equal(t, 4, p.Stock)
	assert.True(t, p.LowStock)
}

func TestRouter_DespachoSinStock_Retorna409ConDetalle(t *testing.T) {
	f := newAPI(t)
	_, areaID := f.seed(t)

	resp, raw := f.call(t, http.MethodPost, "/api/inventory/dispatches", "bodeguero", dispatch(areaID, 20))
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var body struct {
		Code    string         `json:"code"`
		Details map[string]any `json:"details"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Equal(t, "P1", body.Details["product_code"])
	assert.EqualValues(t, 20, body.Details["requested"])
	assert.EqualValues(t, 10, body.Details["available"])

	// el stock no cambió
	_, raw = f.call(t, http.MethodGet, "/api/products/P1", "bodeguero", nil)
	var p dto.ProductResponse
	require.NoError(t, json.Unmarshal(raw, &p))
	assert.Equal(t, 10, p.Stock)
}

func TestRouter_MovimientoVacio_Retorna400(t *testing.T) {
	f := newAPI(t)
	_, areaID := f.seed(t)

	req := dispatch(areaID, 1)
	req.Lines = nil
	resp, raw := f.call(t, http.MethodPost, "/api/inventory/dispatches", "bodeguero", req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "EMPTY_MOVEMENT")

	resp, raw = f.call(t, http.MethodPost, "/api/inventory/dispatches", "bodeguero", dispatch(areaID, 0))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "INVALID_QUANTITY")
}

func TestRouter_KardexYReporteDeMovimientos(t *testing.T) {
	f := newAPI(t)
	_, areaID := f.seed(t)
	resp, _ := f.call(t, http.MethodPost, "/api/inventory/dispatches", "bodeguero", dispatch(areaID, 3))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, raw := f.call(t, http.MethodGet, "/api/inventory/products/P1/kardex", "bodeguero", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var k dto.KardexResponse
	require.NoError(t, json.Unmarshal(raw, &k))
	assert.Equal(t, 7, k.CurrentStock)
	require.Len(t, k.Entries, 2)
	assert.Equal(t, 0, k.Entries[0].StockBefore)
	assert.Equal(t, 10, k.Entries[0].StockAfter)
	assert.Equal(t, 10, k.Entries[1].StockBefore)
	assert.Equal(t, 7, k.Entries[1].StockAfter)

	resp, raw = f.call(t, http.MethodGet, "/api/inventory/movements?kind=Dispatch", "bodeguero", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.MovementListResponse
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Equal(t, 1, list.Page.Total)
	require.Len(t, list.Items, 1)

	resp, _ = f.call(t, http.MethodGet, "/api/inventory/movements/"+list.Items[0].ID, "bodeguero", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = f.call(t, http.MethodGet, "/api/inventory/movements?since=ayer", "bodeguero", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(raw))
}

func TestRouter_ListaDeReposicion(t *testing.T) {
	f := newAPI(t)
	_, areaID := f.seed(t)
	resp, _ := f.call(t, http.MethodPost, "/api/inventory/dispatches", "bodeguero", dispatch(areaID, 8))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, raw := f.call(t, http.MethodGet, "/api/inventory/replenishment-list", "bodeguero", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Total          int                              `json:"total"`
		Replenishments []dto.ReplenishmentSuggestionDTO `json:"replenishments"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Equal(t, 1, body.Total)
	assert.Equal(t, "P1", body.Replenishments[0].ProductCode)
	assert.Equal(t, 2, body.Replenishments[0].CurrentStock)
}

func TestRouter_BorrarProductoConHistorial_Retorna409(t *testing.T) {
	f := newAPI(t)
	f.seed(t)

	resp, raw := f.call(t, http.MethodDelete, "/api/products/P1", "admin", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(raw), "CONFLICT")

	resp, _ = f.call(t, http.MethodPost, "/api/products", "admin", dto.CreateProductRequest{Code: "P2", Name: "Sal"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = f.call(t, http.MethodDelete, "/api/products/P2", "admin", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = f.call(t, http.MethodGet, "/api/products/P2", "admin", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_ProductoDuplicadoYValidacion(t *testing.T) {
	f := newAPI(t)
	f.seed(t)

	resp, raw := f.call(t, http.MethodPost, "/api/products", "admin", dto.CreateProductRequest{Code: "P1", Name: "Otra"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(raw), "DUPLICATE")

	resp, raw = f.call(t, http.MethodPost, "/api/products", "admin", dto.CreateProductRequest{Code: "con espacio", Name: "X"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "VALIDATION")
}

func TestRouter_RolesDeEscrituraYAdmin(t *testing.T) {
	f := newAPI(t)
	f.seed(t)

	resp, _ := f.call(t, http.MethodDelete, "/api/products/P1", "bodeguero", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "solo admin borra")

	resp, _ = f.call(t, http.MethodPost, "/api/racks", "consulta", dto.RackRequest{Code: "R1"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "consulta no escribe")

	resp, _ = f.call(t, http.MethodGet, "/api/products", "consulta", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "consulta sí lee")

	resp, _ = f.call(t, http.MethodGet, "/api/audit", "bodeguero", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = f.call(t, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_BitacoraDeAuditoria(t *testing.T) {
	f := newAPI(t)
	f.seed(t)

	resp, raw := f.call(t, http.MethodGet, "/api/audit?action=REGISTERED", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var log dto.AuditLogResponse
	require.NoError(t, json.Unmarshal(raw, &log))
	require.Equal(t, 1, log.Page.Total)
	assert.Equal(t, "Reception", log.Items[0].SubjectType)
	assert.Equal(t, testUserID, log.Items[0].Actor)

	resp, raw = f.call(t, http.MethodGet, "/api/audit?subject_type=Product", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &log))
	assert.Equal(t, 1, log.Page.Total)
	assert.Equal(t, "CREATED", log.Items[0].Action)

	resp, _ = f.call(t, http.MethodGet, "/api/audit?action=BORRADO", "admin", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_RackActualizaSinCambiarCodigo(t *testing.T) {
	f := newAPI(t)

	resp, raw := f.call(t, http.MethodPost, "/api/racks", "admin", dto.RackRequest{Code: "R-01", Description: "Pasillo 1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = f.call(t, http.MethodPut, "/api/racks/R-01", "admin", dto.RackRequest{Code: "OTRO", Description: "Pasillo 2"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var r dto.RackResponse
	require.NoError(t, json.Unmarshal(raw, &r))
	assert.Equal(t, "R-01", r.Code)
	assert.Equal(t, "Pasillo 2", r.Description)

	resp, raw = f.call(t, http.MethodGet, "/api/racks", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list struct {
		Items []dto.RackResponse `json:"items"`
	}
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Pasillo 2", list.Items[0].Description)
}

func TestRouter_ResumenDelDashboard(t *testing.T) {
	f := newAPI(t)
	_, areaID := f.seed(t)
	resp, _ := f.call(t, http.MethodPost, "/api/inventory/dispatches", "bodeguero", dispatch(areaID, 7))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, raw := f.call(t, http.MethodGet, "/api/dashboard/summary", "consulta", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var s dto.DashboardSummaryDTO
	require.NoError(t, json.Unmarshal(raw, &s))
	assert.Equal(t, 1, s.ProductCount)
	assert.Equal(t, 1, s.LowStockCount)
	require.Len(t, s.LowStock, 1)
	assert.Equal(t, 3, s.LowStock[0].CurrentStock)
	assert.Equal(t, 1, s.TodayReceptions)
	assert.Equal(t, 1, s.TodayDispatches)
	assert.Equal(t, 1, s.MonthDispatches)
	require.Len(t, s.RecentMovements, 2)
	assert.Equal(t, "Dispatch", s.RecentMovements[0].Kind, "más reciente primero")
}
