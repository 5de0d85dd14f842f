package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joachez17/bodega-api/internal/application/dto"
	"github.com/joachez17/bodega-api/internal/domain"
	"github.com/joachez17/bodega-api/internal/domain/entity"
	"github.com/joachez17/bodega-api/internal/domain/repository"
)

const (
	subjectSupplier = "Supplier"
	subjectArea     = "Area"
	subjectRack     = "Rack"
)

// CatalogUseCase casos de uso CRUD para proveedores, áreas y racks.
// Cada alta, modificación y baja deja su registro de auditoría.
type CatalogUseCase struct {
	suppliers repository.SupplierRepository
	areas     repository.AreaRepository
	racks     repository.RackRepository
	auditor   AuditRecorder
	now       func() time.Time
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	suppliers repository.SupplierRepository,
	areas repository.AreaRepository,
	racks repository.RackRepository,
	auditor AuditRecorder,
) *CatalogUseCase {
	return &CatalogUseCase{suppliers: suppliers, areas: areas, racks: racks, auditor: auditor, now: time.Now}
}

// --- Proveedores ---

// CreateSupplier crea un proveedor.
func (uc *CatalogUseCase) CreateSupplier(ctx context.Context, actorID string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Contact:   in.Contact,
		Phone:     in.Phone,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.suppliers.Create(ctx, s); err != nil {
		return nil, err
	}
	uc.auditor.Record(ctx, actorID, entity.AuditActionCreated, subjectSupplier, objectDetail(s))
	return toSupplierResponse(s), nil
}

// GetSupplier obtiene un proveedor por ID.
func (uc *CatalogUseCase) GetSupplier(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	s, err := uc.suppliers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return toSupplierResponse(s), nil
}

// UpdateSupplier reemplaza los datos de un proveedor.
func (uc *CatalogUseCase) UpdateSupplier(ctx context.Context, actorID, id string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.suppliers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	s.Name = in.Name
	s.Contact = in.Contact
	s.Phone = in.Phone
	s.Email = in.Email
	s.UpdatedAt = uc.now()
	if err := uc.suppliers.Update(ctx, s); err != nil {
		return nil, err
	}
	uc.auditor.Record(ctx, actorID, entity.AuditActionModified, subjectSupplier, objectDetail(s))
	return toSupplierResponse(s), nil
}

// ListSuppliers lista proveedores con paginación.
func (uc *CatalogUseCase) ListSuppliers(ctx context.Context, limit, offset int) ([]dto.SupplierResponse, dto.PageResponse, error) {
	limit, offset = normalizePage(limit, offset)
	list, err := uc.suppliers.List(ctx, limit, offset)
	if err != nil {
		return nil, dto.PageResponse{}, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return items, dto.PageResponse{Limit: limit, Offset: offset}, nil
}

// DeleteSupplier elimina un proveedor. Si tiene recepciones o productos asociados el
// repositorio devuelve domain.ErrConflict.
func (uc *CatalogUseCase) DeleteSupplier(ctx context.Context, actorID, id string) error {
	s, err := uc.suppliers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	if err := uc.suppliers.Delete(ctx, id); err != nil {
		return err
	}
	uc.auditor.Record(ctx, actorID, entity.AuditActionDeleted, subjectSupplier, objectDetail(s))
	return nil
}

// --- Áreas ---

// CreateArea crea un área de destino.
func (uc *CatalogUseCase) CreateArea(ctx context.Context, actorID string, in dto.AreaRequest) (*dto.AreaResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	a := &entity.Area{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.areas.Create(ctx, a); err != nil {
		return nil, err
	}
	uc.auditor.Record(ctx, actorID, entity.AuditActionCreated, subjectArea, objectDetail(a))
	return toAreaResponse(a), nil
}

// GetArea obtiene un área por ID.
func (uc *CatalogUseCase) GetArea(ctx context.Context, id string) (*dto.AreaResponse, error) {
	a, err := uc.areas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return toAreaResponse(a), nil
}

// UpdateArea reemplaza los datos de un área.
func (uc *CatalogUseCase) UpdateArea(ctx context.Context, actorID, id string, in dto.AreaRequest) (*dto.AreaResponse, error) {
	a, err := uc.areas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	a.Name = in.Name
	a.Description = in.Description
	a.UpdatedAt = uc.now()
	if err := uc.areas.Update(ctx, a); err != nil {
		return nil, err
	}
	uc.auditor.Record(ctx, actorID, entity.AuditActionModified, subjectArea, objectDetail(a))
	return toAreaResponse(a), nil
}

// ListAreas lista áreas con paginación.
func (uc *CatalogUseCase) ListAreas(ctx context.Context, limit, offset int) ([]dto.AreaResponse, dto.PageResponse, error) {
	limit, offset = normalizePage(limit, offset)
	list, err := uc.areas.List(ctx, limit, offset)
	if err != nil {
		return nil, dto.PageResponse{}, err
	}
	items := make([]dto.AreaResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAreaResponse(a))
	}
	return items, dto.PageResponse{Limit: limit, Offset: offset}, nil
}

// DeleteArea elimina un área.
func (uc *CatalogUseCase) DeleteArea(ctx context.Context, actorID, id string) error {
	a, err := uc.areas.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return domain.ErrNotFound
	}
	if err := uc.areas.Delete(ctx, id); err != nil {
		return err
	}
	uc.auditor.Record(ctx, actorID, entity.AuditActionDeleted, subjectArea, objectDetail(a))
	return nil
}

// --- Racks ---

// CreateRack crea un rack. El código es único.
func (uc *CatalogUseCase) CreateRack(ctx context.Context, actorID string, in dto.RackRequest) (*dto.RackResponse, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.racks.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := uc.now()
	r := &entity.Rack{Code: code, Description: in.Description, CreatedAt: now, UpdatedAt: now}
	if err := uc.racks.Create(ctx, r); err != nil {
		return nil, err
	}
	uc.auditor.Record(ctx, actorID, entity.AuditActionCreated, subjectRack, objectDetail(r))
	return toRackResponse(r), nil
}

// GetRack obtiene un rack por código.
func (uc *CatalogUseCase) GetRack(ctx context.Context, code string) (*dto.RackResponse, error) {
	r, err := uc.racks.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return toRackResponse(r), nil
}

// UpdateRack actualiza la descripción de un rack.
func (uc *CatalogUseCase) UpdateRack(ctx context.Context, actorID, code string, in dto.RackRequest) (*dto.RackResponse, error) {
	r, err := uc.racks.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	r.Description = in.Description
	r.UpdatedAt = uc.now()
	if err := uc.racks.Update(ctx, r); err != nil {
		return nil, err
	}
	uc.auditor.Record(ctx, actorID, entity.AuditActionModified, subjectRack, objectDetail(r))
	return toRackResponse(r), nil
}

// ListRacks lista racks con paginación.
func (uc *CatalogUseCase) ListRacks(ctx context.Context, limit, offset int) ([]dto.RackResponse, dto.PageResponse, error) {
	limit, offset = normalizePage(limit, offset)
	list, err := uc.racks.List(ctx, limit, offset)
	if err != nil {
		return nil, dto.PageResponse{}, err
	}
	items := make([]dto.RackResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toRackResponse(r))
	}
	return items, dto.PageResponse{Limit: limit, Offset: offset}, nil
}

// DeleteRack elimina un rack.
func (uc *CatalogUseCase) DeleteRack(ctx context.Context, actorID, code string) error {
	r, err := uc.racks.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if r == nil {
		return domain.ErrNotFound
	}
	if err := uc.racks.Delete(ctx, code); err != nil {
		return err
	}
	uc.auditor.Record(ctx, actorID, entity.AuditActionDeleted, subjectRack, objectDetail(r))
	return nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		Contact:   s.Contact,
		Phone:     s.Phone,
		Email:     s.Email,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toAreaResponse(a *entity.Area) *dto.AreaResponse {
	return &dto.AreaResponse{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toRackResponse(r *entity.Rack) *dto.RackResponse {
	return &dto.RackResponse{
		Code:        r.Code,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
