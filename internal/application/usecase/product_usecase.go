package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joachez17/bodega-api/internal/application/dto"
	"github.com/joachez17/bodega-api/internal/domain"
	"github.com/joachez17/bodega-api/internal/domain/entity"
	"github.com/joachez17/bodega-api/internal/domain/repository"
)

// AuditRecorder registra las acciones de catálogo; nunca falla al llamador.
type AuditRecorder interface {
	Record(ctx context.Context, actorID string, action entity.AuditAction, subjectType, detail string)
}

const subjectProduct = "Product"

// ProductUseCase casos de uso CRUD para productos. Stock se maneja solo vía movimientos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	ledgerRepo   repository.LedgerRepository
	rackRepo     repository.RackRepository
	supplierRepo repository.SupplierRepository
	auditor      AuditRecorder
	now          func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	ledgerRepo repository.LedgerRepository,
	rackRepo repository.RackRepository,
	supplierRepo repository.SupplierRepository,
	auditor AuditRecorder,
) *ProductUseCase {
	return &ProductUseCase{
		repo:         repo,
		ledgerRepo:   ledgerRepo,
		rackRepo:     rackRepo,
		supplierRepo: supplierRepo,
		auditor:      auditor,
		now:          time.Now,
	}
}

// Create crea un nuevo producto. Stock inicia en 0.
func (uc *ProductUseCase) Create(ctx context.Context, actorID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.MinimumStock < 0 {
		return nil, fmt.Errorf("%w: stock mínimo negativo", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.checkReferences(ctx, in.RackCode, in.SupplierID); err != nil {
		return nil, err
	}
	now := uc.now()
	product := &entity.Product{
		Code:         code,
		Name:         in.Name,
		Stock:        0,
		MinimumStock: in.MinimumStock,
		RackCode:     emptyToNil(in.RackCode),
		SupplierID:   emptyToNil(in.SupplierID),
		Category:     in.Category,
		Status:       in.Status,
		UnitMeasure:  in.UnitMeasure,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.auditor.Record(ctx, actorID, entity.AuditActionCreated, subjectProduct, objectDetail(product))
	return ToProductResponse(product), nil
}

// GetByCode obtiene un producto por código.
func (uc *ProductUseCase) GetByCode(ctx context.Context, code string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return ToProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar Stock (se maneja vía movimientos).
func (uc *ProductUseCase) Update(ctx context.Context, actorID, code string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkReferences(ctx, in.RackCode, in.SupplierID); err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.MinimumStock != nil {
		if *in.MinimumStock < 0 {
			return nil, fmt.Errorf("%w: stock mínimo negativo", domain.ErrInvalidInput)
		}
		product.MinimumStock = *in.MinimumStock
	}
	if in.RackCode != nil {
		product.RackCode = emptyToNil(in.RackCode)
	}
	if in.SupplierID != nil {
		product.SupplierID = emptyToNil(in.SupplierID)
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Status != nil {
		product.Status = *in.Status
	}
	if in.UnitMeasure != nil {
		product.UnitMeasure = *in.UnitMeasure
	}
	if in.Notes != nil {
		product.Notes = *in.Notes
	}
	product.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.auditor.Record(ctx, actorID, entity.AuditActionModified, subjectProduct, objectDetail(product))
	return ToProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) (*dto.ProductListResponse, error) {
	limit, offset = normalizePage(limit, offset)
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto. Si ya tiene filas de Kardex se rechaza con domain.ErrConflict:
// borrar el producto dejaría movimientos sin su historial.
func (uc *ProductUseCase) Delete(ctx context.Context, actorID, code string) error {
	product, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	n, err := uc.ledgerRepo.CountByProduct(ctx, code)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: el producto %s tiene %d movimientos en Kardex", domain.ErrConflict, code, n)
	}
	if err := uc.repo.Delete(ctx, code); err != nil {
		return err
	}
	uc.auditor.Record(ctx, actorID, entity.AuditActionDeleted, subjectProduct, objectDetail(product))
	return nil
}

func (uc *ProductUseCase) checkReferences(ctx context.Context, rackCode, supplierID *string) error {
	if rackCode != nil && *rackCode != "" {
		rack, err := uc.rackRepo.GetByCode(ctx, *rackCode)
		if err != nil {
			return err
		}
		if rack == nil {
			return fmt.Errorf("%w: rack %s", domain.ErrNotFound, *rackCode)
		}
	}
	if supplierID != nil && *supplierID != "" {
		s, err := uc.supplierRepo.GetByID(ctx, *supplierID)
		if err != nil {
			return err
		}
		if s == nil {
			return fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, *supplierID)
		}
	}
	return nil
}

// ToProductResponse convierte la entidad a su DTO.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		Code:         p.Code,
		Name:         p.Name,
		Stock:        p.Stock,
		MinimumStock: p.MinimumStock,
		LowStock:     p.BelowMinimum(),
		RackCode:     p.RackCode,
		SupplierID:   p.SupplierID,
		Category:     p.Category,
		Status:       p.Status,
		UnitMeasure:  p.UnitMeasure,
		Notes:        p.Notes,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func objectDetail(o fmt.Stringer) string {
	return "Objeto: " + o.String()
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
