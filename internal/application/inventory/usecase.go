package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joachez17/bodega-api/internal/domain"
	"github.com/joachez17/bodega-api/internal/domain/entity"
	"github.com/joachez17/bodega-api/internal/domain/repository"
	"github.com/joachez17/bodega-api/pkg/logger"
)

// MovementConfig parámetros del motor de movimientos.
type MovementConfig struct {
	// TxTimeout tiempo máximo de una transacción de movimiento (0 = sin límite).
	// Al vencerse el movimiento falla con domain.ErrTransactionTimeout.
	TxTimeout time.Duration
}

// MovementUseCase registra recepciones y despachos como una sola unidad atómica sobre N líneas:
// valida, bloquea los productos (SELECT FOR UPDATE), aplica los deltas con su fila de Kardex y
// hace Commit o Rollback. Tras el commit avisa al notificador de umbral y a la auditoría.
type MovementUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	ledgerRepo   repository.LedgerRepository
	supplierRepo repository.SupplierRepository
	areaRepo     repository.AreaRepository
	notifier     ThresholdNotifier
	auditor      AuditRecorder
	log          *logger.Logger
	cfg          MovementConfig
	now          func() time.Time
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	ledgerRepo repository.LedgerRepository,
	supplierRepo repository.SupplierRepository,
	areaRepo repository.AreaRepository,
	notifier ThresholdNotifier,
	auditor AuditRecorder,
	log *logger.Logger,
	cfg MovementConfig,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		ledgerRepo:   ledgerRepo,
		supplierRepo: supplierRepo,
		areaRepo:     areaRepo,
		notifier:     notifier,
		auditor:      auditor,
		log:          log,
		cfg:          cfg,
		now:          time.Now,
	}
}

// LineInput producto y cantidad de una línea.
type LineInput struct {
	ProductCode string
	Quantity    int
}

// ReceptionInput entrada de una recepción (entrada de stock desde un proveedor).
type ReceptionInput struct {
	SupplierID  string
	DocumentRef string // N° orden de compra, texto libre
	ActorID     string // vacío = sistema
	Lines       []LineInput
}

// DispatchInput entrada de un despacho (salida de stock hacia un área).
type DispatchInput struct {
	RequesterName string
	AreaID        string // opcional
	Reason        string
	ActorID       string
	Lines         []LineInput
}

// SubmitReception registra una recepción completa o nada.
func (uc *MovementUseCase) SubmitReception(ctx context.Context, in ReceptionInput) (*entity.Movement, error) {
	if err := validateLines(in.Lines); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.SupplierID) == "" {
		return nil, fmt.Errorf("%w: proveedor requerido", domain.ErrInvalidInput)
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, in.SupplierID)
	}
	header := &entity.Movement{
		Kind:        entity.MovementKindReception,
		SupplierID:  in.SupplierID,
		DocumentRef: in.DocumentRef,
		CreatedBy:   in.ActorID,
	}
	return uc.submit(ctx, header, in.Lines)
}

// SubmitDispatch registra un despacho completo o nada. Si alguna línea pide más de lo disponible
// el despacho entero se rechaza con *domain.InsufficientStockError y no se aplica ninguna línea.
func (uc *MovementUseCase) SubmitDispatch(ctx context.Context, in DispatchInput) (*entity.Movement, error) {
	if err := validateLines(in.Lines); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.RequesterName) == "" {
		return nil, fmt.Errorf("%w: solicitante requerido", domain.ErrInvalidInput)
	}
	if in.AreaID != "" {
		area, err := uc.areaRepo.GetByID(ctx, in.AreaID)
		if err != nil {
			return nil, err
		}
		if area == nil {
			return nil, fmt.Errorf("%w: área %s", domain.ErrNotFound, in.AreaID)
		}
	}
	header := &entity.Movement{
		Kind:          entity.MovementKindDispatch,
		RequesterName: in.RequesterName,
		AreaID:        in.AreaID,
		Reason:        in.Reason,
		CreatedBy:     in.ActorID,
	}
	return uc.submit(ctx, header, in.Lines)
}

// validateLines rechaza listas vacías y cantidades no positivas antes de abrir la transacción.
func validateLines(lines []LineInput) error {
	if len(lines) == 0 {
		return domain.ErrEmptyMovement
	}
	for i, l := range lines {
		if strings.TrimSpace(l.ProductCode) == "" {
			return fmt.Errorf("%w: línea %d sin producto", domain.ErrInvalidInput, i+1)
		}
		if l.Quantity <= 0 {
			return fmt.Errorf("%w: línea %d (%s) cantidad %d", domain.ErrInvalidQuantity, i+1, l.ProductCode, l.Quantity)
		}
	}
	return nil
}

func (uc *MovementUseCase) submit(ctx context.Context, header *entity.Movement, lines []LineInput) (*entity.Movement, error) {
	if uc.cfg.TxTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.cfg.TxTimeout)
		defer cancel()
	}

	// Totales por producto en orden de aparición; un producto puede repetirse en varias líneas.
	requested := make(map[string]int, len(lines))
	var order []string
	for _, l := range lines {
		if _, ok := requested[l.ProductCode]; !ok {
			order = append(order, l.ProductCode)
		}
		requested[l.ProductCode] += l.Quantity
	}

	// Pre-validación fuera de la transacción: camino rápido para el error al usuario.
	// La validación que cuenta se repite bajo bloqueo.
	for _, code := range order {
		p, err := uc.productRepo.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, code)
		}
		if header.Kind == entity.MovementKindDispatch && p.Stock < requested[code] {
			return nil, &domain.InsufficientStockError{ProductCode: code, Requested: requested[code], Available: p.Stock}
		}
	}

	// Los bloqueos se toman en orden fijo (código ascendente) para que dos movimientos con
	// productos en común no se bloqueen mutuamente.
	lockOrder := append([]string(nil), order...)
	sort.Strings(lockOrder)

	now := uc.now()
	header.ID = uuid.New().String()
	header.CreatedAt = now
	reference := header.Reference()
	sign := header.Kind.Sign()

	var (
		locked  map[string]*entity.Product
		before  map[string]int
		applied []entity.MovementLine
	)
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		locked = make(map[string]*entity.Product, len(lockOrder))
		before = make(map[string]int, len(lockOrder))
		applied = applied[:0]

		if err := movRepo.Create(ctx, header); err != nil {
			return err
		}
		for _, code := range lockOrder {
			p, err := productRepo.GetForUpdate(ctx, code)
			if err != nil {
				return err
			}
			locked[code] = p
			before[code] = p.Stock
		}
		// Con los bloqueos tomados: el total por producto contra el stock confirmado.
		if header.Kind == entity.MovementKindDispatch {
			for _, code := range order {
				if avail := locked[code].Stock; avail < requested[code] {
					return &domain.InsufficientStockError{ProductCode: code, Requested: requested[code], Available: avail}
				}
			}
		}
		for i, l := range lines {
			p := locked[l.ProductCode]
			if _, err := ApplyDelta(ctx, productRepo, ledgerRepo, p, sign*l.Quantity, header.Kind, reference, now); err != nil {
				return err
			}
			line := entity.MovementLine{
				ID:          uuid.New().String(),
				MovementID:  header.ID,
				Position:    i + 1,
				ProductCode: l.ProductCode,
				Quantity:    l.Quantity,
			}
			if err := movRepo.AddLine(ctx, &line); err != nil {
				return err
			}
			applied = append(applied, line)
		}
		return nil
	})
	if err != nil {
		uc.log.Debug().Err(err).Str("kind", string(header.Kind)).Msg("movimiento rechazado")
		return nil, err
	}
	header.Lines = applied

	uc.log.Info().
		Str("kind", string(header.Kind)).
		Str("movement_id", header.ID).
		Int("lines", len(header.Lines)).
		Str("actor", header.CreatedBy).
		Msg("movimiento registrado")

	// Después del commit y fuera de los bloqueos. Ninguno de los dos puede deshacer el movimiento.
	postCtx := context.WithoutCancel(ctx)
	changes := make([]entity.StockChange, 0, len(lockOrder))
	for _, code := range lockOrder {
		p := locked[code]
		changes = append(changes, entity.StockChange{Product: p, Before: before[code], After: p.Stock})
	}
	uc.notifier.Notify(postCtx, header.CreatedBy, header.ID, changes)
	uc.auditor.Record(postCtx, header.CreatedBy, entity.AuditActionRegistered, string(header.Kind), header.String())

	return header, nil
}

// GetMovement devuelve una cabecera con sus líneas.
func (uc *MovementUseCase) GetMovement(ctx context.Context, id string) (*entity.Movement, error) {
	m, err := uc.movementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

// ListMovements lista recepciones y/o despachos (más recientes primero).
func (uc *MovementUseCase) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]*entity.Movement, int, error) {
	if filter.Kind != "" && !filter.Kind.Valid() {
		return nil, 0, domain.ErrInvalidInput
	}
	return uc.movementRepo.List(ctx, filter)
}

// GetLedgerHistory devuelve el Kardex del producto en orden cronológico.
func (uc *MovementUseCase) GetLedgerHistory(ctx context.Context, productCode string) (*entity.Product, []*entity.LedgerEntry, error) {
	p, err := uc.productRepo.GetByCode(ctx, productCode)
	if err != nil {
		return nil, nil, err
	}
	if p == nil {
		return nil, nil, domain.ErrNotFound
	}
	entries, err := uc.ledgerRepo.ListByProduct(ctx, productCode)
	if err != nil {
		return nil, nil, err
	}
	return p, entries, nil
}
