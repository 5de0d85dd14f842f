package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/joachez17/bodega-api/internal/domain"
	"github.com/joachez17/bodega-api/internal/domain/entity"
	"github.com/joachez17/bodega-api/internal/domain/repository"
)

// Store almacén en memoria con las mismas garantías que el de Postgres: el stock de cada
// producto se bloquea por transacción y los cambios de una tx se aplican todos o ninguno.
// Pensado para desarrollo local y pruebas (STORE_DRIVER=memory).
type Store struct {
	mu sync.Mutex

	products  map[string]*entity.Product
	suppliers map[string]*entity.Supplier
	areas     map[string]*entity.Area
	racks     map[string]*entity.Rack

	movements     map[string]*entity.Movement
	movementOrder []string
	ledger        []*entity.LedgerEntry
	seq           int64
	audit         []*entity.AuditEntry

	// un canal de capacidad 1 por producto: lleno = bloqueado por alguna tx
	locks map[string]chan struct{}
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		products:  make(map[string]*entity.Product),
		suppliers: make(map[string]*entity.Supplier),
		areas:     make(map[string]*entity.Area),
		racks:     make(map[string]*entity.Rack),
		movements: make(map[string]*entity.Movement),
		locks:     make(map[string]chan struct{}),
	}
}

// Repositorios fuera de transacción.

func (s *Store) Products() repository.ProductRepository   { return &productRepo{s: s} }
func (s *Store) Ledger() repository.LedgerRepository      { return &ledgerRepo{s: s} }
func (s *Store) Movements() repository.MovementRepository { return &movementRepo{s: s} }
func (s *Store) Audit() repository.AuditRepository        { return &auditRepo{s: s} }
func (s *Store) Suppliers() repository.SupplierRepository { return &supplierRepo{s: s} }
func (s *Store) Areas() repository.AreaRepository         { return &areaRepo{s: s} }
func (s *Store) Racks() repository.RackRepository         { return &rackRepo{s: s} }

func (s *Store) lockFor(code string) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.locks[code]
	if !ok {
		ch = make(chan struct{}, 1)
		s.locks[code] = ch
	}
	return ch
}

// tx cambios pendientes de una transacción. Nada es visible fuera de ella hasta commit.
type tx struct {
	s     *Store
	held  map[string]chan struct{}
	stock map[string]int

	ledger    []*entity.LedgerEntry
	movements []*entity.Movement
	lines     []entity.MovementLine
}

func (t *tx) lock(ctx context.Context, code string) error {
	if _, ok := t.held[code]; ok {
		return nil
	}
	ch := t.s.lockFor(code)
	if err := acquire(ctx, ch, code); err != nil {
		return err
	}
	t.held[code] = ch
	return nil
}

func acquire(ctx context.Context, ch chan struct{}, code string) error {
	select {
	case ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: esperando bloqueo de %s", domain.ErrTransactionTimeout, code)
	}
}

func (t *tx) release() {
	for code, ch := range t.held {
		<-ch
		delete(t.held, code)
	}
}

func (t *tx) commit() {
	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for code, stock := range t.stock {
		if p, ok := s.products[code]; ok {
			p.Stock = stock
			p.UpdatedAt = now
		}
	}
	for _, m := range t.movements {
		cp := *m
		cp.Lines = nil
		s.movements[m.ID] = &cp
		s.movementOrder = append(s.movementOrder, m.ID)
	}
	for _, l := range t.lines {
		if m, ok := s.movements[l.MovementID]; ok {
			m.Lines = append(m.Lines, l)
		}
	}
	for _, e := range t.ledger {
		s.seq++
		e.Seq = s.seq
		s.ledger = append(s.ledger, e)
	}
}

// Run implementa inventory.TxRunner. Si fn falla o el contexto vence antes del commit,
// se descartan los cambios pendientes. Los bloqueos se liberan al terminar en ambos casos.
func (s *Store) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	ledgerRepo repository.LedgerRepository,
) error) error {
	t := &tx{s: s, held: make(map[string]chan struct{}), stock: make(map[string]int)}
	defer t.release()

	if err := fn(&txMovementRepo{t: t}, &txProductRepo{t: t}, &txLedgerRepo{t: t}); err != nil {
		return classify(err)
	}
	if err := ctx.Err(); err != nil {
		return classify(err)
	}
	t.commit()
	return nil
}

func classify(err error) error {
	if domain.IsDomainError(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", domain.ErrTransactionTimeout, err)
	}
	return fmt.Errorf("%w: %w", domain.ErrStorageFailure, err)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// page recorta items según limit/offset; limit <= 0 = todos.
func page[T any](items []T, limit, offset int) []T {
	start := clamp(offset, 0, len(items))
	end := len(items)
	if limit > 0 {
		end = clamp(start+limit, start, len(items))
	}
	return items[start:end]
}
