package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/joachez17/bodega-api/internal/domain"
	"github.com/joachez17/bodega-api/internal/domain/entity"
	"github.com/joachez17/bodega-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo cabeceras y líneas de recepciones y despachos (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, kind, supplier_id, document_ref, requester_name, area_id, reason, created_by, created_at`

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var (
		m                           entity.Movement
		kind                        string
		supplierID, areaID, creator *string
	)
	if err := row.Scan(&m.ID, &kind, &supplierID, &m.DocumentRef, &m.RequesterName,
		&areaID, &m.Reason, &creator, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.Kind = entity.MovementKind(kind)
	m.SupplierID = deref(supplierID)
	m.AreaID = deref(areaID)
	m.CreatedBy = deref(creator)
	return &m, nil
}

// Create persiste la cabecera. Los campos opcionales vacíos se guardan como NULL.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `INSERT INTO movements (` + movementColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		m.ID, string(m.Kind), nullIfEmpty(m.SupplierID), m.DocumentRef, m.RequesterName,
		nullIfEmpty(m.AreaID), m.Reason, nullIfEmpty(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: proveedor o área inexistente", domain.ErrNotFound)
		}
		return wrapErr("insert movement", err)
	}
	return nil
}

// AddLine persiste una línea del movimiento.
func (r *MovementRepo) AddLine(ctx context.Context, l *entity.MovementLine) error {
	query := `
		INSERT INTO movement_lines (id, movement_id, position, product_code, quantity)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, l.ID, l.MovementID, l.Position, l.ProductCode, l.Quantity)
	return wrapErr("insert movement line", err)
}

// GetByID obtiene la cabecera con sus líneas.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM movements WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get movement", err)
	}
	byID := map[string]*entity.Movement{m.ID: m}
	if err := r.loadLines(ctx, []string{m.ID}, byID); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *MovementRepo) loadLines(ctx context.Context, ids []string, byID map[string]*entity.Movement) error {
	query := `
		SELECT id, movement_id, position, product_code, quantity
		FROM movement_lines WHERE movement_id = ANY($1) ORDER BY movement_id, position`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return wrapErr("list movement lines", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.MovementLine
		if err := rows.Scan(&l.ID, &l.MovementID, &l.Position, &l.ProductCode, &l.Quantity); err != nil {
			return wrapErr("scan movement line", err)
		}
		if m, ok := byID[l.MovementID]; ok {
			m.Lines = append(m.Lines, l)
		}
	}
	return wrapErr("list movement lines", rows.Err())
}

// List página de movimientos, más recientes primero, con el total que cumple el filtro.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, int, error) {
	var (
		where []string
		args  []any
	)
	if f.Kind != "" {
		args = append(args, string(f.Kind))
		where = append(where, fmt.Sprintf("kind = $%d", len(args)))
	}
	if f.Since != nil {
		args = append(args, *f.Since)
		where = append(where, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if f.Until != nil {
		args = append(args, *f.Until)
		where = append(where, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM movements`+clause, args...).Scan(&total); err != nil {
		return nil, 0, wrapErr("count movements", err)
	}

	query := `SELECT ` + movementColumns + ` FROM movements` + clause + ` ORDER BY created_at DESC, id DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, wrapErr("list movements", err)
	}
	var (
		list []*entity.Movement
		ids  []string
	)
	byID := make(map[string]*entity.Movement)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			rows.Close()
			return nil, 0, wrapErr("scan movement", err)
		}
		list = append(list, m)
		ids = append(ids, m.ID)
		byID[m.ID] = m
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, wrapErr("list movements", err)
	}
	if len(ids) > 0 {
		if err := r.loadLines(ctx, ids, byID); err != nil {
			return nil, 0, err
		}
	}
	return list, total, nil
}
