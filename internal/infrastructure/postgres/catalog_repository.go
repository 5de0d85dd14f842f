package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/joachez17/bodega-api/internal/domain"
	"github.com/joachez17/bodega-api/internal/domain/entity"
	"github.com/joachez17/bodega-api/internal/domain/repository"
)

var (
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
	_ repository.AreaRepository     = (*AreaRepo)(nil)
	_ repository.RackRepository     = (*RackRepo)(nil)
)

// deleteRow borra por clave; FK violada = ErrConflict, 0 filas = ErrNotFound.
func deleteRow(ctx context.Context, q Querier, op, query, key string) error {
	tag, err := q.Exec(ctx, query, key)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return wrapErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func updated(op string, rows int64, err error) error {
	if err != nil {
		return wrapErr(op, err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SupplierRepo proveedores.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, name, contact, phone, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, s.ID, s.Name, s.Contact, s.Phone, s.Email, s.CreatedAt, s.UpdatedAt)
	if err != nil && isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return wrapErr("insert supplier", err)
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.q.QueryRow(ctx, `
		SELECT id, name, contact, phone, email, created_at, updated_at FROM suppliers WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Contact, &s.Phone, &s.Email, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get supplier", err)
	}
	return &s, nil
}

func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE suppliers SET name = $2, contact = $3, phone = $4, email = $5, updated_at = $6 WHERE id = $1`,
		s.ID, s.Name, s.Contact, s.Phone, s.Email, s.UpdatedAt)
	return updated("update supplier", tag.RowsAffected(), err)
}

func (r *SupplierRepo) List(ctx context.Context, limit, offset int) ([]*entity.Supplier, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, contact, phone, email, created_at, updated_at
		FROM suppliers ORDER BY name, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, wrapErr("list suppliers", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Contact, &s.Phone, &s.Email, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, wrapErr("scan supplier", err)
		}
		list = append(list, &s)
	}
	return list, wrapErr("list suppliers", rows.Err())
}

func (r *SupplierRepo) Delete(ctx context.Context, id string) error {
	return deleteRow(ctx, r.q, "delete supplier", `DELETE FROM suppliers WHERE id = $1`, id)
}

// AreaRepo áreas de destino.
type AreaRepo struct {
	q Querier
}

// NewAreaRepository construye el adaptador.
func NewAreaRepository(q Querier) *AreaRepo {
	return &AreaRepo{q: q}
}

func (r *AreaRepo) Create(ctx context.Context, a *entity.Area) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO areas (id, name, description, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.Name, a.Description, a.CreatedAt, a.UpdatedAt)
	if err != nil && isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return wrapErr("insert area", err)
}

func (r *AreaRepo) GetByID(ctx context.Context, id string) (*entity.Area, error) {
	var a entity.Area
	err := r.q.QueryRow(ctx, `
		SELECT id, name, description, created_at, updated_at FROM areas WHERE id = $1`, id,
	).Scan(&a.ID, &a.Name, &a.Description, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get area", err)
	}
	return &a, nil
}

func (r *AreaRepo) Update(ctx context.Context, a *entity.Area) error {
	tag, err := r.q.Exec(ctx, `UPDATE areas SET name = $2, description = $3, updated_at = $4 WHERE id = $1`,
		a.ID, a.Name, a.Description, a.UpdatedAt)
	return updated("update area", tag.RowsAffected(), err)
}

func (r *AreaRepo) List(ctx context.Context, limit, offset int) ([]*entity.Area, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM areas ORDER BY name, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, wrapErr("list areas", err)
	}
	defer rows.Close()
	var list []*entity.Area
	for rows.Next() {
		var a entity.Area
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, wrapErr("scan area", err)
		}
		list = append(list, &a)
	}
	return list, wrapErr("list areas", rows.Err())
}

func (r *AreaRepo) Delete(ctx context.Context, id string) error {
	return deleteRow(ctx, r.q, "delete area", `DELETE FROM areas WHERE id = $1`, id)
}

// RackRepo racks de almacenamiento.
type RackRepo struct {
	q Querier
}

// NewRackRepository construye el adaptador.
func NewRackRepository(q Querier) *RackRepo {
	return &RackRepo{q: q}
}

func (r *RackRepo) Create(ctx context.Context, rk *entity.Rack) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO racks (code, description, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		rk.Code, rk.Description, rk.CreatedAt, rk.UpdatedAt)
	if err != nil && isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return wrapErr("insert rack", err)
}

func (r *RackRepo) GetByCode(ctx context.Context, code string) (*entity.Rack, error) {
	var rk entity.Rack
	err := r.q.QueryRow(ctx, `SELECT code, description, created_at, updated_at FROM racks WHERE code = $1`, code).
		Scan(&rk.Code, &rk.Description, &rk.CreatedAt, &rk.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get rack", err)
	}
	return &rk, nil
}

func (r *RackRepo) Update(ctx context.Context, rk *entity.Rack) error {
	tag, err := r.q.Exec(ctx, `UPDATE racks SET description = $2, updated_at = $3 WHERE code = $1`,
		rk.Code, rk.Description, rk.UpdatedAt)
	return updated("update rack", tag.RowsAffected(), err)
}

func (r *RackRepo) List(ctx context.Context, limit, offset int) ([]*entity.Rack, error) {
	rows, err := r.q.Query(ctx, `
		SELECT code, description, created_at, updated_at FROM racks ORDER BY code LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, wrapErr("list racks", err)
	}
	defer rows.Close()
	var list []*entity.Rack
	for rows.Next() {
		var rk entity.Rack
		if err := rows.Scan(&rk.Code, &rk.Description, &rk.CreatedAt, &rk.UpdatedAt); err != nil {
			return nil, wrapErr("scan rack", err)
		}
		list = append(list, &rk)
	}
	return list, wrapErr("list racks", rows.Err())
}

func (r *RackRepo) Delete(ctx context.Context, code string) error {
	return deleteRow(ctx, r.q, "delete rack", `DELETE FROM racks WHERE code = $1`, code)
}
