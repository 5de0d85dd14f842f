package entity

import "time"

// Supplier proveedor de productos; referenciado por las recepciones.
type Supplier struct {
	ID        string
	Name      string
	Contact   string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Supplier) String() string { return s.Name }

// Area área o destino de los despachos.
type Area struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (a *Area) String() string { return a.Name }

// Rack estantería de almacenamiento, identificada por su código.
type Rack struct {
	Code        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r *Rack) String() string { return r.Code }
