package entity

import (
	"fmt"
	"time"
)

// MovementKind tipo de movimiento de inventario (también etiqueta de la fila de Kardex).
type MovementKind string

const (
	MovementKindReception MovementKind = "Reception" // entrada
	MovementKindDispatch  MovementKind = "Dispatch"  // salida hacia un área
)

// Sign devuelve +1 para entradas y -1 para salidas.
func (k MovementKind) Sign() int {
	if k == MovementKindDispatch {
		return -1
	}
	return 1
}

// Valid indica si el tipo es uno de los conocidos.
func (k MovementKind) Valid() bool {
	return k == MovementKindReception || k == MovementKindDispatch
}

// Movement cabecera de una recepción o un despacho. Inmutable una vez creada:
// no existe ruta de edición ni borrado (rompería la continuidad del Kardex).
//
// Recepción: SupplierID, DocumentRef.
// Despacho: RequesterName, AreaID, Reason.
type Movement struct {
	ID            string
	Kind          MovementKind
	SupplierID    string
	DocumentRef   string
	RequesterName string
	AreaID        string
	Reason        string
	CreatedBy     string // vacío = sistema
	CreatedAt     time.Time
	Lines         []MovementLine
}

// Reference texto de referencia cruzada que se guarda en cada fila del Kardex.
func (m *Movement) Reference() string {
	return fmt.Sprintf("%s ID: %s", m.Kind, m.ID)
}

func (m *Movement) String() string {
	switch m.Kind {
	case MovementKindReception:
		return fmt.Sprintf("Reception #%s from supplier %s", m.ID, m.SupplierID)
	case MovementKindDispatch:
		area := m.AreaID
		if area == "" {
			area = "N/A"
		}
		return fmt.Sprintf("Dispatch #%s to area %s", m.ID, area)
	}
	return fmt.Sprintf("Movement #%s", m.ID)
}

// MovementLine línea de un movimiento: producto y cantidad positiva.
type MovementLine struct {
	ID          string
	MovementID  string
	Position    int
	ProductCode string
	Quantity    int
}
