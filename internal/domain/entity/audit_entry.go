package entity

import "time"

// AuditAction acción registrada en la bitácora de auditoría.
type AuditAction string

const (
	AuditActionCreated    AuditAction = "CREATED"
	AuditActionModified   AuditAction = "MODIFIED"
	AuditActionDeleted    AuditAction = "DELETED"
	AuditActionRegistered AuditAction = "REGISTERED" // cabeceras de movimiento; solo creación
)

// SystemActor nombre con el que se muestra una acción sin usuario autenticado.
const SystemActor = "Sistema"

// AuditEntry registro inmutable de una acción sobre una entidad.
type AuditEntry struct {
	ID          string
	ActorID     *string // nil = acción del sistema
	Action      AuditAction
	SubjectType string
	Detail      string
	CreatedAt   time.Time
}

// ActorName devuelve el actor o "Sistema" cuando no hay usuario.
func (e *AuditEntry) ActorName() string {
	if e.ActorID == nil || *e.ActorID == "" {
		return SystemActor
	}
	return *e.ActorID
}
