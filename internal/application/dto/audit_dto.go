package dto

import "time"

// AuditEntryResponse salida de un registro de auditoría.
type AuditEntryResponse struct {
	ID          string    `json:"id"`
	Actor       string    `json:"actor"` // "Sistema" si no hubo usuario
	Action      string    `json:"action"`
	SubjectType string    `json:"subject_type"`
	Detail      string    `json:"detail"`
	CreatedAt   time.Time `json:"created_at"`
}

// AuditLogResponse página de la bitácora.
type AuditLogResponse struct {
	Items []AuditEntryResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
