package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidQuantity    = errors.New("la cantidad debe ser mayor que cero")
	ErrEmptyMovement      = errors.New("el movimiento no tiene líneas")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrTransactionTimeout = errors.New("tiempo de transacción agotado, reintente")
	ErrStorageFailure     = errors.New("falla de persistencia")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// InsufficientStockError detalla qué producto no alcanza para la salida solicitada.
// errors.Is(err, ErrInsufficientStock) es verdadero para cualquier instancia.
type InsufficientStockError struct {
	ProductCode string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: solicitado %d, disponible %d", e.ProductCode, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// IsDomainError indica si err es (o envuelve) uno de los errores de dominio.
// La capa de infraestructura lo usa para no reclasificar errores de negocio como fallas de persistencia.
func IsDomainError(err error) bool {
	for _, e := range []error{
		ErrNotFound, ErrInvalidInput, ErrInvalidQuantity, ErrEmptyMovement, ErrInsufficientStock,
		ErrTransactionTimeout, ErrStorageFailure, ErrDuplicate, ErrUnauthorized, ErrConflict,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
