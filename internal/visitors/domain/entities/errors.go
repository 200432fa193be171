// Package entities определяет доменные сущности журнала посетителей.
package entities

import (
	"errors"
	"fmt"
)

// Виды ошибок ядра. Конкретные ошибки оборачивают один из них и проверяются через errors.Is.
var (
	ErrValidation        = errors.New("validation rejected")
	ErrNotFound          = errors.New("not found")
	ErrTransactionFailed = errors.New("transaction failed")
)

// Ошибки проверки входных данных.
var (
	ErrUnknownDocumentType = fmt.Errorf("%w: unknown document type", ErrValidation)
	ErrInvalidDate         = fmt.Errorf("%w: invalid date", ErrValidation)
	ErrInvalidVisitPeriod  = fmt.Errorf("%w: entry must precede exit", ErrValidation)
	ErrMissingDepartment   = fmt.Errorf("%w: department is required", ErrValidation)
	ErrMissingActor        = fmt.Errorf("%w: actor is required", ErrValidation)
	ErrInvalidID           = fmt.Errorf("%w: malformed identifier", ErrValidation)
)

// Ошибки отсутствия записей.
var (
	ErrVisitorNotFound    = fmt.Errorf("visitor %w", ErrNotFound)
	ErrDepartmentNotFound = fmt.Errorf("department %w", ErrNotFound)
	ErrDocumentNotFound   = fmt.Errorf("document %w", ErrNotFound)
)

// IsDomainError сообщает, относится ли ошибка к проверке данных или отсутствию записи.
func IsDomainError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound)
}
