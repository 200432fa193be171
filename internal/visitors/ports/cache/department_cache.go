// Package cache defines cache interfaces for the visitors service.
package cache

import (
	"context"

	"visitlog/internal/visitors/domain/entities"
)

// DepartmentCache хранит подразделения между запросами.
// Get возвращает nil без ошибки, если записи нет.
type DepartmentCache interface {
	Get(ctx context.Context, departmentID string) (*entities.Department, error)
	Set(ctx context.Context, department *entities.Department) error
	Delete(ctx context.Context, departmentID string) error
}
