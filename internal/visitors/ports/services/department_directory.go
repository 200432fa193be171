package services

import (
	"context"

	"visitlog/internal/visitors/domain/entities"
)

// DepartmentDirectory предоставляет подразделения для отображения.
type DepartmentDirectory interface {
	LookupDepartment(ctx context.Context, departmentID string) (*entities.Department, error)
}
