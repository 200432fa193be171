package repositories

import (
	"context"

	"visitlog/internal/visitors/domain/entities"
)

// DepartmentRepository определяет операции со справочником подразделений.
type DepartmentRepository interface {
	FindByID(ctx context.Context, departmentID string) (*entities.Department, error)
	List(ctx context.Context) ([]*entities.Department, error)
	Create(ctx context.Context, name, actorID string) (string, error)
	Retire(ctx context.Context, departmentID, actorID string) error
}
