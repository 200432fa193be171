package cache

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"visitlog/internal/visitors/domain/entities"
	"visitlog/internal/visitors/ports/cache"
	"visitlog/internal/visitors/ports/repositories"
	"visitlog/internal/visitors/ports/services"
	"visitlog/pkg/logger"
)

// DepartmentDirectory читает подразделения через кэш, обращаясь к базе при промахе.
// Ошибки кэша не прерывают чтение.
type DepartmentDirectory struct {
	repo  repositories.DepartmentRepository
	cache cache.DepartmentCache
}

// NewDepartmentDirectory создает справочник подразделений.
func NewDepartmentDirectory(repo repositories.DepartmentRepository, c cache.DepartmentCache) *DepartmentDirectory {
	return &DepartmentDirectory{repo: repo, cache: c}
}

var _ services.DepartmentDirectory = (*DepartmentDirectory)(nil)

// LookupDepartment возвращает активное подразделение по ID.
func (d *DepartmentDirectory) LookupDepartment(ctx context.Context, departmentID string) (*entities.Department, error) {
	log := logger.Log(ctx).With(zap.String("method", "DepartmentDirectory.LookupDepartment"),
		zap.String("departmentID", departmentID))

	cached, err := d.cache.Get(ctx, departmentID)
	if err != nil {
		log.Warn(ctx, "department cache unavailable, reading from database", zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	department, err := d.repo.FindByID(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to lookup department: %w", err)
	}

	if err := d.cache.Set(ctx, department); err != nil {
		log.Warn(ctx, "failed to cache department", zap.Error(err))
	}

	return department, nil
}

// Invalidate удаляет подразделение из кэша.
func (d *DepartmentDirectory) Invalidate(ctx context.Context, departmentID string) error {
	if err := d.cache.Delete(ctx, departmentID); err != nil {
		return fmt.Errorf("failed to invalidate department: %w", err)
	}
	return nil
}

// Retire удаляет подразделение и вытесняет его из кэша.
func (d *DepartmentDirectory) Retire(ctx context.Context, departmentID, actorID string) error {
	if err := d.repo.Retire(ctx, departmentID, actorID); err != nil {
		return fmt.Errorf("failed to retire department: %w", err)
	}
	if err := d.Invalidate(ctx, departmentID); err != nil {
		logger.Log(ctx).Warn(ctx, "retired department stays cached until ttl", zap.Error(err))
	}
	return nil
}
