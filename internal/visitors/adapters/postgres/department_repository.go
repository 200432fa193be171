package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"visitlog/internal/visitors/domain/entities"
	"visitlog/internal/visitors/ports/repositories"
	pgdb "visitlog/pkg/db/postgres"
	"visitlog/pkg/logger"
)

// DepartmentRepository реализует интерфейс repositories.DepartmentRepository.
type DepartmentRepository struct {
	db Pool
}

// NewDepartmentRepository создает новый репозиторий подразделений.
func NewDepartmentRepository(db Pool) repositories.DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// FindByID получает активное подразделение по ID.
func (r *DepartmentRepository) FindByID(ctx context.Context, departmentID string) (*entities.Department, error) {
	log := logger.Log(ctx).With(zap.String("method", "DepartmentRepository.FindByID"))
	log.Debug(ctx, "getting department", zap.String("departmentID", departmentID))

	var d entities.Department
	err := r.db.QueryRow(ctx,
		`SELECT id, name, created_by, deleted_by, deleted_at
         FROM departments
         WHERE id = $1 AND deleted_at IS NULL`,
		departmentID,
	).Scan(&d.ID, &d.Name, &d.CreatedBy, &d.DeletedBy, &d.DeletedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "department not found", zap.String("departmentID", departmentID))
			return nil, entities.ErrDepartmentNotFound
		}
		log.Error(ctx, "failed to get department", zap.Error(err))
		return nil, fmt.Errorf("failed to get department: %w", err)
	}

	return &d, nil
}

// List возвращает активные подразделения, упорядоченные по названию.
func (r *DepartmentRepository) List(ctx context.Context) ([]*entities.Department, error) {
	log := logger.Log(ctx).With(zap.String("method", "DepartmentRepository.List"))
	log.Debug(ctx, "listing departments")

	rows, err := r.db.Query(ctx,
		`SELECT id, name, created_by, deleted_by, deleted_at
         FROM departments
         WHERE deleted_at IS NULL
         ORDER BY name`,
	)
	if err != nil {
		log.Error(ctx, "failed to list departments", zap.Error(err))
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	departments := make([]*entities.Department, 0)
	for rows.Next() {
		var d entities.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedBy, &d.DeletedBy, &d.DeletedAt); err != nil {
			log.Error(ctx, "failed to scan department", zap.Error(err))
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, &d)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return departments, nil
}

// Create сохраняет новое подразделение.
func (r *DepartmentRepository) Create(ctx context.Context, name, actorID string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", "DepartmentRepository.Create"))
	log.Debug(ctx, "creating department", zap.String("name", name))

	var departmentID string
	err := r.db.QueryRow(ctx,
		`INSERT INTO departments (name, created_by) VALUES ($1, $2) RETURNING id`,
		name, actorID,
	).Scan(&departmentID)

	if err != nil {
		log.Error(ctx, "failed to create department", zap.Error(err))
		return "", fmt.Errorf("failed to create department: %w", err)
	}

	return departmentID, nil
}

// Retire записывает удаляющего пользователя и помечает подразделение удаленным в одной транзакции.
func (r *DepartmentRepository) Retire(ctx context.Context, departmentID, actorID string) error {
	log := logger.Log(ctx).With(zap.String("method", "DepartmentRepository.Retire"))
	log.Debug(ctx, "retiring department", zap.String("departmentID", departmentID))

	err := pgdb.RunInTx(ctx, r.db, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(ctx context.Context, tx pgx.Tx) error {
		result, err := tx.Exec(ctx,
			`UPDATE departments SET deleted_by = $1 WHERE id = $2 AND deleted_at IS NULL`,
			actorID, departmentID,
		)
		if err != nil {
			return fmt.Errorf("failed to stamp department deletion: %w", err)
		}
		if result.RowsAffected() == 0 {
			return entities.ErrDepartmentNotFound
		}

		if _, err := tx.Exec(ctx,
			`UPDATE departments SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`,
			departmentID,
		); err != nil {
			return fmt.Errorf("failed to soft delete department: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error(ctx, "failed to retire department", zap.Error(err))
		return err
	}

	return nil
}
