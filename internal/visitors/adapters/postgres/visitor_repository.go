package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"visitlog/internal/visitors/domain/entities"
	"visitlog/internal/visitors/ports/repositories"
	"visitlog/pkg/logger"
)

// VisitorRepository реализует интерфейс repositories.VisitorRepository.
type VisitorRepository struct {
	db Querier
}

// NewVisitorRepository создает новый репозиторий посетителей.
func NewVisitorRepository(db Querier) repositories.VisitorRepository {
	return &VisitorRepository{db: db}
}

// Create сохраняет нового посетителя и возвращает его ID.
func (r *VisitorRepository) Create(ctx context.Context, v *entities.Visitor, actorID string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", "VisitorRepository.Create"))
	log.Debug(ctx, "creating new visitor", zap.String("departmentID", v.DepartmentID))

	var visitorID string
	err := r.db.QueryRow(ctx,
		`INSERT INTO visitors (full_name, department_id, birth_date, position, phone,
                       entry_datetime, exit_datetime, remarks, created_by, updated_by)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
         RETURNING id`,
		v.FullName, v.DepartmentID, v.BirthDate, v.Position, v.Phone,
		v.EntryAt, v.ExitAt, v.Remarks, actorID,
	).Scan(&visitorID)

	if err != nil {
		log.Error(ctx, "failed to create visitor", zap.Error(err))
		return "", fmt.Errorf("failed to create visitor: %w", err)
	}

	log.Debug(ctx, "visitor created", zap.String("visitorID", visitorID))
	return visitorID, nil
}

// LockActive блокирует строку активного посетителя до конца транзакции.
func (r *VisitorRepository) LockActive(ctx context.Context, visitorID string) error {
	log := logger.Log(ctx).With(zap.String("method", "VisitorRepository.LockActive"))
	log.Debug(ctx, "locking visitor", zap.String("visitorID", visitorID))

	var id string
	err := r.db.QueryRow(ctx,
		`SELECT id FROM visitors WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`,
		visitorID,
	).Scan(&id)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "visitor not found", zap.String("visitorID", visitorID))
			return entities.ErrVisitorNotFound
		}
		log.Error(ctx, "failed to lock visitor", zap.Error(err))
		return fmt.Errorf("failed to lock visitor: %w", err)
	}

	return nil
}

// Update перезаписывает изменяемые поля активного посетителя.
func (r *VisitorRepository) Update(ctx context.Context, v *entities.Visitor, actorID string) error {
	log := logger.Log(ctx).With(zap.String("method", "VisitorRepository.Update"))
	log.Debug(ctx, "updating visitor", zap.String("visitorID", v.ID))

	result, err := r.db.Exec(ctx,
		`UPDATE visitors
         SET full_name = $1, department_id = $2, birth_date = $3, position = $4, phone = $5,
             entry_datetime = $6, exit_datetime = $7, remarks = $8, updated_by = $9, updated_at = NOW()
         WHERE id = $10 AND deleted_at IS NULL`,
		v.FullName, v.DepartmentID, v.BirthDate, v.Position, v.Phone,
		v.EntryAt, v.ExitAt, v.Remarks, actorID, v.ID,
	)
	if err != nil {
		log.Error(ctx, "failed to update visitor", zap.Error(err))
		return fmt.Errorf("failed to update visitor: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "visitor not found")
		return entities.ErrVisitorNotFound
	}

	return nil
}

// StampDeleted записывает пользователя, удаляющего посетителя.
func (r *VisitorRepository) StampDeleted(ctx context.Context, visitorID, actorID string) error {
	log := logger.Log(ctx).With(zap.String("method", "VisitorRepository.StampDeleted"))
	log.Debug(ctx, "stamping visitor deletion", zap.String("visitorID", visitorID))

	result, err := r.db.Exec(ctx,
		`UPDATE visitors SET deleted_by = $1 WHERE id = $2 AND deleted_at IS NULL`,
		actorID, visitorID,
	)
	if err != nil {
		log.Error(ctx, "failed to stamp visitor deletion", zap.Error(err))
		return fmt.Errorf("failed to stamp visitor deletion: %w", err)
	}

	if result.RowsAffected() == 0 {
		return entities.ErrVisitorNotFound
	}

	return nil
}

// SoftDelete помечает посетителя удаленным.
func (r *VisitorRepository) SoftDelete(ctx context.Context, visitorID string) error {
	log := logger.Log(ctx).With(zap.String("method", "VisitorRepository.SoftDelete"))
	log.Debug(ctx, "soft deleting visitor", zap.String("visitorID", visitorID))

	result, err := r.db.Exec(ctx,
		`UPDATE visitors SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`,
		visitorID,
	)
	if err != nil {
		log.Error(ctx, "failed to soft delete visitor", zap.Error(err))
		return fmt.Errorf("failed to soft delete visitor: %w", err)
	}

	if result.RowsAffected() == 0 {
		return entities.ErrVisitorNotFound
	}

	return nil
}

// GetByID получает активного посетителя по ID. Возвращает nil, если посетитель не найден.
func (r *VisitorRepository) GetByID(ctx context.Context, visitorID string) (*entities.Visitor, error) {
	log := logger.Log(ctx).With(zap.String("method", "VisitorRepository.GetByID"))
	log.Debug(ctx, "getting visitor", zap.String("visitorID", visitorID))

	var v entities.Visitor
	err := r.db.QueryRow(ctx,
		`SELECT id, full_name, department_id, birth_date, position, phone, entry_datetime, exit_datetime,
                remarks, created_by, updated_by, deleted_by, created_at, updated_at, deleted_at
         FROM visitors
         WHERE id = $1 AND deleted_at IS NULL`,
		visitorID,
	).Scan(&v.ID, &v.FullName, &v.DepartmentID, &v.BirthDate, &v.Position, &v.Phone, &v.EntryAt, &v.ExitAt,
		&v.Remarks, &v.CreatedBy, &v.UpdatedBy, &v.DeletedBy, &v.CreatedAt, &v.UpdatedAt, &v.DeletedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "visitor not found", zap.String("visitorID", visitorID))
			return nil, nil
		}
		log.Error(ctx, "failed to get visitor", zap.Error(err))
		return nil, fmt.Errorf("failed to get visitor: %w", err)
	}

	return &v, nil
}
