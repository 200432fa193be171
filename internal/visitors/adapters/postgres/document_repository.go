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

// DocumentRepository реализует интерфейс repositories.DocumentRepository.
type DocumentRepository struct {
	db Querier
}

// NewDocumentRepository создает новый репозиторий документов.
func NewDocumentRepository(db Querier) repositories.DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create сохраняет документ посетителя и возвращает его ID.
func (r *DocumentRepository) Create(ctx context.Context, visitorID string, doc entities.Document, actorID string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", "DocumentRepository.Create"))
	log.Debug(ctx, "creating document", zap.String("visitorID", visitorID), zap.String("type", string(doc.Type())))

	row := rowFromDocument(doc)
	args := append([]any{visitorID, row.Type}, row.variantArgs()...)
	args = append(args, actorID)

	var documentID string
	err := r.db.QueryRow(ctx,
		`INSERT INTO documents (visitor_id, type, `+variantColumns+`, created_by)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
         RETURNING id`,
		args...,
	).Scan(&documentID)

	if err != nil {
		log.Error(ctx, "failed to create document", zap.Error(err))
		return "", fmt.Errorf("failed to create document: %w", err)
	}

	log.Debug(ctx, "document created", zap.String("documentID", documentID))
	return documentID, nil
}

// LockActiveByVisitor блокирует активный документ посетителя. Возвращает nil, если документа нет.
func (r *DocumentRepository) LockActiveByVisitor(ctx context.Context, visitorID string) (*entities.DocumentRef, error) {
	log := logger.Log(ctx).With(zap.String("method", "DocumentRepository.LockActiveByVisitor"))
	log.Debug(ctx, "locking document", zap.String("visitorID", visitorID))

	var (
		ref     entities.DocumentRef
		docType string
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, type FROM documents WHERE visitor_id = $1 AND deleted_at IS NULL FOR UPDATE`,
		visitorID,
	).Scan(&ref.ID, &docType)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "visitor has no document", zap.String("visitorID", visitorID))
			return nil, nil
		}
		log.Error(ctx, "failed to lock document", zap.Error(err))
		return nil, fmt.Errorf("failed to lock document: %w", err)
	}

	ref.Type, err = entities.ParseDocumentType(docType)
	if err != nil {
		log.Error(ctx, "stored document has unknown type", zap.String("type", docType))
		return nil, fmt.Errorf("%w: %q", ErrUnknownStoredType, docType)
	}

	return &ref, nil
}

// Update перезаписывает все колонки вариантов. Колонки других вариантов обнуляются.
func (r *DocumentRepository) Update(ctx context.Context, documentID string, doc entities.Document) error {
	log := logger.Log(ctx).With(zap.String("method", "DocumentRepository.Update"))
	log.Debug(ctx, "updating document", zap.String("documentID", documentID))

	row := rowFromDocument(doc)
	args := append([]any{row.Type}, row.variantArgs()...)
	args = append(args, documentID)

	result, err := r.db.Exec(ctx,
		`UPDATE documents
         SET type = $1,
             passport_series = $2, passport_number = $3, passport_issue_date = $4,
             passport_issued_by = $5, passport_department_code = $6,
             license_series_number = $7, license_issue_date = $8, license_region = $9, license_issued_by = $10,
             other_document_name = $11, other_series_number = $12, other_series_number_original = $13,
             other_issue_date = $14, other_issued_by = $15,
             updated_at = NOW()
         WHERE id = $16 AND deleted_at IS NULL`,
		args...,
	)
	if err != nil {
		log.Error(ctx, "failed to update document", zap.Error(err))
		return fmt.Errorf("failed to update document: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "document not found")
		return entities.ErrDocumentNotFound
	}

	return nil
}

// Delete физически удаляет документ. Используется при смене варианта.
func (r *DocumentRepository) Delete(ctx context.Context, documentID string) error {
	log := logger.Log(ctx).With(zap.String("method", "DocumentRepository.Delete"))
	log.Debug(ctx, "deleting document", zap.String("documentID", documentID))

	result, err := r.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, documentID)
	if err != nil {
		log.Error(ctx, "failed to delete document", zap.Error(err))
		return fmt.Errorf("failed to delete document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return entities.ErrDocumentNotFound
	}

	return nil
}

// StampDeleted записывает пользователя, удаляющего документ.
func (r *DocumentRepository) StampDeleted(ctx context.Context, documentID, actorID string) error {
	log := logger.Log(ctx).With(zap.String("method", "DocumentRepository.StampDeleted"))
	log.Debug(ctx, "stamping document deletion", zap.String("documentID", documentID))

	result, err := r.db.Exec(ctx,
		`UPDATE documents SET deleted_by = $1 WHERE id = $2 AND deleted_at IS NULL`,
		actorID, documentID,
	)
	if err != nil {
		log.Error(ctx, "failed to stamp document deletion", zap.Error(err))
		return fmt.Errorf("failed to stamp document deletion: %w", err)
	}

	if result.RowsAffected() == 0 {
		return entities.ErrDocumentNotFound
	}

	return nil
}

// SoftDelete помечает документ удаленным.
func (r *DocumentRepository) SoftDelete(ctx context.Context, documentID string) error {
	log := logger.Log(ctx).With(zap.String("method", "DocumentRepository.SoftDelete"))
	log.Debug(ctx, "soft deleting document", zap.String("documentID", documentID))

	result, err := r.db.Exec(ctx,
		`UPDATE documents SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`,
		documentID,
	)
	if err != nil {
		log.Error(ctx, "failed to soft delete document", zap.Error(err))
		return fmt.Errorf("failed to soft delete document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return entities.ErrDocumentNotFound
	}

	return nil
}

// GetActiveByVisitor получает активный документ посетителя. Возвращает nil, если документа нет.
func (r *DocumentRepository) GetActiveByVisitor(ctx context.Context, visitorID string) (*entities.DocumentRecord, error) {
	log := logger.Log(ctx).With(zap.String("method", "DocumentRepository.GetActiveByVisitor"))
	log.Debug(ctx, "getting document", zap.String("visitorID", visitorID))

	var row documentRow
	err := r.db.QueryRow(ctx,
		`SELECT id, visitor_id, type, `+variantColumns+`,
                created_by, deleted_by, created_at, deleted_at
         FROM documents
         WHERE visitor_id = $1 AND deleted_at IS NULL`,
		visitorID,
	).Scan(row.scanDest()...)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "visitor has no document", zap.String("visitorID", visitorID))
			return nil, nil
		}
		log.Error(ctx, "failed to get document", zap.Error(err))
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	record, err := row.record()
	if err != nil {
		log.Error(ctx, "failed to map document", zap.Error(err))
		return nil, err
	}

	return record, nil
}
