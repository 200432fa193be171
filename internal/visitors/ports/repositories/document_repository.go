package repositories

import (
	"context"

	"visitlog/internal/visitors/domain/entities"
)

// DocumentRepository определяет операции с документами посетителей.
type DocumentRepository interface {
	Create(ctx context.Context, visitorID string, doc entities.Document, actorID string) (string, error)
	// LockActiveByVisitor блокирует активный документ посетителя. Возвращает nil, если документа нет.
	LockActiveByVisitor(ctx context.Context, visitorID string) (*entities.DocumentRef, error)
	Update(ctx context.Context, documentID string, doc entities.Document) error
	Delete(ctx context.Context, documentID string) error
	StampDeleted(ctx context.Context, documentID, actorID string) error
	SoftDelete(ctx context.Context, documentID string) error
	GetActiveByVisitor(ctx context.Context, visitorID string) (*entities.DocumentRecord, error)
}
