// Package repositories defines repository interfaces for the visitors service.
package repositories

import (
	"context"

	"visitlog/internal/visitors/domain/entities"
)

// VisitorRepository определяет операции с записями посетителей.
type VisitorRepository interface {
	Create(ctx context.Context, visitor *entities.Visitor, actorID string) (string, error)
	// LockActive блокирует активную запись до конца транзакции.
	LockActive(ctx context.Context, visitorID string) error
	Update(ctx context.Context, visitor *entities.Visitor, actorID string) error
	StampDeleted(ctx context.Context, visitorID, actorID string) error
	SoftDelete(ctx context.Context, visitorID string) error
	GetByID(ctx context.Context, visitorID string) (*entities.Visitor, error)
}
