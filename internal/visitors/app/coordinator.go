// Package app implements application business logic for the visitors service.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"visitlog/internal/visitors/domain/entities"
	"visitlog/internal/visitors/ports/repositories"
	"visitlog/pkg/logger"
)

// VisitCoordinator изменяет посетителя и его документ как одно целое.
// Каждая операция выполняется в отдельной транзакции; проверка входных данных
// выполняется до ее открытия.
type VisitCoordinator struct {
	transactor repositories.Transactor
}

// NewVisitCoordinator создает новый экземпляр VisitCoordinator.
func NewVisitCoordinator(transactor repositories.Transactor) *VisitCoordinator {
	return &VisitCoordinator{transactor: transactor}
}

// CreateVisit создает посетителя и его документ. Возвращает ID посетителя.
func (c *VisitCoordinator) CreateVisit(
	ctx context.Context,
	fields entities.VisitorFields,
	docType string,
	docFields entities.RawDocumentFields,
	actorID string,
) (string, error) {
	visitor, doc, err := prepare(fields, docType, docFields, actorID)
	if err != nil {
		return "", err
	}

	ctx = logger.NewActorContext(ctx, actorID)
	log := logger.Log(ctx).With(zap.String("method", "VisitCoordinator.CreateVisit"))
	log.Debug(ctx, "creating visit", zap.String("documentType", string(doc.Type())))

	var visitorID string
	err = c.transactor.RunInTx(ctx, func(ctx context.Context, repos repositories.TxRepositories) error {
		id, err := repos.Visitors().Create(ctx, visitor, actorID)
		if err != nil {
			return err
		}
		if _, err := repos.Documents().Create(ctx, id, doc, actorID); err != nil {
			return err
		}
		visitorID = id
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to create visit: %w", err)
	}

	log.Info(ctx, "visit created", zap.String("visitorID", visitorID))
	return visitorID, nil
}

// ReplaceVisit перезаписывает поля посетителя и приводит его документ к заявленному варианту.
// Документ того же варианта обновляется на месте, документ другого варианта
// удаляется и создается заново.
func (c *VisitCoordinator) ReplaceVisit(
	ctx context.Context,
	visitorID string,
	fields entities.VisitorFields,
	docType string,
	docFields entities.RawDocumentFields,
	actorID string,
) error {
	if err := validateID(visitorID); err != nil {
		return err
	}
	visitor, doc, err := prepare(fields, docType, docFields, actorID)
	if err != nil {
		return err
	}
	visitor.ID = visitorID

	ctx = logger.NewActorContext(ctx, actorID)
	log := logger.Log(ctx).With(zap.String("method", "VisitCoordinator.ReplaceVisit"), zap.String("visitorID", visitorID))
	log.Debug(ctx, "replacing visit", zap.String("documentType", string(doc.Type())))

	err = c.transactor.RunInTx(ctx, func(ctx context.Context, repos repositories.TxRepositories) error {
		if err := repos.Visitors().LockActive(ctx, visitorID); err != nil {
			return err
		}
		if err := repos.Visitors().Update(ctx, visitor, actorID); err != nil {
			return err
		}

		current, err := repos.Documents().LockActiveByVisitor(ctx, visitorID)
		if err != nil {
			return err
		}

		switch {
		case current == nil:
			_, err = repos.Documents().Create(ctx, visitorID, doc, actorID)
		case current.Type == doc.Type():
			err = repos.Documents().Update(ctx, current.ID, doc)
		default:
			if err := repos.Documents().Delete(ctx, current.ID); err != nil {
				return err
			}
			_, err = repos.Documents().Create(ctx, visitorID, doc, actorID)
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to replace visit: %w", err)
	}

	log.Info(ctx, "visit replaced")
	return nil
}

// RetireVisit помечает удаленными документ и посетителя, записывая удалившего пользователя.
func (c *VisitCoordinator) RetireVisit(ctx context.Context, visitorID, actorID string) error {
	if err := validateID(visitorID); err != nil {
		return err
	}
	if strings.TrimSpace(actorID) == "" {
		return entities.ErrMissingActor
	}

	ctx = logger.NewActorContext(ctx, actorID)
	log := logger.Log(ctx).With(zap.String("method", "VisitCoordinator.RetireVisit"), zap.String("visitorID", visitorID))
	log.Debug(ctx, "retiring visit")

	err := c.transactor.RunInTx(ctx, func(ctx context.Context, repos repositories.TxRepositories) error {
		if err := repos.Visitors().LockActive(ctx, visitorID); err != nil {
			return err
		}

		current, err := repos.Documents().LockActiveByVisitor(ctx, visitorID)
		if err != nil {
			return err
		}
		if current != nil {
			if err := repos.Documents().StampDeleted(ctx, current.ID, actorID); err != nil {
				return err
			}
			if err := repos.Documents().SoftDelete(ctx, current.ID); err != nil {
				return err
			}
		}

		if err := repos.Visitors().StampDeleted(ctx, visitorID, actorID); err != nil {
			return err
		}
		return repos.Visitors().SoftDelete(ctx, visitorID)
	})
	if err != nil {
		return fmt.Errorf("failed to retire visit: %w", err)
	}

	log.Info(ctx, "visit retired")
	return nil
}

func prepare(
	fields entities.VisitorFields,
	docType string,
	docFields entities.RawDocumentFields,
	actorID string,
) (*entities.Visitor, entities.Document, error) {
	if strings.TrimSpace(actorID) == "" {
		return nil, nil, entities.ErrMissingActor
	}
	doc, err := entities.SelectVariant(docType, docFields)
	if err != nil {
		return nil, nil, err
	}
	visitor, err := entities.NewVisitor(fields)
	if err != nil {
		return nil, nil, err
	}
	return visitor, doc, nil
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", entities.ErrInvalidID, id)
	}
	return nil
}
