package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"visitlog/internal/visitors/domain/entities"
	"visitlog/internal/visitors/ports/repositories"
	"visitlog/internal/visitors/ports/services"
	"visitlog/pkg/logger"
)

// Ошибки уровня бизнес-логики.
var (
	ErrUnauthorized = errors.New("unauthorized access")
)

// VisitUseCase определяет пользователя по токену и выполняет операции с посещениями от его имени.
type VisitUseCase struct {
	coordinator  *VisitCoordinator
	visitors     repositories.VisitorRepository
	documents    repositories.DocumentRepository
	directory    services.DepartmentDirectory
	tokenService services.TokenService
}

// NewVisitUseCase создает новый экземпляр VisitUseCase.
func NewVisitUseCase(
	coordinator *VisitCoordinator,
	visitors repositories.VisitorRepository,
	documents repositories.DocumentRepository,
	directory services.DepartmentDirectory,
	tokenService services.TokenService,
) *VisitUseCase {
	return &VisitUseCase{
		coordinator:  coordinator,
		visitors:     visitors,
		documents:    documents,
		directory:    directory,
		tokenService: tokenService,
	}
}

// CreateVisit создает посещение от имени владельца токена.
func (uc *VisitUseCase) CreateVisit(
	ctx context.Context,
	token string,
	fields entities.VisitorFields,
	docType string,
	docFields entities.RawDocumentFields,
) (string, error) {
	actorID, err := uc.actor(ctx, token)
	if err != nil {
		return "", err
	}
	return uc.coordinator.CreateVisit(ctx, fields, docType, docFields, actorID)
}

// ReplaceVisit перезаписывает посещение от имени владельца токена.
func (uc *VisitUseCase) ReplaceVisit(
	ctx context.Context,
	token, visitorID string,
	fields entities.VisitorFields,
	docType string,
	docFields entities.RawDocumentFields,
) error {
	actorID, err := uc.actor(ctx, token)
	if err != nil {
		return err
	}
	return uc.coordinator.ReplaceVisit(ctx, visitorID, fields, docType, docFields, actorID)
}

// RetireVisit удаляет посещение от имени владельца токена.
func (uc *VisitUseCase) RetireVisit(ctx context.Context, token, visitorID string) error {
	actorID, err := uc.actor(ctx, token)
	if err != nil {
		return err
	}
	return uc.coordinator.RetireVisit(ctx, visitorID, actorID)
}

// GetVisit возвращает активное посещение в виде для отображения.
// Если подразделение не найдено, его название остается пустым.
func (uc *VisitUseCase) GetVisit(ctx context.Context, visitorID string) (*VisitView, error) {
	log := logger.Log(ctx).With(zap.String("method", "VisitUseCase.GetVisit"), zap.String("visitorID", visitorID))

	if err := validateID(visitorID); err != nil {
		return nil, err
	}

	visitor, err := uc.visitors.GetByID(ctx, visitorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get visitor: %w", err)
	}
	if visitor == nil {
		return nil, entities.ErrVisitorNotFound
	}

	record, err := uc.documents.GetActiveByVisitor(ctx, visitorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	var departmentName string
	department, err := uc.directory.LookupDepartment(ctx, visitor.DepartmentID)
	if err != nil {
		log.Warn(ctx, "department lookup failed", zap.String("departmentID", visitor.DepartmentID), zap.Error(err))
	} else if department != nil {
		departmentName = department.Name
	}

	return newVisitView(visitor, departmentName, record), nil
}

func (uc *VisitUseCase) actor(ctx context.Context, token string) (string, error) {
	actorID, err := uc.tokenService.ValidateAccessToken(ctx, token)
	if err != nil {
		logger.Log(ctx).Debug(ctx, "token rejected", zap.Error(err))
		return "", ErrUnauthorized
	}
	return actorID, nil
}
