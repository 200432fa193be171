package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"visitlog/internal/visitors/app"
	"visitlog/internal/visitors/domain/entities"
	"visitlog/internal/visitors/ports/services"
)

var ErrDirectoryDown = errors.New("directory unavailable")

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) ValidateAccessToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

type mockDirectory struct {
	mock.Mock
}

func (m *mockDirectory) LookupDepartment(ctx context.Context, id string) (*entities.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Department), args.Error(1)
}

func newUseCase(store *memStore, dir *mockDirectory, tokens *mockTokenService) *app.VisitUseCase {
	reads := store.readRepos()
	return app.NewVisitUseCase(app.NewVisitCoordinator(store), reads.Visitors(), reads.Documents(), dir, tokens)
}

func TestVisitUseCase_Mutations(t *testing.T) {
	ctx := context.Background()

	t.Run("token owner becomes the actor", func(t *testing.T) {
		store := newMemStore()
		tokens := new(mockTokenService)
		tokens.On("ValidateAccessToken", mock.Anything, "valid-token").Return("user-7", nil)
		uc := newUseCase(store, new(mockDirectory), tokens)

		id, err := uc.CreateVisit(ctx, "valid-token", visitorFields(), "passport", passportFields())
		require.NoError(t, err)

		v, _ := store.visitor(id)
		assert.Equal(t, "user-7", *v.CreatedBy)

		require.NoError(t, uc.ReplaceVisit(ctx, "valid-token", id, visitorFields(), "license", licenseFields()))
		require.NoError(t, uc.RetireVisit(ctx, "valid-token", id))

		v, _ = store.visitor(id)
		require.NotNil(t, v.DeletedBy)
		assert.Equal(t, "user-7", *v.DeletedBy)
		tokens.AssertExpectations(t)
	})

	t.Run("invalid token", func(t *testing.T) {
		store := newMemStore()
		tokens := new(mockTokenService)
		tokens.On("ValidateAccessToken", mock.Anything, "bad-token").Return("", services.ErrInvalidJWTToken)
		uc := newUseCase(store, new(mockDirectory), tokens)

		_, err := uc.CreateVisit(ctx, "bad-token", visitorFields(), "passport", passportFields())
		require.ErrorIs(t, err, app.ErrUnauthorized)

		require.ErrorIs(t, uc.ReplaceVisit(ctx, "bad-token", missingID, visitorFields(), "passport", passportFields()), app.ErrUnauthorized)
		require.ErrorIs(t, uc.RetireVisit(ctx, "bad-token", missingID), app.ErrUnauthorized)
		assert.Zero(t, store.txCount)
	})
}

func TestVisitUseCase_GetVisit(t *testing.T) {
	ctx := context.Background()
	tokens := new(mockTokenService)

	t.Run("display forms with department name", func(t *testing.T) {
		store := newMemStore()
		id := createVisit(t, app.NewVisitCoordinator(store), "passport", passportFields())
		dir := new(mockDirectory)
		dir.On("LookupDepartment", mock.Anything, departmentID).
			Return(&entities.Department{ID: departmentID, Name: "Бухгалтерия"}, nil)

		view, err := newUseCase(store, dir, tokens).GetVisit(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, "Иванов Иван", view.FullName)
		assert.Equal(t, "Бухгалтерия", view.DepartmentName)
		assert.Equal(t, "89123456789", view.Phone)
		require.NotNil(t, view.Document)
		assert.Equal(t, "Паспорт", view.Document.Label)
		assert.Equal(t, "45 12", view.Document.Series)
		assert.Equal(t, "770-001", view.Document.DepartmentCode)
		dir.AssertExpectations(t)
	})

	t.Run("formatted phone and license", func(t *testing.T) {
		store := newMemStore()
		fields := visitorFields()
		fields.Phone = "+7 912 345 67 89"
		id, err := app.NewVisitCoordinator(store).CreateVisit(ctx, fields, "license", licenseFields(), actorID)
		require.NoError(t, err)
		dir := new(mockDirectory)
		dir.On("LookupDepartment", mock.Anything, departmentID).Return(nil, ErrDirectoryDown)

		view, err := newUseCase(store, dir, tokens).GetVisit(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, "7(912)345-67-89", view.Phone)
		assert.Empty(t, view.DepartmentName)
		assert.Equal(t, "Водительское удостоверение", view.Document.Label)
		assert.Equal(t, "77 01 123456", view.Document.SeriesNumber)
	})

	t.Run("other document shows original series number", func(t *testing.T) {
		store := newMemStore()
		id := createVisit(t, app.NewVisitCoordinator(store), "other", entities.RawDocumentFields{OtherSeriesNumber: "АБ-1234567"})
		dir := new(mockDirectory)
		dir.On("LookupDepartment", mock.Anything, departmentID).Return(nil, entities.ErrDepartmentNotFound)

		view, err := newUseCase(store, dir, tokens).GetVisit(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, "Другой документ", view.Document.Label)
		assert.Equal(t, "АБ-1234567", view.Document.SeriesNumber)
	})

	t.Run("retired visitor", func(t *testing.T) {
		store := newMemStore()
		c := app.NewVisitCoordinator(store)
		id := createVisit(t, c, "passport", passportFields())
		require.NoError(t, c.RetireVisit(ctx, id, actorID))

		view, err := newUseCase(store, new(mockDirectory), tokens).GetVisit(ctx, id)

		assert.Nil(t, view)
		require.ErrorIs(t, err, entities.ErrVisitorNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := newUseCase(newMemStore(), new(mockDirectory), tokens).GetVisit(ctx, "not-a-uuid")
		require.ErrorIs(t, err, entities.ErrInvalidID)
	})
}
