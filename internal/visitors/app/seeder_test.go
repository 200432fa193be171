package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"visitlog/internal/visitors/app"
	"visitlog/internal/visitors/domain/entities"
)

var ErrDatabaseOperation = errors.New("database error")

type mockDepartmentRepository struct {
	mock.Mock
}

func (m *mockDepartmentRepository) FindByID(ctx context.Context, id string) (*entities.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Department), args.Error(1)
}

func (m *mockDepartmentRepository) List(ctx context.Context) ([]*entities.Department, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entities.Department), args.Error(1)
}

func (m *mockDepartmentRepository) Create(ctx context.Context, name, actor string) (string, error) {
	args := m.Called(ctx, name, actor)
	return args.String(0), args.Error(1)
}

func (m *mockDepartmentRepository) Retire(ctx context.Context, id, actor string) error {
	return m.Called(ctx, id, actor).Error(0)
}

func TestSeeder_Seed(t *testing.T) {
	ctx := context.Background()

	t.Run("departments and visitors of every variant", func(t *testing.T) {
		store := newMemStore()
		departments := new(mockDepartmentRepository)
		for i := range 15 {
			departments.On("Create", mock.Anything, mock.AnythingOfType("string"), "system").
				Return(fmt.Sprintf("00000000-0000-4000-8000-%012d", i), nil).Once()
		}

		result, err := app.NewSeeder(departments, app.NewVisitCoordinator(store), 1).Seed(ctx, "system", 15, 10)

		require.NoError(t, err)
		assert.Equal(t, 15, result.Departments)
		assert.Equal(t, 30, result.Visitors)
		departments.AssertExpectations(t)

		counts := map[entities.DocumentType]int{}
		for _, d := range store.state.documents {
			counts[d.Document.Type()]++
			assert.Equal(t, "system", *d.CreatedBy)
		}
		assert.Equal(t, map[entities.DocumentType]int{
			entities.DocumentPassport: 10,
			entities.DocumentLicense:  10,
			entities.DocumentOther:    10,
		}, counts)

		for _, v := range store.state.visitors {
			assert.True(t, v.EntryAt.Before(v.ExitAt))
			assert.Len(t, v.Phone, 11)
		}
	})

	t.Run("department failure stops seeding", func(t *testing.T) {
		store := newMemStore()
		departments := new(mockDepartmentRepository)
		departments.On("Create", mock.Anything, mock.Anything, "system").Return("", ErrDatabaseOperation).Once()

		result, err := app.NewSeeder(departments, app.NewVisitCoordinator(store), 1).Seed(ctx, "system", 3, 5)

		assert.Nil(t, result)
		require.ErrorIs(t, err, ErrDatabaseOperation)
		assert.Zero(t, store.txCount)
	})

	t.Run("visitor failure is reported", func(t *testing.T) {
		store := newMemStore()
		store.failOn = "documents.Create"
		departments := new(mockDepartmentRepository)
		departments.On("Create", mock.Anything, mock.Anything, "system").Return(departmentID, nil)

		_, err := app.NewSeeder(departments, app.NewVisitCoordinator(store), 1).Seed(ctx, "system", 1, 2)

		require.ErrorIs(t, err, entities.ErrTransactionFailed)
		assert.Empty(t, store.state.visitors)
	})

	t.Run("nothing to seed", func(t *testing.T) {
		result, err := app.NewSeeder(new(mockDepartmentRepository), app.NewVisitCoordinator(newMemStore()), 1).
			Seed(ctx, "system", 0, 100)

		require.NoError(t, err)
		assert.Equal(t, &app.SeedResult{}, result)
	})
}
