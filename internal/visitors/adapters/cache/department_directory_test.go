package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"visitlog/internal/visitors/adapters/cache"
	"visitlog/internal/visitors/domain/entities"
)

const departmentID = "8c6f1a9e-5d2b-4c1e-9a4f-0b7e2d3c4a51"

type mockDepartmentRepository struct {
	mock.Mock
}

func (m *mockDepartmentRepository) FindByID(ctx context.Context, id string) (*entities.Department, error) {
	args := m.Called(ctx, id)
	if d := args.Get(0); d != nil {
		return d.(*entities.Department), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDepartmentRepository) List(ctx context.Context) ([]*entities.Department, error) {
	args := m.Called(ctx)
	if l := args.Get(0); l != nil {
		return l.([]*entities.Department), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDepartmentRepository) Create(ctx context.Context, name, actorID string) (string, error) {
	args := m.Called(ctx, name, actorID)
	return args.String(0), args.Error(1)
}

func (m *mockDepartmentRepository) Retire(ctx context.Context, id, actorID string) error {
	return m.Called(ctx, id, actorID).Error(0)
}

func setup(t *testing.T) (*miniredis.Miniredis, *cache.RedisDepartmentCache, *mockDepartmentRepository, *cache.DepartmentDirectory) {
	t.Helper()
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	c := cache.NewRedisDepartmentCache(client, 10*time.Minute)
	repo := &mockDepartmentRepository{}
	return s, c, repo, cache.NewDepartmentDirectory(repo, c)
}

func TestDepartmentDirectory_LookupDepartment(t *testing.T) {
	ctx := context.Background()
	department := &entities.Department{ID: departmentID, Name: "Бухгалтерия"}

	t.Run("miss reads database and fills cache", func(t *testing.T) {
		s, _, repo, dir := setup(t)
		repo.On("FindByID", mock.Anything, departmentID).Return(department, nil).Once()

		got, err := dir.LookupDepartment(ctx, departmentID)

		require.NoError(t, err)
		assert.Equal(t, "Бухгалтерия", got.Name)
		assert.True(t, s.Exists(cache.Key(departmentID)))
		assert.Equal(t, 10*time.Minute, s.TTL(cache.Key(departmentID)))
		repo.AssertExpectations(t)
	})

	t.Run("hit skips database", func(t *testing.T) {
		_, c, repo, dir := setup(t)
		require.NoError(t, c.Set(ctx, department))

		got, err := dir.LookupDepartment(ctx, departmentID)

		require.NoError(t, err)
		assert.Equal(t, department, got)
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("redis outage falls through to database", func(t *testing.T) {
		s, _, repo, dir := setup(t)
		s.Close()
		repo.On("FindByID", mock.Anything, departmentID).Return(department, nil).Once()

		got, err := dir.LookupDepartment(ctx, departmentID)

		require.NoError(t, err)
		assert.Equal(t, "Бухгалтерия", got.Name)
		repo.AssertExpectations(t)
	})

	t.Run("corrupt cache entry is ignored", func(t *testing.T) {
		s, _, repo, dir := setup(t)
		require.NoError(t, s.Set(cache.Key(departmentID), "{not json"))
		repo.On("FindByID", mock.Anything, departmentID).Return(department, nil).Once()

		got, err := dir.LookupDepartment(ctx, departmentID)

		require.NoError(t, err)
		assert.Equal(t, "Бухгалтерия", got.Name)
	})

	t.Run("unknown department", func(t *testing.T) {
		s, _, repo, dir := setup(t)
		repo.On("FindByID", mock.Anything, departmentID).Return(nil, entities.ErrDepartmentNotFound).Once()

		got, err := dir.LookupDepartment(ctx, departmentID)

		assert.Nil(t, got)
		require.ErrorIs(t, err, entities.ErrDepartmentNotFound)
		assert.False(t, s.Exists(cache.Key(departmentID)))
	})
}

func TestDepartmentDirectory_Retire(t *testing.T) {
	ctx := context.Background()
	s, c, repo, dir := setup(t)
	require.NoError(t, c.Set(ctx, &entities.Department{ID: departmentID, Name: "Охрана"}))
	repo.On("Retire", mock.Anything, departmentID, "user-42").Return(nil).Once()

	require.NoError(t, dir.Retire(ctx, departmentID, "user-42"))

	assert.False(t, s.Exists(cache.Key(departmentID)))
	repo.AssertExpectations(t)
}

func TestDepartmentDirectory_RetireFailureKeepsCache(t *testing.T) {
	ctx := context.Background()
	s, c, repo, dir := setup(t)
	require.NoError(t, c.Set(ctx, &entities.Department{ID: departmentID, Name: "Охрана"}))
	repo.On("Retire", mock.Anything, departmentID, "user-42").Return(entities.ErrDepartmentNotFound).Once()

	err := dir.Retire(ctx, departmentID, "user-42")

	require.ErrorIs(t, err, entities.ErrDepartmentNotFound)
	assert.True(t, s.Exists(cache.Key(departmentID)))
}

func TestRedisDepartmentCache(t *testing.T) {
	ctx := context.Background()
	s, c, _, dir := setup(t)

	got, err := c.Get(ctx, departmentID)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, c.Set(ctx, &entities.Department{ID: departmentID, Name: "Охрана"}))
	assert.JSONEq(t, `{"id":"`+departmentID+`","name":"Охрана"}`, mustGet(t, s, cache.Key(departmentID)))

	require.NoError(t, dir.Invalidate(ctx, departmentID))
	assert.False(t, s.Exists(cache.Key(departmentID)))
}

func mustGet(t *testing.T, s *miniredis.Miniredis, key string) string {
	t.Helper()
	v, err := s.Get(key)
	require.NoError(t, err)
	return v
}
