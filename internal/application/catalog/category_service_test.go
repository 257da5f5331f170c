package catalog

import (
	"context"
	"testing"

	"github.com/ecoharvest/backend/internal/domain/catalog"
	"github.com/ecoharvest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCategoryFixture(t *testing.T) (*CategoryService, *MockCategoryRepository, *MockProductRepository) {
	t.Helper()
	categories := new(MockCategoryRepository)
	products := new(MockProductRepository)
	return NewCategoryService(categories, products, nil), categories, products
}

func TestCategoryService_Create(t *testing.T) {
	t.Run("creates a category", func(t *testing.T) {
		svc, categories, _ := newCategoryFixture(t)

		categories.On("Save", mock.Anything, mock.MatchedBy(func(c *catalog.Category) bool {
			return c.Name == "Vegetables"
		})).Return(nil)

		resp, err := svc.Create(context.Background(), CreateCategoryRequest{Name: "Vegetables"})
		require.NoError(t, err)
		assert.Equal(t, "Vegetables", resp.Name)
	})

	t.Run("rejects a blank name", func(t *testing.T) {
		svc, categories, _ := newCategoryFixture(t)

		_, err := svc.Create(context.Background(), CreateCategoryRequest{})
		assert.Error(t, err)
		categories.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCategoryService_Update(t *testing.T) {
	svc, categories, _ := newCategoryFixture(t)
	category, err := catalog.NewCategory("Vegetables", "")
	require.NoError(t, err)

	categories.On("FindByID", mock.Anything, category.ID).Return(category, nil)
	categories.On("Save", mock.Anything, category).Return(nil)

	resp, err := svc.Update(context.Background(), category.ID, UpdateCategoryRequest{
		Name:        "Leafy Greens",
		Description: "Kale, chard and friends",
	})
	require.NoError(t, err)
	assert.Equal(t, "Leafy Greens", resp.Name)
	assert.Equal(t, "Kale, chard and friends", resp.Description)
}

func TestCategoryService_Delete(t *testing.T) {
	t.Run("deletes an existing category", func(t *testing.T) {
		svc, categories, _ := newCategoryFixture(t)
		category, err := catalog.NewCategory("Vegetables", "")
		require.NoError(t, err)

		categories.On("FindByID", mock.Anything, category.ID).Return(category, nil)
		categories.On("Delete", mock.Anything, category.ID).Return(nil)

		require.NoError(t, svc.Delete(context.Background(), category.ID))
		categories.AssertExpectations(t)
	})

	t.Run("missing category is reported", func(t *testing.T) {
		svc, categories, _ := newCategoryFixture(t)
		id := uuid.New()

		categories.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		err := svc.Delete(context.Background(), id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		categories.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestCategoryService_List(t *testing.T) {
	svc, categories, _ := newCategoryFixture(t)
	category, err := catalog.NewCategory("Vegetables", "")
	require.NoError(t, err)

	categories.On("FindAll", mock.Anything, mock.MatchedBy(func(filter shared.Filter) bool {
		return filter.Page == 1 && filter.PageSize == 50
	})).Return([]catalog.Category{*category}, nil)
	categories.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

	list, total, err := svc.List(context.Background(), shared.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "Vegetables", list[0].Name)
}
