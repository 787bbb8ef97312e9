package services

import (
	"context"
	"testing"

	"github.com/sednex/community-backend/internal/models"
	"github.com/sednex/community-backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategory(t *testing.T) {
	svc := NewCategoryService(setupTestDB(t))
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, Fields{"name": " Outdoor Gear ", "description": "tents"})
	require.NoError(t, err)
	assert.Equal(t, "Outdoor Gear", category.Name)
	assert.Equal(t, "outdoor-gear", category.Slug)
	assert.True(t, category.IsActive)

	_, err = svc.CreateCategory(ctx, Fields{"name": "Outdoor Gear"})
	requireKind(t, err, types.KindConflict, "Category already exists")

	_, err = svc.CreateCategory(ctx, Fields{"name": "outdoor gear"})
	requireKind(t, err, types.KindConflict, "Category slug must be unique")

	_, err = svc.CreateCategory(ctx, Fields{"name": ""})
	requireKind(t, err, types.KindBadRequest, "Category name is required")
}

func TestListCategoriesSkipsInactive(t *testing.T) {
	svc := NewCategoryService(setupTestDB(t))
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, Fields{"name": "Books"})
	require.NoError(t, err)
	archived, err := svc.CreateCategory(ctx, Fields{"name": "Archive", "isActive": false})
	require.NoError(t, err)
	assert.False(t, archived.IsActive)

	var stored models.Category
	require.NoError(t, svc.db.First(&stored, "id = ?", archived.ID).Error)
	assert.False(t, stored.IsActive)

	active, err := svc.ListCategories(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Books", active[0].Name)

	all, err := svc.ListCategories(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Archive", all[0].Name)

	_, err = svc.ResolveCategory(ctx, "archive")
	requireKind(t, err, types.KindNotFound, "Category not found")
}

func TestResolveCategory(t *testing.T) {
	svc := NewCategoryService(setupTestDB(t))
	ctx := context.Background()
	category, err := svc.CreateCategory(ctx, Fields{"name": "Kitchen & Dining"})
	require.NoError(t, err)

	for _, input := range []string{
		category.ID.String(),
		"kitchen-dining",
		"KITCHEN-DINING",
		"kitchen & dining",
	} {
		found, err := svc.ResolveCategory(ctx, input)
		require.NoError(t, err, input)
		assert.Equal(t, category.ID, found.ID, input)
	}

	for _, input := range []string{"", "garden", "00000000-0000-0000-0000-000000000000"} {
		_, err := svc.ResolveCategory(ctx, input)
		requireKind(t, err, types.KindNotFound, "Category not found")
	}
}
