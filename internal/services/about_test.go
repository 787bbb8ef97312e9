package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sednex/community-backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTermsLifecycle(t *testing.T) {
	svc := NewAboutService(setupTestDB(t))
	ctx := context.Background()

	_, err := svc.GetTerms(ctx)
	requireKind(t, err, types.KindNotFound, "Terms not found")

	_, err = svc.CreateTerms(ctx, Fields{"title": "Terms", "content": "Be kind"})
	requireKind(t, err, types.KindBadRequest, "Version is required")

	terms, err := svc.CreateTerms(ctx, Fields{"title": "Terms", "content": "Be kind", "version": "1.0"})
	require.NoError(t, err)
	assert.Equal(t, "1.0", terms.Version)

	_, err = svc.CreateTerms(ctx, Fields{"title": "Again", "content": "x", "version": "2"})
	requireKind(t, err, types.KindConflict, "Terms already exist. Use update instead")

	_, err = svc.UpdateTerms(ctx, Fields{})
	requireKind(t, err, types.KindBadRequest, "Provide at least one field to update")

	_, err = svc.UpdateTerms(ctx, Fields{"title": " "})
	requireKind(t, err, types.KindBadRequest, "Title cannot be empty")

	updated, err := svc.UpdateTerms(ctx, Fields{"version": "1.1"})
	require.NoError(t, err)
	assert.Equal(t, "1.1", updated.Version)
	assert.Equal(t, "Be kind", updated.Content)

	view := NewTermsView(updated)
	assert.Equal(t, updated.UpdatedAt, view.LastUpdated)

	require.NoError(t, svc.DeleteTerms(ctx))
	err = svc.DeleteTerms(ctx)
	requireKind(t, err, types.KindNotFound, "Terms not found")

	_, err = svc.UpdateTerms(ctx, Fields{"version": "3"})
	requireKind(t, err, types.KindNotFound, "Terms not found")
}

func TestContactLifecycle(t *testing.T) {
	svc := NewAboutService(setupTestDB(t))
	ctx := context.Background()
	fields := Fields{"email": "hi@example.com", "mobile": "+100", "website": "https://example.com"}

	_, err := svc.CreateContact(ctx, fields)
	require.NoError(t, err)

	_, err = svc.CreateContact(ctx, fields)
	requireKind(t, err, types.KindConflict, "Contact information already exists. Use update instead")

	updated, err := svc.UpdateContact(ctx, Fields{"mobile": "+200"})
	require.NoError(t, err)
	assert.Equal(t, "+200", updated.Mobile)

	got, err := svc.GetContact(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hi@example.com", got.Email)

	require.NoError(t, svc.DeleteContact(ctx))
	_, err = svc.GetContact(ctx)
	requireKind(t, err, types.KindNotFound, "Contact information not found")
}

func TestFaqConflicts(t *testing.T) {
	svc := NewAboutService(setupTestDB(t))
	ctx := context.Background()

	first, err := svc.CreateFaq(ctx, Fields{"question": "How?", "answer": "Like this"})
	require.NoError(t, err)
	second, err := svc.CreateFaq(ctx, Fields{"question": "Why?", "answer": "Because"})
	require.NoError(t, err)

	_, err = svc.CreateFaq(ctx, Fields{"question": "How?", "answer": "Differently"})
	requireKind(t, err, types.KindConflict, "FAQ question already exists")

	_, err = svc.CreateFaq(ctx, Fields{"question": "When?"})
	requireKind(t, err, types.KindBadRequest, "Answer is required")

	_, err = svc.UpdateFaq(ctx, second.ID, Fields{"question": "How?"})
	requireKind(t, err, types.KindConflict, "Another FAQ with this question already exists")

	same, err := svc.UpdateFaq(ctx, first.ID, Fields{"question": "How?", "answer": "Carefully"})
	require.NoError(t, err)
	assert.Equal(t, "Carefully", same.Answer)

	_, err = svc.UpdateFaq(ctx, uuid.New(), Fields{"answer": "x"})
	requireKind(t, err, types.KindNotFound, "FAQ not found")

	faqs, err := svc.ListFaqs(ctx)
	require.NoError(t, err)
	assert.Len(t, faqs, 2)

	require.NoError(t, svc.DeleteFaq(ctx, first.ID))
	err = svc.DeleteFaq(ctx, first.ID)
	requireKind(t, err, types.KindNotFound, "FAQ not found")
}
