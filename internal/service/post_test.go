package service_test

import (
	"context"
	"testing"

	"huddle/backend/internal/apperr"
	"huddle/backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := service.NewPostService(db)
	alice := createUser(t, db, "alice")

	_, err := svc.Create(ctx, alice.ID, "", nil)
	assert.True(t, apperr.IsKind(err, apperr.KindBadValues))

	color := "#ffcc00"
	post, err := svc.Create(ctx, alice.ID, "hello world", &color)
	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	require.NotNil(t, post.BackgroundColor)
	assert.Equal(t, "#ffcc00", *post.BackgroundColor)
}

func TestListPostsFilterByAuthor(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := service.NewPostService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := svc.Create(ctx, alice.ID, "from alice", nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob.ID, "from bob", nil)
	require.NoError(t, err)

	all, total, err := svc.List(ctx, "", 1, 20)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.EqualValues(t, 2, total)

	onlyAlice, total, err := svc.List(ctx, alice.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, onlyAlice, 1)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "from alice", onlyAlice[0].Content)
	assert.Equal(t, "alice", onlyAlice[0].Author.Username)
}

func TestUpdatePostRequiresAuthor(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := service.NewPostService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	post, err := svc.Create(ctx, alice.ID, "original", nil)
	require.NoError(t, err)

	_, err = svc.Update(ctx, post.ID, bob.ID, "hijacked", nil)
	assert.True(t, apperr.IsKind(err, apperr.KindNotAllowed))

	updated, err := svc.Update(ctx, post.ID, alice.ID, "edited", nil)
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	_, err = svc.Update(ctx, "00000000-0000-0000-0000-000000000000", alice.ID, "nope", nil)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestDeletePostRequiresAuthor(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := service.NewPostService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	post, err := svc.Create(ctx, alice.ID, "ephemeral", nil)
	require.NoError(t, err)

	err = svc.Delete(ctx, post.ID, bob.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotAllowed))

	require.NoError(t, svc.Delete(ctx, post.ID, alice.ID))

	err = svc.Delete(ctx, post.ID, alice.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
