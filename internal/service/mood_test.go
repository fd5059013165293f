package service_test

import (
	"context"
	"testing"

	"huddle/backend/internal/apperr"
	"huddle/backend/internal/models"
	"huddle/backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetMoodValidation(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := service.NewMoodService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	for _, bad := range []string{"", "happy", "🙂 🙂", ":)", "🙂!"} {
		err := svc.Set(ctx, alice.ID, bob.ID, bad)
		assert.True(t, apperr.IsKind(err, apperr.KindBadValues), "value %q should be rejected", bad)
	}

	for _, good := range []string{"🙂", "❤️", "👍🏽", "🇫🇷"} {
		assert.NoError(t, svc.Set(ctx, alice.ID, bob.ID, good), "value %q should be accepted", good)
	}
}

func TestSetMoodOverwritesNotDuplicates(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := service.NewMoodService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	require.NoError(t, svc.Set(ctx, alice.ID, bob.ID, "🙂"))
	require.NoError(t, svc.Set(ctx, alice.ID, bob.ID, "😢"))

	var moods []models.Mood
	require.NoError(t, db.Find(&moods).Error)
	require.Len(t, moods, 1)
	assert.Equal(t, "😢", moods[0].Value)
}

func TestMoodsAreDirected(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := service.NewMoodService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	require.NoError(t, svc.Set(ctx, alice.ID, bob.ID, "🙂"))

	mine, theirs, err := svc.Both(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, mine)
	assert.Equal(t, "🙂", *mine)
	assert.Nil(t, theirs)

	// Seen from bob's side the directions flip.
	mine, theirs, err = svc.Both(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, mine)
	require.NotNil(t, theirs)
	assert.Equal(t, "🙂", *theirs)
}

func TestBothNeverErrsOnAbsence(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := service.NewMoodService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	mine, theirs, err := svc.Both(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Nil(t, mine)
	assert.Nil(t, theirs)
}

func TestRemoveMood(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := service.NewMoodService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	err := svc.Remove(ctx, alice.ID, bob.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	require.NoError(t, svc.Set(ctx, alice.ID, bob.ID, "🙂"))
	require.NoError(t, svc.Remove(ctx, alice.ID, bob.ID))

	mine, _, err := svc.Both(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Nil(t, mine)
}
