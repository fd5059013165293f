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

func TestSendRequestToSelf(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := service.NewFriendshipService(db)
	alice := createUser(t, db, "alice")

	err := svc.SendRequest(ctx, alice.ID, alice.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindBadValues))
}

func TestSendThenCancelReturnsToNoRelation(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := service.NewFriendshipService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	require.NoError(t, svc.SendRequest(ctx, alice.ID, bob.ID))
	require.NoError(t, svc.CancelRequest(ctx, alice.ID, bob.ID))

	var count int64
	db.Model(&models.UserRelation{}).Count(&count)
	assert.Zero(t, count)

	// Back to no-relation: a fresh request succeeds.
	assert.NoError(t, svc.SendRequest(ctx, alice.ID, bob.ID))
}

func TestDuplicateRequestRejected(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := service.NewFriendshipService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	require.NoError(t, svc.SendRequest(ctx, alice.ID, bob.ID))

	err := svc.SendRequest(ctx, alice.ID, bob.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindAlreadyExists))

	// The reverse direction is blocked too.
	err = svc.SendRequest(ctx, bob.ID, alice.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindAlreadyExists))
}

func TestAcceptRequiresPendingRequest(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := service.NewFriendshipService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	// Never sent.
	err := svc.AcceptRequest(ctx, alice.ID, bob.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	require.NoError(t, svc.SendRequest(ctx, alice.ID, bob.ID))

	// Only the addressed party may accept: the sender accepting their own
	// request looks for a request in the opposite direction and finds none.
	err = svc.AcceptRequest(ctx, bob.ID, alice.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	require.NoError(t, svc.AcceptRequest(ctx, alice.ID, bob.ID))

	friends, err := svc.AreFriends(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, friends)

	// Symmetric.
	friends, err = svc.AreFriends(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, friends)
}

func TestAcceptTwiceFails(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := service.NewFriendshipService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	require.NoError(t, svc.SendRequest(ctx, alice.ID, bob.ID))
	require.NoError(t, svc.AcceptRequest(ctx, alice.ID, bob.ID))

	err := svc.AcceptRequest(ctx, alice.ID, bob.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestRejectRequest(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := service.NewFriendshipService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	require.NoError(t, svc.SendRequest(ctx, alice.ID, bob.ID))
	require.NoError(t, svc.RejectRequest(ctx, alice.ID, bob.ID))

	friends, err := svc.AreFriends(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, friends)

	err = svc.RejectRequest(ctx, alice.ID, bob.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestRemoveFriendClosesTheGate(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := service.NewFriendshipService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	require.NoError(t, svc.SendRequest(ctx, alice.ID, bob.ID))
	require.NoError(t, svc.AcceptRequest(ctx, alice.ID, bob.ID))

	// Either party may remove; bob never sent the original request.
	require.NoError(t, svc.RemoveFriend(ctx, bob.ID, alice.ID))

	err := svc.AssertFriends(ctx, alice.ID, bob.ID, "alice", "bob")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotAllowed))
	assert.Contains(t, err.Error(), "alice")
	assert.Contains(t, err.Error(), "bob")

	err = svc.RemoveFriend(ctx, alice.ID, bob.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestFriendsAndRequestsListing(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := service.NewFriendshipService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	require.NoError(t, svc.SendRequest(ctx, alice.ID, bob.ID))
	require.NoError(t, svc.AcceptRequest(ctx, alice.ID, bob.ID))
	require.NoError(t, svc.SendRequest(ctx, carol.ID, alice.ID))

	friends, err := svc.Friends(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, "bob", friends[0].Username)

	incoming, outgoing, err := svc.Requests(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, "carol", incoming[0].FromUser.Username)
	assert.Empty(t, outgoing)
}
