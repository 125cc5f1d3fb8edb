package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fazetwerpgit/saleshub_backend/models"
	"github.com/fazetwerpgit/saleshub_backend/utils"
)

func TestNotify_AssignsEventID(t *testing.T) {
	repo := newFakeNotificationRepo()
	service := NewNotificationService(repo)
	userID := primitive.NewObjectID()

	err := service.Notify(context.Background(), userID, models.NotificationTypeAnnouncement,
		"Kickoff", "Q3 kickoff is Friday.", "", nil)

	require.NoError(t, err)
	require.Len(t, repo.inserted, 1)
	assert.False(t, repo.inserted[0].Read)
	assert.NotEmpty(t, repo.inserted[0].Metadata["eventId"])
}

func TestMarkRead_IsIdempotent(t *testing.T) {
	// GIVEN: Two unread notifications
	// WHEN: Marking one read twice
	// THEN: Both calls succeed and the unread count settles at one

	repo := newFakeNotificationRepo()
	service := NewNotificationService(repo)
	userID := primitive.NewObjectID()
	ctx := context.Background()

	require.NoError(t, service.Notify(ctx, userID, models.NotificationTypeSystem, "a", "a", "", nil))
	require.NoError(t, service.Notify(ctx, userID, models.NotificationTypeSystem, "b", "b", "", nil))
	target := repo.inserted[0].ID.Hex()

	require.NoError(t, service.MarkRead(ctx, userID, []string{target}))
	require.NoError(t, service.MarkRead(ctx, userID, []string{target}))

	count, err := service.UnreadCount(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMarkRead_RejectsMalformedID(t *testing.T) {
	service := NewNotificationService(newFakeNotificationRepo())

	err := service.MarkRead(context.Background(), primitive.NewObjectID(), []string{"not-an-id"})

	require.Error(t, err)
	assert.Equal(t, utils.CodeInvalidInput, utils.AsAppError(err).Code)
}

func TestMarkRead_RejectsEmptyList(t *testing.T) {
	service := NewNotificationService(newFakeNotificationRepo())

	err := service.MarkRead(context.Background(), primitive.NewObjectID(), nil)

	require.Error(t, err)
	assert.Equal(t, utils.CodeInvalidInput, utils.AsAppError(err).Code)
}

func TestMarkRead_ScopedToOwner(t *testing.T) {
	// GIVEN: Notifications belonging to two users
	// WHEN: One user marks the other's notification read
	// THEN: The other user's notification stays unread

	repo := newFakeNotificationRepo()
	service := NewNotificationService(repo)
	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()
	ctx := context.Background()

	require.NoError(t, service.Notify(ctx, owner, models.NotificationTypeSystem, "a", "a", "", nil))
	ownerNotifID := repo.inserted[0].ID.Hex()

	require.NoError(t, service.MarkRead(ctx, other, []string{ownerNotifID}))

	count, err := service.UnreadCount(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMarkAllRead(t *testing.T) {
	repo := newFakeNotificationRepo()
	service := NewNotificationService(repo)
	userID := primitive.NewObjectID()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, service.Notify(ctx, userID, models.NotificationTypeSystem, "t", "m", "", nil))
	}

	require.NoError(t, service.MarkAllRead(ctx, userID))

	count, err := service.UnreadCount(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestList_NewestFirstAndLimited(t *testing.T) {
	repo := newFakeNotificationRepo()
	service := NewNotificationService(repo)
	userID := primitive.NewObjectID()
	ctx := context.Background()

	require.NoError(t, service.Notify(ctx, userID, models.NotificationTypeSystem, "first", "m", "", nil))
	require.NoError(t, service.Notify(ctx, userID, models.NotificationTypeSystem, "second", "m", "", nil))
	require.NoError(t, service.Notify(ctx, userID, models.NotificationTypeSystem, "third", "m", "", nil))

	got, err := service.List(ctx, userID, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "third", got[0].Title)
	assert.Equal(t, "second", got[1].Title)
}
