package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Naitikhacke/Exposia/models"
	"github.com/Naitikhacke/Exposia/pkg"
)

func newReactionServiceForTest() (ReactionService, *fakePostRepo, *fakeNotificationRepo) {
	reactionRepo := newFakeReactionRepo()
	postRepo := newFakePostRepo()
	notificationRepo := newFakeNotificationRepo()
	notifications := NewNotificationService(notificationRepo, newFakeHub())
	svc := NewReactionService(reactionRepo, postRepo, notifications)
	return svc, postRepo, notificationRepo
}

func TestFirstReactionNotifiesPostAuthor(t *testing.T) {
	svc, postRepo, notificationRepo := newReactionServiceForTest()
	postRepo.addPost("p1", "owner")

	reaction, err := svc.React(context.Background(), "alice", "p1", &models.ReactRequest{Type: models.ReactionLike})
	require.NoError(t, err)
	assert.Equal(t, models.ReactionLike, reaction.Type)
	require.NotEmpty(t, reaction.ID)

	notifications := notificationRepo.all()
	require.Len(t, notifications, 1)
	assert.Equal(t, "owner", notifications[0].UserID)
	assert.Equal(t, models.NotificationReaction, notifications[0].Type)
}

func TestReactionTypeChangeDoesNotRenotify(t *testing.T) {
	svc, postRepo, notificationRepo := newReactionServiceForTest()
	postRepo.addPost("p1", "owner")

	_, err := svc.React(context.Background(), "alice", "p1", &models.ReactRequest{Type: models.ReactionLike})
	require.NoError(t, err)

	// Tür değişikliği upsert'tir — ikinci bildirim üretmez.
	changed, err := svc.React(context.Background(), "alice", "p1", &models.ReactRequest{Type: models.ReactionLove})
	require.NoError(t, err)
	assert.Equal(t, models.ReactionLove, changed.Type)

	assert.Len(t, notificationRepo.all(), 1)

	reactions, err := svc.ListByPost(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, reactions, 1)
	assert.Equal(t, models.ReactionLove, reactions[0].Type)
}

func TestReactionOnOwnPostDoesNotNotify(t *testing.T) {
	svc, postRepo, notificationRepo := newReactionServiceForTest()
	postRepo.addPost("p1", "alice")

	_, err := svc.React(context.Background(), "alice", "p1", &models.ReactRequest{Type: models.ReactionCelebrate})
	require.NoError(t, err)

	assert.Empty(t, notificationRepo.all())
}

func TestReactionInvalidType(t *testing.T) {
	svc, postRepo, _ := newReactionServiceForTest()
	postRepo.addPost("p1", "owner")

	_, err := svc.React(context.Background(), "alice", "p1", &models.ReactRequest{Type: "DISLIKE"})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
}

func TestReactionUnknownPost(t *testing.T) {
	svc, _, _ := newReactionServiceForTest()

	_, err := svc.React(context.Background(), "alice", "missing", &models.ReactRequest{Type: models.ReactionLike})
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestUnreact(t *testing.T) {
	svc, postRepo, _ := newReactionServiceForTest()
	postRepo.addPost("p1", "owner")

	_, err := svc.React(context.Background(), "alice", "p1", &models.ReactRequest{Type: models.ReactionLike})
	require.NoError(t, err)

	require.NoError(t, svc.Unreact(context.Background(), "alice", "p1"))

	reactions, err := svc.ListByPost(context.Background(), "p1")
	require.NoError(t, err)
	assert.Empty(t, reactions)

	// Olmayan tepkiyi kaldırmak not found döner.
	assert.ErrorIs(t, svc.Unreact(context.Background(), "alice", "p1"), pkg.ErrNotFound)
}
