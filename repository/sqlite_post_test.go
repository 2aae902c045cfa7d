package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Naitikhacke/Exposia/models"
	"github.com/Naitikhacke/Exposia/pkg"
)

func TestPostRepoCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLitePostRepo(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	post := seedPost(t, db, alice.ID)
	require.NotEmpty(t, post.ID)
	assert.Equal(t, int64(0), post.Views)

	loaded, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "seeded content", loaded.Content)
	require.NotNil(t, loaded.Author)
	assert.Equal(t, "alice", loaded.Author.Username)
	assert.Equal(t, int64(0), loaded.CommentCount)
	assert.Equal(t, int64(0), loaded.ReactionCount)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestPostRepoCountsFromSubqueries(t *testing.T) {
	db := newTestDB(t)
	postRepo := NewSQLitePostRepo(db)
	commentRepo := NewSQLiteCommentRepo(db)
	reactionRepo := NewSQLiteReactionRepo(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, alice.ID)

	require.NoError(t, commentRepo.Create(ctx, &models.Comment{
		PostID: post.ID, AuthorID: bob.ID, Content: "nice",
	}))
	_, err := reactionRepo.Upsert(ctx, &models.Reaction{
		PostID: post.ID, UserID: bob.ID, Type: models.ReactionLike,
	})
	require.NoError(t, err)

	loaded, err := postRepo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), loaded.CommentCount)
	assert.Equal(t, int64(1), loaded.ReactionCount)
}

func TestPostRepoFeedPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLitePostRepo(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	for i := 0; i < 3; i++ {
		seedPost(t, db, alice.ID)
	}

	page, err := repo.ListFeed(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, page.Posts, 2)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.Limit)

	page, err = repo.ListFeed(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page.Posts, 1)

	// Geçersiz parametreler varsayılanlara düşer.
	page, err = repo.ListFeed(ctx, 0, -5)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.Limit)
}

func TestPostRepoListByAuthor(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLitePostRepo(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	seedPost(t, db, alice.ID)
	seedPost(t, db, bob.ID)

	page, err := repo.ListByAuthor(ctx, alice.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, alice.ID, page.Posts[0].AuthorID)
}

func TestPostRepoIncrementViews(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLitePostRepo(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	post := seedPost(t, db, alice.ID)

	require.NoError(t, repo.IncrementViews(ctx, post.ID))
	require.NoError(t, repo.IncrementViews(ctx, post.ID))

	loaded, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), loaded.Views)
}

func TestPostRepoDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	postRepo := NewSQLitePostRepo(db)
	commentRepo := NewSQLiteCommentRepo(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	post := seedPost(t, db, alice.ID)

	comment := &models.Comment{PostID: post.ID, AuthorID: alice.ID, Content: "gone with the post"}
	require.NoError(t, commentRepo.Create(ctx, comment))

	require.NoError(t, postRepo.Delete(ctx, post.ID))
	assert.ErrorIs(t, postRepo.Delete(ctx, post.ID), pkg.ErrNotFound)

	// ON DELETE CASCADE yorumları da götürür.
	_, err := commentRepo.GetByID(ctx, comment.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestCommentRepoCreateAndList(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteCommentRepo(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	post := seedPost(t, db, alice.ID)

	for i := 0; i < 2; i++ {
		require.NoError(t, repo.Create(ctx, &models.Comment{
			PostID: post.ID, AuthorID: alice.ID, Content: fmt.Sprintf("comment %d", i),
		}))
	}

	comments, err := repo.ListByPostID(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	require.NotNil(t, comments[0].Author)
	assert.Equal(t, "alice", comments[0].Author.Username)
}

func TestCommentRepoCreateUnknownPost(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteCommentRepo(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")

	err := repo.Create(ctx, &models.Comment{
		PostID: "missing", AuthorID: alice.ID, Content: "orphan",
	})
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestCommentRepoThreadedReply(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteCommentRepo(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	post := seedPost(t, db, alice.ID)

	root := &models.Comment{PostID: post.ID, AuthorID: alice.ID, Content: "root"}
	require.NoError(t, repo.Create(ctx, root))

	reply := &models.Comment{PostID: post.ID, AuthorID: alice.ID, Content: "reply", ParentID: &root.ID}
	require.NoError(t, repo.Create(ctx, reply))

	loaded, err := repo.GetByID(ctx, reply.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.ParentID)
	assert.Equal(t, root.ID, *loaded.ParentID)

	// Kök yorum silinince cevap da cascade ile gider.
	require.NoError(t, repo.Delete(ctx, root.ID))
	_, err = repo.GetByID(ctx, reply.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestReactionRepoUpsert(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteReactionRepo(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, alice.ID)

	reaction := &models.Reaction{PostID: post.ID, UserID: bob.ID, Type: models.ReactionLike}
	created, err := repo.Upsert(ctx, reaction)
	require.NoError(t, err)
	assert.True(t, created)
	firstID := reaction.ID

	// Aynı kullanıcı tekrar tepki verir — tür güncellenir, satır aynı kalır.
	changed := &models.Reaction{PostID: post.ID, UserID: bob.ID, Type: models.ReactionLove}
	created, err = repo.Upsert(ctx, changed)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, firstID, changed.ID)

	reactions, err := repo.ListByPostID(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, reactions, 1)
	assert.Equal(t, models.ReactionLove, reactions[0].Type)
}

func TestReactionRepoDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteReactionRepo(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	post := seedPost(t, db, alice.ID)

	_, err := repo.Upsert(ctx, &models.Reaction{PostID: post.ID, UserID: alice.ID, Type: models.ReactionLike})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, post.ID, alice.ID))
	assert.ErrorIs(t, repo.Delete(ctx, post.ID, alice.ID), pkg.ErrNotFound)
}

func TestNotificationRepoLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteNotificationRepo(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")

	notification := &models.Notification{
		UserID:  alice.ID,
		Type:    models.NotificationComment,
		Payload: []byte(`{"post_id":"p1","comment_id":"c1","author_id":"bob"}`),
	}
	require.NoError(t, repo.Create(ctx, notification))
	require.NotEmpty(t, notification.ID)
	assert.False(t, notification.Read)

	list, err := repo.ListByUserID(ctx, alice.ID, 50)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.JSONEq(t, `{"post_id":"p1","comment_id":"c1","author_id":"bob"}`, string(list[0].Payload))

	count, err := repo.CountUnread(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Başkası adına işaretleme not found.
	assert.ErrorIs(t, repo.MarkRead(ctx, notification.ID, "intruder"), pkg.ErrNotFound)

	require.NoError(t, repo.MarkRead(ctx, notification.ID, alice.ID))

	count, err = repo.CountUnread(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestNotificationRepoMarkAllRead(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteNotificationRepo(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &models.Notification{
			UserID:  alice.ID,
			Type:    models.NotificationMessage,
			Payload: []byte(`{}`),
		}))
	}

	require.NoError(t, repo.MarkAllRead(ctx, alice.ID))

	count, err := repo.CountUnread(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
