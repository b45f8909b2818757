package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fathima-sithara/socialnet/internal/models"
	"github.com/fathima-sithara/socialnet/internal/repository"
)

func newPostFixture(posts ...*models.Post) (*PostService, *fakePostRepo, *fakeNotifRepo) {
	users := newFakeUserRepo(
		&models.User{ID: "alice", Name: "Alice"},
		&models.User{ID: "bob", Name: "Bob"},
	)
	repo := newFakePostRepo(posts...)
	notifRepo := newFakeNotifRepo()
	notifs := NewNotificationService(notifRepo, users, newFakePusher(), nil, "", time.Hour, zap.NewNop())
	return NewPostService(repo, notifs, zap.NewNop()), repo, notifRepo
}

func TestCreatePost(t *testing.T) {
	svc, _, _ := newPostFixture()

	p, err := svc.Create(context.Background(), "alice", "hello world", "pic.png", models.MediaImage)
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "alice", p.UserID)
	assert.Empty(t, p.Likes)

	_, err = svc.Create(context.Background(), "alice", "", "", "")
	assert.ErrorIs(t, err, ErrTextRequired)
}

func TestDeletePostOwnerOnly(t *testing.T) {
	svc, repo, _ := newPostFixture(&models.Post{ID: "p1", UserID: "alice", Text: "mine"})

	assert.ErrorIs(t, svc.Delete(context.Background(), "bob", "p1"), ErrNotPostOwner)
	assert.Contains(t, repo.posts, "p1")

	require.NoError(t, svc.Delete(context.Background(), "alice", "p1"))
	assert.NotContains(t, repo.posts, "p1")
}

func TestToggleLike(t *testing.T) {
	svc, repo, notifs := newPostFixture(&models.Post{ID: "p1", UserID: "alice", Text: "hi"})

	liked, count, err := svc.ToggleLike(context.Background(), "bob", "p1")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, count)
	assert.Contains(t, repo.posts["p1"].Likes, "bob")

	// liking someone else's post notifies the owner
	require.Len(t, notifs.notifs, 1)
	for _, n := range notifs.notifs {
		assert.Equal(t, "alice", n.To)
		assert.Equal(t, models.NotifLike, n.Type)
		assert.Equal(t, "p1", n.PostID)
	}

	liked, count, err = svc.ToggleLike(context.Background(), "bob", "p1")
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 0, count)
	// unliking never notifies
	assert.Len(t, notifs.notifs, 1)
}

func TestLikeOwnPostDoesNotNotify(t *testing.T) {
	svc, _, notifs := newPostFixture(&models.Post{ID: "p1", UserID: "alice", Text: "hi"})

	liked, _, err := svc.ToggleLike(context.Background(), "alice", "p1")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Empty(t, notifs.notifs)
}

func TestCommentNotifiesOwnerWithText(t *testing.T) {
	svc, _, notifs := newPostFixture(&models.Post{ID: "p1", UserID: "alice", Text: "hi"})

	p, err := svc.Comment(context.Background(), "bob", "p1", "great post")
	require.NoError(t, err)
	require.Len(t, p.Comments, 1)
	assert.Equal(t, "great post", p.Comments[0].Text)

	require.Len(t, notifs.notifs, 1)
	for _, n := range notifs.notifs {
		assert.Equal(t, models.NotifComment, n.Type)
		assert.Equal(t, `Bob commented: "great post"`, n.Message)
	}

	_, err = svc.Comment(context.Background(), "bob", "p1", "")
	assert.ErrorIs(t, err, ErrTextRequired)
}

func TestReply(t *testing.T) {
	svc, _, _ := newPostFixture(&models.Post{
		ID: "p1", UserID: "alice", Text: "hi",
		Comments: []models.Comment{{ID: "c1", UserID: "bob", Text: "first"}},
	})

	p, err := svc.Reply(context.Background(), "alice", "p1", "c1", "thanks")
	require.NoError(t, err)
	require.Len(t, p.Comments[0].Replies, 1)
	assert.Equal(t, "thanks", p.Comments[0].Replies[0].Text)

	_, err = svc.Reply(context.Background(), "alice", "p1", "missing", "thanks")
	assert.ErrorIs(t, err, repository.ErrCommentNotFound)
}

func TestPostCounts(t *testing.T) {
	svc, _, _ := newPostFixture(&models.Post{
		ID: "p1", UserID: "alice", Text: "hi",
		Likes: []string{"bob", "carol"},
		Comments: []models.Comment{
			{ID: "c1", Text: "first", Replies: []models.Reply{{ID: "r1", Text: "sub"}}},
			{ID: "c2", Text: "second"},
		},
	})

	likes, comments, err := svc.Counts(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, likes)
	assert.Equal(t, 3, comments)
}
