package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/fathima-sithara/socialnet/internal/models"
	"github.com/fathima-sithara/socialnet/internal/repository"
)

var (
	ErrTextRequired = errors.New("text required")
	ErrNotPostOwner = errors.New("not the post owner")
)

type PostService struct {
	posts  repository.PostRepository
	notifs *NotificationService
	log    *zap.Logger
}

func NewPostService(posts repository.PostRepository, notifs *NotificationService, log *zap.Logger) *PostService {
	return &PostService{posts: posts, notifs: notifs, log: log}
}

func (s *PostService) Create(ctx context.Context, userID, text, mediaURL, mediaType string) (*models.Post, error) {
	if text == "" {
		return nil, ErrTextRequired
	}
	p := &models.Post{
		UserID:    userID,
		Text:      text,
		MediaURL:  mediaURL,
		MediaType: mediaType,
	}
	return s.posts.Create(ctx, p)
}

func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	return s.posts.GetByID(ctx, id)
}

func (s *PostService) ListAll(ctx context.Context) ([]models.Post, error) {
	return s.posts.ListAll(ctx)
}

func (s *PostService) ListByUser(ctx context.Context, userID string) ([]models.Post, error) {
	return s.posts.ListByUser(ctx, userID)
}

func (s *PostService) Delete(ctx context.Context, userID, postID string) error {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if p.UserID != userID {
		return ErrNotPostOwner
	}
	return s.posts.Delete(ctx, postID)
}

// ToggleLike likes an unliked post and unlikes a liked one. Liking
// someone else's post dispatches a like notification; unliking never
// notifies.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID string) (liked bool, likeCount int, err error) {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return false, 0, err
	}
	if contains(p.Likes, userID) {
		if err := s.posts.RemoveLike(ctx, postID, userID); err != nil {
			return false, 0, err
		}
		return false, len(p.Likes) - 1, nil
	}
	if err := s.posts.AddLike(ctx, postID, userID); err != nil {
		return false, 0, err
	}
	if p.UserID != userID {
		s.notifs.Dispatch(ctx, p.UserID, userID, models.NotifLike, postID, "")
	}
	return true, len(p.Likes) + 1, nil
}

func (s *PostService) Comment(ctx context.Context, userID, postID, text string) (*models.Post, error) {
	if text == "" {
		return nil, ErrTextRequired
	}
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	c := models.Comment{
		ID:        primitive.NewObjectID().Hex(),
		UserID:    userID,
		Text:      text,
		Replies:   []models.Reply{},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.posts.AddComment(ctx, postID, c); err != nil {
		return nil, err
	}
	if p.UserID != userID {
		s.notifs.Dispatch(ctx, p.UserID, userID, models.NotifComment, postID, text)
	}
	return s.posts.GetByID(ctx, postID)
}

func (s *PostService) Reply(ctx context.Context, userID, postID, commentID, text string) (*models.Post, error) {
	if text == "" {
		return nil, ErrTextRequired
	}
	rep := models.Reply{
		ID:        primitive.NewObjectID().Hex(),
		UserID:    userID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	ok, err := s.posts.AddReply(ctx, postID, commentID, rep)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, repository.ErrCommentNotFound
	}
	return s.posts.GetByID(ctx, postID)
}

// Counts returns the like count and the comment count with inline
// replies included.
func (s *PostService) Counts(ctx context.Context, postID string) (likes, comments int, err error) {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return 0, 0, err
	}
	return len(p.Likes), p.CommentCount(), nil
}
