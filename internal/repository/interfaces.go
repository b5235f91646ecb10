package repository

import (
	"context"

	"socialnet/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	SetAvatar(ctx context.Context, userID int64, avatarURL, avatarKey string) error
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	// GetByID returns the post joined with its author summary and derived
	// comment/like counts.
	GetByID(ctx context.Context, postID int64) (*model.Post, error)
	// List returns a page of posts (created_at DESC) with author summaries and
	// derived counts, plus the total number of posts for pagination metadata.
	List(ctx context.Context, limit, offset int) ([]model.Post, int, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]model.Post, int, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, postID int64) error
	Exists(ctx context.Context, postID int64) (bool, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, commentID int64) (*model.Comment, error)
	ListByPost(ctx context.Context, postID int64, limit, offset int) ([]model.Comment, int, error)
	Update(ctx context.Context, comment *model.Comment) error
	Delete(ctx context.Context, commentID int64) error
}

type LikeRepository interface {
	// Create inserts a like. Fails with model.ErrAlreadyLiked when the
	// (userID, postID) pair already exists; concurrent duplicates are
	// serialized by the store's unique constraint.
	Create(ctx context.Context, userID, postID int64) error
	// Delete removes a like. Fails with model.ErrNotLiked when absent.
	Delete(ctx context.Context, userID, postID int64) error
	Exists(ctx context.Context, userID, postID int64) (bool, error)
	CountByPost(ctx context.Context, postID int64) (int, error)
	// ListByPost returns likes with liker summaries, newest first.
	ListByPost(ctx context.Context, postID int64, limit, offset int) ([]model.Like, int, error)
	// ListByUser returns likes with the liked posts (and their authors),
	// newest first.
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]model.Like, int, error)
}
