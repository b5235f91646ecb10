package model

import (
	"errors"
	"time"
)

// Like represents a user liking a post. At most one like exists per
// (userId, postId) pair; the store enforces this with a unique constraint.
type Like struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"userId"`
	PostID    int64     `db:"post_id" json:"postId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	// Joined fields
	User *UserSummary `db:"user" json:"user,omitempty"`
	Post *Post        `json:"post,omitempty"`
}

var (
	// ErrAlreadyLiked is returned when the (user, post) like already exists.
	ErrAlreadyLiked = errors.New("post already liked")

	// ErrNotLiked is returned when unliking a post that was never liked.
	ErrNotLiked = errors.New("post not liked")
)
