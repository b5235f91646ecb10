package model

import (
	"errors"
	"time"
)

// Comment represents a comment on a post.
type Comment struct {
	ID        int64     `db:"id" json:"id"`
	Content   string    `db:"content" json:"content"`
	UserID    int64     `db:"user_id" json:"userId"`
	PostID    int64     `db:"post_id" json:"postId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	Author *UserSummary `db:"author" json:"author,omitempty"` // Joined field
}

// CreateCommentRequest is the request body for POST /api/comments/post/:postId.
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// UpdateCommentRequest is the request body for PUT /api/comments/:id.
type UpdateCommentRequest struct {
	Content string `json:"content"`
}

// Comment field constraints
const (
	MinCommentLength = 1
	MaxCommentLength = 1000
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotCommentOwner = errors.New("not the owner of this comment")
)
