package model

import (
	"errors"
	"time"
)

// Post represents a user's post. CommentsCount and LikesCount are derived
// aggregates recomputed on every read; they are never stored.
type Post struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	UserID    int64     `db:"user_id" json:"userId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	// Joined fields (not columns of the posts table)
	Author        *UserSummary `db:"author" json:"author,omitempty"`
	CommentsCount int          `db:"comments_count" json:"commentsCount"`
	LikesCount    int          `db:"likes_count" json:"likesCount"`
	IsLikedByUser bool         `json:"isLikedByUser"`
}

// CreatePostRequest is the request body for POST /api/posts.
type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdatePostRequest is the request body for PUT /api/posts/:id.
// Nil fields are left unchanged.
type UpdatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// Post field constraints
const (
	MinPostTitleLength   = 3
	MaxPostTitleLength   = 200
	MinPostContentLength = 10
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotPostOwner = errors.New("not the owner of this post")
)
