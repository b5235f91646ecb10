package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"socialnet/internal/model"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// postColumns selects a post with its author summary and derived aggregates.
// Counts are recomputed per read (COUNT over the related rows), never stored.
const postColumns = `
	p.id, p.title, p.content, p.user_id, p.created_at, p.updated_at,
	u.id AS "author.id", u.username AS "author.username", u.full_name AS "author.full_name",
	(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comments_count,
	(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) AS likes_count
`

// Create inserts a new post and fills in the generated id/timestamps.
func (r *postRepository) Create(ctx context.Context, p *model.Post) error {
	query := `
		INSERT INTO posts (title, content, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query, p.Title, p.Content, p.UserID).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// GetByID retrieves a single post with author and counts.
func (r *postRepository) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1
	`
	var post model.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &post, nil
}

// List returns a page of posts ordered by creation time descending, plus the
// total post count for pagination metadata.
func (r *postRepository) List(ctx context.Context, limit, offset int) ([]model.Post, int, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $1 OFFSET $2
	`
	posts := []model.Post{}
	if err := r.db.SelectContext(ctx, &posts, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM posts`); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}
	return posts, total, nil
}

// ListByUser returns a page of one user's posts, newest first, with total.
func (r *postRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]model.Post, int, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2 OFFSET $3
	`
	posts := []model.Post{}
	if err := r.db.SelectContext(ctx, &posts, query, userID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("list posts by user: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM posts WHERE user_id = $1`, userID); err != nil {
		return nil, 0, fmt.Errorf("count posts by user: %w", err)
	}
	return posts, total, nil
}

// Update persists title/content changes.
func (r *postRepository) Update(ctx context.Context, p *model.Post) error {
	query := `
		UPDATE posts
		SET title = $1, content = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at
	`
	err := r.db.QueryRowxContext(ctx, query, p.Title, p.Content, p.ID).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ErrPostNotFound
		}
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// Delete removes a post. Dependent comments and likes are removed in the same
// transaction by the store's ON DELETE CASCADE constraints, so no orphan rows
// are ever observable.
func (r *postRepository) Delete(ctx context.Context, postID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

func (r *postRepository) Exists(ctx context.Context, postID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, postID)
	if err != nil {
		return false, fmt.Errorf("check post exists: %w", err)
	}
	return exists, nil
}
