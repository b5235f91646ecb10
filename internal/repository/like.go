package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"socialnet/internal/model"
)

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create inserts a like. The unique_user_post_like constraint serializes
// concurrent duplicates at the store level: the second insert fails with
// ErrAlreadyLiked instead of corrupting the count.
func (r *likeRepository) Create(ctx context.Context, userID, postID int64) error {
	query := `INSERT INTO likes (user_id, post_id, created_at) VALUES ($1, $2, NOW())`
	_, err := r.db.ExecContext(ctx, query, userID, postID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return model.ErrAlreadyLiked
		}
		return fmt.Errorf("insert like: %w", err)
	}
	return nil
}

// Delete removes a like. Fails with ErrNotLiked when no row matches.
func (r *likeRepository) Delete(ctx context.Context, userID, postID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM likes WHERE user_id = $1 AND post_id = $2`, userID, postID)
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrNotLiked
	}
	return nil
}

func (r *likeRepository) Exists(ctx context.Context, userID, postID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM likes WHERE user_id = $1 AND post_id = $2)`, userID, postID)
	if err != nil {
		return false, fmt.Errorf("check like exists: %w", err)
	}
	return exists, nil
}

func (r *likeRepository) CountByPost(ctx context.Context, postID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM likes WHERE post_id = $1`, postID)
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return count, nil
}

// ListByPost returns a page of a post's likes with liker summaries, newest
// first, plus the total like count.
func (r *likeRepository) ListByPost(ctx context.Context, postID int64, limit, offset int) ([]model.Like, int, error) {
	query := `
		SELECT l.id, l.user_id, l.post_id, l.created_at,
		       u.id AS "user.id", u.username AS "user.username", u.full_name AS "user.full_name"
		FROM likes l
		JOIN users u ON u.id = l.user_id
		WHERE l.post_id = $1
		ORDER BY l.created_at DESC, l.id DESC
		LIMIT $2 OFFSET $3
	`
	likes := []model.Like{}
	if err := r.db.SelectContext(ctx, &likes, query, postID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("list likes by post: %w", err)
	}

	total, err := r.CountByPost(ctx, postID)
	if err != nil {
		return nil, 0, err
	}
	return likes, total, nil
}

// ListByUser returns a page of the posts a user liked, joined with each post's
// author and derived counts, newest like first.
func (r *likeRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]model.Like, int, error) {
	query := `
		SELECT l.id, l.user_id, l.post_id, l.created_at,
		       p.id AS "post.id", p.title AS "post.title", p.content AS "post.content",
		       p.user_id AS "post.user_id", p.created_at AS "post.created_at", p.updated_at AS "post.updated_at",
		       u.id AS "post.author.id", u.username AS "post.author.username", u.full_name AS "post.author.full_name",
		       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS "post.comments_count",
		       (SELECT COUNT(*) FROM likes pl WHERE pl.post_id = p.id) AS "post.likes_count"
		FROM likes l
		JOIN posts p ON p.id = l.post_id
		JOIN users u ON u.id = p.user_id
		WHERE l.user_id = $1
		ORDER BY l.created_at DESC, l.id DESC
		LIMIT $2 OFFSET $3
	`
	likes := []model.Like{}
	if err := r.db.SelectContext(ctx, &likes, query, userID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("list likes by user: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM likes WHERE user_id = $1`, userID); err != nil {
		return nil, 0, fmt.Errorf("count likes by user: %w", err)
	}
	return likes, total, nil
}
