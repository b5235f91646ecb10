package service

import (
	"context"
	"fmt"
	"log"

	"socialnet/internal/metrics"
	"socialnet/internal/model"
	"socialnet/internal/repository"
)

// CommentService orchestrates comment CRUD against existing posts.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// ListByPost returns a page of a post's comments, newest first.
// Fails with ErrPostNotFound when the parent post does not exist.
func (s *CommentService) ListByPost(ctx context.Context, postID int64, page, limit int) ([]model.Comment, int, error) {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, 0, fmt.Errorf("check post exists: %w", err)
	}
	if !exists {
		return nil, 0, model.ErrPostNotFound
	}

	offset := (page - 1) * limit
	return s.commentRepo.ListByPost(ctx, postID, limit, offset)
}

// Create adds a comment to an existing post and returns it with the author.
func (s *CommentService) Create(ctx context.Context, postID, userID int64, content string) (*model.Comment, error) {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("check post exists: %w", err)
	}
	if !exists {
		return nil, model.ErrPostNotFound
	}

	comment := &model.Comment{
		Content: content,
		UserID:  userID,
		PostID:  postID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	metrics.CommentsCreated.Inc()
	log.Printf("[CommentService] User %d commented on post %d", userID, postID)

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// Update changes a comment's content. Only the author may update.
func (s *CommentService) Update(ctx context.Context, commentID, userID int64, content string) (*model.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, model.ErrNotCommentOwner
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment. Only the author may delete.
func (s *CommentService) Delete(ctx context.Context, commentID, userID int64) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return model.ErrNotCommentOwner
	}

	return s.commentRepo.Delete(ctx, commentID)
}
