package service

import (
	"context"
	"fmt"
	"log"

	"socialnet/internal/metrics"
	"socialnet/internal/model"
	"socialnet/internal/repository"
)

// PostService orchestrates post CRUD. Writes enforce ownership; reads are
// public and return posts joined with author summaries and derived counts.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	likeRepo repository.LikeRepository
}

func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	likeRepo repository.LikeRepository,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		likeRepo: likeRepo,
	}
}

// List returns a page of posts (newest first) and the total post count.
func (s *PostService) List(ctx context.Context, page, limit int) ([]model.Post, int, error) {
	offset := (page - 1) * limit
	return s.postRepo.List(ctx, limit, offset)
}

// GetByID retrieves a single post. When a viewer identity is present the
// isLikedByUser flag is computed; anonymous reads leave it false.
func (s *PostService) GetByID(ctx context.Context, postID int64, viewerID *int64) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if viewerID != nil {
		liked, err := s.likeRepo.Exists(ctx, *viewerID, postID)
		if err != nil {
			log.Printf("[PostService] Failed to check like status: post=%d err=%v", postID, err)
		} else {
			post.IsLikedByUser = liked
		}
	}

	return post, nil
}

// Create creates a post for userID and returns it joined with the author.
func (s *PostService) Create(ctx context.Context, userID int64, req model.CreatePostRequest) (*model.Post, error) {
	post := &model.Post{
		Title:   req.Title,
		Content: req.Content,
		UserID:  userID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	metrics.PostsCreated.Inc()
	log.Printf("[PostService] User %d created post %d", userID, post.ID)

	// Re-read for the author summary and zeroed counts.
	return s.postRepo.GetByID(ctx, post.ID)
}

// Update applies title/content changes. Only the author may update.
func (s *PostService) Update(ctx context.Context, postID, userID int64, req model.UpdatePostRequest) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, model.ErrNotPostOwner
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post. Only the author may delete; the store cascades the
// delete to the post's comments and likes atomically.
func (s *PostService) Delete(ctx context.Context, postID, userID int64) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return model.ErrNotPostOwner
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	log.Printf("[PostService] User %d deleted post %d", userID, postID)
	return nil
}

// ListByUser returns a page of a user's posts plus the author's summary.
// Fails with ErrUserNotFound when the user does not exist.
func (s *PostService) ListByUser(ctx context.Context, userID int64, page, limit int) (*model.UserSummary, []model.Post, int, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, 0, err
	}

	offset := (page - 1) * limit
	posts, total, err := s.postRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, nil, 0, err
	}
	return user.Summary(), posts, total, nil
}
