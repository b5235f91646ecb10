package service

import (
	"context"
	"fmt"
	"log"

	"socialnet/internal/metrics"
	"socialnet/internal/model"
	"socialnet/internal/repository"
)

// LikeService orchestrates like/unlike and like listings. A like is always
// scoped to the acting user's own id; the count returned after a mutation is
// recomputed from the likes relation, never maintained incrementally.
type LikeService struct {
	likeRepo repository.LikeRepository
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) *LikeService {
	return &LikeService{
		likeRepo: likeRepo,
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

// Like records that userID likes postID and returns the fresh like count.
// Liking twice fails with ErrAlreadyLiked and leaves the count unchanged.
func (s *LikeService) Like(ctx context.Context, postID, userID int64) (int, error) {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return 0, fmt.Errorf("check post exists: %w", err)
	}
	if !exists {
		return 0, model.ErrPostNotFound
	}

	if err := s.likeRepo.Create(ctx, userID, postID); err != nil {
		return 0, err
	}

	metrics.LikesTotal.WithLabelValues("like").Inc()
	log.Printf("[LikeService] User %d liked post %d", userID, postID)

	return s.likeRepo.CountByPost(ctx, postID)
}

// Unlike removes userID's like from postID and returns the fresh like count.
// Unliking without a prior like fails with ErrNotLiked.
func (s *LikeService) Unlike(ctx context.Context, postID, userID int64) (int, error) {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return 0, fmt.Errorf("check post exists: %w", err)
	}
	if !exists {
		return 0, model.ErrPostNotFound
	}

	if err := s.likeRepo.Delete(ctx, userID, postID); err != nil {
		return 0, err
	}

	metrics.LikesTotal.WithLabelValues("unlike").Inc()
	log.Printf("[LikeService] User %d unliked post %d", userID, postID)

	return s.likeRepo.CountByPost(ctx, postID)
}

// ListPostLikes returns a page of users who liked a post plus the total.
func (s *LikeService) ListPostLikes(ctx context.Context, postID int64, page, limit int) ([]model.Like, int, error) {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, 0, fmt.Errorf("check post exists: %w", err)
	}
	if !exists {
		return nil, 0, model.ErrPostNotFound
	}

	offset := (page - 1) * limit
	return s.likeRepo.ListByPost(ctx, postID, limit, offset)
}

// ListUserLikes returns the user's summary and a page of the posts they liked.
func (s *LikeService) ListUserLikes(ctx context.Context, userID int64, page, limit int) (*model.UserSummary, []model.Like, int, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, 0, err
	}

	offset := (page - 1) * limit
	likes, total, err := s.likeRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, nil, 0, err
	}
	return user.Summary(), likes, total, nil
}
