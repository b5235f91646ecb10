package handler

import (
	"errors"
	"log"
	"net/http"

	"socialnet/internal/httputil"
	"socialnet/internal/model"
	"socialnet/internal/service"
	"socialnet/internal/transport/http/middleware"
)

const (
	defaultPostLikesPageSize = 20
	defaultUserLikesPageSize = 10
)

type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// Like handles POST /api/likes/post/:postId
func (h *LikeHandler) Like(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	postID, ok := parseID(r, "postId")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	likesCount, err := h.likeService.Like(r.Context(), postID, userID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrAlreadyLiked):
			httputil.WriteBadRequest(w, "You have already liked this post")
		default:
			log.Printf("[ERROR] Like handler: user=%d post=%d err=%v", userID, postID, err)
			httputil.WriteInternalError(w, "Failed to like post")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, "Post liked successfully", map[string]interface{}{
		"likesCount": likesCount,
	})
}

// Unlike handles DELETE /api/likes/post/:postId
func (h *LikeHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	postID, ok := parseID(r, "postId")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	likesCount, err := h.likeService.Unlike(r.Context(), postID, userID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrNotLiked):
			httputil.WriteBadRequest(w, "You have not liked this post")
		default:
			log.Printf("[ERROR] Unlike handler: user=%d post=%d err=%v", userID, postID, err)
			httputil.WriteInternalError(w, "Failed to unlike post")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "Post unliked successfully", map[string]interface{}{
		"likesCount": likesCount,
	})
}

// ListPostLikes handles GET /api/likes/post/:postId
func (h *LikeHandler) ListPostLikes(w http.ResponseWriter, r *http.Request) {
	postID, ok := parseID(r, "postId")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	page, limit := httputil.ParsePageQuery(r.URL.Query(), defaultPostLikesPageSize)

	likes, total, err := h.likeService.ListPostLikes(r.Context(), postID, page, limit)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		log.Printf("[ERROR] List post likes handler: post=%d err=%v", postID, err)
		httputil.WriteInternalError(w, "Failed to get likes")
		return
	}

	httputil.WriteData(w, http.StatusOK, map[string]interface{}{
		"likesCount": total,
		"likes":      likes,
		"pagination": model.NewPagination(page, limit, total),
	})
}

// ListUserLikes handles GET /api/likes/user/:userId
func (h *LikeHandler) ListUserLikes(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(r, "userId")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid user ID")
		return
	}

	page, limit := httputil.ParsePageQuery(r.URL.Query(), defaultUserLikesPageSize)

	user, likes, total, err := h.likeService.ListUserLikes(r.Context(), userID, page, limit)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] List user likes handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to get likes")
		return
	}

	httputil.WriteData(w, http.StatusOK, map[string]interface{}{
		"user":       user,
		"likes":      likes,
		"pagination": model.NewPagination(page, limit, total),
	})
}
