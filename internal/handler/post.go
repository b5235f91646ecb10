package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"socialnet/internal/httputil"
	"socialnet/internal/model"
	"socialnet/internal/service"
	"socialnet/internal/transport/http/middleware"
	"socialnet/internal/validate"
)

const defaultPostPageSize = 10

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// parseID reads a positive int64 URL parameter.
func parseID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// List handles GET /api/posts
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := httputil.ParsePageQuery(r.URL.Query(), defaultPostPageSize)

	posts, total, err := h.postService.List(r.Context(), page, limit)
	if err != nil {
		log.Printf("[ERROR] List posts handler: err=%v", err)
		httputil.WriteInternalError(w, "Failed to get posts")
		return
	}

	httputil.WriteData(w, http.StatusOK, map[string]interface{}{
		"posts":      posts,
		"pagination": model.NewPagination(page, limit, total),
	})
}

// GetByID handles GET /api/posts/:id (optional authentication).
func (h *PostHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	postID, ok := parseID(r, "id")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	var viewerID *int64
	if id, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		viewerID = &id
	}

	post, err := h.postService.GetByID(r.Context(), postID, viewerID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		log.Printf("[ERROR] Get post handler: post=%d err=%v", postID, err)
		httputil.WriteInternalError(w, "Failed to get post")
		return
	}

	httputil.WriteData(w, http.StatusOK, map[string]interface{}{"post": post})
}

// Create handles POST /api/posts
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)

	var errs validate.Errs
	errs.Add(validate.Required("title", req.Title))
	if req.Title != "" {
		errs.Add(validate.LengthBetween("title", req.Title, model.MinPostTitleLength, model.MaxPostTitleLength))
	}
	errs.Add(validate.Required("content", req.Content))
	if req.Content != "" {
		errs.Add(validate.MinLength("content", req.Content, model.MinPostContentLength))
	}
	if len(errs) > 0 {
		httputil.WriteValidationErrors(w, errs)
		return
	}

	post, err := h.postService.Create(r.Context(), userID, req)
	if err != nil {
		log.Printf("[ERROR] Create post handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to create post")
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, "Post created successfully", map[string]interface{}{"post": post})
}

// Update handles PUT /api/posts/:id (owner only).
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	postID, ok := parseID(r, "id")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	var req model.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	var errs validate.Errs
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		req.Title = &trimmed
		errs.Add(validate.LengthBetween("title", trimmed, model.MinPostTitleLength, model.MaxPostTitleLength))
	}
	if req.Content != nil {
		trimmed := strings.TrimSpace(*req.Content)
		req.Content = &trimmed
		errs.Add(validate.MinLength("content", trimmed, model.MinPostContentLength))
	}
	if len(errs) > 0 {
		httputil.WriteValidationErrors(w, errs)
		return
	}

	post, err := h.postService.Update(r.Context(), postID, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrNotPostOwner):
			httputil.WriteForbidden(w, "You are not authorized to update this post")
		default:
			log.Printf("[ERROR] Update post handler: user=%d post=%d err=%v", userID, postID, err)
			httputil.WriteInternalError(w, "Failed to update post")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "Post updated successfully", map[string]interface{}{"post": post})
}

// Delete handles DELETE /api/posts/:id (owner only). Dependent comments and
// likes are removed by the store's cascade.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	postID, ok := parseID(r, "id")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	err := h.postService.Delete(r.Context(), postID, userID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrNotPostOwner):
			httputil.WriteForbidden(w, "You are not authorized to delete this post")
		default:
			log.Printf("[ERROR] Delete post handler: user=%d post=%d err=%v", userID, postID, err)
			httputil.WriteInternalError(w, "Failed to delete post")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "Post deleted successfully", nil)
}

// ListByUser handles GET /api/posts/user/:userId
func (h *PostHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(r, "userId")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid user ID")
		return
	}

	page, limit := httputil.ParsePageQuery(r.URL.Query(), defaultPostPageSize)

	user, posts, total, err := h.postService.ListByUser(r.Context(), userID, page, limit)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] List user posts handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to get user posts")
		return
	}

	httputil.WriteData(w, http.StatusOK, map[string]interface{}{
		"user":       user,
		"posts":      posts,
		"pagination": model.NewPagination(page, limit, total),
	})
}
