package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"socialnet/internal/httputil"
	"socialnet/internal/model"
	"socialnet/internal/service"
	"socialnet/internal/transport/http/middleware"
	"socialnet/internal/validate"
)

const defaultCommentPageSize = 20

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func validateCommentContent(content string) validate.Errs {
	var errs validate.Errs
	errs.Add(validate.Required("content", content))
	if content != "" {
		errs.Add(validate.LengthBetween("content", content, model.MinCommentLength, model.MaxCommentLength))
	}
	return errs
}

// ListByPost handles GET /api/comments/post/:postId
func (h *CommentHandler) ListByPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := parseID(r, "postId")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	page, limit := httputil.ParsePageQuery(r.URL.Query(), defaultCommentPageSize)

	comments, total, err := h.commentService.ListByPost(r.Context(), postID, page, limit)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		log.Printf("[ERROR] List comments handler: post=%d err=%v", postID, err)
		httputil.WriteInternalError(w, "Failed to get comments")
		return
	}

	httputil.WriteData(w, http.StatusOK, map[string]interface{}{
		"comments":   comments,
		"pagination": model.NewPagination(page, limit, total),
	})
}

// Create handles POST /api/comments/post/:postId
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var req model.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	req.Content = strings.TrimSpace(req.Content)
	if errs := validateCommentContent(req.Content); len(errs) > 0 {
		httputil.WriteValidationErrors(w, errs)
		return
	}

	comment, err := h.commentService.Create(r.Context(), postID, userID, req.Content)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		log.Printf("[ERROR] Create comment handler: user=%d post=%d err=%v", userID, postID, err)
		httputil.WriteInternalError(w, "Failed to add comment")
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, "Comment added successfully", map[string]interface{}{"comment": comment})
}

// Update handles PUT /api/comments/:id (owner only).
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	commentID, ok := parseID(r, "id")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid comment ID")
		return
	}

	var req model.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	req.Content = strings.TrimSpace(req.Content)
	if errs := validateCommentContent(req.Content); len(errs) > 0 {
		httputil.WriteValidationErrors(w, errs)
		return
	}

	comment, err := h.commentService.Update(r.Context(), commentID, userID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrCommentNotFound):
			httputil.WriteNotFound(w, "Comment not found")
		case errors.Is(err, model.ErrNotCommentOwner):
			httputil.WriteForbidden(w, "You are not authorized to update this comment")
		default:
			log.Printf("[ERROR] Update comment handler: user=%d comment=%d err=%v", userID, commentID, err)
			httputil.WriteInternalError(w, "Failed to update comment")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "Comment updated successfully", map[string]interface{}{"comment": comment})
}

// Delete handles DELETE /api/comments/:id (owner only).
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	commentID, ok := parseID(r, "id")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid comment ID")
		return
	}

	err := h.commentService.Delete(r.Context(), commentID, userID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrCommentNotFound):
			httputil.WriteNotFound(w, "Comment not found")
		case errors.Is(err, model.ErrNotCommentOwner):
			httputil.WriteForbidden(w, "You are not authorized to delete this comment")
		default:
			log.Printf("[ERROR] Delete comment handler: user=%d comment=%d err=%v", userID, commentID, err)
			httputil.WriteInternalError(w, "Failed to delete comment")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "Comment deleted successfully", nil)
}
