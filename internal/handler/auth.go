package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"socialnet/internal/auth"
	"socialnet/internal/httputil"
	"socialnet/internal/model"
	"socialnet/internal/service"
	"socialnet/internal/transport/http/middleware"
	"socialnet/internal/validate"
)

// AuthHandler groups auth-related HTTP endpoints and their dependencies.
type AuthHandler struct {
	userService  *service.UserService
	mediaService *service.MediaService
	tokens       *auth.TokenManager
}

// NewAuthHandler wires dependencies for authentication endpoints.
// mediaService may be nil when avatar storage is not configured.
func NewAuthHandler(userService *service.UserService, mediaService *service.MediaService, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		mediaService: mediaService,
		tokens:       tokens,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)
	if req.Bio != nil {
		trimmed := strings.TrimSpace(*req.Bio)
		req.Bio = &trimmed
	}

	var errs validate.Errs
	errs.Add(validate.Required("username", req.Username))
	if req.Username != "" {
		errs.Add(validate.LengthBetween("username", req.Username, model.MinUsernameLength, model.MaxUsernameLength))
		errs.Add(validate.Alphanumeric("username", req.Username))
	}
	errs.Add(validate.Required("email", req.Email))
	if req.Email != "" {
		errs.Add(validate.Email("email", req.Email))
	}
	errs.Add(validate.Required("password", req.Password))
	if req.Password != "" {
		errs.Add(validate.MinLength("password", req.Password, model.MinPasswordLength))
	}
	errs.Add(validate.Required("fullName", req.FullName))
	if req.FullName != "" {
		errs.Add(validate.LengthBetween("fullName", req.FullName, model.MinFullNameLength, model.MaxFullNameLength))
	}
	if req.Bio != nil {
		errs.Add(validate.MaxLength("bio", *req.Bio, model.MaxBioLength))
	}
	if len(errs) > 0 {
		httputil.WriteValidationErrors(w, errs)
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUsernameExists):
			httputil.WriteBadRequest(w, "Username already exists")
		case errors.Is(err, model.ErrEmailExists):
			httputil.WriteBadRequest(w, "Email already exists")
		default:
			log.Printf("[ERROR] Register handler: err=%v", err)
			httputil.WriteInternalError(w, "Failed to register user")
		}
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		log.Printf("[ERROR] Register handler: issue token user=%d err=%v", user.ID, err)
		httputil.WriteInternalError(w, "Failed to generate token")
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, "User registered successfully", map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)

	var errs validate.Errs
	errs.Add(validate.Required("email", req.Email))
	if req.Email != "" {
		errs.Add(validate.Email("email", req.Email))
	}
	errs.Add(validate.Required("password", req.Password))
	if len(errs) > 0 {
		httputil.WriteValidationErrors(w, errs)
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			httputil.WriteUnauthorized(w, "Invalid credentials")
			return
		}
		log.Printf("[ERROR] Login handler: err=%v", err)
		httputil.WriteInternalError(w, "Failed to login")
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		log.Printf("[ERROR] Login handler: issue token user=%d err=%v", user.ID, err)
		httputil.WriteInternalError(w, "Failed to generate token")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "Login successful", map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] Me handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to get user")
		return
	}

	httputil.WriteData(w, http.StatusOK, map[string]interface{}{"user": user})
}

// UpdateProfile handles PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	var errs validate.Errs
	if req.Username != nil {
		trimmed := strings.TrimSpace(*req.Username)
		req.Username = &trimmed
		errs.Add(validate.LengthBetween("username", trimmed, model.MinUsernameLength, model.MaxUsernameLength))
		errs.Add(validate.Alphanumeric("username", trimmed))
	}
	if req.FullName != nil {
		trimmed := strings.TrimSpace(*req.FullName)
		req.FullName = &trimmed
		errs.Add(validate.LengthBetween("fullName", trimmed, model.MinFullNameLength, model.MaxFullNameLength))
	}
	if req.Bio != nil {
		trimmed := strings.TrimSpace(*req.Bio)
		req.Bio = &trimmed
		errs.Add(validate.MaxLength("bio", trimmed, model.MaxBioLength))
	}
	if len(errs) > 0 {
		httputil.WriteValidationErrors(w, errs)
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		case errors.Is(err, model.ErrUsernameExists):
			httputil.WriteBadRequest(w, "Username already exists")
		default:
			log.Printf("[ERROR] UpdateProfile handler: user=%d err=%v", userID, err)
			httputil.WriteInternalError(w, "Failed to update profile")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "Profile updated successfully", map[string]interface{}{"user": user})
}

// ChangePassword handles PUT /api/auth/password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	var errs validate.Errs
	errs.Add(validate.Required("currentPassword", req.CurrentPassword))
	errs.Add(validate.Required("newPassword", req.NewPassword))
	if req.NewPassword != "" {
		errs.Add(validate.MinLength("newPassword", req.NewPassword, model.MinPasswordLength))
	}
	if len(errs) > 0 {
		httputil.WriteValidationErrors(w, errs)
		return
	}

	err := h.userService.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		case errors.Is(err, model.ErrInvalidCredentials):
			httputil.WriteUnauthorized(w, "Current password is incorrect")
		default:
			log.Printf("[ERROR] ChangePassword handler: user=%d err=%v", userID, err)
			httputil.WriteInternalError(w, "Failed to change password")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "Password changed successfully", nil)
}

// UpdateAvatar handles PUT /api/auth/avatar (multipart form, "avatar" field).
func (h *AuthHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	if h.mediaService == nil {
		httputil.WriteError(w, http.StatusServiceUnavailable, "Avatar storage is not configured")
		return
	}

	maxFormSize := int64(model.MaxAvatarSizeBytes) + 1024*1024 // allow form overhead
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			httputil.WriteBadRequest(w, "Content-Type must be multipart/form-data")
			return
		}
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		httputil.WriteBadRequest(w, "Avatar file is required")
		return
	}
	defer file.Close()

	upload, err := h.mediaService.UploadAvatar(r.Context(), file, header)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrFileTooLarge):
			httputil.WriteBadRequest(w, "Avatar exceeds 5MB limit")
		case errors.Is(err, model.ErrInvalidImageType):
			httputil.WriteBadRequest(w, "Unsupported image type. Allowed: jpeg, png, gif, webp")
		default:
			log.Printf("[ERROR] UpdateAvatar handler: user=%d err=%v", userID, err)
			httputil.WriteInternalError(w, "Failed to upload avatar")
		}
		return
	}

	oldKey, err := h.userService.SetAvatar(r.Context(), userID, upload.URL, upload.Key)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] UpdateAvatar handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to update avatar")
		return
	}

	// Best-effort cleanup of the replaced object.
	if oldKey != "" {
		if err := h.mediaService.DeleteObject(r.Context(), oldKey); err != nil {
			log.Printf("[WARN] UpdateAvatar handler: delete old avatar key=%s err=%v", oldKey, err)
		}
	}

	httputil.WriteSuccess(w, http.StatusOK, "Avatar updated successfully", map[string]interface{}{
		"avatarUrl": upload.URL,
	})
}
