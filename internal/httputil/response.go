package httputil

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"socialnet/internal/validate"
)

// Response is the envelope returned by every endpoint:
// {"success": bool, "message"?: string, "data"?: {...}, "errors"?: [...]}
type Response struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Data    interface{}   `json:"data,omitempty"`
	Errors  validate.Errs `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		// Headers are already sent; nothing useful to do on encode failure.
		_ = json.NewEncoder(w).Encode(body)
	}
}

// WriteSuccess writes a success envelope. data may be nil.
func WriteSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, Response{Success: true, Message: message, Data: data})
}

// WriteData writes a success envelope with no message.
func WriteData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, Response{Success: true, Data: data})
}

// WriteError writes a failure envelope with the given status and message.
func WriteError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Success: false, Message: message})
}

// WriteValidationErrors writes a 400 failure envelope carrying per-field errors.
func WriteValidationErrors(w http.ResponseWriter, errs validate.Errs) {
	writeJSON(w, http.StatusBadRequest, Response{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// Common helpers

func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, message)
}

func WriteForbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, message)
}

func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message)
}

// ParsePageQuery reads page/limit query parameters. page defaults to 1,
// limit defaults per endpoint; both are bounded (page >= 1, 1 <= limit <= 100).
func ParsePageQuery(values url.Values, defaultLimit int) (page, limit int) {
	page = 1
	if p, err := strconv.Atoi(values.Get("page")); err == nil && p >= 1 {
		page = p
	}

	limit = defaultLimit
	if l, err := strconv.Atoi(values.Get("limit")); err == nil && l >= 1 {
		limit = l
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
