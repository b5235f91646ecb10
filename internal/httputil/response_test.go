package httputil

import (
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialnet/internal/validate"
)

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, 201, "Created", map[string]interface{}{"id": 1})

	assert.Equal(t, 201, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Created", resp.Message)
	assert.NotNil(t, resp.Data)
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, 404, "Post not found")

	assert.Equal(t, 404, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Post not found", resp.Message)
	assert.Nil(t, resp.Data)
	assert.Empty(t, resp.Errors)
}

func TestWriteValidationErrors(t *testing.T) {
	var errs validate.Errs
	errs.Add(validate.Required("username", ""))
	errs.Add(validate.MinLength("password", "abc", 6))

	rec := httptest.NewRecorder()
	WriteValidationErrors(rec, errs)

	assert.Equal(t, 400, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Validation failed", resp.Message)
	require.Len(t, resp.Errors, 2)
	assert.Equal(t, "username", resp.Errors[0].Field)
	assert.Equal(t, "password", resp.Errors[1].Field)
}

func TestParsePageQuery(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 10},
		{"explicit values", "page=3&limit=20", 3, 20},
		{"zero page falls back", "page=0", 1, 10},
		{"negative page falls back", "page=-2", 1, 10},
		{"non-numeric falls back", "page=abc&limit=xyz", 1, 10},
		{"limit capped at 100", "limit=500", 1, 100},
		{"zero limit falls back", "limit=0", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			page, limit := ParsePageQuery(values, 10)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}
