package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"eduplatform/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteErrorMapsKinds(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", domain.NotFound("course_not_found", "course not found"), http.StatusNotFound, "course_not_found"},
		{"forbidden", domain.Forbidden("course_not_assigned", "no access"), http.StatusForbidden, "course_not_assigned"},
		{"bad request", domain.BadRequest("module_course_mismatch", "mismatch"), http.StatusBadRequest, "module_course_mismatch"},
		{"precondition", domain.PreconditionFailed("course_not_completed", "not done"), http.StatusPreconditionFailed, "course_not_completed"},
		{"internal", domain.Internal("boom", errors.New("db down")), http.StatusInternalServerError, "internal_error"},
		{"unknown error", errors.New("plain"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			writeError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, body["code"])
			}
		})
	}
}
