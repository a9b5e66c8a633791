package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/books", nil)
	return c, w
}

func TestError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"不存在", apperrors.NotFound("Book"), http.StatusNotFound, "Book not found"},
		{"冲突", apperrors.Conflict("Cannot delete publisher with associated editions"), http.StatusBadRequest, "Cannot delete publisher with associated editions"},
		{"日期格式", apperrors.Unprocessable("Invalid start_date format. Expected YYYY-MM-DD"), http.StatusUnprocessableEntity, "Invalid start_date format. Expected YYYY-MM-DD"},
		{"内部错误不泄露细节", errors.New("dial tcp 127.0.0.1:3306: connection refused"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newContext()
			Error(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body["message"])
			assert.Len(t, body, 1)
			assert.True(t, c.IsAborted())
		})
	}
}

func TestPaginated(t *testing.T) {
	c, w := newContext()
	Paginated(c, "books", []string{"a", "b"}, 23, 3, 10)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Count      int64    `json:"count"`
		Page       int      `json:"page"`
		PerPage    int      `json:"per_page"`
		TotalPages int      `json:"total_pages"`
		Books      []string `json:"books"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(23), body.Count)
	assert.Equal(t, 3, body.Page)
	assert.Equal(t, 10, body.PerPage)
	assert.Equal(t, 3, body.TotalPages)
	assert.Equal(t, []string{"a", "b"}, body.Books)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 0, TotalPages(5, 0))
}
