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
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, gin.H{"total": 3})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, 0, resp.Code)
	assert.Equal(t, "success", resp.Message)
	assert.Equal(t, map[string]interface{}{"total": float64(3)}, resp.Data)
}

func TestErrorHidesCause(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	BadGateway(c, "Failed to fetch data", errors.New("dial tcp: connection refused"))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
	resp := decode(t, w)
	assert.Equal(t, http.StatusBadGateway, resp.Code)
	assert.Equal(t, "Failed to fetch data", resp.Message)
	require.Len(t, c.Errors, 1)
	assert.EqualError(t, c.Errors[0].Err, "dial tcp: connection refused")
}

func TestConflict(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Conflict(c, "navigation state missing")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Empty(t, c.Errors)
}

func TestBadRequest(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	BadRequest(c, "score is required")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "score is required", resp.Message)
	assert.Empty(t, c.Errors)
}
