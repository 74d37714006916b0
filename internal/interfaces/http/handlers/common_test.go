package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickfield/sitecast/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func runError(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	respondError(c, err)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestRespondErrorClientCodePassesThrough(t *testing.T) {
	err := errors.New(errors.ErrCodeProjectNotFound, "project not found").WithDetail("abc")
	w, body := runError(t, err)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PRJ_001", body.Code)
	assert.Equal(t, "project not found", body.Message)
	assert.Equal(t, "abc", body.Detail)
}

func TestRespondErrorMasksServerErrors(t *testing.T) {
	err := errors.New(errors.ErrCodeCacheError, "redis handshake failed at 10.0.0.3")
	w, body := runError(t, err)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "internal server error", body.Message)
	assert.NotContains(t, w.Body.String(), "10.0.0.3")
}

func TestRespondErrorWrapsPlainErrors(t *testing.T) {
	w, body := runError(t, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", body.Message)
}

func TestProjectIDParam(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	_, ok := projectIDParam(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "COMMON_007")
}
