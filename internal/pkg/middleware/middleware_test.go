package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	types "partner-funnel/internal/common/type"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticValidator struct{}

func (staticValidator) ValidateToken(raw string) (*types.FunnelSession, error) {
	if raw == "good" {
		return &types.FunnelSession{ID: "sess_1"}, nil
	}
	return nil, errors.New("bad token")
}

func newEngine(required bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.Use(CorsMiddleware(), RequestInit(), ResponseInit())
	e.GET("/s", SessionMiddleware(staticValidator{}, required), func(c *gin.Context) {
		s, ok := Session(c)
		id := ""
		if ok {
			id = s.ID
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})
	return e
}

func do(e *gin.Engine, method, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/s", nil)
	if token != "" {
		req.Header.Set(SessionHeader, token)
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func TestSessionRequired(t *testing.T) {
	e := newEngine(true)

	w := do(e, http.MethodGet, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body types.ResponseAPI
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "session token not found", body.Message)

	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "bad").Code)

	w = do(e, http.MethodGet, "good")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"sess_1"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestSessionOptional(t *testing.T) {
	e := newEngine(false)

	assert.JSONEq(t, `{"id":""}`, do(e, http.MethodGet, "").Body.String())
	assert.JSONEq(t, `{"id":""}`, do(e, http.MethodGet, "bad").Body.String())
	assert.JSONEq(t, `{"id":"sess_1"}`, do(e, http.MethodGet, "good").Body.String())
}

func TestCorsPreflight(t *testing.T) {
	w := do(newEngine(false), http.MethodOptions, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), SessionHeader)
}
