package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func engine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("spa"), 0o644))
	return newEngine(dir)
}

func call(e *gin.Engine, method, url, body string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func TestStaticHealth(t *testing.T) {
	w, body := call(engine(t), http.MethodGet, "/static-health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestMockPostal(t *testing.T) {
	e := engine(t)

	_, body := call(e, http.MethodGet, "/api/mock/postal/01310-100", "")
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["isValid"])
	assert.Equal(t, "SP", data["state"])

	_, body = call(e, http.MethodGet, "/api/mock/postal/12", "")
	assert.Equal(t, false, body["data"].(map[string]any)["isValid"])
}

func TestMockPayment(t *testing.T) {
	w, body := call(engine(t), http.MethodPost, "/api/mock/payment", `{}`)
	require.Equal(t, http.StatusCreated, w.Code)
	data := body["data"].(map[string]any)
	assert.EqualValues(t, 8470, data["amountMinor"])
	assert.NotEmpty(t, data["pixCode"])
}

func TestFallbackAndFlags(t *testing.T) {
	w, _ := call(engine(t), http.MethodGet, "/registration", "")
	assert.Equal(t, "spa", w.Body.String())

	cmd := rootCmd()
	assert.Equal(t, "3000", cmd.Flags().Lookup("port").DefValue)
	assert.Equal(t, "web/dist", cmd.Flags().Lookup("dir").DefValue)
}
