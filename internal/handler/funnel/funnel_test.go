package funnel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"partner-funnel/internal/common/enum"
	types "partner-funnel/internal/common/type"
	"partner-funnel/internal/pkg/helper"
	"partner-funnel/internal/pkg/middleware"
	"partner-funnel/internal/pkg/progress"
	"partner-funnel/internal/pkg/validation"
	funnelService "partner-funnel/internal/service/funnel"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockFunnelService struct {
	funnelService.IService
	AdvanceFunc func(id string, step enum.StepEnum, req *funnelService.AdvanceRequest) *types.Response
	sequence    *progress.Sequence
}

func (m *MockFunnelService) StartSession() *types.Response {
	return helper.ParseResponse(&types.Response{Code: http.StatusCreated, Data: "started"})
}

func (m *MockFunnelService) GetSession(id string) *types.Response {
	return helper.ParseResponse(&types.Response{Data: id})
}

func (m *MockFunnelService) Advance(id string, step enum.StepEnum, req *funnelService.AdvanceRequest) *types.Response {
	return m.AdvanceFunc(id, step, req)
}

func (m *MockFunnelService) Loading(int) *progress.Sequence { return m.sequence }

type staticValidator struct{}

func (staticValidator) ValidateToken(raw string) (*types.FunnelSession, error) {
	return &types.FunnelSession{ID: raw}, nil
}

func newRouter(t *testing.T, svc funnelService.IService) *gin.Engine {
	t.Helper()
	require.NoError(t, validation.Setup())
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.Use(middleware.ResponseInit())
	NewHandler(context.Background(), svc, middleware.SessionMiddleware(staticValidator{}, true)).NewRoutes(e.Group("/api"))
	return e
}

func TestSessionRoutesNeedToken(t *testing.T) {
	e := newRouter(t, &MockFunnelService{})

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/funnel/session", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/funnel/session", nil)
	req.Header.Set(middleware.SessionHeader, "sess_9")
	w = httptest.NewRecorder()
	e.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":"sess_9"`)

	w = httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/funnel/sessions", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAdvanceBinding(t *testing.T) {
	var gotStep enum.StepEnum
	var gotData map[string]any
	svc := &MockFunnelService{AdvanceFunc: func(_ string, step enum.StepEnum, req *funnelService.AdvanceRequest) *types.Response {
		gotStep, gotData = step, req.Data
		return helper.ParseResponse(&types.Response{})
	}}
	e := newRouter(t, svc)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/funnel/steps/delivery", strings.NewReader(body))
		req.Header.Set(middleware.SessionHeader, "s1")
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		e.ServeHTTP(w, req)
		return w
	}

	w := post(`{"data":{"window":"morning"}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, enum.STEP_DELIVERY, gotStep)
	assert.Equal(t, "morning", gotData["window"])

	w = post(`{"data":{"note":"` + strings.Repeat("x", 600) + `"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "data must be")

	w = post(``)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoadingStream(t *testing.T) {
	svc := &MockFunnelService{sequence: progress.New([]string{"one", "two"}, 20*time.Millisecond)}
	e := newRouter(t, svc)

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/funnel/loading?duration_ms=20", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	body := w.Body.String()
	first := strings.Index(body, `"text":"one"`)
	second := strings.Index(body, `"text":"two"`)
	done := strings.Index(body, "event:complete")
	require.True(t, first >= 0 && second > first && done > second, body)
	assert.Equal(t, 2, strings.Count(body, "event:status"))
}
