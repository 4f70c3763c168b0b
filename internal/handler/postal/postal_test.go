package postal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	types "partner-funnel/internal/common/type"
	"partner-funnel/internal/pkg/helper"
	"partner-funnel/internal/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type MockPostalService struct {
	session, code, country string
}

func (m *MockPostalService) Lookup(_ context.Context, sessionID, code, country string) *types.Response {
	m.session, m.code, m.country = sessionID, code, country
	return helper.ParseResponse(&types.Response{})
}

type staticValidator struct{}

func (staticValidator) ValidateToken(raw string) (*types.FunnelSession, error) {
	return &types.FunnelSession{ID: raw}, nil
}

func TestLookupRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &MockPostalService{}
	e := gin.New()
	e.Use(middleware.ResponseInit())
	NewHandler(context.Background(), svc, middleware.SessionMiddleware(staticValidator{}, false)).NewRoutes(e.Group("/api"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/postal/01310-100?country=br", nil)
	req.Header.Set(middleware.SessionHeader, "s1")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "s1", svc.session)
	assert.Equal(t, "01310-100", svc.code)
	assert.Equal(t, "br", svc.country)
}
