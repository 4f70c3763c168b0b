package postal

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"partner-funnel/internal/common/models"
	"partner-funnel/internal/pkg/postal"
	"partner-funnel/internal/pkg/redis"
	"partner-funnel/internal/repository"
	sessionRepo "partner-funnel/internal/repository/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockProvider struct {
	LookupFunc func(ctx context.Context, code, country string) (*postal.Result, error)
	calls      int
}

func (m *MockProvider) Lookup(ctx context.Context, code, country string) (*postal.Result, error) {
	m.calls++
	return m.LookupFunc(ctx, code, country)
}

type brokenRedis struct{ *redis.Memory }

func (brokenRedis) Get(string) (string, error)           { return "", errors.New("redis down") }
func (brokenRedis) Set(string, any, time.Duration) error { return errors.New("redis down") }

func found(_ context.Context, code, country string) (*postal.Result, error) {
	return &postal.Result{PostalCode: code, City: "São Paulo", State: "SP", Country: country, IsValid: true}, nil
}

func setup(provider postal.Provider, rds redis.IRedis) (*Service, sessionRepo.IRepository) {
	sessions := sessionRepo.NewRepo(redis.NewMemory(), time.Hour)
	svc := NewService(context.Background(), rds, repository.IRepository{Session: sessions}, provider, time.Hour).(*Service)
	return svc, sessions
}

func TestLookupValidIsCached(t *testing.T) {
	p := &MockProvider{LookupFunc: found}
	svc, _ := setup(p, redis.NewMemory())

	for i := 0; i < 2; i++ {
		res := svc.Lookup(context.Background(), "", "01310-100", "")
		require.Equal(t, http.StatusOK, res.Code)
		r := res.Data.(*postal.Result)
		assert.True(t, r.IsValid)
		assert.Equal(t, "São Paulo", r.City)
		assert.Equal(t, "SP", r.State)
	}
	assert.Equal(t, 1, p.calls)
}

func TestLookupMalformedSkipsProvider(t *testing.T) {
	p := &MockProvider{LookupFunc: found}
	svc, _ := setup(p, redis.NewMemory())

	res := svc.Lookup(context.Background(), "", "123", "BR")
	require.Equal(t, http.StatusOK, res.Code)
	assert.False(t, res.Data.(*postal.Result).IsValid)
	assert.Nil(t, res.Error)
	assert.Zero(t, p.calls)
}

func TestLookupUnknownNotCached(t *testing.T) {
	p := &MockProvider{LookupFunc: func(_ context.Context, code, country string) (*postal.Result, error) {
		return postal.Invalid(code, country), nil
	}}
	svc, _ := setup(p, redis.NewMemory())

	for i := 0; i < 2; i++ {
		res := svc.Lookup(context.Background(), "", "99999999", "BR")
		require.Equal(t, http.StatusOK, res.Code)
		assert.False(t, res.Data.(*postal.Result).IsValid)
		assert.Nil(t, res.Error)
	}
	assert.Equal(t, 2, p.calls)
}

func TestLookupProviderFailure(t *testing.T) {
	p := &MockProvider{LookupFunc: func(context.Context, string, string) (*postal.Result, error) {
		return nil, errors.New("connection refused")
	}}
	svc, _ := setup(p, redis.NewMemory())

	res := svc.Lookup(context.Background(), "", "01310100", "BR")
	assert.Equal(t, http.StatusBadGateway, res.Code)
	assert.ErrorIs(t, res.Error, postal.ErrLookupFailed)
	assert.Equal(t, map[string]string{"fallback": "manual"}, res.Data)
}

func TestLookupSurvivesCacheOutage(t *testing.T) {
	p := &MockProvider{LookupFunc: found}
	svc, _ := setup(p, brokenRedis{redis.NewMemory()})

	res := svc.Lookup(context.Background(), "", "01310100", "BR")
	assert.Equal(t, http.StatusOK, res.Code)
	assert.True(t, res.Data.(*postal.Result).IsValid)
}

func TestLookupStoresOnSession(t *testing.T) {
	svc, sessions := setup(&MockProvider{LookupFunc: found}, redis.NewMemory())
	require.NoError(t, sessions.Save(models.NewFunnelState("s1")))

	svc.Lookup(context.Background(), "s1", "01310100", "BR")
	st, err := sessions.Get("s1")
	require.NoError(t, err)
	require.NotNil(t, st.PostalData)
	assert.Equal(t, "01310100", st.PostalData.PostalCode)

	// unknown session is ignored
	assert.Equal(t, http.StatusOK, svc.Lookup(context.Background(), "ghost", "01310100", "BR").Code)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "postal:BR:01310100", CacheKey("BR", "01310100"))
}
