package postal

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"partner-funnel/internal/pkg/helper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeProviders(t *testing.T) (*httptest.Server, *ViaCEP, *Geocoder) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/01310100/json/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"cep":"01310-100","logradouro":"Avenida Paulista","bairro":"Bela Vista","localidade":"São Paulo","uf":"SP"}`))
	})
	mux.HandleFunc("/ws/99999999/json/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"erro": "true"}`))
	})
	mux.HandleFunc("/ws/12345678/json/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})
	mux.HandleFunc("/br/01310-100", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"post code":"01310-100","country":"Brazil","country abbreviation":"BR","places":[{"place name":"São Paulo","state":"Sao Paulo","state abbreviation":"SP","latitude":"-23.5613","longitude":"-46.6565"}]}`))
	})
	mux.HandleFunc("/us/90210", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"post code":"90210","country":"United States","country abbreviation":"US","places":[{"place name":"Beverly Hills","state":"California","state abbreviation":"CA","latitude":"34.0901","longitude":"-118.4065"}]}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/ws/") {
			_, _ = w.Write([]byte(`{"erro": true}`))
			return
		}
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := helper.NewHTTPClient(&helper.HTTPClientConfig{RequestTimeout: time.Second})
	return srv, NewViaCEP(srv.URL, client), NewGeocoder(srv.URL, client)
}

func TestNormalize(t *testing.T) {
	code, cc, ok := Normalize(" 01310-100 ", "")
	assert.Equal(t, "01310100", code)
	assert.Equal(t, "BR", cc)
	assert.True(t, ok)

	_, _, ok = Normalize("0131", "br")
	assert.False(t, ok)

	code, cc, ok = Normalize("90210", "us")
	assert.Equal(t, "90210", code)
	assert.Equal(t, "US", cc)
	assert.True(t, ok)

	_, _, ok = Normalize("abc", "US")
	assert.False(t, ok)
}

func TestChainLookup(t *testing.T) {
	_, viacep, geo := newFakeProviders(t)
	chain := NewChain(viacep, geo)
	ctx := context.Background()

	t.Run("known BR code is valid with coordinates", func(t *testing.T) {
		res, err := Lookup(ctx, chain, "01310-100", "BR")
		require.NoError(t, err)
		assert.True(t, res.IsValid)
		assert.Equal(t, "São Paulo", res.City)
		assert.Equal(t, "SP", res.State)
		assert.Equal(t, "Avenida Paulista", res.Street)
		require.NotNil(t, res.Latitude)
		assert.InDelta(t, -23.5613, *res.Latitude, 0.0001)
	})

	t.Run("unknown BR code is invalid without error", func(t *testing.T) {
		res, err := Lookup(ctx, chain, "99999-999", "BR")
		require.NoError(t, err)
		assert.False(t, res.IsValid)
		assert.Empty(t, res.City)
	})

	t.Run("malformed code never reaches the provider", func(t *testing.T) {
		res, err := Lookup(ctx, failingProvider{}, "12-3", "BR")
		require.NoError(t, err)
		assert.False(t, res.IsValid)
		assert.Equal(t, "123", res.PostalCode)
	})

	t.Run("foreign code goes to the geocoder", func(t *testing.T) {
		res, err := Lookup(ctx, chain, "90210", "US")
		require.NoError(t, err)
		assert.True(t, res.IsValid)
		assert.Equal(t, "Beverly Hills", res.City)
		assert.Equal(t, "CA", res.State)
		assert.Equal(t, "US", res.Country)
	})

	t.Run("unknown foreign code is invalid", func(t *testing.T) {
		res, err := Lookup(ctx, chain, "00000", "US")
		require.NoError(t, err)
		assert.False(t, res.IsValid)
	})

	t.Run("unreadable body is a lookup failure", func(t *testing.T) {
		_, err := Lookup(ctx, chain, "12345678", "BR")
		assert.ErrorIs(t, err, ErrLookupFailed)
	})

	t.Run("coordinates are best effort", func(t *testing.T) {
		res, err := Lookup(ctx, NewChain(viacep, failingProvider{}), "01310100", "BR")
		require.NoError(t, err)
		assert.True(t, res.IsValid)
		assert.Nil(t, res.Latitude)
	})
}

func TestLookupNetworkFailure(t *testing.T) {
	srv, viacep, _ := newFakeProviders(t)
	srv.Close()

	_, err := Lookup(context.Background(), viacep, "01310100", "BR")
	assert.ErrorIs(t, err, ErrLookupFailed)
}

type failingProvider struct{}

func (failingProvider) Lookup(context.Context, string, string) (*Result, error) {
	return nil, errors.Join(ErrLookupFailed, errors.New("unreachable"))
}
