package helper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	types "partner-funnel/internal/common/type"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnlyDigits(t *testing.T) {
	assert.Equal(t, "01310100", OnlyDigits("01310-100"))
	assert.Equal(t, "12345678909", OnlyDigits("123.456.789-09"))
	assert.Equal(t, "", OnlyDigits("abc"))
	assert.Equal(t, "", OnlyDigits(""))
}

func TestMaskDocument(t *testing.T) {
	assert.Equal(t, "*******8909", MaskDocument("123.456.78909"))
	assert.Equal(t, "***", MaskDocument("123"))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "São Paulo", TitleCase("SÃO PAULO"))
	assert.Equal(t, "", TitleCase("   "))
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", FirstNonEmpty("", "  ", "b", "c"))
	assert.Equal(t, "", FirstNonEmpty())
}

func TestParseResponseDefaults(t *testing.T) {
	r := ParseResponse(&types.Response{})
	assert.Equal(t, http.StatusOK, r.Code)
	assert.Equal(t, "OK", r.Message)

	api := ToResponseAPI(ParseResponse(&types.Response{Code: http.StatusBadGateway, Error: assert.AnError}))
	assert.Equal(t, http.StatusBadGateway, api.Status)
	assert.Equal(t, assert.AnError.Error(), api.Error)
}

func TestHTTPRequest(t *testing.T) {
	var gotAuth, gotQuery string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("id")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(&HTTPClientConfig{RequestTimeout: time.Second})
	res, err := client.HTTPRequest(&HTTPRequestPayload{
		Method: POST,
		URL:    srv.URL + "/x",
		Params: map[string]string{"id": "42"},
		Body:   map[string]any{"amount": 8470},
	}, &HTTPRequestConfig{Ctx: context.Background(), Bearer: "secret"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, res.StatusCode)
	assert.False(t, res.IsSuccess())
	assert.JSONEq(t, `{"ok":true}`, string(res.Body))
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "42", gotQuery)
	assert.EqualValues(t, 8470, gotBody["amount"])
}

func TestHTTPRequestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewHTTPClient(&HTTPClientConfig{RequestTimeout: 20 * time.Millisecond})
	_, err := client.HTTPRequest(&HTTPRequestPayload{Method: GET, URL: srv.URL}, nil)
	assert.Error(t, err)
}
