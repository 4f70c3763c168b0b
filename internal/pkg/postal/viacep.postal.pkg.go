package postal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"partner-funnel/internal/pkg/helper"
	"strings"
)

type viaCEPResponse struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       any    `json:"erro"`
}

// ViaCEP queries the Brazilian national postal API.
type ViaCEP struct {
	baseURL string
	http    *helper.HTTPClient
}

func NewViaCEP(baseURL string, client *helper.HTTPClient) *ViaCEP {
	return &ViaCEP{baseURL: strings.TrimRight(baseURL, "/"), http: client}
}

func (v *ViaCEP) Lookup(ctx context.Context, code, country string) (*Result, error) {
	if country != DefaultCountry {
		return Invalid(code, country), nil
	}

	res, err := v.http.HTTPRequest(&helper.HTTPRequestPayload{
		Method: helper.GET,
		URL:    fmt.Sprintf("%s/ws/%s/json/", v.baseURL, code),
	}, &helper.HTTPRequestConfig{Ctx: ctx})
	if err != nil {
		return nil, fmt.Errorf("%w: viacep: %v", ErrLookupFailed, err)
	}

	// ViaCEP answers 400 for syntactically bad codes.
	if res.StatusCode == http.StatusBadRequest || res.StatusCode == http.StatusNotFound {
		return Invalid(code, country), nil
	}
	if !res.IsSuccess() {
		return nil, fmt.Errorf("%w: viacep status %d", ErrLookupFailed, res.StatusCode)
	}

	var body viaCEPResponse
	if err := json.Unmarshal(res.Body, &body); err != nil {
		return nil, fmt.Errorf("%w: viacep body: %v", ErrLookupFailed, err)
	}

	if isTruthy(body.Erro) || body.Localidade == "" || body.UF == "" {
		return Invalid(code, country), nil
	}

	return &Result{
		PostalCode:   code,
		Street:       body.Logradouro,
		Neighborhood: body.Bairro,
		City:         body.Localidade,
		State:        body.UF,
		Country:      country,
		IsValid:      true,
	}, nil
}

// erro comes back as true or "true" depending on the API version.
func isTruthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(t, "true")
	}
	return false
}
