package postal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"partner-funnel/internal/pkg/helper"
	"strconv"
	"strings"
)

type geocodeResponse struct {
	PostCode            string         `json:"post code"`
	Country             string         `json:"country"`
	CountryAbbreviation string         `json:"country abbreviation"`
	Places              []geocodePlace `json:"places"`
}

type geocodePlace struct {
	PlaceName         string `json:"place name"`
	State             string `json:"state"`
	StateAbbreviation string `json:"state abbreviation"`
	Latitude          string `json:"latitude"`
	Longitude         string `json:"longitude"`
}

// Geocoder queries a Zippopotam-style geocoding API. It covers many
// countries and is the only source of coordinates.
type Geocoder struct {
	baseURL string
	http    *helper.HTTPClient
}

func NewGeocoder(baseURL string, client *helper.HTTPClient) *Geocoder {
	return &Geocoder{baseURL: strings.TrimRight(baseURL, "/"), http: client}
}

func (g *Geocoder) Lookup(ctx context.Context, code, country string) (*Result, error) {
	res, err := g.http.HTTPRequest(&helper.HTTPRequestPayload{
		Method: helper.GET,
		URL:    fmt.Sprintf("%s/%s/%s", g.baseURL, strings.ToLower(country), formatForCountry(code, country)),
	}, &helper.HTTPRequestConfig{Ctx: ctx})
	if err != nil {
		return nil, fmt.Errorf("%w: geocoder: %v", ErrLookupFailed, err)
	}

	if res.StatusCode == http.StatusNotFound {
		return Invalid(code, country), nil
	}
	if !res.IsSuccess() {
		return nil, fmt.Errorf("%w: geocoder status %d", ErrLookupFailed, res.StatusCode)
	}

	var body geocodeResponse
	if err := json.Unmarshal(res.Body, &body); err != nil {
		return nil, fmt.Errorf("%w: geocoder body: %v", ErrLookupFailed, err)
	}
	if len(body.Places) == 0 {
		return Invalid(code, country), nil
	}

	place := body.Places[0]
	result := &Result{
		PostalCode: code,
		City:       place.PlaceName,
		State:      helper.FirstNonEmpty(place.StateAbbreviation, place.State),
		Country:    helper.FirstNonEmpty(strings.ToUpper(body.CountryAbbreviation), country),
		Latitude:   parseCoord(place.Latitude),
		Longitude:  parseCoord(place.Longitude),
	}
	result.IsValid = result.City != "" && result.State != ""
	return result, nil
}

// The geocoder indexes Brazilian codes as 00000-000.
func formatForCountry(code, country string) string {
	if country == DefaultCountry && len(code) == 8 {
		return code[:5] + "-" + code[5:]
	}
	return code
}

func parseCoord(raw string) *float64 {
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}
