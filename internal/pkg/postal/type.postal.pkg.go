package postal

import (
	"context"
	"errors"
	"partner-funnel/internal/pkg/helper"
	"strings"
)

// ErrLookupFailed covers transport faults and unreadable provider answers.
// "Not found" is not an error; it is a Result with IsValid false.
var ErrLookupFailed = errors.New("postal lookup failed")

const DefaultCountry = "BR"

// Result is the provider-neutral shape of a lookup.
type Result struct {
	PostalCode   string   `json:"postalCode"`
	Street       string   `json:"street,omitempty"`
	Neighborhood string   `json:"neighborhood,omitempty"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Country      string   `json:"country"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	IsValid      bool     `json:"isValid"`
}

// Provider resolves a normalized postal code.
type Provider interface {
	Lookup(ctx context.Context, code, country string) (*Result, error)
}

// Invalid is the marker returned for malformed or unknown codes.
func Invalid(code, country string) *Result {
	return &Result{PostalCode: code, Country: country, IsValid: false}
}

// Normalize strips non-digits and upper-cases the country (default BR).
// ok is false when the code cannot be a postal code of that country.
func Normalize(raw, country string) (code, cc string, ok bool) {
	code = helper.OnlyDigits(raw)
	cc = strings.ToUpper(strings.TrimSpace(country))
	if cc == "" {
		cc = DefaultCountry
	}

	if cc == DefaultCountry {
		return code, cc, len(code) == 8
	}
	return code, cc, len(code) >= 3 && len(code) <= 10
}

// Lookup normalizes the input and consults p only for well-formed codes.
func Lookup(ctx context.Context, p Provider, raw, country string) (*Result, error) {
	code, cc, ok := Normalize(raw, country)
	if !ok {
		return Invalid(code, cc), nil
	}
	return p.Lookup(ctx, code, cc)
}
