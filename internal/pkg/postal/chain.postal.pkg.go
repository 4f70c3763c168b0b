package postal

import (
	"context"
	"partner-funnel/internal/pkg/logger"
)

// Chain answers BR codes from the national API and asks the geocoder only
// for coordinates. Other countries go to the geocoder directly.
type Chain struct {
	National Provider
	Geocoder Provider
}

func NewChain(national, geocoder Provider) *Chain {
	return &Chain{National: national, Geocoder: geocoder}
}

func (c *Chain) Lookup(ctx context.Context, code, country string) (*Result, error) {
	if country != DefaultCountry || c.National == nil {
		if c.Geocoder == nil {
			return Invalid(code, country), nil
		}
		return c.Geocoder.Lookup(ctx, code, country)
	}

	result, err := c.National.Lookup(ctx, code, country)
	if err != nil || !result.IsValid || c.Geocoder == nil {
		return result, err
	}

	geo, gerr := c.Geocoder.Lookup(ctx, code, country)
	if gerr != nil {
		logger.Debug.Printf("coordinates unavailable for %s: %v", code, gerr)
		return result, nil
	}
	if geo.IsValid {
		result.Latitude = geo.Latitude
		result.Longitude = geo.Longitude
	}
	return result, nil
}
