package postal

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	types "partner-funnel/internal/common/type"
	"partner-funnel/internal/pkg/helper"
	"partner-funnel/internal/pkg/logger"
	"partner-funnel/internal/pkg/postal"
)

func CacheKey(country, code string) string {
	return fmt.Sprintf("postal:%s:%s", country, code)
}

// Lookup resolves a postal code. Malformed and unknown codes answer 200 with
// isValid=false; provider outages answer 502 with a manual-entry hint.
func (s *Service) Lookup(ctx context.Context, sessionID, raw, country string) *types.Response {
	code, cc, ok := postal.Normalize(raw, country)
	if !ok {
		return helper.ParseResponse(&types.Response{Message: "Invalid postal code", Data: postal.Invalid(code, cc)})
	}

	result := s.cached(cc, code)
	if result == nil {
		var err error
		result, err = s.provider.Lookup(ctx, code, cc)
		if err != nil {
			if !errors.Is(err, postal.ErrLookupFailed) {
				err = fmt.Errorf("%w: %v", postal.ErrLookupFailed, err)
			}
			logger.Warning.Printf("Postal lookup %s/%s failed: %v\n", cc, code, err)
			return helper.ParseResponse(&types.Response{
				Code:    http.StatusBadGateway,
				Message: "Postal lookup unavailable",
				Data:    map[string]string{"fallback": "manual"},
				Error:   err,
			})
		}
		if result.IsValid {
			if err := s.redis.Set(CacheKey(cc, code), result, s.cacheTTL); err != nil {
				logger.Warning.Printf("Failed to cache postal %s/%s: %v\n", cc, code, err)
			}
		}
	}

	if sessionID != "" {
		s.remember(sessionID, result)
	}

	message := "Postal code found"
	if !result.IsValid {
		message = "Postal code not found"
	}
	return helper.ParseResponse(&types.Response{Message: message, Data: result})
}

func (s *Service) cached(cc, code string) *postal.Result {
	raw, err := s.redis.Get(CacheKey(cc, code))
	if err != nil {
		logger.Warning.Printf("Postal cache read failed: %v\n", err)
		return nil
	}
	if raw == "" {
		return nil
	}
	result, err := helper.StringToStruct[postal.Result](raw)
	if err != nil {
		return nil
	}
	return result
}

// remember keeps the last lookup on the session. Failures are logged only.
func (s *Service) remember(sessionID string, result *postal.Result) {
	state, err := s.rp.Session.Get(sessionID)
	if err != nil {
		logger.Debug.Printf("Postal lookup not stored on session %s: %v\n", sessionID, err)
		return
	}
	state.PostalData = result
	if err := s.rp.Session.Save(state); err != nil {
		logger.Warning.Printf("Failed to store postal lookup on session %s: %v\n", sessionID, err)
	}
}
