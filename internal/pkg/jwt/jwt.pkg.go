package jwt

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	types "partner-funnel/internal/common/type"
	"partner-funnel/internal/pkg/logger"
	"partner-funnel/internal/pkg/validation"

	"github.com/golang-jwt/jwt/v5"
)

const (
	SessionDataKey = "session_data"
	devSecret      = "$d3v_funn3l_s3cr3t#"
)

var ErrInvalidToken = errors.New("invalid session token")

type Signer struct {
	secret []byte
	ttl    time.Duration
}

// NewSigner signs HS256 session tokens. An empty secret falls back to a
// development secret; production config refuses to start without one.
func NewSigner(secret string, ttl time.Duration) *Signer {
	if secret == "" {
		logger.Warning.Println("JWT_SECRET not set, using development secret")
		secret = devSecret
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Signer{secret: []byte(secret), ttl: ttl}
}

func (s *Signer) GenerateToken(data types.FunnelSession) (string, *time.Time, error) {
	exp := time.Now().Add(s.ttl)

	claims := jwt.MapClaims{
		"exp":          exp.Unix(),
		"iat":          time.Now().Unix(),
		SessionDataKey: data,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, &exp, nil
}

func (s *Signer) ValidateToken(raw string) (*types.FunnelSession, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid || claims[SessionDataKey] == nil {
		return nil, ErrInvalidToken
	}

	data, err := json.Marshal(claims[SessionDataKey])
	if err != nil {
		return nil, fmt.Errorf("error marshalling session data: %w", err)
	}

	var session types.FunnelSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("error unmarshalling session data: %w", err)
	}
	if err := validation.Validate(session); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return &session, nil
}
