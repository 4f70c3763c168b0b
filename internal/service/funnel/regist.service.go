package funnel

import (
	"context"
	"errors"
	"time"

	"partner-funnel/internal/common/enum"
	types "partner-funnel/internal/common/type"
	"partner-funnel/internal/pkg/beacon"
	"partner-funnel/internal/pkg/postal"
	"partner-funnel/internal/pkg/progress"
	"partner-funnel/internal/repository"

	"github.com/samber/lo"
)

var ErrUnknownStep = errors.New("unknown funnel step")

type TokenSigner interface {
	GenerateToken(data types.FunnelSession) (string, *time.Time, error)
}

type Service struct {
	ctx      context.Context
	rp       repository.IRepository
	signer   TokenSigner
	emitter  beacon.Emitter
	brand    string
	loading  time.Duration
	newID    func() (string, error)
	statuses []string
}

type IService interface {
	StartSession() *types.Response
	GetSession(id string) *types.Response
	SetPostalModal(id string, req *PostalModalRequest) *types.Response
	ConfirmPostal(id string, req *ConfirmPostalRequest) *types.Response
	Advance(id string, step enum.StepEnum, req *AdvanceRequest) *types.Response
	Reset(id string) *types.Response
	Loading(durationMs int) *progress.Sequence
}

type Config struct {
	Brand   string
	Loading time.Duration
	// Statuses overrides progress.DefaultStatuses when non-empty.
	Statuses []string
}

func NewService(ctx context.Context, rp repository.IRepository, signer TokenSigner, emitter beacon.Emitter, cfg Config) IService {
	return &Service{
		ctx:      ctx,
		rp:       rp,
		signer:   signer,
		emitter:  emitter,
		brand:    cfg.Brand,
		loading:  cfg.Loading,
		newID:    newSessionID,
		statuses: lo.Ternary(len(cfg.Statuses) > 0, cfg.Statuses, progress.DefaultStatuses),
	}
}

// Request/Response DTOs

type PostalModalRequest struct {
	Show *bool `json:"show" binding:"required"`
}

type ConfirmPostalRequest struct {
	PostalCode   string   `json:"postalCode" binding:"required,max=16"`
	Street       string   `json:"street" binding:"max=200"`
	Neighborhood string   `json:"neighborhood" binding:"max=200"`
	City         string   `json:"city" binding:"required,max=120"`
	State        string   `json:"state" binding:"required,max=40"`
	Country      string   `json:"country" binding:"omitempty,len=2"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

func (r *ConfirmPostalRequest) ToResult() *postal.Result {
	country := r.Country
	if country == "" {
		country = postal.DefaultCountry
	}
	return &postal.Result{
		PostalCode:   r.PostalCode,
		Street:       r.Street,
		Neighborhood: r.Neighborhood,
		City:         r.City,
		State:        r.State,
		Country:      country,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		IsValid:      true,
	}
}

type AdvanceRequest struct {
	Data map[string]any `json:"data" binding:"omitempty,stepdata"`
}

type StartSessionResponse struct {
	SessionID string    `json:"sessionId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Brand     string    `json:"brand"`
	State     any       `json:"state"`
}
