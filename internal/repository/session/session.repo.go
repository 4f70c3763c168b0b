package session

import (
	"errors"
	"fmt"
	"time"

	"partner-funnel/internal/common/enum"
	"partner-funnel/internal/common/models"
	"partner-funnel/internal/pkg/helper"
	"partner-funnel/internal/pkg/redis"
)

var ErrSessionNotFound = errors.New("funnel session not found")

const keyPrefix = "funnel:session:"

type IRepository interface {
	Get(id string) (*models.FunnelState, error)
	Save(state *models.FunnelState) error
	Delete(id string) error
}

type Repository struct {
	rds redis.IRedis
	ttl time.Duration
}

// NewRepo stores sessions in Redis. Every Save re-arms the ttl.
func NewRepo(rds redis.IRedis, ttl time.Duration) IRepository {
	return &Repository{rds: rds, ttl: ttl}
}

func Key(id string) string {
	return keyPrefix + id
}

func (r *Repository) Get(id string) (*models.FunnelState, error) {
	raw, err := r.rds.Get(Key(id))
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if raw == "" {
		return nil, ErrSessionNotFound
	}

	state, err := helper.StringToStruct[models.FunnelState](raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	if state.Steps == nil {
		state.Steps = map[enum.StepEnum]map[string]any{}
	}
	return state, nil
}

func (r *Repository) Save(state *models.FunnelState) error {
	state.UpdatedAt = time.Now().UTC()
	if err := r.rds.Set(Key(state.ID), state, r.ttl); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *Repository) Delete(id string) error {
	return r.rds.Del(Key(id))
}
