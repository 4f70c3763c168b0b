package postal

import (
	"context"
	"time"

	types "partner-funnel/internal/common/type"
	"partner-funnel/internal/pkg/postal"
	"partner-funnel/internal/pkg/redis"
	"partner-funnel/internal/repository"
)

type Service struct {
	ctx      context.Context
	redis    redis.IRedis
	rp       repository.IRepository
	provider postal.Provider
	cacheTTL time.Duration
}

type IService interface {
	Lookup(ctx context.Context, sessionID, code, country string) *types.Response
}

func NewService(ctx context.Context, redis redis.IRedis, rp repository.IRepository, provider postal.Provider, cacheTTL time.Duration) IService {
	return &Service{
		ctx:      ctx,
		redis:    redis,
		rp:       rp,
		provider: provider,
		cacheTTL: cacheTTL,
	}
}
