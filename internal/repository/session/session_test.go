package session

import (
	"testing"
	"time"

	"partner-funnel/internal/common/enum"
	"partner-funnel/internal/common/models"
	"partner-funnel/internal/pkg/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepo(t *testing.T) {
	repo := NewRepo(redis.NewMemory(), time.Hour)

	_, err := repo.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	state := models.NewFunnelState("abc")
	state.CurrentStep = enum.STEP_DELIVERY
	state.Steps[enum.STEP_REGISTRATION] = map[string]any{"name": "Ana"}
	require.NoError(t, repo.Save(state))

	got, err := repo.Get("abc")
	require.NoError(t, err)
	assert.Equal(t, enum.STEP_DELIVERY, got.CurrentStep)
	assert.Equal(t, "Ana", got.Steps[enum.STEP_REGISTRATION]["name"])

	require.NoError(t, repo.Delete("abc"))
	_, err = repo.Get("abc")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "funnel:session:abc", Key("abc"))
}
