package database

import (
	"context"
	"testing"

	"github.com/go-gorm/caches/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacher(t *testing.T) {
	ctx := context.Background()
	c := &memoryCacher{}
	key := caches.IdentifierPrefix + "select"

	got, err := c.Get(ctx, key, &caches.Query[any]{})
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, c.Store(ctx, key, &caches.Query[any]{Dest: map[string]any{"id": "1"}, RowsAffected: 1}))

	got, err = c.Get(ctx, key, &caches.Query[any]{Dest: &map[string]any{}})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.EqualValues(t, 1, got.RowsAffected)

	require.NoError(t, c.Invalidate(ctx))
	got, err = c.Get(ctx, key, &caches.Query[any]{})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDriverEnum(t *testing.T) {
	assert.True(t, POSTGRES.IsValid())
	assert.False(t, DriverEnum("sqlite").IsValid())
	assert.Equal(t, "mysql", MYSQL.ToString())
}
