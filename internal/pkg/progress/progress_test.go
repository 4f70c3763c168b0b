package progress

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunEmitsInOrderThenCompletes(t *testing.T) {
	seq := New([]string{"a", "b", "c"}, 30*time.Millisecond)

	var got []string
	completed := 0
	start := time.Now()
	err := seq.Run(context.Background(), func(i int, s string) {
		assert.Equal(t, len(got), i)
		got = append(got, s)
	}, func() {
		completed++
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 1, completed)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestRunCancelled(t *testing.T) {
	seq := New([]string{"a", "b", "c"}, time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var got []string
	completed := false
	err := seq.Run(ctx, func(_ int, s string) { got = append(got, s) }, func() { completed = true })

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, []string{"a"}, got)
	assert.False(t, completed)
}

func TestZeroDuration(t *testing.T) {
	seq := New(nil, 0)
	assert.Equal(t, time.Duration(0), seq.Interval())

	n := 0
	require.NoError(t, seq.Run(context.Background(), func(int, string) { n++ }, nil))
	assert.Equal(t, len(DefaultStatuses), n)
}

func TestParseStatuses(t *testing.T) {
	got, err := ParseStatuses([]byte("statuses:\n  - One\n  - \"  \"\n  - Two\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"One", "Two"}, got)

	_, err = ParseStatuses([]byte("statuses: []\n"))
	assert.Error(t, err)

	_, err = ParseStatuses([]byte("statuses: [unclosed\n"))
	assert.Error(t, err)
}

func TestLoadStatuses(t *testing.T) {
	got, err := LoadStatuses("")
	require.NoError(t, err)
	assert.Equal(t, DefaultStatuses, got)

	path := filepath.Join(t.TempDir(), "loading.yaml")
	require.NoError(t, os.WriteFile(path, []byte("statuses:\n  - Only one\n"), 0o644))
	got, err = LoadStatuses(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Only one"}, got)

	_, err = LoadStatuses(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
