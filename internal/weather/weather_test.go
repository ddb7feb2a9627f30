package weather

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"surgewatch/internal/logging"
)

func TestMockDeterministic(t *testing.T) {
	c := NewClient("", logging.NewNop())
	c.now = func() time.Time { return time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC) }

	e1, s1 := c.Current(context.Background(), "Delhi")
	e2, s2 := c.Current(context.Background(), "Delhi")

	assert.Equal(t, "simulated", s1)
	assert.Equal(t, s1, s2)
	assert.Equal(t, e1, e2)
}

func TestMockVariesByCity(t *testing.T) {
	c := NewClient("", logging.NewNop())
	c.now = func() time.Time { return time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC) }

	delhi, _ := c.Current(context.Background(), "Delhi")
	mumbai, _ := c.Current(context.Background(), "Mumbai")

	assert.NotEqual(t, delhi, mumbai)
}

func TestConfigured(t *testing.T) {
	assert.False(t, NewClient("", logging.NewNop()).Configured())
	assert.True(t, NewClient("key", logging.NewNop()).Configured())
}
