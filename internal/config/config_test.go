package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "API_BASE_PATH", "DB_DSN", "KAFKA_TOPIC", "HOSPITAL_IDS", "DEFAULT_CITY", "AGENT_AUTONOMOUS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.API.Port)
	assert.Equal(t, "/api", cfg.API.BasePath)
	assert.Equal(t, "Delhi", cfg.Weather.DefaultCity)
	assert.Equal(t, "surgewatch.alerts", cfg.Kafka.Topic)
	assert.Equal(t, []string{"H001", "H002", "H003"}, cfg.Agent.HospitalIDs)
	assert.False(t, cfg.Agent.Autonomous)
}

func TestLoadPortNormalization(t *testing.T) {
	t.Setenv("PORT", "9000")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.API.Port)
}

func TestLoadHospitalIDs(t *testing.T) {
	t.Setenv("HOSPITAL_IDS", "H010, H020 ,H030")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"H010", "H020", "H030"}, cfg.Agent.HospitalIDs)
}

func TestLoadAutonomousFlag(t *testing.T) {
	t.Setenv("AGENT_AUTONOMOUS", "true")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Agent.Autonomous)
}
