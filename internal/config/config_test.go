package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDRESS", "STORE_BACKEND", "SPREADSHEET_NAME", "KAFKA_BROKERS", "JWT_SECRET", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8501", cfg.HTTPAddress)
	require.Equal(t, BackendSheets, cfg.StoreBackend)
	require.Equal(t, "Performace", cfg.SpreadsheetName)
	require.Empty(t, cfg.KafkaBrokers)
	require.False(t, cfg.EventsEnabled())
	require.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Memory")
	t.Setenv("KAFKA_BROKERS", " kafka-1:9092, ,kafka-2:9092 ")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("SPREADSHEET_NAME", "Treinos")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, BackendMemory, cfg.StoreBackend)
	require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	require.True(t, cfg.EventsEnabled())
	require.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	require.Equal(t, "Treinos", cfg.SpreadsheetName)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "excel")

	_, err := Load()
	require.Error(t, err)
}
