package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppliesDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/trips")
	t.Setenv("SOURCE_TIMEZONE", "")
	t.Setenv("AUDIT_FILE_PATH", "")
	t.Setenv("DB_BATCH_SIZE", "")
	t.Setenv("API_PORT", "")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", cfg.SourceTimezone)
	assert.Equal(t, "duplicates.csv", cfg.AuditFilePath)
	assert.Equal(t, 50000, cfg.DBBatchSize)
	assert.Equal(t, "8080", cfg.APIPort)
}

func TestNewRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestNewRejectsNonPositiveBatchSize(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"zero", "0"},
		{"negative", "-100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "postgres://localhost/trips")
			t.Setenv("DB_BATCH_SIZE", tt.value)

			_, err := New()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "DB_BATCH_SIZE")
		})
	}
}

func TestNewRejectsNonIntegerBatchSize(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/trips")
	t.Setenv("DB_BATCH_SIZE", "lots")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_BATCH_SIZE")
}
