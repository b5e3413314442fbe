package config_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/vocabflash/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:                "127.0.0.1:8080",
		DBPath:              "test.db",
		LogLevel:            "INFO",
		Timezone:            "UTC",
		MasteryUpThreshold:  3,
		WeightWrongRate:     0.4,
		WeightRecency:       0.3,
		WeightMasteryGap:    0.2,
		WeightWrongVolume:   0.1,
		MaxExamQuestions:    100,
		WorkerCount:         1,
		QueueSize:           16,
		BackupEnabled:       true,
		BackupDir:           "backups",
		BackupIntervalHours: 168,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_BackupDirRequiredOnlyWhenEnabled(t *testing.T) {
	cfg := validConfig()
	cfg.BackupDir = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BACKUP_DIR cannot be empty")

	cfg.BackupEnabled = false
	assert.NoError(t, cfg.Validate())
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{name: "invalid level", level: "INVALID", wantErr: true},
		{name: "empty level", level: "", wantErr: true},
		{name: "lowercase valid level", level: "debug", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = tt.level

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "LOG_LEVEL")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_WeightsMustSumToOne(t *testing.T) {
	cfg := validConfig()
	cfg.WeightWrongRate = 0.5

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must sum to 1.0")
}

func TestValidate_NegativeWeight(t *testing.T) {
	cfg := validConfig()
	cfg.WeightRecency = -0.1
	cfg.WeightWrongRate = 0.8

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEIGHT_RECENCY must be at least 0")
}

func TestValidate_UnknownTimezone(t *testing.T) {
	cfg := validConfig()
	cfg.Timezone = "Mars/Olympus_Mons"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TIMEZONE")
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""
	cfg.DBPath = ""
	cfg.LogLevel = "INVALID"
	cfg.WorkerCount = 0
	cfg.QueueSize = 0
	cfg.MasteryUpThreshold = 0
	cfg.BackupIntervalHours = 0

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "DB_PATH cannot be empty")
	assert.Contains(t, errStr, "LOG_LEVEL")
	assert.Contains(t, errStr, "WORKER_COUNT")
	assert.Contains(t, errStr, "QUEUE_SIZE")
	assert.Contains(t, errStr, "MASTERY_UP_THRESHOLD")
	assert.Contains(t, errStr, "BACKUP_INTERVAL_HOURS")
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.MasteryUpThreshold)
	assert.InDelta(t, 0.4, cfg.WeightWrongRate, 1e-9)
	assert.Equal(t, 168*time.Hour, cfg.BackupInterval())
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_PATH", "custom.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MASTERY_UP_THRESHOLD", "5")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, 5, cfg.MasteryUpThreshold)
}

func TestLocation(t *testing.T) {
	cfg := validConfig()
	cfg.Timezone = "Asia/Seoul"
	assert.Equal(t, "Asia/Seoul", cfg.Location().String())
}
