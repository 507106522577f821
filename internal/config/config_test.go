package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:    "load default configuration",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0.0.0.0", cfg.ServerHost)
				assert.Equal(t, 10003, cfg.ServerPort)
				assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
				assert.Equal(t, 10*1024*1024, cfg.MaxUploadSizeBytes)
				assert.Equal(t, "postgres", cfg.DBDriver)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, 2048, cfg.RSAKeyBits)
				assert.Empty(t, cfg.RSAPrivateKeyPath)
				assert.Empty(t, cfg.KMSKeyURI)
				assert.Equal(t, "http://localhost:8001/redact", cfg.DetectionEngineURL)
				assert.Equal(t, 30*time.Second, cfg.DetectionEngineTimeout)
				assert.Equal(t, "byte", cfg.DetectionOffsetUnit)
				assert.Equal(t, time.Hour, cfg.ArtifactTTL)
				assert.Equal(t, time.Minute, cfg.ArtifactSweepInterval)
				assert.Equal(t, 10000, cfg.ArtifactMaxCount)
				assert.True(t, cfg.ArtifactCompressionEnabled)
				assert.False(t, cfg.AuditEnabled)
				assert.True(t, cfg.MetricsEnabled)
				assert.Equal(t, "redactor", cfg.MetricsNamespace)
			},
		},
		{
			name: "load custom server configuration",
			envVars: map[string]string{
				"SERVER_HOST":           "localhost",
				"SERVER_PORT":           "9090",
				"MAX_UPLOAD_SIZE_BYTES": "1024",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "localhost", cfg.ServerHost)
				assert.Equal(t, 9090, cfg.ServerPort)
				assert.Equal(t, 1024, cfg.MaxUploadSizeBytes)
			},
		},
		{
			name: "load custom detection engine configuration",
			envVars: map[string]string{
				"DETECTION_ENGINE_URL":             "http://presidio:8001/redact",
				"DETECTION_ENGINE_TIMEOUT_SECONDS": "5",
				"DETECTION_OFFSET_UNIT":            "rune",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "http://presidio:8001/redact", cfg.DetectionEngineURL)
				assert.Equal(t, 5*time.Second, cfg.DetectionEngineTimeout)
				assert.Equal(t, "rune", cfg.DetectionOffsetUnit)
			},
		},
		{
			name: "load custom artifact configuration",
			envVars: map[string]string{
				"ARTIFACT_TTL_MINUTES":            "5",
				"ARTIFACT_SWEEP_INTERVAL_SECONDS": "10",
				"ARTIFACT_MAX_COUNT":              "0",
				"ARTIFACT_COMPRESSION_ENABLED":    "false",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 5*time.Minute, cfg.ArtifactTTL)
				assert.Equal(t, 10*time.Second, cfg.ArtifactSweepInterval)
				assert.Equal(t, 0, cfg.ArtifactMaxCount)
				assert.False(t, cfg.ArtifactCompressionEnabled)
			},
		},
		{
			name: "load custom key configuration",
			envVars: map[string]string{
				"RSA_KEY_BITS":         "3072",
				"RSA_PRIVATE_KEY_PATH": "/etc/redactor/key.pem",
				"KMS_KEY_URI":          "base64key://smGbjm71Nxd1Ig5FS0wj9SlbzAIrnolCz9bQQ6uAhl4=",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 3072, cfg.RSAKeyBits)
				assert.Equal(t, "/etc/redactor/key.pem", cfg.RSAPrivateKeyPath)
				assert.Equal(t, "base64key://smGbjm71Nxd1Ig5FS0wj9SlbzAIrnolCz9bQQ6uAhl4=", cfg.KMSKeyURI)
			},
		},
		{
			name: "load custom log level",
			envVars: map[string]string{
				"LOG_LEVEL": "debug",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.LogLevel)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear environment
			os.Clearenv()

			// Set test environment variables
			for key, value := range tt.envVars {
				err := os.Setenv(key, value)
				require.NoError(t, err)
			}

			// Load configuration
			cfg := Load()

			// Validate
			tt.validate(t, cfg)
		})
	}
}

func TestGetGinMode(t *testing.T) {
	assert.Equal(t, "debug", (&Config{LogLevel: "debug"}).GetGinMode())
	assert.Equal(t, "release", (&Config{LogLevel: "info"}).GetGinMode())
	assert.Equal(t, "release", (&Config{LogLevel: "unknown"}).GetGinMode())
}
