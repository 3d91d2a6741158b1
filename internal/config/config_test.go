package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEnvKeys = []string{
	"SERVER_HOST", "SERVER_PORT", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "ENVIRONMENT",
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS",
	"MONGO_URI", "MONGO_DB", "MONGO_BUCKET",
	"JWT_SECRET", "JWT_TTL_HOURS",
	"UPLOAD_MAX_BYTES", "UPLOAD_GRACE_MINUTES",
	"HUB_SEND_BUFFER",
}

func clearTestEnvVars() {
	for _, key := range testEnvKeys {
		os.Unsetenv(key)
	}
}

func TestLoad_DefaultBehavior(t *testing.T) {
	clearTestEnvVars()
	defer clearTestEnvVars()

	config := Load()
	require.NotNil(t, config)

	assert.Equal(t, "0.0.0.0", config.Server.Host)
	assert.Equal(t, "8080", config.Server.Port)
	assert.Equal(t, 15, config.Server.ReadTimeout)
	assert.Equal(t, 15, config.Server.WriteTimeout)
	assert.Equal(t, "development", config.Server.Environment)

	assert.Equal(t, "localhost", config.Database.Host)
	assert.Equal(t, "3306", config.Database.Port)
	assert.Equal(t, "gigachat", config.Database.Username)
	assert.Equal(t, "gigachat", config.Database.DatabaseName)
	assert.Equal(t, 25, config.Database.MaxOpenConns)
	assert.Equal(t, 5, config.Database.MaxIdleConns)

	assert.Equal(t, "mongodb://localhost:27017", config.Mongo.URI)
	assert.Equal(t, "gigachat_files", config.Mongo.Database)
	assert.Equal(t, "attachments", config.Mongo.Bucket)

	assert.Equal(t, 24, config.Auth.TokenTTLHours)
	assert.Equal(t, int64(25<<20), config.Upload.MaxFileBytes)
	assert.Equal(t, 15, config.Upload.GraceMinutes)
	assert.Equal(t, 256, config.Hub.SendBufferSize)
}

func TestLoad_WithEnvironmentOverrides(t *testing.T) {
	clearTestEnvVars()
	defer clearTestEnvVars()

	overrides := map[string]string{
		"SERVER_PORT":          "9090",
		"DB_HOST":              "db.internal",
		"DB_USER":              "chat",
		"JWT_TTL_HOURS":        "2",
		"UPLOAD_GRACE_MINUTES": "30",
		"HUB_SEND_BUFFER":      "64",
	}
	for key, value := range overrides {
		os.Setenv(key, value)
	}

	config := Load()

	assert.Equal(t, "9090", config.Server.Port)
	assert.Equal(t, "db.internal", config.Database.Host)
	assert.Equal(t, "chat", config.Database.Username)
	assert.Equal(t, 2, config.Auth.TokenTTLHours)
	assert.Equal(t, 30, config.Upload.GraceMinutes)
	assert.Equal(t, 64, config.Hub.SendBufferSize)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	clearTestEnvVars()
	defer clearTestEnvVars()

	os.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	config := Load()
	assert.Equal(t, 25, config.Database.MaxOpenConns)
}

func TestDSN(t *testing.T) {
	clearTestEnvVars()
	defer clearTestEnvVars()

	config := Load()
	config.Database.Username = "chat"
	config.Database.Password = "secret"
	config.Database.Host = "db.internal"
	config.Database.Port = "3307"
	config.Database.DatabaseName = "gigachat"

	dsn := config.DSN()
	assert.Equal(t, "chat:secret@tcp(db.internal:3307)/gigachat?charset=utf8mb4&parseTime=True&loc=Local", dsn)
}

func TestDSN_EmptyHostAndPortDefaults(t *testing.T) {
	config := &Config{
		Database: DatabaseConfig{
			Username:     "chat",
			DatabaseName: "gigachat",
		},
	}

	dsn := config.DSN()
	assert.Contains(t, dsn, "@tcp(localhost:3306)/gigachat")
}
