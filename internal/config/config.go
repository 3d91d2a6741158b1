package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Server ServerConfig `json:"server"`

	// Database Configuration
	Database DatabaseConfig `json:"database"`

	// Mongo Configuration (attachment blobs)
	Mongo MongoConfig `json:"mongo"`

	// Auth Configuration
	Auth AuthConfig `json:"auth"`

	// Upload Configuration
	Upload UploadConfig `json:"upload"`

	// Hub Configuration
	Hub HubConfig `json:"hub"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Port         string `json:"port"`
	Host         string `json:"host"`
	ReadTimeout  int    `json:"read_timeout"`
	WriteTimeout int    `json:"write_timeout"`
	Environment  string `json:"environment"` // development, staging, production
}

// DatabaseConfig contains MySQL connection configuration
type DatabaseConfig struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	DatabaseName string `json:"database_name"`
	MaxOpenConns int    `json:"max_open_conns"`
	MaxIdleConns int    `json:"max_idle_conns"`
}

// MongoConfig contains the GridFS bucket configuration for attachment blobs
type MongoConfig struct {
	URI      string `json:"uri"`
	Database string `json:"database"`
	Bucket   string `json:"bucket"`
}

// AuthConfig contains JWT settings
type AuthConfig struct {
	JWTSecret     string `json:"-"`
	TokenTTLHours int    `json:"token_ttl_hours"`
}

// UploadConfig bounds attachment uploads
type UploadConfig struct {
	MaxFileBytes int64 `json:"max_file_bytes"`
	// Minutes an unlinked attachment stays accessible to its uploader.
	GraceMinutes int `json:"grace_minutes"`
}

// HubConfig tunes the websocket hub
type HubConfig struct {
	SendBufferSize int `json:"send_buffer_size"`
}

// Load builds the configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvOrDefault("SERVER_PORT", "8080"),
			ReadTimeout:  getEnvIntOrDefault("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvIntOrDefault("SERVER_WRITE_TIMEOUT", 15),
			Environment:  getEnvOrDefault("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:         getEnvOrDefault("DB_HOST", "localhost"),
			Port:         getEnvOrDefault("DB_PORT", "3306"),
			Username:     getEnvOrDefault("DB_USER", "gigachat"),
			Password:     getEnvOrDefault("DB_PASSWORD", ""),
			DatabaseName: getEnvOrDefault("DB_NAME", "gigachat"),
			MaxOpenConns: getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvIntOrDefault("DB_MAX_IDLE_CONNS", 5),
		},
		Mongo: MongoConfig{
			URI:      getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnvOrDefault("MONGO_DB", "gigachat_files"),
			Bucket:   getEnvOrDefault("MONGO_BUCKET", "attachments"),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnvOrDefault("JWT_SECRET", ""),
			TokenTTLHours: getEnvIntOrDefault("JWT_TTL_HOURS", 24),
		},
		Upload: UploadConfig{
			MaxFileBytes: int64(getEnvIntOrDefault("UPLOAD_MAX_BYTES", 25<<20)),
			GraceMinutes: getEnvIntOrDefault("UPLOAD_GRACE_MINUTES", 15),
		},
		Hub: HubConfig{
			SendBufferSize: getEnvIntOrDefault("HUB_SEND_BUFFER", 256),
		},
	}
}

// DSN builds the MySQL connection string.
func (cfg *Config) DSN() string {
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "3306"
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DatabaseName,
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
