package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds the full application configuration
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	AWS    AWSConfig    `mapstructure:"aws"`
	Model  ModelConfig  `mapstructure:"model"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// AWSConfig holds remote storage configuration
type AWSConfig struct {
	Region string `mapstructure:"region"`
	Bucket string `mapstructure:"bucket"`
}

// ModelConfig holds model artifact configuration
type ModelConfig struct {
	// Prefix is the key prefix under which the model artifact tree lives
	// in the bucket.
	Prefix string `mapstructure:"prefix"`
	// CacheDir is the local directory the artifact tree is mirrored into.
	// It doubles as the warm-start probe location.
	CacheDir string `mapstructure:"cache_dir"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with defaults.
// Variables use the TOXIC_ prefix, e.g. TOXIC_SERVER_PORT, TOXIC_AWS_BUCKET.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("TOXIC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")

	// AWS
	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("aws.bucket", "toxic-chat-classifier")

	// Model
	v.SetDefault("model.prefix", "toxic_chat_model_full/")
	v.SetDefault("model.cache_dir", "/tmp/toxic_chat_model_full")

	// Redis
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Log
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
