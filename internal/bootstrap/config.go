package bootstrap

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort       string        `mapstructure:"SERVER_PORT"`
	GrpcPort         string        `mapstructure:"GRPC_PORT"`
	StorageDriver    string        `mapstructure:"STORAGE_DRIVER"`
	RedisUrl         string        `mapstructure:"REDIS_URL"`
	RedisPassword    string        `mapstructure:"REDIS_PASSWORD"`
	MongoUri         string        `mapstructure:"MONGO_URI"`
	MongoDatabase    string        `mapstructure:"MONGO_DATABASE"`
	PostgresDsn      string        `mapstructure:"POSTGRES_DSN"`
	GeminiApiKey     string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel      string        `mapstructure:"GEMINI_MODEL"`
	IsLocalCors      bool          `mapstructure:"LOCAL_CORS"`
	SessionTTL       time.Duration `mapstructure:"SESSION_TTL"`
	WeeklyChallenges int           `mapstructure:"WEEKLY_CHALLENGES"`
	LogDevelopment   bool          `mapstructure:"LOG_DEVELOPMENT"`
}

var envKeys = []string{
	"SERVER_PORT", "GRPC_PORT", "STORAGE_DRIVER",
	"REDIS_URL", "REDIS_PASSWORD", "MONGO_URI", "MONGO_DATABASE", "POSTGRES_DSN",
	"GEMINI_API_KEY", "GEMINI_MODEL", "LOCAL_CORS", "SESSION_TTL", "WEEKLY_CHALLENGES",
	"LOG_DEVELOPMENT",
}

// Setup reads the optional env file at cfgPath and overlays process environment.
func Setup(cfgPath string) (*Config, error) {
	if cfgPath != "" {
		if err := godotenv.Load(cfgPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	v := viper.New()
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("GRPC_PORT", "9090")
	v.SetDefault("STORAGE_DRIVER", "memory")
	v.SetDefault("REDIS_URL", "localhost:6379")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "trophyseeker")
	v.SetDefault("GEMINI_MODEL", "gemini-flash-latest")
	v.SetDefault("SESSION_TTL", 720*time.Hour)
	v.SetDefault("WEEKLY_CHALLENGES", 3)

	v.AutomaticEnv()
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
