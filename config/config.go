// Package config provides environment-based configuration for the Plume API.
//
// Configuration is loaded from environment variables using Viper, with sensible
// defaults for development.
//
// # Environment Variables
//
//   - DB_TYPE: Database type (sqlite, postgres, mysql). Default: sqlite
//   - DSN: Database connection string. Default: plume.db
//   - LOG_LEVEL: Logging level (debug, info, warn, error). Default: info
//   - PORT: HTTP server port. Default: 8080
//   - JWT_SECRET: HMAC secret used to verify bearer tokens.
//   - MEDIA_DIR: Directory for uploaded post images. Default: media
//   - POLICY_CACHE_TTL: TTL for cached authorization decisions. Default: 0 (disabled)
//   - REDIS_ADDR: Optional Redis address for the shared policy decision cache.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DBType         string        `mapstructure:"DB_TYPE"` // sqlite, postgres, mysql
	DSN            string        `mapstructure:"DSN"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	Port           int           `mapstructure:"PORT"`
	JWTSecret      string        `mapstructure:"JWT_SECRET"`
	MediaDir       string        `mapstructure:"MEDIA_DIR"`
	PolicyCacheTTL time.Duration `mapstructure:"POLICY_CACHE_TTL"`
	RedisAddr      string        `mapstructure:"REDIS_ADDR"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("PORT", 8080)
	viper.SetDefault("DB_TYPE", "sqlite")
	viper.SetDefault("DSN", "plume.db")
	viper.SetDefault("MEDIA_DIR", "media")
	viper.SetDefault("POLICY_CACHE_TTL", time.Duration(0))

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
