package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads configuration from the environment. When envFilePath is given
// the first loadable file seeds the environment first; otherwise a .env in
// the working directory is tried and its absence is not an error.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()

	loaded := false
	for _, path := range envFilePath {
		if err := godotenv.Load(path); err != nil {
			logger.Debug("environment file not loadable", "path", path, "error", err)
			continue
		}
		logger.Info("environment loaded from file", "path", path)
		loaded = true
		break
	}
	if !loaded {
		if err := godotenv.Load(); err != nil {
			logger.Warn("no .env file found, using system environment")
		}
	}
	return loadFromEnv()
}

func loadFromEnv() (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	logger := slog.Default()
	logger.Info("app config loaded",
		"env", cfg.Env,
		"server_port", cfg.Server.Port,
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
		"db", maskValue(cfg.DB.Url),
		"auth_strategy", cfg.Auth.Strategy,
		"auth_jwt_expiry", cfg.Auth.Jwt.Expiry,
	)
	return &cfg, nil
}

func maskValue(key string) string {
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}
