package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/subosito/gotenv"
)

const (
	StoreBunt   = "bunt"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

type Config struct {
	AppEnv   string `toml:"app_env"`
	LogLevel string `toml:"log_level"`

	GRPCPort int `toml:"grpc_port"`
	HTTPPort int `toml:"http_port"`

	OtelEnabled bool `toml:"otel_enabled"`

	Store Store `toml:"store"`
}

type Store struct {
	Backend   string `toml:"backend"`
	Key       string `toml:"key"`
	BuntPath  string `toml:"bunt_path"`
	RedisAddr string `toml:"redis_addr"`
}

func defaults() Config {
	return Config{
		AppEnv:   "dev",
		LogLevel: "info",
		HTTPPort: 8080,
		GRPCPort: 8081,
		Store: Store{
			Backend:  StoreBunt,
			Key:      "@GoMarketplace",
			BuntPath: "cart.db",
		},
	}
}

// LoadFile pulls in a .env file when one exists, then layers defaults, the
// TOML file at path (if any) and the environment. Environment variables win.
func LoadFile(path string) (Config, error) {
	_ = gotenv.Load()

	cfg := defaults()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return defaults(), fmt.Errorf("read config %q: %w", path, err)
		}
	}

	cfg.AppEnv = getEnv("APP_ENV", cfg.AppEnv)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.HTTPPort = getEnvInt("HTTP_PORT", cfg.HTTPPort)
	cfg.GRPCPort = getEnvInt("GRPC_PORT", cfg.GRPCPort)
	cfg.OtelEnabled = getEnvBool("OTEL_ENABLED", cfg.OtelEnabled)
	cfg.Store.Backend = strings.ToLower(getEnv("CART_STORE", cfg.Store.Backend))
	cfg.Store.Key = getEnv("CART_STORAGE_KEY", cfg.Store.Key)
	cfg.Store.BuntPath = getEnv("BUNT_PATH", cfg.Store.BuntPath)
	cfg.Store.RedisAddr = getEnv("REDIS_ADDR", cfg.Store.RedisAddr)

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvBool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}
