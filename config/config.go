package config

import (
	"context"
	"os"
	"strconv"
)

type Env struct {
	DevLogging bool
	LogDir     string
}

type Config struct {
	ConfigPath  string
	WalletsPath string
}

const (
	// EnvDevLogging enabled verbose & console logging
	EnvDevLogging = "DEV_LOGGING"

	// EnvLogDir overrides the directory the run log file is written to
	EnvLogDir = "MINTER_LOG_DIR"

	DefaultLogDir = "/tmp/minter"
)

type envContextKey struct{}

func ParseEnv() Env {
	return Env{
		DevLogging: boolEnv(EnvDevLogging),
		LogDir:     stringEnv(EnvLogDir, DefaultLogDir),
	}
}

func WithEnv(ctx context.Context, env Env) context.Context {
	return context.WithValue(ctx, envContextKey{}, env)
}

func EnvFromContext(ctx context.Context) Env {
	if env, ok := ctx.Value(envContextKey{}).(Env); ok {
		return env
	}

	return Env{LogDir: DefaultLogDir}
}

func boolEnv(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
}

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
