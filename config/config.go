package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Mirror modes accepted in MIRROR_MODE.
const (
	WriteThrough = "write-through"
	WriteBack    = "write-back"
)

type Config struct {
	Host string
	Port int

	// DatabaseURL selects the persistence mirror. Empty disables it.
	DatabaseURL  string
	MirrorMode   string
	MirrorBuffer int

	// EventsURL is an AMQP URL for lifecycle events. Empty disables them.
	EventsURL    string
	EventsBuffer int

	SweepInterval   time.Duration
	ShutdownTimeout time.Duration
}

// Addr is host:port for the HTTP listener.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

/*
FromEnv reads the configuration from the environment.

A .env file in the working directory is loaded first if present; variables
already set in the environment win over it.
*/
func FromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		Host:        getenv("HOST", "0.0.0.0"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		MirrorMode:  getenv("MIRROR_MODE", WriteThrough),
		EventsURL:   os.Getenv("EVENTS_URL"),
	}

	var err error
	if cfg.Port, err = intEnv("PORT", 8080); err != nil {
		return Config{}, err
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("PORT must be between 1 and 65535, got %d", cfg.Port)
	}
	if cfg.MirrorBuffer, err = intEnv("MIRROR_BUFFER", 1024); err != nil {
		return Config{}, err
	}
	if cfg.EventsBuffer, err = intEnv("EVENTS_BUFFER", 1024); err != nil {
		return Config{}, err
	}
	if cfg.SweepInterval, err = durationEnv("SWEEP_INTERVAL", time.Second); err != nil {
		return Config{}, err
	}
	if cfg.SweepInterval <= 0 {
		return Config{}, fmt.Errorf("SWEEP_INTERVAL must be positive, got %s", cfg.SweepInterval)
	}
	if cfg.ShutdownTimeout, err = durationEnv("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}

	switch cfg.MirrorMode {
	case WriteThrough, WriteBack:
	default:
		return Config{}, fmt.Errorf("MIRROR_MODE must be %q or %q, got %q", WriteThrough, WriteBack, cfg.MirrorMode)
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 5s: %w", key, err)
	}
	return d, nil
}
