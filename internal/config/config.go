package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates the service configuration.
type Config struct {
	Server ServerConfig
	Roster RosterConfig
	Probe  ProbeConfig
	Audit  AuditConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	roster, err := loadRosterConfig()
	if err != nil {
		return nil, err
	}

	probe, err := loadProbeConfig()
	if err != nil {
		return nil, err
	}

	audit, err := loadAuditConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Roster: roster, Probe: probe, Audit: audit}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" verbatim.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// RosterConfig describes where the roster document lives and how long a
// fetch may take. An empty DataURL selects the built-in seed roster.
type RosterConfig struct {
	DataURL      string
	FetchTimeout time.Duration
}

// Seeded reports whether the service falls back to the built-in roster.
func (c RosterConfig) Seeded() bool {
	return c.DataURL == ""
}

func loadRosterConfig() (RosterConfig, error) {
	seconds, err := parsePositiveSecondsEnv("SISTERS_FETCH_TIMEOUT", 10)
	if err != nil {
		return RosterConfig{}, err
	}

	return RosterConfig{
		DataURL:      strings.TrimSpace(os.Getenv("SISTERS_DATA_URL")),
		FetchTimeout: time.Duration(seconds) * time.Second,
	}, nil
}

// ProbeConfig bounds the image reachability probe.
type ProbeConfig struct {
	Timeout time.Duration
}

func loadProbeConfig() (ProbeConfig, error) {
	seconds, err := parsePositiveSecondsEnv("IMAGE_PROBE_TIMEOUT", 5)
	if err != nil {
		return ProbeConfig{}, err
	}
	return ProbeConfig{Timeout: time.Duration(seconds) * time.Second}, nil
}

// AuditConfig bounds the in-memory audit trail.
type AuditConfig struct {
	Limit int
}

func loadAuditConfig() (AuditConfig, error) {
	limit, err := parseOptionalIntEnv("AUDIT_LIMIT")
	if err != nil {
		return AuditConfig{}, err
	}
	value := 256
	if limit != nil {
		if *limit < 1 {
			return AuditConfig{}, fmt.Errorf("AUDIT_LIMIT must be positive, got %d", *limit)
		}
		value = *limit
	}
	return AuditConfig{Limit: value}, nil
}

func parsePositiveSecondsEnv(key string, defaultValue int) (int, error) {
	parsed, err := parseOptionalIntEnv(key)
	if err != nil {
		return 0, err
	}
	if parsed == nil {
		return defaultValue, nil
	}
	if *parsed < 1 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, *parsed)
	}
	return *parsed, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
