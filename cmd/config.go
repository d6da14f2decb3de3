package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"examgateway/domain"

	"gopkg.in/yaml.v3"
)

// Env variable names.
const (
	envHTTPPort   = "SERVICE_PORT_HTTP"
	envConfigPath = "CONFIG_PATH"
	envRedisAddr  = "REDIS_ADDR"
)

// Tunable defaults, applied when the YAML omits the corresponding field.
const (
	defaultPollIntervalMs  = 5000
	defaultPollTimeoutMs   = 2000
	defaultFailureCount    = 2
	defaultIdleWindowMs    = 30 * 60 * 1000
	defaultSweepIntervalMs = 60 * 1000
	defaultForwardMs       = 5000
)

// Config holds the full gateway configuration loaded by LoadConfig from environment variables and
// the YAML file. HTTPPort is the listening port (from SERVICE_PORT_HTTP); RedisAddr enables
// registry persistence when non-empty (from REDIS_ADDR); Backends is the initial catalog from
// YAML; the remaining fields tune health polling, session idle sweeping and forwarding.
type Config struct {
	HTTPPort  int
	RedisAddr string
	Backends  []domain.Backend

	PollInterval     time.Duration
	PollTimeout      time.Duration
	FailureThreshold int

	IdleWindow     time.Duration
	SweepInterval  time.Duration
	ForwardTimeout time.Duration
}

// yamlConfig is the root struct for YAML unmarshalling; contains backends, health, sessions and forward.
type yamlConfig struct {
	Backends []yamlBackend `yaml:"backends"`
	Health   yamlHealth    `yaml:"health"`
	Sessions yamlSessions  `yaml:"sessions"`
	Forward  yamlForward   `yaml:"forward"`
}

// yamlBackend is one backend entry: id, base address, session capacity.
type yamlBackend struct {
	ID       string `yaml:"id"`
	Address  string `yaml:"address"`
	Capacity int    `yaml:"capacity"`
}

// yamlHealth tunes the monitor: poll cadence, per-poll timeout and the consecutive-failure count
// that flips a backend to unhealthy.
type yamlHealth struct {
	PollIntervalMs   int `yaml:"poll_interval_ms"`
	PollTimeoutMs    int `yaml:"poll_timeout_ms"`
	FailureThreshold int `yaml:"failure_threshold"`
}

// yamlSessions tunes the session table: idle window before a binding is reclaimed and the sweep cadence.
type yamlSessions struct {
	IdleWindowMs    int `yaml:"idle_window_ms"`
	SweepIntervalMs int `yaml:"sweep_interval_ms"`
}

// yamlForward tunes the forwarder: per-request deadline.
type yamlForward struct {
	TimeoutMs int `yaml:"timeout_ms"`
}

// loadYAMLConfig reads the YAML file at path and unmarshals it into yamlConfig.
//
// Called only from LoadConfig.
func loadYAMLConfig(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out yamlConfig
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoadConfig builds the gateway config from environment variables and YAML at CONFIG_PATH. Reads
// SERVICE_PORT_HTTP (required, 1–65535), CONFIG_PATH (required), REDIS_ADDR (optional). Each YAML
// backend entry is validated via domain.ValidateBackend; tunables default when omitted and are
// rejected when non-positive.
//
// Returns: (*Config, nil) on success; (nil, error) on invalid port, missing CONFIG_PATH, YAML
// load/parse error, invalid backend entry or non-positive tunable.
//
// Called only from main at startup.
func LoadConfig() (*Config, error) {
	httpPortStr := os.Getenv(envHTTPPort)
	httpPort, err := strconv.Atoi(httpPortStr)
	if err != nil || httpPortStr == "" {
		return nil, fmt.Errorf("%s must be a valid port (1-65535)", envHTTPPort)
	}
	if httpPort <= 0 || httpPort > 65535 {
		return nil, fmt.Errorf("%s must be 1-65535, got %d", envHTTPPort, httpPort)
	}
	configPath := strings.TrimSpace(os.Getenv(envConfigPath))
	if configPath == "" {
		return nil, fmt.Errorf("%s is required", envConfigPath)
	}
	if !filepath.IsAbs(configPath) {
		abs, absErr := filepath.Abs(configPath)
		if absErr != nil {
			return nil, absErr
		}
		configPath = abs
	}
	raw, err := loadYAMLConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", configPath, err)
	}

	backends := make([]domain.Backend, 0, len(raw.Backends))
	seen := make(map[domain.BackendID]struct{}, len(raw.Backends))
	for _, b := range raw.Backends {
		backend := domain.Backend{
			ID:       domain.BackendID(strings.TrimSpace(b.ID)),
			Address:  strings.TrimSpace(b.Address),
			Capacity: b.Capacity,
		}
		if err := domain.ValidateBackend(backend); err != nil {
			return nil, err
		}
		if _, dup := seen[backend.ID]; dup {
			return nil, fmt.Errorf("backend %q is listed twice", backend.ID)
		}
		seen[backend.ID] = struct{}{}
		backends = append(backends, backend)
	}

	pollIntervalMs, err := tunable(raw.Health.PollIntervalMs, defaultPollIntervalMs, "health.poll_interval_ms")
	if err != nil {
		return nil, err
	}
	pollTimeoutMs, err := tunable(raw.Health.PollTimeoutMs, defaultPollTimeoutMs, "health.poll_timeout_ms")
	if err != nil {
		return nil, err
	}
	failureThreshold, err := tunable(raw.Health.FailureThreshold, defaultFailureCount, "health.failure_threshold")
	if err != nil {
		return nil, err
	}
	idleWindowMs, err := tunable(raw.Sessions.IdleWindowMs, defaultIdleWindowMs, "sessions.idle_window_ms")
	if err != nil {
		return nil, err
	}
	sweepIntervalMs, err := tunable(raw.Sessions.SweepIntervalMs, defaultSweepIntervalMs, "sessions.sweep_interval_ms")
	if err != nil {
		return nil, err
	}
	forwardMs, err := tunable(raw.Forward.TimeoutMs, defaultForwardMs, "forward.timeout_ms")
	if err != nil {
		return nil, err
	}

	return &Config{
		HTTPPort:         httpPort,
		RedisAddr:        strings.TrimSpace(os.Getenv(envRedisAddr)),
		Backends:         backends,
		PollInterval:     time.Duration(pollIntervalMs) * time.Millisecond,
		PollTimeout:      time.Duration(pollTimeoutMs) * time.Millisecond,
		FailureThreshold: failureThreshold,
		IdleWindow:       time.Duration(idleWindowMs) * time.Millisecond,
		SweepInterval:    time.Duration(sweepIntervalMs) * time.Millisecond,
		ForwardTimeout:   time.Duration(forwardMs) * time.Millisecond,
	}, nil
}

// tunable applies def when value is zero and rejects negatives.
//
// Called only from LoadConfig.
func tunable(value int, def int, name string) (int, error) {
	if value == 0 {
		return def, nil
	}
	if value < 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", name, value)
	}
	return value, nil
}
