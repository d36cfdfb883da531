package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ServiceMode represents the available service modes.
type ServiceMode string

const (
	// ServiceModeHTTP runs the HTTP server.
	ServiceModeHTTP ServiceMode = "http"
	// ServiceModeKeepalive runs the periodic database keepalive probe.
	ServiceModeKeepalive ServiceMode = "keepalive"
)

// ValidServiceModes returns all valid service mode names.
func ValidServiceModes() []ServiceMode {
	return []ServiceMode{
		ServiceModeHTTP,
		ServiceModeKeepalive,
	}
}

// ParseServices parses a comma-delimited string of service names and returns the enabled services.
// It validates that all service names are valid and returns an error if any are invalid.
func ParseServices(servicesStr string) (map[ServiceMode]bool, error) {
	services := make(map[ServiceMode]bool)

	if servicesStr == "" {
		return services, errors.New("at least one service must be specified")
	}

	parts := strings.Split(servicesStr, ",")
	for _, part := range parts {
		serviceName := strings.TrimSpace(part)
		if serviceName == "" {
			continue
		}

		mode := ServiceMode(serviceName)
		switch mode {
		case ServiceModeHTTP, ServiceModeKeepalive:
			services[mode] = true
		default:
			return nil, fmt.Errorf(
				"invalid service name: %q (valid options: http, keepalive)",
				serviceName,
			)
		}
	}

	if len(services) == 0 {
		return nil, errors.New("at least one valid service must be specified")
	}

	return services, nil
}

// KeepaliveConfig contains database keepalive probe configuration.
// The probe is a no-op connectivity check that keeps managed databases from
// being paused for inactivity; results are logged only.
type KeepaliveConfig struct {
	// Interval is how often the probe runs. Multi-day intervals are expected.
	Interval time.Duration `env:"KEEPALIVE_INTERVAL" envDefault:"72h"`

	// Timeout bounds a single probe.
	Timeout time.Duration `env:"KEEPALIVE_TIMEOUT" envDefault:"10s"`
}

// Sanitize applies guardrails to keepalive configuration values.
func (k *KeepaliveConfig) Sanitize() {
	if k.Interval <= 0 {
		k.Interval = 72 * time.Hour
	}
	if k.Timeout <= 0 {
		k.Timeout = 10 * time.Second
	}
}
