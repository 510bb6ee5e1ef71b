package host

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config holds configuration for the host server.
type Config struct {
	// Address is the listen address. Default: ":8080".
	Address string

	// AllowedOrigins restricts websocket upgrades by Origin header. Empty
	// means same-origin only; "*" allows any origin.
	AllowedOrigins []string

	// MaxMessageSize is the maximum size of an incoming websocket message.
	// Default: 64KB.
	MaxMessageSize int64

	// WriteTimeout is the maximum time to wait when sending a frame.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// PingInterval is the time between keepalive pings. Default: 30s.
	PingInterval time.Duration

	// Registry is the Prometheus registry to register metrics with.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer

	// TracerName names the OpenTelemetry tracer. Default: "weft-host".
	TracerName string

	// Logger receives server logs. Default: slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Address:        ":8080",
		MaxMessageSize: 64 * 1024,
		WriteTimeout:   10 * time.Second,
		PingInterval:   30 * time.Second,
		Registry:       prometheus.DefaultRegisterer,
		TracerName:     "weft-host",
		Logger:         slog.Default(),
	}
}

func (c *Config) fillDefaults() {
	d := DefaultConfig()
	if c.Address == "" {
		c.Address = d.Address
	}
	if c.MaxMessageSize == 0 {
		c.MaxMessageSize = d.MaxMessageSize
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.PingInterval == 0 {
		c.PingInterval = d.PingInterval
	}
	if c.Registry == nil {
		c.Registry = d.Registry
	}
	if c.TracerName == "" {
		c.TracerName = d.TracerName
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}
