package host

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/weft-dev/weft/pkg/weft"
)

func newTestServer(t *testing.T, cfg *Config) *Server {
	t.Helper()
	if cfg == nil {
		cfg = DefaultConfig()
	}
	// Isolated registry: the default registerer rejects duplicate metrics
	// across tests.
	cfg.Registry = prometheus.NewRegistry()
	return NewServer(cfg, func(ctx weft.Context) {
		Label(ctx, weft.Value("ok"))
	})
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	server := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestCheckOrigin(t *testing.T) {
	cases := []struct {
		name    string
		allowed []string
		origin  string
		host    string
		want    bool
	}{
		{"no origin header", nil, "", "example.com", true},
		{"same origin", nil, "http://example.com", "example.com", true},
		{"cross origin rejected", nil, "http://evil.com", "example.com", false},
		{"wildcard", []string{"*"}, "http://anywhere.dev", "example.com", true},
		{"explicit allow", []string{"http://app.example.com"}, "http://app.example.com", "example.com", true},
		{"explicit deny", []string{"http://app.example.com"}, "http://other.example.com", "example.com", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.AllowedOrigins = tc.allowed
			server := newTestServer(t, cfg)

			req := httptest.NewRequest(http.MethodGet, "/ws", nil)
			req.Host = tc.host
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			if got := server.checkOrigin(req); got != tc.want {
				t.Errorf("checkOrigin = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := &Config{Address: ":9999"}
	cfg.fillDefaults()

	if cfg.Address != ":9999" {
		t.Error("explicit settings must survive")
	}
	if cfg.MaxMessageSize == 0 || cfg.WriteTimeout == 0 || cfg.PingInterval == 0 {
		t.Error("unset fields must receive defaults")
	}
	if cfg.Logger == nil || cfg.Registry == nil || cfg.TracerName == "" {
		t.Error("ambient fields must receive defaults")
	}
}
