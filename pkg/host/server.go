package host

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/weft-dev/weft/pkg/weft"
)

// Server accepts websocket connections and runs one weft system per
// connection, all driving the same application controller.
type Server struct {
	cfg      *Config
	app      func(weft.Context)
	router   chi.Router
	metrics  *metrics
	tracer   trace.Tracer
	upgrader websocket.Upgrader

	httpServer *http.Server
}

// NewServer creates a server around an application controller. The
// controller receives a context extended with the session's sink.
func NewServer(cfg *Config, app func(weft.Context)) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	} else {
		cfg.fillDefaults()
	}

	s := &Server{
		cfg:     cfg,
		app:     app,
		metrics: newMetrics(cfg.Registry),
		tracer:  otel.Tracer(cfg.TracerName),
	}

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metricsHandler())
	r.Get("/ws", s.handleWS)
	s.router = r

	return s
}

// Handler returns the server's HTTP handler, for embedding in a larger
// router.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe runs the server until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:    s.cfg.Address,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- s.httpServer.ListenAndServe() }()

	s.cfg.Logger.Info("host listening", "addr", s.cfg.Address)

	select {
	case <-ctx.Done():
		return s.httpServer.Shutdown(context.Background())
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) metricsHandler() http.Handler {
	if g, ok := s.cfg.Registry.(prometheus.Gatherer); ok {
		return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
	}
	return promhttp.Handler()
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.cfg.Logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	s.metrics.sessionsTotal.Inc()
	s.metrics.sessionsActive.Inc()

	sess := newSession(conn, s.app, s.cfg, s.metrics, s.tracer)
	go func() {
		defer func() {
			s.metrics.sessionsActive.Dec()
			_ = conn.Close()
		}()
		// The request context dies with the handler; the session lives as
		// long as the connection.
		sess.run(context.Background())
	}()
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if len(s.cfg.AllowedOrigins) == 0 {
		// Same-origin only: compare against the Host header.
		return origin == "http://"+r.Host || origin == "https://"+r.Host
	}
	for _, allowed := range s.cfg.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}
