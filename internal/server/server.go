// Package server exposes the investigation demo over HTTP: a static
// page, a websocket that streams steps as they happen, a health probe,
// and prometheus metrics.
package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"haci/internal/harness"
	"haci/internal/logging"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

//go:embed web/index.html
var indexHTML []byte

// Event is one websocket frame. Type is "step" while the run is in
// flight, then exactly one "result" or "error" frame closes the run.
type Event struct {
	Type          string                 `json:"type"`
	Step          *harness.Step          `json:"step,omitempty"`
	Investigation *harness.Investigation `json:"investigation,omitempty"`
	Error         string                 `json:"error,omitempty"`
}

// Config assembles a Server. Harness is the runner template; its
// Observer field is overridden per connection.
type Config struct {
	Addr    string
	Harness harness.Config
	Logger  *slog.Logger
}

// Server streams investigations to browsers. Each websocket connection
// gets its own runner and its own investigation.
type Server struct {
	addr     string
	base     harness.Config
	log      *slog.Logger
	metrics  *metrics
	upgrader websocket.Upgrader
	mux      *http.ServeMux
}

// New validates cfg and wires the routes.
func New(cfg Config) (*Server, error) {
	// Fail now rather than on the first connection.
	if _, err := harness.New(cfg.Harness); err != nil {
		return nil, err
	}
	log := cfg.Logger
	if log == nil {
		log = logging.New("server")
	}
	s := &Server{
		addr:    cfg.Addr,
		base:    cfg.Harness,
		log:     log,
		metrics: newMetrics(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		mux: http.NewServeMux(),
	}
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/healthz", s.handleHealthz)
	s.mux.HandleFunc("/ws", s.handleWS)
	s.mux.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	return s, nil
}

// Handler returns the route table, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.mux }

// Run serves until ctx is cancelled, then drains connections.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.log.Info("web demo listening", "addr", s.addr)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})
	return g.Wait()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":   "ok",
		"provider": s.base.Adapter.Provider(),
	})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	var req struct {
		Ticket string `json:"ticket"`
	}
	if err := conn.ReadJSON(&req); err != nil {
		s.log.Warn("bad websocket request", "error", err)
		return
	}

	// The upgrade hijacks the connection, so r.Context() never ends
	// when the client goes away. Derive a context that does: a read
	// pump (the client sends nothing after the ticket, so any read
	// error means the peer is gone) and failed step writes both
	// cancel the in-flight run.
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	// The runner is synchronous, so all writes to conn happen from
	// this goroutine in step order.
	cfg := s.base
	cfg.Observer = harness.StepObserverFunc(func(inv *harness.Investigation, step harness.Step) {
		s.metrics.steps.WithLabelValues(step.Phase).Inc()
		if err := conn.WriteJSON(Event{Type: "step", Step: &step}); err != nil {
			s.log.Warn("websocket write failed, abandoning run", "error", err)
			cancel()
		}
	})
	runner, err := harness.New(cfg)
	if err != nil {
		conn.WriteJSON(Event{Type: "error", Error: err.Error()})
		return
	}

	started := time.Now()
	inv, err := runner.Run(ctx, req.Ticket)
	s.metrics.duration.Observe(time.Since(started).Seconds())
	if err != nil {
		status := harness.StatusFailed
		if inv != nil {
			status = inv.Status
		}
		s.metrics.investigations.WithLabelValues(status).Inc()
		conn.WriteJSON(Event{Type: "error", Error: err.Error(), Investigation: inv})
		return
	}
	s.metrics.investigations.WithLabelValues(inv.Status).Inc()
	conn.WriteJSON(Event{Type: "result", Investigation: inv})
}

// Addr formats a listen address. Empty bind means all interfaces.
func Addr(bind string, port int) string { return fmt.Sprintf("%s:%d", bind, port) }
