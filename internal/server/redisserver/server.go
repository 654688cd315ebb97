package redisserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yndnr/respkv-go/internal/command"
	"github.com/yndnr/respkv-go/internal/telemetry/logger"
	"github.com/yndnr/respkv-go/internal/telemetry/metric"
	"github.com/yndnr/respkv-go/pkg/cmap"
)

// Config holds the RESP server configuration.
type Config struct {
	// Addr is the TCP listen address.
	Addr string
	// ReadTimeout bounds the time to receive one frame once its first
	// bytes have arrived.
	ReadTimeout time.Duration
	// WriteTimeout bounds writing one reply.
	WriteTimeout time.Duration
	// IdleTimeout closes connections with no request in flight for this long.
	IdleTimeout time.Duration
	// RateLimit is the maximum number of commands per second per client IP.
	// Zero disables rate limiting.
	RateLimit int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Addr:         "127.0.0.1:6379",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  5 * time.Minute,
		RateLimit:    0,
	}
}

func (c *Config) withDefaults() *Config {
	d := DefaultConfig()
	out := *c
	if out.ReadTimeout <= 0 {
		out.ReadTimeout = d.ReadTimeout
	}
	if out.WriteTimeout <= 0 {
		out.WriteTimeout = d.WriteTimeout
	}
	if out.IdleTimeout <= 0 {
		out.IdleTimeout = d.IdleTimeout
	}
	return &out
}

// limiterSweepInterval is how often idle per-IP limiters are dropped.
const limiterSweepInterval = time.Minute

// Server is the RESP protocol server.
type Server struct {
	cfg     *Config
	handler *CommandHandler
	logger  logger.Logger
	metrics *metric.Registry
	limiter *ipLimiter

	ln      net.Listener
	conns   *cmap.Map[string, *Conn]
	running atomic.Bool
	wg      sync.WaitGroup

	done     chan struct{}
	stopOnce sync.Once
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithMetrics sets the metrics registry.
func WithMetrics(r *metric.Registry) Option {
	return func(s *Server) {
		s.metrics = r
	}
}

// New creates a server executing commands against backend.
func New(cfg *Config, backend command.Backend, opts ...Option) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	s := &Server{
		cfg:   cfg.withDefaults(),
		conns: cmap.New[string, *Conn](),
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Default()
	}
	if s.metrics == nil {
		s.metrics = metric.NewRegistry()
	}
	if s.cfg.RateLimit > 0 {
		s.limiter = newIPLimiter(s.cfg.RateLimit)
	}

	s.handler = NewCommandHandler(backend, s.limiter, s.metrics)
	return s
}

// Start binds the listener and serves connections in the background until
// ctx is cancelled or Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("redis server: listen %s: %w", s.cfg.Addr, err)
	}
	s.ln = ln
	s.running.Store(true)
	s.logger.Info("redis server listening", "address", ln.Addr().String())

	stop := context.AfterFunc(ctx, func() { _ = ln.Close() })

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer stop()
		if err := s.acceptLoop(ctx, ln); err != nil {
			s.logger.Error("redis accept loop stopped", "error", err)
		}
	}()

	if s.limiter != nil {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.sweepLimiters(ctx)
		}()
	}
	return nil
}

// Addr returns the listen address once started.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Ready reports whether the server is accepting connections.
func (s *Server) Ready() bool {
	return s.running.Load()
}

// ActiveConns returns the number of open client connections.
func (s *Server) ActiveConns() int {
	return s.conns.Count()
}

// Shutdown stops accepting, closes open connections and waits for their
// goroutines to exit or ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	s.running.Store(false)
	s.stopOnce.Do(func() { close(s.done) })

	var firstErr error
	if s.ln != nil {
		if err := s.ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			firstErr = err
		}
	}

	for _, c := range s.conns.Snapshot() {
		_ = c.Close()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return firstErr
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) error {
	for {
		c, err := ln.Accept()
		if err != nil {
			if !s.running.Load() || errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				s.running.Store(false)
				return nil
			}
			return err
		}

		conn := newConn(c, s.cfg)
		if !s.track(conn) {
			return nil
		}
		s.metrics.ConnOpened()

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer func() {
				s.conns.Delete(conn.id)
				s.metrics.ConnClosed()
			}()
			s.serveConn(ctx, conn)
		}()
	}
}

// track registers conn so Shutdown can close it. A connection accepted
// while Shutdown runs may miss its snapshot; it is closed here instead and
// track reports false.
func (s *Server) track(conn *Conn) bool {
	s.conns.Set(conn.id, conn)
	if s.running.Load() {
		return true
	}
	s.conns.Delete(conn.id)
	_ = conn.Close()
	return false
}

func (s *Server) sweepLimiters(ctx context.Context) {
	ticker := time.NewTicker(limiterSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.limiter.prune(time.Now().Add(-limiterIdleTTL)); n > 0 {
				s.logger.Debug("pruned idle rate limiters", "count", n)
			}
		case <-ctx.Done():
			return
		case <-s.done:
			return
		}
	}
}
