package redisserver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/respkv-go/internal/telemetry/logger"
	"github.com/yndnr/respkv-go/pkg/resp"
)

// Conn represents a single client connection.
type Conn struct {
	id      string
	netConn net.Conn
	rd      *resp.Reader
	wr      *resp.Writer

	idleTimeout  time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration

	// frameDeadline is fixed when the first bytes of a frame arrive.
	frameDeadline time.Time

	closed atomic.Bool
}

func newConn(c net.Conn, cfg *Config) *Conn {
	conn := &Conn{
		id:           ulid.Make().String(),
		netConn:      c,
		wr:           resp.NewWriter(c),
		idleTimeout:  cfg.IdleTimeout,
		readTimeout:  cfg.ReadTimeout,
		writeTimeout: cfg.WriteTimeout,
	}
	conn.rd = resp.NewReader(conn)
	return conn
}

// ID returns the connection id.
func (c *Conn) ID() string {
	return c.id
}

// RemoteAddr returns the peer address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.netConn.RemoteAddr()
}

// Close closes the underlying socket. It is safe to call more than once.
func (c *Conn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.netConn.Close()
}

// Read feeds the frame reader. With nothing buffered the connection is
// idle and gets the idle timeout; inside a frame the read timeout applies
// to the frame as a whole.
func (c *Conn) Read(p []byte) (int, error) {
	deadline := time.Now().Add(c.idleTimeout)
	if c.rd.Buffered() > 0 {
		if c.frameDeadline.IsZero() {
			c.frameDeadline = time.Now().Add(c.readTimeout)
		}
		deadline = c.frameDeadline
	}
	if err := c.netConn.SetReadDeadline(deadline); err != nil {
		return 0, err
	}
	return c.netConn.Read(p)
}

// readFrame returns the next complete frame.
func (c *Conn) readFrame() (resp.Frame, error) {
	f, err := c.rd.ReadFrame()
	c.frameDeadline = time.Time{}
	return f, err
}

// writeFrame writes f and flushes it within the write timeout.
func (c *Conn) writeFrame(f resp.Frame) error {
	if err := c.netConn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
		return err
	}
	if err := c.wr.WriteFrame(f); err != nil {
		return err
	}
	return c.wr.Flush()
}

func (s *Server) serveConn(ctx context.Context, c *Conn) {
	defer c.Close()

	ctx = logger.WithConnID(ctx, c.id)
	ctx = logger.WithLogger(ctx, s.logger.With("remote", c.RemoteAddr().String()))
	log := logger.L(ctx)
	log.Debug("connection accepted")

	for {
		f, err := c.readFrame()
		if err != nil {
			s.handleReadError(c, log, err)
			return
		}
		if log.Enabled(slog.LevelDebug) {
			log.Debug("frame received", "frame", resp.String(f))
		}

		reply, quit := s.handler.Handle(ctx, c, f)

		if log.Enabled(slog.LevelDebug) {
			log.Debug("frame sent", "frame", resp.String(reply))
		}
		if err := c.writeFrame(reply); err != nil {
			log.Debug("connection write error", "error", err)
			return
		}
		if quit {
			log.Debug("connection closed by client")
			return
		}
	}
}

// handleReadError classifies a failed read. Malformed frames get a final
// protocol error reply; stream errors close silently.
func (s *Server) handleReadError(c *Conn, log logger.Logger, err error) {
	switch {
	case errors.Is(err, io.EOF):
		log.Debug("connection closed by peer")
	case errors.Is(err, resp.ErrInvalidFrame), errors.Is(err, resp.ErrInvalidNumber):
		s.metrics.IncProtocolError()
		log.Warn("protocol error", "error", err)
		_ = c.writeFrame(resp.SimpleError("ERR Protocol error: " + err.Error()))
	case isTimeout(err):
		log.Debug("connection timed out")
	case c.closed.Load():
		log.Debug("connection closed by server")
	default:
		log.Debug("connection read error", "error", err)
	}
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
