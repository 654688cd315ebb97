package connection

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/yndnr/respkv-go/pkg/resp"
)

// ErrClosed is returned when using a closed client.
var ErrClosed = errors.New("connection closed")

// Client is a single RESP connection. It is not safe for concurrent use.
type Client struct {
	addr    string
	timeout time.Duration
	conn    net.Conn
	rd      *resp.Reader
	wr      *resp.Writer
}

// Dial connects to a respkv server.
func Dial(ctx context.Context, addr string, timeout time.Duration) (*Client, error) {
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", addr, err)
	}
	return &Client{
		addr:    addr,
		timeout: timeout,
		conn:    conn,
		rd:      resp.NewReader(conn),
		wr:      resp.NewWriter(conn),
	}, nil
}

// Addr returns the server address.
func (c *Client) Addr() string {
	return c.addr
}

// Do sends one command made of bulk-string arguments and returns the reply.
// A SimpleError reply is returned as a frame, not as an error.
func (c *Client) Do(args ...string) (resp.Frame, error) {
	if len(args) == 0 {
		return nil, errors.New("empty command")
	}
	req := make(resp.Array, len(args))
	for i, a := range args {
		req[i] = resp.BulkString(a)
	}
	return c.Send(req)
}

// Send writes f and waits for one reply frame.
func (c *Client) Send(f resp.Frame) (resp.Frame, error) {
	if c.conn == nil {
		return nil, ErrClosed
	}
	if c.timeout > 0 {
		if err := c.conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
			return nil, err
		}
	}
	if err := c.wr.WriteFrame(f); err != nil {
		return nil, fmt.Errorf("send: %w", err)
	}
	if err := c.wr.Flush(); err != nil {
		return nil, fmt.Errorf("send: %w", err)
	}
	reply, err := c.rd.ReadFrame()
	if err != nil {
		return nil, fmt.Errorf("receive: %w", err)
	}
	return reply, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}
