package redisserver

import (
	"net"
	"testing"
	"time"
)

func TestIPLimiter_Allow(t *testing.T) {
	l := newIPLimiter(3)
	a := &net.TCPAddr{IP: net.ParseIP("10.0.0.1"), Port: 5000}
	b := &net.TCPAddr{IP: net.ParseIP("10.0.0.2"), Port: 5000}

	for i := 0; i < 3; i++ {
		if !l.allow(a) {
			t.Fatalf("request %d from a rejected within burst", i)
		}
	}
	if l.allow(a) {
		t.Error("request beyond burst allowed")
	}
	if !l.allow(b) {
		t.Error("other IP should have its own bucket")
	}

	// Same IP on another port shares the bucket.
	if l.allow(&net.TCPAddr{IP: net.ParseIP("10.0.0.1"), Port: 6000}) {
		t.Error("bucket should be per IP, not per port")
	}
}

func TestIPLimiter_Prune(t *testing.T) {
	l := newIPLimiter(1)
	l.allow(&net.TCPAddr{IP: net.ParseIP("10.0.0.1"), Port: 1})
	l.allow(&net.TCPAddr{IP: net.ParseIP("10.0.0.2"), Port: 1})

	if n := l.prune(time.Now().Add(-time.Hour)); n != 0 {
		t.Errorf("prune(old cutoff) = %d, want 0", n)
	}
	if n := l.prune(time.Now().Add(time.Second)); n != 2 {
		t.Errorf("prune(future cutoff) = %d, want 2", n)
	}
	if n := l.buckets.Count(); n != 0 {
		t.Errorf("buckets left = %d, want 0", n)
	}
}

func TestHostOf(t *testing.T) {
	tests := []struct {
		addr net.Addr
		want string
	}{
		{&net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 80}, "127.0.0.1"},
		{&net.TCPAddr{IP: net.ParseIP("::1"), Port: 80}, "::1"},
		{pipeAddr{}, "pipe"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := hostOf(tt.addr); got != tt.want {
			t.Errorf("hostOf(%v) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}

type pipeAddr struct{}

func (pipeAddr) Network() string { return "pipe" }
func (pipeAddr) String() string  { return "pipe" }
