package redisserver

import (
	"net"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/yndnr/respkv-go/pkg/cmap"
)

// limiterIdleTTL is how long an unused per-IP limiter is kept.
const limiterIdleTTL = 10 * time.Minute

type ipBucket struct {
	lim      *rate.Limiter
	lastSeen atomic.Int64 // unix nanoseconds
}

// ipLimiter is a token bucket per client IP. The bucket size equals the
// per-second rate.
type ipLimiter struct {
	buckets *cmap.Map[string, *ipBucket]
	limit   rate.Limit
	burst   int
}

func newIPLimiter(perSecond int) *ipLimiter {
	return &ipLimiter{
		buckets: cmap.New[string, *ipBucket](),
		limit:   rate.Limit(perSecond),
		burst:   perSecond,
	}
}

// allow reports whether a request from addr may proceed now.
func (l *ipLimiter) allow(addr net.Addr) bool {
	ip := hostOf(addr)
	b, _ := l.buckets.GetOrCreate(ip, func() *ipBucket {
		return &ipBucket{lim: rate.NewLimiter(l.limit, l.burst)}
	})
	b.lastSeen.Store(time.Now().UnixNano())
	return b.lim.Allow()
}

// prune drops buckets not used since before and returns how many went.
func (l *ipLimiter) prune(before time.Time) int {
	cutoff := before.UnixNano()
	return l.buckets.DeleteFunc(func(_ string, b *ipBucket) bool {
		return b.lastSeen.Load() < cutoff
	})
}

func hostOf(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}
