package devserver

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// loginLimiter rate-limits login attempts per remote IP: 1 per second
// with a burst of 5.
type loginLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLoginLimiter() *loginLimiter {
	return &loginLimiter{visitors: make(map[string]*visitor)}
}

func (l *loginLimiter) allow(r *http.Request) bool {
	ip := remoteIP(r)

	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(1, 5)}
		l.visitors[ip] = v
	}
	v.lastSeen = time.Now()

	l.cleanup()
	return v.limiter.Allow()
}

// cleanup drops visitors idle for more than five minutes. Called with the
// lock held.
func (l *loginLimiter) cleanup() {
	for ip, v := range l.visitors {
		if time.Since(v.lastSeen) > 5*time.Minute {
			delete(l.visitors, ip)
		}
	}
}

func remoteIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
