package host

import (
	"sync"

	"golang.org/x/time/rate"
)

// limiterSet is a thread-safe per-key rate.Limiter registry, mirroring
// pkg/store.Store's sync.RWMutex-guarded map pattern generalized from
// "workflow name -> Workflow" to "remote address -> Limiter".
type limiterSet struct {
	mu    sync.Mutex
	rate  rate.Limit
	burst int
	byKey map[string]*rate.Limiter
}

func newLimiterSet(r rate.Limit, burst int) *limiterSet {
	return &limiterSet{rate: r, burst: burst, byKey: make(map[string]*rate.Limiter)}
}

// allow reports whether a request under key may proceed, creating that
// key's limiter on first use.
func (s *limiterSet) allow(key string) bool {
	s.mu.Lock()
	l, ok := s.byKey[key]
	if !ok {
		l = rate.NewLimiter(s.rate, s.burst)
		s.byKey[key] = l
	}
	s.mu.Unlock()
	return l.Allow()
}
