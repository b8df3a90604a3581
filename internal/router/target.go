package router

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"sync"

	"github.com/rs/zerolog"
)

// flipThreshold is the number of consecutive probe results needed to change
// a target's health state, in either direction.
const flipThreshold = 2

// Target is one proxied backend service. Health state is only mutated by
// the prober; request handling reads it.
type Target struct {
	name      string
	baseURL   *url.URL
	probePath string
	proxy     *httputil.ReverseProxy

	mu          sync.Mutex
	healthy     bool
	consecFails int
	consecOKs   int
}

// NewTarget builds a proxy target. Targets start healthy so traffic flows
// before the first probe completes.
func NewTarget(name, rawURL, probePath string, log zerolog.Logger) (*Target, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("target %s: invalid url %q: %w", name, rawURL, err)
	}

	proxy := httputil.NewSingleHostReverseProxy(u)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Error().Err(err).Str("target", name).Str("path", r.URL.Path).Msg("proxy error")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("bad gateway"))
	}

	t := &Target{
		name:      name,
		baseURL:   u,
		probePath: probePath,
		proxy:     proxy,
		healthy:   true,
	}
	targetHealthy.WithLabelValues(name).Set(1)
	return t, nil
}

func (t *Target) Name() string { return t.name }

func (t *Target) Healthy() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.healthy
}

func (t *Target) probeURL() string {
	return t.baseURL.ResolveReference(&url.URL{Path: t.probePath}).String()
}

func (t *Target) recordSuccess() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.consecFails = 0
	if t.healthy {
		return
	}
	t.consecOKs++
	if t.consecOKs >= flipThreshold {
		t.healthy = true
		t.consecOKs = 0
		targetHealthy.WithLabelValues(t.name).Set(1)
	}
}

func (t *Target) recordFailure() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.consecOKs = 0
	if !t.healthy {
		return
	}
	t.consecFails++
	if t.consecFails >= flipThreshold {
		t.healthy = false
		t.consecFails = 0
		targetHealthy.WithLabelValues(t.name).Set(0)
	}
}
