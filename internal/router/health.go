package router

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Prober periodically checks every target's probe endpoint. A target flips
// unhealthy after flipThreshold consecutive failures and healthy again after
// flipThreshold consecutive successes.
type Prober struct {
	targets  []*Target
	interval time.Duration
	client   *http.Client
	log      zerolog.Logger
}

func NewProber(targets []*Target, interval, timeout time.Duration, log zerolog.Logger) *Prober {
	return &Prober{
		targets:  targets,
		interval: interval,
		client:   &http.Client{Timeout: timeout},
		log:      log,
	}
}

// Run probes all targets at the configured interval until ctx is cancelled.
func (p *Prober) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// First round immediately so a dead backend is noticed at startup.
	p.probeAll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.probeAll(ctx)
		}
	}
}

func (p *Prober) probeAll(ctx context.Context) {
	for _, t := range p.targets {
		p.probe(ctx, t)
	}
}

func (p *Prober) probe(ctx context.Context, t *Target) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.probeURL(), nil)
	if err != nil {
		p.log.Error().Err(err).Str("target", t.Name()).Msg("building probe request")
		return
	}

	resp, err := p.client.Do(req)
	if err != nil {
		probesTotal.WithLabelValues(t.Name(), "fail").Inc()
		t.recordFailure()
		p.log.Warn().Err(err).Str("target", t.Name()).Bool("healthy", t.Healthy()).Msg("health probe failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		probesTotal.WithLabelValues(t.Name(), "ok").Inc()
		t.recordSuccess()
		return
	}

	probesTotal.WithLabelValues(t.Name(), "fail").Inc()
	t.recordFailure()
	p.log.Warn().Int("status", resp.StatusCode).Str("target", t.Name()).Bool("healthy", t.Healthy()).Msg("health probe failed")
}
