package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// flakyBackend serves the status code currently stored in status.
type flakyBackend struct {
	server *httptest.Server
	status atomic.Int32
}

func newFlakyBackend(t *testing.T, initial int) *flakyBackend {
	t.Helper()
	b := &flakyBackend{}
	b.status.Store(int32(initial))
	b.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(b.status.Load()))
	}))
	t.Cleanup(b.server.Close)
	return b
}

func newProbedTarget(t *testing.T, b *flakyBackend) (*Target, *Prober) {
	t.Helper()
	target, err := NewTarget("probe-"+t.Name(), b.server.URL, "/", zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	p := NewProber([]*Target{target}, time.Minute, time.Second, zerolog.Nop())
	return target, p
}

func TestProber_TwoConsecutiveFailuresFlipUnhealthy(t *testing.T) {
	backend := newFlakyBackend(t, http.StatusInternalServerError)
	target, p := newProbedTarget(t, backend)

	p.probeAll(context.Background())
	if !target.Healthy() {
		t.Fatal("one failed probe must not flip the target unhealthy")
	}

	p.probeAll(context.Background())
	if target.Healthy() {
		t.Fatal("two consecutive failed probes must flip the target unhealthy")
	}
}

func TestProber_TwoConsecutiveSuccessesFlipHealthy(t *testing.T) {
	backend := newFlakyBackend(t, http.StatusInternalServerError)
	target, p := newProbedTarget(t, backend)

	p.probeAll(context.Background())
	p.probeAll(context.Background())
	if target.Healthy() {
		t.Fatal("precondition: target should be unhealthy")
	}

	backend.status.Store(http.StatusOK)

	p.probeAll(context.Background())
	if target.Healthy() {
		t.Fatal("one successful probe must not flip the target healthy")
	}

	p.probeAll(context.Background())
	if !target.Healthy() {
		t.Fatal("two consecutive successful probes must flip the target healthy")
	}
}

func TestProber_SuccessResetsFailureStreak(t *testing.T) {
	backend := newFlakyBackend(t, http.StatusInternalServerError)
	target, p := newProbedTarget(t, backend)

	p.probeAll(context.Background()) // fail #1
	backend.status.Store(http.StatusOK)
	p.probeAll(context.Background()) // success resets the streak
	backend.status.Store(http.StatusServiceUnavailable)
	p.probeAll(context.Background()) // fail #1 again

	if !target.Healthy() {
		t.Fatal("interleaved success must reset the consecutive-failure count")
	}
}

func TestProber_UnreachableBackendCountsAsFailure(t *testing.T) {
	backend := newFlakyBackend(t, http.StatusOK)
	target, p := newProbedTarget(t, backend)
	backend.server.Close()

	p.probeAll(context.Background())
	p.probeAll(context.Background())
	if target.Healthy() {
		t.Fatal("transport errors must count as failed probes")
	}
}
