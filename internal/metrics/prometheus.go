package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Prometheus reports run counters to a push gateway. Gauges rather
// than counters: each run pushes a fresh snapshot that replaces the
// previous one in the gateway's metric group.
type Prometheus struct {
	registry *prometheus.Registry
	pusher   *push.Pusher

	fetched     prometheus.Gauge
	synced      prometheus.Gauge
	skipped     prometheus.Gauge
	errors      prometheus.Gauge
	duration    prometheus.Gauge
	lastSuccess prometheus.Gauge
}

func NewPrometheus(gateway, job string) *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		fetched: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "igsync_items_fetched",
			Help: "Number of new media items fetched from Instagram",
		}),
		synced: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "igsync_items_synced",
			Help: "Number of posts created on WordPress",
		}),
		skipped: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "igsync_items_skipped_duplicate",
			Help: "Number of media uploads avoided via the dedup ledger",
		}),
		errors: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "igsync_errors",
			Help: "Number of errors during the run",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "igsync_sync_duration_seconds",
			Help: "Wall-clock duration of the run",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "igsync_last_success_timestamp_seconds",
			Help: "Last time a run completed without a fatal error",
		}),
	}

	p.registry.MustRegister(p.fetched, p.synced, p.skipped, p.errors, p.duration, p.lastSuccess)
	p.pusher = push.New(gateway, job).Gatherer(p.registry)
	return p
}

var _ Reporter = (*Prometheus)(nil)

func (p *Prometheus) AddFetched(n int) { p.fetched.Add(float64(n)) }
func (p *Prometheus) IncSynced()       { p.synced.Inc() }

func (p *Prometheus) IncSkippedBinary() { p.skipped.Inc() }
func (p *Prometheus) IncError()         { p.errors.Inc() }

func (p *Prometheus) SetDuration(d time.Duration) { p.duration.Set(d.Seconds()) }

func (p *Prometheus) MarkSuccess() { p.lastSuccess.SetToCurrentTime() }

func (p *Prometheus) Push(ctx context.Context) error {
	return p.pusher.PushContext(ctx)
}
