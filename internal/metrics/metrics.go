// Package metrics accumulates run counters and pushes them to a
// Prometheus push gateway at the end of a run. Delivery is best-effort
// and never affects the sync result.
package metrics

import (
	"context"
	"time"
)

type Reporter interface {
	AddFetched(n int)
	IncSynced()
	IncSkippedBinary()
	IncError()
	SetDuration(d time.Duration)

	// MarkSuccess records the time of a run that finished without a
	// fatal error. Failed runs must not advance it.
	MarkSuccess()

	// Push flushes the accumulated values to the gateway.
	Push(ctx context.Context) error
}

// Nop is the reporter used when no push gateway is configured.
type Nop struct{}

func NewNop() *Nop { return &Nop{} }

var _ Reporter = (*Nop)(nil)

func (*Nop) AddFetched(int)            {}
func (*Nop) IncSynced()                {}
func (*Nop) IncSkippedBinary()         {}
func (*Nop) IncError()                 {}
func (*Nop) SetDuration(time.Duration) {}
func (*Nop) MarkSuccess()              {}

func (*Nop) Push(context.Context) error { return nil }
