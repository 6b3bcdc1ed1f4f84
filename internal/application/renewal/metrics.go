// Package renewal implements the renewal outreach use cases: building the
// daily snapshot, curating it and keeping the notification ledger in step
// with the customer registry.
package renewal

import "context"

// Reasons recorded when a ledger entry is removed
const (
	ResetReasonManual  = "manual"
	ResetReasonRenewed = "renewed"
)

// Metrics receives business events from the services.
// Implementations must be safe for concurrent use.
type Metrics interface {
	SnapshotBuilt(ctx context.Context, size int, forced bool)
	NotificationMarked(ctx context.Context, firstSend bool)
	StatusReset(ctx context.Context, reason string)
	ReconcileFailed(ctx context.Context)
}

// NopMetrics discards every event
type NopMetrics struct{}

func (NopMetrics) SnapshotBuilt(context.Context, int, bool) {}
func (NopMetrics) NotificationMarked(context.Context, bool) {}
func (NopMetrics) StatusReset(context.Context, string)      {}
func (NopMetrics) ReconcileFailed(context.Context)          {}

var _ Metrics = NopMetrics{}
