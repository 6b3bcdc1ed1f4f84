package telemetry

import (
	"context"

	apprenewal "github.com/taxrenew/backend/internal/application/renewal"
	"go.opentelemetry.io/otel/metric"
)

// RenewalMetrics records renewal outreach events as OpenTelemetry instruments
type RenewalMetrics struct {
	snapshotBuilt   *Counter
	snapshotSize    *Gauge
	marked          *Counter
	statusReset     *Counter
	reconcileFailed *Counter
}

// NewRenewalMetrics creates the renewal instruments on meter
func NewRenewalMetrics(meter metric.Meter) (*RenewalMetrics, error) {
	var (
		m   RenewalMetrics
		err error
	)

	if m.snapshotBuilt, err = NewCounter(meter, "taxrenew_snapshot_built_total",
		"Daily snapshots built or seeded", "{snapshot}"); err != nil {
		return nil, err
	}
	if m.snapshotSize, err = NewGauge(meter, "taxrenew_snapshot_size",
		"Plates in the most recently built snapshot", "{plate}"); err != nil {
		return nil, err
	}
	if m.marked, err = NewCounter(meter, "taxrenew_notification_marked_total",
		"MarkSent calls, split by whether the plate was sent for the first time", "{call}"); err != nil {
		return nil, err
	}
	if m.statusReset, err = NewCounter(meter, "taxrenew_status_reset_total",
		"Ledger entries removed, by reason", "{entry}"); err != nil {
		return nil, err
	}
	if m.reconcileFailed, err = NewCounter(meter, "taxrenew_reconcile_failed_total",
		"Reconciliation deletes that failed and were deferred", "{entry}"); err != nil {
		return nil, err
	}
	return &m, nil
}

// SnapshotBuilt implements apprenewal.Metrics
func (m *RenewalMetrics) SnapshotBuilt(ctx context.Context, size int, forced bool) {
	m.snapshotBuilt.Inc(ctx, AttrForced.Bool(forced))
	m.snapshotSize.Record(ctx, int64(size))
}

// NotificationMarked implements apprenewal.Metrics
func (m *RenewalMetrics) NotificationMarked(ctx context.Context, firstSend bool) {
	m.marked.Inc(ctx, AttrFirstSend.Bool(firstSend))
}

// StatusReset implements apprenewal.Metrics
func (m *RenewalMetrics) StatusReset(ctx context.Context, reason string) {
	m.statusReset.Inc(ctx, AttrReason.String(reason))
}

// ReconcileFailed implements apprenewal.Metrics
func (m *RenewalMetrics) ReconcileFailed(ctx context.Context) {
	m.reconcileFailed.Inc(ctx)
}

var _ apprenewal.Metrics = (*RenewalMetrics)(nil)
