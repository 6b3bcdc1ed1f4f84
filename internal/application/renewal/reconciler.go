package renewal

import (
	"context"
	"time"

	"github.com/taxrenew/backend/internal/domain/renewal"
	"github.com/taxrenew/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Reconciler clears sent ledger entries whose record has since been renewed.
// It runs inline on reads and never fails them: a delete that does not go
// through is logged and attempted again on the next read.
type Reconciler struct {
	policy   renewal.Policy
	statuses renewal.NotificationStatusRepository
	metrics  Metrics
	logger   *zap.Logger
}

// NewReconciler creates a new Reconciler
func NewReconciler(policy renewal.Policy, statuses renewal.NotificationStatusRepository, metrics Metrics, log *zap.Logger) *Reconciler {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Reconciler{
		policy:   policy,
		statuses: statuses,
		metrics:  metrics,
		logger:   log,
	}
}

// Reconcile returns entries minus those whose record now classifies as
// Renewed. Entries for plates missing from records are kept.
func (r *Reconciler) Reconcile(ctx context.Context, records []renewal.CustomerTaxRecord, entries []renewal.NotificationStatus, today time.Time) []renewal.NotificationStatus {
	if len(entries) == 0 {
		return entries
	}

	index := renewal.IndexByPlate(records)
	kept := make([]renewal.NotificationStatus, 0, len(entries))
	log := logger.L(ctx, r.logger)

	for _, e := range entries {
		if !e.Sent {
			kept = append(kept, e)
			continue
		}
		rec, ok := index[renewal.NormalizePlate(e.LicensePlate)]
		if !ok || r.policy.ClassifyStatus(rec, today) != renewal.StatusRenewed {
			kept = append(kept, e)
			continue
		}

		if _, err := r.statuses.Delete(ctx, e.LicensePlate); err != nil {
			log.Warn("Failed to clear renewed plate from ledger, will retry on next read",
				zap.String("license_plate", e.LicensePlate),
				zap.Error(err))
			r.metrics.ReconcileFailed(ctx)
			continue
		}

		log.Info("Cleared renewed plate from ledger",
			zap.String("license_plate", e.LicensePlate),
			zap.Time("sent_at", e.SentAt))
		r.metrics.StatusReset(ctx, ResetReasonRenewed)
	}

	return kept
}
