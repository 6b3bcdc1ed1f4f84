package renewal

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/taxrenew/backend/internal/application/renewal/dto"
	"github.com/taxrenew/backend/internal/domain/renewal"
	"github.com/taxrenew/backend/internal/domain/shared"
	"github.com/taxrenew/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// CurationService is the operator-facing surface over the snapshot and the
// notification ledger.
type CurationService struct {
	settings   Settings
	records    renewal.TaxRecordRepository
	statuses   renewal.NotificationStatusRepository
	snapshots  *SnapshotService
	reconciler *Reconciler
	clock      renewal.Clock
	metrics    Metrics
	logger     *zap.Logger
}

// NewCurationService creates a new CurationService
func NewCurationService(
	settings Settings,
	records renewal.TaxRecordRepository,
	statuses renewal.NotificationStatusRepository,
	snapshots *SnapshotService,
	reconciler *Reconciler,
	clock renewal.Clock,
	metrics Metrics,
	log *zap.Logger,
) *CurationService {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if clock == nil {
		clock = renewal.SystemClock(settings.Policy.Zone())
	}
	return &CurationService{
		settings:   settings,
		records:    records,
		statuses:   statuses,
		snapshots:  snapshots,
		reconciler: reconciler,
		clock:      clock,
		metrics:    metrics,
		logger:     log,
	}
}

// MarkSent records that a reminder went out for plate and drops the plate
// from the active snapshot. Replays keep the first sentAt. An empty sentAt
// means now.
func (s *CurationService) MarkSent(ctx context.Context, plate, sentAt string) (*dto.MarkSentResponse, error) {
	plate, err := requirePlate(plate)
	if err != nil {
		return nil, err
	}
	at, err := s.parseSentAt(sentAt)
	if err != nil {
		return nil, err
	}
	return s.markSent(ctx, plate, at)
}

// MarkSentBatch marks each plate independently with one timestamp
func (s *CurationService) MarkSentBatch(ctx context.Context, plates []string, sentAt string) (*dto.BulkResultResponse, error) {
	if len(plates) == 0 {
		return nil, shared.NewInvalidInput("licensePlates must not be empty")
	}
	at, err := s.parseSentAt(sentAt)
	if err != nil {
		return nil, err
	}

	resp := &dto.BulkResultResponse{Results: make([]dto.ItemResult, 0, len(plates))}
	for _, raw := range plates {
		plate, err := requirePlate(raw)
		if err != nil {
			resp.Add(dto.ItemResult{LicensePlate: raw, Error: err.Error()})
			continue
		}
		if _, err := s.markSent(ctx, plate, at); err != nil {
			resp.Add(dto.ItemResult{LicensePlate: plate, Error: err.Error()})
			continue
		}
		resp.Add(dto.ItemResult{LicensePlate: plate, Success: true})
	}
	return resp, nil
}

func (s *CurationService) markSent(ctx context.Context, plate string, at time.Time) (*dto.MarkSentResponse, error) {
	log := logger.L(ctx, s.logger)

	entry, created, err := s.statuses.MarkSent(ctx, plate, at)
	if err != nil {
		log.Error("Failed to mark plate as sent", zap.String("license_plate", plate), zap.Error(err))
		return nil, shared.NewStoreUnavailable(err)
	}

	// Always attempted so a retry repairs a ledger write whose snapshot removal failed.
	if _, err := s.snapshots.removeFromActive(ctx, plate); err != nil {
		return nil, err
	}

	s.metrics.NotificationMarked(ctx, created)
	if created {
		log.Info("Plate marked as sent", zap.String("license_plate", plate), zap.Time("sent_at", entry.SentAt))
	} else {
		log.Debug("Plate already sent, keeping original timestamp",
			zap.String("license_plate", plate),
			zap.Time("sent_at", entry.SentAt))
	}
	return dto.ToMarkSentResponse(entry, created), nil
}

// ResetStatus deletes the ledger entry for plate. The plate is not put back
// into the snapshot; it is eligible again at the next build.
func (s *CurationService) ResetStatus(ctx context.Context, plate string) (*dto.ResetResponse, error) {
	plate, err := requirePlate(plate)
	if err != nil {
		return nil, err
	}

	deleted, err := s.statuses.Delete(ctx, plate)
	if err != nil {
		logger.L(ctx, s.logger).Error("Failed to reset notification status",
			zap.String("license_plate", plate),
			zap.Error(err))
		return nil, shared.NewStoreUnavailable(err)
	}
	if deleted {
		s.metrics.StatusReset(ctx, ResetReasonManual)
		logger.L(ctx, s.logger).Info("Notification status reset", zap.String("license_plate", plate))
	}
	return &dto.ResetResponse{LicensePlate: plate, Reset: deleted}, nil
}

// Statuses returns the ledger keyed by plate after reconciliation
func (s *CurationService) Statuses(ctx context.Context) (dto.StatusResponse, error) {
	_, entries, err := s.loadReconciled(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ToStatusResponse(entries), nil
}

// ListSent returns sent entries between the from and to calendar dates,
// both inclusive. Either bound may be empty.
func (s *CurationService) ListSent(ctx context.Context, q dto.SentQuery) (*dto.SentListResponse, error) {
	loc := s.settings.Policy.Zone()
	var filter renewal.SentFilter

	if strings.TrimSpace(q.From) != "" {
		from, err := renewal.ParseFlexibleDate(q.From, loc)
		if err != nil {
			return nil, err
		}
		filter.From = &from
	}
	if strings.TrimSpace(q.To) != "" {
		to, err := renewal.ParseFlexibleDate(q.To, loc)
		if err != nil {
			return nil, err
		}
		until := to.AddDate(0, 0, 1)
		filter.Until = &until
	}
	if filter.From != nil && filter.Until != nil && !filter.From.Before(*filter.Until) {
		return nil, shared.NewInvalidInput("from must not be after to")
	}

	entries, err := s.statuses.FindSent(ctx, filter)
	if err != nil {
		logger.L(ctx, s.logger).Error("Failed to list sent notifications", zap.Error(err))
		return nil, shared.NewStoreUnavailable(err)
	}
	return dto.ToSentListResponse(entries), nil
}

// ListUrgencies returns the derived urgency of every tracked record, most
// urgent first. Records without a usable date come last as Pending. An empty
// status returns every row.
func (s *CurationService) ListUrgencies(ctx context.Context, status string) ([]dto.UrgencyResponse, error) {
	var want renewal.Status
	if strings.TrimSpace(status) != "" {
		parsed, ok := renewal.ParseStatus(status)
		if !ok {
			return nil, shared.NewInvalidInput("unknown status " + status)
		}
		want = parsed
	}

	records, entries, err := s.loadReconciled(ctx)
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshots.findActive(ctx)
	if err != nil {
		return nil, err
	}

	sent := renewal.SentPlates(entries)
	today := s.settings.Policy.Today(s.clock.Now())

	type row struct {
		rec renewal.CustomerTaxRecord
		u   renewal.DerivedUrgency
	}
	rows := make([]row, 0, len(records))
	for _, r := range renewal.UniqueByPlate(records) {
		u := s.settings.Policy.Derive(r, today)
		if want != "" && u.Status != want {
			continue
		}
		rows = append(rows, row{rec: r, u: u})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].u, rows[j].u
		if a.HasExpiry() != b.HasExpiry() {
			return a.HasExpiry()
		}
		if a.DaysUntilExpiry != b.DaysUntilExpiry {
			return a.DaysUntilExpiry < b.DaysUntilExpiry
		}
		return a.LicensePlate < b.LicensePlate
	})

	out := make([]dto.UrgencyResponse, len(rows))
	for i, r := range rows {
		inSnapshot := snap != nil && snap.Contains(r.u.LicensePlate)
		out[i] = dto.ToUrgencyResponse(r.rec, r.u, sent[r.u.LicensePlate], inSnapshot)
	}
	return out, nil
}

// ForceRefresh discards the snapshot and ranks a new one
func (s *CurationService) ForceRefresh(ctx context.Context) (*dto.BuildSnapshotResponse, error) {
	return s.snapshots.BuildDailySnapshot(ctx, true)
}

// DeleteSnapshotEntry removes one plate from the snapshot
func (s *CurationService) DeleteSnapshotEntry(ctx context.Context, plate string) (*dto.DeleteEntryResponse, error) {
	return s.snapshots.DeleteSnapshotEntry(ctx, plate)
}

// BulkDeleteSnapshotEntries removes several plates from the snapshot
func (s *CurationService) BulkDeleteSnapshotEntries(ctx context.Context, plates []string) (*dto.BulkResultResponse, error) {
	return s.snapshots.BulkDeleteSnapshotEntries(ctx, plates)
}

// ClearSnapshot empties the snapshot
func (s *CurationService) ClearSnapshot(ctx context.Context) (*dto.ClearResponse, error) {
	return s.snapshots.ClearSnapshot(ctx)
}

// loadReconciled fetches tracked records and the ledger, then reconciles
func (s *CurationService) loadReconciled(ctx context.Context) ([]renewal.CustomerTaxRecord, []renewal.NotificationStatus, error) {
	log := logger.L(ctx, s.logger)

	records, err := s.records.FindTracked(ctx, s.settings.TrackingTag)
	if err != nil {
		log.Error("Failed to load tracked records", zap.Error(err))
		return nil, nil, shared.NewStoreUnavailable(err)
	}
	entries, err := s.statuses.FindAll(ctx)
	if err != nil {
		log.Error("Failed to load notification ledger", zap.Error(err))
		return nil, nil, shared.NewStoreUnavailable(err)
	}

	today := s.settings.Policy.Today(s.clock.Now())
	return records, s.reconciler.Reconcile(ctx, records, entries, today), nil
}

// parseSentAt accepts an RFC 3339 instant or any calendar-date form; empty means now
func (s *CurationService) parseSentAt(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return s.clock.Now(), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t, nil
	}
	return renewal.ParseFlexibleDate(v, s.settings.Policy.Zone())
}
