package renewal

import (
	"context"
	"errors"

	"github.com/taxrenew/backend/internal/application/renewal/dto"
	"github.com/taxrenew/backend/internal/domain/renewal"
	"github.com/taxrenew/backend/internal/domain/shared"
	"github.com/taxrenew/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Settings are the tunables shared by the renewal services
type Settings struct {
	Policy renewal.Policy
	// TrackingTag selects the registry records that take part in outreach
	TrackingTag string
}

// SnapshotService builds and edits the daily snapshot
type SnapshotService struct {
	settings   Settings
	records    renewal.TaxRecordRepository
	statuses   renewal.NotificationStatusRepository
	snapshots  renewal.SnapshotRepository
	reconciler *Reconciler
	phones     renewal.PhoneValidator
	clock      renewal.Clock
	metrics    Metrics
	logger     *zap.Logger
}

// NewSnapshotService creates a new SnapshotService
func NewSnapshotService(
	settings Settings,
	records renewal.TaxRecordRepository,
	statuses renewal.NotificationStatusRepository,
	snapshots renewal.SnapshotRepository,
	reconciler *Reconciler,
	phones renewal.PhoneValidator,
	clock renewal.Clock,
	metrics Metrics,
	log *zap.Logger,
) *SnapshotService {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if clock == nil {
		clock = renewal.SystemClock(settings.Policy.Zone())
	}
	return &SnapshotService{
		settings:   settings,
		records:    records,
		statuses:   statuses,
		snapshots:  snapshots,
		reconciler: reconciler,
		phones:     phones,
		clock:      clock,
		metrics:    metrics,
		logger:     log,
	}
}

// GetSnapshot returns the stored snapshot, or an empty one if none exists
func (s *SnapshotService) GetSnapshot(ctx context.Context) (*dto.SnapshotResponse, error) {
	snap, err := s.findActive(ctx)
	if err != nil {
		return nil, err
	}
	resp := s.toResponse(snap)
	return &resp, nil
}

// BuildDailySnapshot returns today's snapshot, ranking a new one when none
// exists for the current business day or when force is set.
func (s *SnapshotService) BuildDailySnapshot(ctx context.Context, force bool) (*dto.BuildSnapshotResponse, error) {
	log := logger.L(ctx, s.logger)
	now := s.clock.Now()

	existing, err := s.findActive(ctx)
	if err != nil {
		return nil, err
	}
	if !force && existing != nil && existing.IsActiveOn(now, s.settings.Policy.Zone()) {
		return &dto.BuildSnapshotResponse{SnapshotResponse: s.toResponse(existing)}, nil
	}

	records, err := s.records.FindTracked(ctx, s.settings.TrackingTag)
	if err != nil {
		log.Error("Failed to load tracked records", zap.Error(err))
		return nil, shared.NewStoreUnavailable(err)
	}
	entries, err := s.statuses.FindAll(ctx)
	if err != nil {
		log.Error("Failed to load notification ledger", zap.Error(err))
		return nil, shared.NewStoreUnavailable(err)
	}

	policy := s.settings.Policy
	today := policy.Today(now)
	entries = s.reconciler.Reconcile(ctx, records, entries, today)

	candidates := policy.SelectCandidates(records, renewal.SentPlates(entries), s.phones, today)
	snap := renewal.NewDailySnapshot(renewal.Plates(candidates), policy.SnapshotCap, now)
	if err := s.snapshots.Replace(ctx, snap); err != nil {
		log.Error("Failed to store daily snapshot", zap.Error(err))
		return nil, shared.NewStoreUnavailable(err)
	}

	s.metrics.SnapshotBuilt(ctx, len(snap.LicensePlates), force)
	log.Info("Daily snapshot built",
		zap.String("generation_id", snap.GenerationID.String()),
		zap.Int("records", len(records)),
		zap.Int("selected", len(snap.LicensePlates)),
		zap.Bool("forced", force))

	return &dto.BuildSnapshotResponse{SnapshotResponse: s.toResponse(snap), Regenerated: true}, nil
}

// SeedSnapshot replaces the snapshot with the given plates, normalised,
// de-duplicated and capped. No ranking is applied.
func (s *SnapshotService) SeedSnapshot(ctx context.Context, plates []string) (*dto.BuildSnapshotResponse, error) {
	snap := renewal.NewDailySnapshot(plates, s.settings.Policy.SnapshotCap, s.clock.Now())
	if err := s.snapshots.Replace(ctx, snap); err != nil {
		logger.L(ctx, s.logger).Error("Failed to store seeded snapshot", zap.Error(err))
		return nil, shared.NewStoreUnavailable(err)
	}

	s.metrics.SnapshotBuilt(ctx, len(snap.LicensePlates), true)
	logger.L(ctx, s.logger).Info("Daily snapshot seeded",
		zap.Int("requested", len(plates)),
		zap.Int("stored", len(snap.LicensePlates)))

	return &dto.BuildSnapshotResponse{SnapshotResponse: s.toResponse(snap), Regenerated: true}, nil
}

// DeleteSnapshotEntry removes one plate. An absent plate is not an error.
func (s *SnapshotService) DeleteSnapshotEntry(ctx context.Context, plate string) (*dto.DeleteEntryResponse, error) {
	plate, err := requirePlate(plate)
	if err != nil {
		return nil, err
	}
	removed, err := s.removeFromActive(ctx, plate)
	if err != nil {
		return nil, err
	}
	return &dto.DeleteEntryResponse{LicensePlate: plate, Deleted: removed}, nil
}

// BulkDeleteSnapshotEntries removes each plate independently and reports
// the outcome per item. One failure does not stop the rest.
func (s *SnapshotService) BulkDeleteSnapshotEntries(ctx context.Context, plates []string) (*dto.BulkResultResponse, error) {
	if len(plates) == 0 {
		return nil, shared.NewInvalidInput("licensePlates must not be empty")
	}

	resp := &dto.BulkResultResponse{Results: make([]dto.ItemResult, 0, len(plates))}
	for _, raw := range plates {
		plate, err := requirePlate(raw)
		if err != nil {
			resp.Add(dto.ItemResult{LicensePlate: raw, Error: err.Error()})
			continue
		}
		if _, err := s.removeFromActive(ctx, plate); err != nil {
			resp.Add(dto.ItemResult{LicensePlate: plate, Error: err.Error()})
			continue
		}
		resp.Add(dto.ItemResult{LicensePlate: plate, Success: true})
	}
	return resp, nil
}

// ClearSnapshot removes the snapshot and returns how many plates it held
func (s *SnapshotService) ClearSnapshot(ctx context.Context) (*dto.ClearResponse, error) {
	deleted, err := s.snapshots.Clear(ctx, renewal.ActiveSnapshotKey)
	if err != nil {
		logger.L(ctx, s.logger).Error("Failed to clear daily snapshot", zap.Error(err))
		return nil, shared.NewStoreUnavailable(err)
	}
	logger.L(ctx, s.logger).Info("Daily snapshot cleared", zap.Int64("deleted", deleted))
	return &dto.ClearResponse{DeletedCount: deleted}, nil
}

func (s *SnapshotService) removeFromActive(ctx context.Context, plate string) (bool, error) {
	removed, err := s.snapshots.RemoveEntry(ctx, renewal.ActiveSnapshotKey, plate)
	if err != nil {
		logger.L(ctx, s.logger).Error("Failed to remove snapshot entry",
			zap.String("license_plate", plate),
			zap.Error(err))
		return false, shared.NewStoreUnavailable(err)
	}
	return removed, nil
}

// findActive returns the stored snapshot or nil when there is none
func (s *SnapshotService) findActive(ctx context.Context) (*renewal.DailySnapshot, error) {
	snap, err := s.snapshots.Find(ctx, renewal.ActiveSnapshotKey)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		logger.L(ctx, s.logger).Error("Failed to load daily snapshot", zap.Error(err))
		return nil, shared.NewStoreUnavailable(err)
	}
	return snap, nil
}

func (s *SnapshotService) toResponse(snap *renewal.DailySnapshot) dto.SnapshotResponse {
	active := snap != nil && snap.IsActiveOn(s.clock.Now(), s.settings.Policy.Zone())
	return dto.ToSnapshotResponse(snap, active)
}

// requirePlate normalises plate and rejects blanks
func requirePlate(plate string) (string, error) {
	normalized := renewal.NormalizePlate(plate)
	if normalized == "" {
		return "", shared.NewInvalidInput("licensePlate is required")
	}
	return normalized, nil
}
