package renewal

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/taxrenew/backend/internal/domain/renewal"
	"go.uber.org/zap"
)

// MockTaxRecordRepository is a mock implementation of TaxRecordRepository
type MockTaxRecordRepository struct {
	mock.Mock
}

func (m *MockTaxRecordRepository) FindTracked(ctx context.Context, tag string) ([]renewal.CustomerTaxRecord, error) {
	args := m.Called(ctx, tag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]renewal.CustomerTaxRecord), args.Error(1)
}

// MockNotificationStatusRepository is a mock implementation of NotificationStatusRepository
type MockNotificationStatusRepository struct {
	mock.Mock
}

func (m *MockNotificationStatusRepository) MarkSent(ctx context.Context, plate string, sentAt time.Time) (*renewal.NotificationStatus, bool, error) {
	args := m.Called(ctx, plate, sentAt)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*renewal.NotificationStatus), args.Bool(1), args.Error(2)
}

func (m *MockNotificationStatusRepository) Delete(ctx context.Context, plate string) (bool, error) {
	args := m.Called(ctx, plate)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationStatusRepository) FindAll(ctx context.Context) ([]renewal.NotificationStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]renewal.NotificationStatus), args.Error(1)
}

func (m *MockNotificationStatusRepository) FindSent(ctx context.Context, filter renewal.SentFilter) ([]renewal.NotificationStatus, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]renewal.NotificationStatus), args.Error(1)
}

// MockSnapshotRepository is a mock implementation of SnapshotRepository
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) Find(ctx context.Context, key string) (*renewal.DailySnapshot, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*renewal.DailySnapshot), args.Error(1)
}

func (m *MockSnapshotRepository) Replace(ctx context.Context, s *renewal.DailySnapshot) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSnapshotRepository) RemoveEntry(ctx context.Context, key, plate string) (bool, error) {
	args := m.Called(ctx, key, plate)
	return args.Bool(0), args.Error(1)
}

func (m *MockSnapshotRepository) Clear(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

// recordingMetrics counts the events it receives
type recordingMetrics struct {
	mu        sync.Mutex
	built     []int
	marked    map[bool]int
	resets    map[string]int
	reconFail int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{marked: map[bool]int{}, resets: map[string]int{}}
}

func (r *recordingMetrics) SnapshotBuilt(_ context.Context, size int, _ bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.built = append(r.built, size)
}

func (r *recordingMetrics) NotificationMarked(_ context.Context, first bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.marked[first]++
}

func (r *recordingMetrics) StatusReset(_ context.Context, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resets[reason]++
}

func (r *recordingMetrics) ReconcileFailed(context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reconFail++
}

var ict = time.FixedZone("ICT", 7*60*60)

// testNow is 2024-11-01 10:00 in Bangkok
var testNow = time.Date(2024, time.November, 1, 10, 0, 0, 0, ict)

const (
	validPhone  = "0812345678"
	trackingTag = "tax"
)

func testSettings() Settings {
	return Settings{
		Policy: renewal.Policy{
			SnapshotCap:           renewal.DefaultSnapshotCap,
			EligibilityWindowDays: renewal.DefaultEligibilityWindowDays,
			UpcomingLeadDays:      renewal.DefaultUpcomingLeadDays,
			RenewalCycleDays:      renewal.DefaultRenewalCycleDays,
			Location:              ict,
		},
		TrackingTag: trackingTag,
	}
}

// expiringIn returns a tracked record whose explicit expiry is days after testNow
func expiringIn(plate string, days int) renewal.CustomerTaxRecord {
	return renewal.CustomerTaxRecord{
		LicensePlate: plate,
		Phone:        validPhone,
		ExpiryDate:   testNow.AddDate(0, 0, days).Format("2006-01-02"),
		Tags:         []string{trackingTag},
	}
}

// testFixture wires the services to mocks
type testFixture struct {
	records   *MockTaxRecordRepository
	statuses  *MockNotificationStatusRepository
	snapshots *MockSnapshotRepository
	metrics   *recordingMetrics
	snapshot  *SnapshotService
	curation  *CurationService
}

func newTestFixture(t *testing.T, log *zap.Logger) *testFixture {
	t.Helper()
	if log == nil {
		log = zap.NewNop()
	}

	phones, err := renewal.NewPhoneValidator("TH")
	require.NoError(t, err)

	f := &testFixture{
		records:   new(MockTaxRecordRepository),
		statuses:  new(MockNotificationStatusRepository),
		snapshots: new(MockSnapshotRepository),
		metrics:   newRecordingMetrics(),
	}
	settings := testSettings()
	clock := renewal.FixedClock(testNow)
	reconciler := NewReconciler(settings.Policy, f.statuses, f.metrics, log)
	f.snapshot = NewSnapshotService(settings, f.records, f.statuses, f.snapshots, reconciler, phones, clock, f.metrics, log)
	f.curation = NewCurationService(settings, f.records, f.statuses, f.snapshot, reconciler, clock, f.metrics, log)
	return f
}

func (f *testFixture) assertExpectations(t *testing.T) {
	f.records.AssertExpectations(t)
	f.statuses.AssertExpectations(t)
	f.snapshots.AssertExpectations(t)
}

func plateN(i int) string {
	return fmt.Sprintf("กข%04d", i)
}
