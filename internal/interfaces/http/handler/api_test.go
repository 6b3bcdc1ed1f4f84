package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	renewalapp "github.com/taxrenew/backend/internal/application/renewal"
	appdto "github.com/taxrenew/backend/internal/application/renewal/dto"
	"github.com/taxrenew/backend/internal/domain/renewal"
	"github.com/taxrenew/backend/internal/infrastructure/persistence"
	"github.com/taxrenew/backend/internal/infrastructure/persistence/models"
	"github.com/taxrenew/backend/internal/interfaces/http/dto"
	"github.com/taxrenew/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var ict = time.FixedZone("ICT", 7*60*60)

// testNow is 2024-11-01 10:00 in Bangkok
var testNow = time.Date(2024, time.November, 1, 10, 0, 0, 0, ict)

const trackingTag = "tax"

type testAPI struct {
	engine *gin.Engine
	db     *gorm.DB
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	require.NoError(t, middleware.SetupValidator())

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.DailySnapshotModel{},
		&models.DailySnapshotEntryModel{},
		&models.NotificationStatusModel{},
		&models.CustomerTaxRecordModel{},
	))

	settings := renewalapp.Settings{
		Policy: renewal.Policy{
			SnapshotCap:           renewal.DefaultSnapshotCap,
			EligibilityWindowDays: renewal.DefaultEligibilityWindowDays,
			UpcomingLeadDays:      renewal.DefaultUpcomingLeadDays,
			RenewalCycleDays:      renewal.DefaultRenewalCycleDays,
			Location:              ict,
		},
		TrackingTag: trackingTag,
	}
	phones, err := renewal.NewPhoneValidator(renewal.PhoneRegionTH)
	require.NoError(t, err)

	records := persistence.NewGormTaxRecordRepository(db)
	statuses := persistence.NewGormNotificationStatusRepository(db)
	snapshots := persistence.NewGormSnapshotRepository(db)
	clock := renewal.FixedClock(testNow)
	log := zap.NewNop()

	reconciler := renewalapp.NewReconciler(settings.Policy, statuses, nil, log)
	snapshotSvc := renewalapp.NewSnapshotService(settings, records, statuses, snapshots, reconciler, phones, clock, nil, log)
	curationSvc := renewalapp.NewCurationService(settings, records, statuses, snapshotSvc, reconciler, clock, nil, log)

	daily := NewDailyNotificationHandler(snapshotSvc, curationSvc)
	status := NewNotificationStatusHandler(curationSvc)
	renewals := NewRenewalHandler(curationSvc)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	api := engine.Group("/api/v1")
	api.GET("/daily-notifications", daily.GetSnapshot)
	api.POST("/daily-notifications", daily.BuildSnapshot)
	api.DELETE("/daily-notifications", daily.DeleteEntry)
	api.POST("/daily-notifications/bulk-delete", daily.BulkDelete)
	api.DELETE("/daily-notifications/delete-all", daily.Clear)
	api.GET("/notification-status", status.List)
	api.POST("/notification-status", status.Mark)
	api.DELETE("/notification-status", status.Reset)
	api.POST("/notification-status/batch", status.MarkBatch)
	api.GET("/notification-status/sent", status.ListSent)
	api.GET("/renewals", renewals.List)

	a := &testAPI{engine: engine, db: db}
	a.seedRecords(t)
	return a
}

func expiringIn(plate, phone string, days int, tags ...string) renewal.CustomerTaxRecord {
	return renewal.CustomerTaxRecord{
		LicensePlate: plate,
		CustomerName: "Customer " + plate,
		Phone:        phone,
		ExpiryDate:   testNow.AddDate(0, 0, days).Format("2006-01-02"),
		Tags:         tags,
	}
}

// seedRecords stores:
//
//	กก1001 upcoming in 5 days
//	กก1002 overdue by 3 days
//	กก1003 renewed, 200 days left
//	กก1004 upcoming in 10 days with an unusable phone
//	กก1005 upcoming in 1 day but not tracked
func (a *testAPI) seedRecords(t *testing.T) {
	t.Helper()
	recs := []renewal.CustomerTaxRecord{
		expiringIn("กก1001", "0812345678", 5, trackingTag),
		expiringIn("กก1002", "0898765432", -3, trackingTag),
		expiringIn("กก1003", "0811111111", 200, trackingTag),
		expiringIn("กก1004", "123", 10, trackingTag),
		expiringIn("กก1005", "0822222222", 1, "other"),
	}
	for _, r := range recs {
		require.NoError(t, a.db.Create(models.CustomerTaxRecordModelFromDomain(r)).Error)
	}
}

func (a *testAPI) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testAPI) closeDB(t *testing.T) {
	t.Helper()
	sqlDB, err := a.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func TestDailyNotificationHandler_GetSnapshot_Empty(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(http.MethodGet, "/api/v1/daily-notifications", "")
	require.Equal(t, http.StatusOK, w.Code)

	var snap appdto.SnapshotResponse
	decodeData(t, w, &snap)
	assert.Empty(t, snap.LicensePlates)
	assert.NotNil(t, snap.LicensePlates)
	assert.Nil(t, snap.CreatedAt)
}

func TestDailyNotificationHandler_BuildSnapshot(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(http.MethodPost, "/api/v1/daily-notifications", "")
	require.Equal(t, http.StatusOK, w.Code)

	var built appdto.BuildSnapshotResponse
	decodeData(t, w, &built)
	assert.Equal(t, []string{"กก1002", "กก1001"}, built.LicensePlates)
	assert.True(t, built.Regenerated)
	require.NotNil(t, built.CreatedAt)

	w = a.do(http.MethodPost, "/api/v1/daily-notifications", `{}`)
	require.Equal(t, http.StatusOK, w.Code)
	var again appdto.BuildSnapshotResponse
	decodeData(t, w, &again)
	assert.False(t, again.Regenerated)
	assert.Equal(t, built.LicensePlates, again.LicensePlates)

	w = a.do(http.MethodGet, "/api/v1/daily-notifications", "")
	var current appdto.SnapshotResponse
	decodeData(t, w, &current)
	assert.Equal(t, built.LicensePlates, current.LicensePlates)
	assert.True(t, current.Active)
}

func TestDailyNotificationHandler_BuildSnapshot_Seed(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(http.MethodPost, "/api/v1/daily-notifications",
		`{"licensePlates":["กก1003"," กก1003 ","กก1001"],"forceRefresh":true}`)
	require.Equal(t, http.StatusOK, w.Code)

	var seeded appdto.BuildSnapshotResponse
	decodeData(t, w, &seeded)
	assert.Equal(t, []string{"กก1003", "กก1001"}, seeded.LicensePlates)
}

func TestDailyNotificationHandler_BuildSnapshot_ForceRefreshExcludesSent(t *testing.T) {
	a := newTestAPI(t)

	require.Equal(t, http.StatusOK, a.do(http.MethodPost, "/api/v1/daily-notifications", "").Code)
	require.Equal(t, http.StatusOK, a.do(http.MethodPost, "/api/v1/notification-status", `{"licensePlate":"กก1002"}`).Code)

	w := a.do(http.MethodPost, "/api/v1/daily-notifications", `{"forceRefresh":true}`)
	require.Equal(t, http.StatusOK, w.Code)

	var rebuilt appdto.BuildSnapshotResponse
	decodeData(t, w, &rebuilt)
	assert.Equal(t, []string{"กก1001"}, rebuilt.LicensePlates)
	assert.True(t, rebuilt.Regenerated)
}

func TestDailyNotificationHandler_BuildSnapshot_MalformedJSON(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(http.MethodPost, "/api/v1/daily-notifications", `{"licensePlates":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrCodeInvalidJSON, env.Error.Code)
	assert.NotEmpty(t, env.Error.RequestID)
}

func TestDailyNotificationHandler_DeleteEntry(t *testing.T) {
	a := newTestAPI(t)
	require.Equal(t, http.StatusOK, a.do(http.MethodPost, "/api/v1/daily-notifications", "").Code)

	w := a.do(http.MethodDelete, "/api/v1/daily-notifications", `{"licensePlate":"กก1001"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var del appdto.DeleteEntryResponse
	decodeData(t, w, &del)
	assert.True(t, del.Deleted)

	// Deleting an absent plate still succeeds
	w = a.do(http.MethodDelete, "/api/v1/daily-notifications", `{"licensePlate":"กก1001"}`)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &del)
	assert.False(t, del.Deleted)

	w = a.do(http.MethodDelete, "/api/v1/daily-notifications", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrCodeValidation, env.Error.Code)

	w = a.do(http.MethodDelete, "/api/v1/daily-notifications", `{"licensePlate":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env = decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrCodeInvalidInput, env.Error.Code)
}

func TestDailyNotificationHandler_BulkDeleteAndClear(t *testing.T) {
	a := newTestAPI(t)
	require.Equal(t, http.StatusOK, a.do(http.MethodPost, "/api/v1/daily-notifications", "").Code)

	w := a.do(http.MethodPost, "/api/v1/daily-notifications/bulk-delete", `{"licensePlates":["กก1001",""]}`)
	require.Equal(t, http.StatusOK, w.Code)
	var bulk appdto.BulkResultResponse
	decodeData(t, w, &bulk)
	require.Len(t, bulk.Results, 2)
	assert.Equal(t, 1, bulk.Succeeded)
	assert.Equal(t, 1, bulk.Failed)
	assert.NotEmpty(t, bulk.Results[1].Error)

	w = a.do(http.MethodPost, "/api/v1/daily-notifications/bulk-delete", `{"licensePlates":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodDelete, "/api/v1/daily-notifications/delete-all", "")
	require.Equal(t, http.StatusOK, w.Code)
	var cleared appdto.ClearResponse
	decodeData(t, w, &cleared)
	assert.Equal(t, int64(1), cleared.DeletedCount)

	w = a.do(http.MethodGet, "/api/v1/daily-notifications", "")
	var snap appdto.SnapshotResponse
	decodeData(t, w, &snap)
	assert.Empty(t, snap.LicensePlates)
}

func TestNotificationStatusHandler_MarkAndReset(t *testing.T) {
	a := newTestAPI(t)
	require.Equal(t, http.StatusOK, a.do(http.MethodPost, "/api/v1/daily-notifications", "").Code)

	w := a.do(http.MethodPost, "/api/v1/notification-status", `{"licensePlate":"กก1001","sentAt":"2024-10-30T09:00:00+07:00"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var marked appdto.MarkSentResponse
	decodeData(t, w, &marked)
	assert.True(t, marked.Created)
	assert.True(t, marked.Sent)
	firstSentAt := marked.SentAt

	// Replay keeps the first timestamp
	w = a.do(http.MethodPost, "/api/v1/notification-status", `{"licensePlate":"กก1001","sent":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &marked)
	assert.False(t, marked.Created)
	assert.True(t, firstSentAt.Equal(marked.SentAt))

	// Marked plates leave the snapshot
	w = a.do(http.MethodGet, "/api/v1/daily-notifications", "")
	var snap appdto.SnapshotResponse
	decodeData(t, w, &snap)
	assert.Equal(t, []string{"กก1002"}, snap.LicensePlates)

	w = a.do(http.MethodGet, "/api/v1/notification-status", "")
	require.Equal(t, http.StatusOK, w.Code)
	var statuses appdto.StatusResponse
	decodeData(t, w, &statuses)
	require.Contains(t, statuses, "กก1001")
	assert.True(t, statuses["กก1001"].Sent)

	// sent=false resets instead of storing a negative entry
	w = a.do(http.MethodPost, "/api/v1/notification-status", `{"licensePlate":"กก1001","sent":false}`)
	require.Equal(t, http.StatusOK, w.Code)
	var reset appdto.ResetResponse
	decodeData(t, w, &reset)
	assert.True(t, reset.Reset)

	w = a.do(http.MethodGet, "/api/v1/notification-status", "")
	statuses = appdto.StatusResponse{}
	decodeData(t, w, &statuses)
	assert.NotContains(t, statuses, "กก1001")

	w = a.do(http.MethodDelete, "/api/v1/notification-status", `{"licensePlate":"กก1001"}`)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &reset)
	assert.False(t, reset.Reset)
}

func TestNotificationStatusHandler_Mark_InvalidSentAt(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(http.MethodPost, "/api/v1/notification-status", `{"licensePlate":"กก1001","sentAt":"yesterday"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrCodeInvalidDateFormat, env.Error.Code)
}

func TestNotificationStatusHandler_List_ReconcilesRenewed(t *testing.T) {
	a := newTestAPI(t)

	require.Equal(t, http.StatusOK, a.do(http.MethodPost, "/api/v1/notification-status", `{"licensePlate":"กก1003"}`).Code)
	require.Equal(t, http.StatusOK, a.do(http.MethodPost, "/api/v1/notification-status", `{"licensePlate":"กก1002"}`).Code)

	w := a.do(http.MethodGet, "/api/v1/notification-status", "")
	require.Equal(t, http.StatusOK, w.Code)
	var statuses appdto.StatusResponse
	decodeData(t, w, &statuses)
	assert.NotContains(t, statuses, "กก1003")
	assert.Contains(t, statuses, "กก1002")

	var remaining int64
	require.NoError(t, a.db.Model(&models.NotificationStatusModel{}).Count(&remaining).Error)
	assert.Equal(t, int64(1), remaining)
}

func TestNotificationStatusHandler_MarkBatchAndListSent(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(http.MethodPost, "/api/v1/notification-status/batch",
		`{"licensePlates":["กก1001","กก1002"," "],"sentAt":"2024-10-20"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var bulk appdto.BulkResultResponse
	decodeData(t, w, &bulk)
	assert.Equal(t, 2, bulk.Succeeded)
	assert.Equal(t, 1, bulk.Failed)

	require.Equal(t, http.StatusOK, a.do(http.MethodPost, "/api/v1/notification-status", `{"licensePlate":"กก1004"}`).Code)

	w = a.do(http.MethodGet, "/api/v1/notification-status/sent?from=2024-10-01&to=2024-10-31", "")
	require.Equal(t, http.StatusOK, w.Code)
	var sent appdto.SentListResponse
	decodeData(t, w, &sent)
	assert.Equal(t, 2, sent.Count)

	w = a.do(http.MethodGet, "/api/v1/notification-status/sent", "")
	decodeData(t, w, &sent)
	assert.Equal(t, 3, sent.Count)

	w = a.do(http.MethodGet, "/api/v1/notification-status/sent?from=2024-11-02&to=2024-11-01", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodPost, "/api/v1/notification-status/batch", `{"licensePlates":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRenewalHandler_List(t *testing.T) {
	a := newTestAPI(t)
	require.Equal(t, http.StatusOK, a.do(http.MethodPost, "/api/v1/daily-notifications", "").Code)

	w := a.do(http.MethodGet, "/api/v1/renewals", "")
	require.Equal(t, http.StatusOK, w.Code)
	var rows []appdto.UrgencyResponse
	decodeData(t, w, &rows)
	require.Len(t, rows, 4)
	assert.Equal(t, "กก1002", rows[0].LicensePlate)
	assert.Equal(t, string(renewal.StatusOverdue), rows[0].Status)
	require.NotNil(t, rows[0].DaysUntilExpiry)
	assert.Equal(t, -3, *rows[0].DaysUntilExpiry)
	assert.True(t, rows[0].InSnapshot)

	w = a.do(http.MethodGet, "/api/v1/renewals?status=renewed", "")
	rows = nil
	decodeData(t, w, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, "กก1003", rows[0].LicensePlate)
	assert.False(t, rows[0].InSnapshot)

	w = a.do(http.MethodGet, "/api/v1/renewals?status=someday", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlers_StoreUnavailable(t *testing.T) {
	a := newTestAPI(t)
	a.closeDB(t)

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/v1/daily-notifications", ""},
		{http.MethodPost, "/api/v1/daily-notifications", ""},
		{http.MethodGet, "/api/v1/notification-status", ""},
		{http.MethodPost, "/api/v1/notification-status", `{"licensePlate":"กก1001"}`},
		{http.MethodGet, "/api/v1/renewals", ""},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := a.do(tc.method, tc.path, tc.body)
			assert.Equal(t, http.StatusServiceUnavailable, w.Code)
			assert.Equal(t, "5", w.Header().Get("Retry-After"))
			env := decodeEnvelope(t, w)
			require.NotNil(t, env.Error)
			assert.Equal(t, dto.ErrCodeStoreUnavailable, env.Error.Code)
		})
	}
}

type fakeDB struct {
	pingErr error
}

func (f fakeDB) Ping(context.Context) error { return f.pingErr }

func (f fakeDB) Stats() (persistence.ConnectionStats, error) {
	return persistence.ConnectionStats{OpenConnections: 2, Idle: 2}, nil
}

func TestHealthHandler_Check(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		engine := gin.New()
		engine.GET("/health", NewHealthHandler(fakeDB{}, "1.2.3").Check)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp HealthResponse
		decodeData(t, w, &resp)
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "1.2.3", resp.Version)
		require.NotNil(t, resp.Pool)
		assert.Equal(t, 2, resp.Pool.OpenConnections)
	})

	t.Run("database down", func(t *testing.T) {
		engine := gin.New()
		engine.GET("/health", NewHealthHandler(fakeDB{pingErr: errors.New("connection refused")}, "1.2.3").Check)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		env := decodeEnvelope(t, w)
		assert.False(t, env.Success)
		require.NotNil(t, env.Error)
		assert.Equal(t, dto.ErrCodeStoreUnavailable, env.Error.Code)
		assert.Contains(t, string(env.Data), `"unhealthy"`)
	})
}
