package persistence

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taxrenew/backend/internal/domain/renewal"
	"github.com/taxrenew/backend/internal/domain/shared"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestGormNotificationStatusRepository_MarkSent(t *testing.T) {
	ctx := context.Background()

	t.Run("first send creates the entry", func(t *testing.T) {
		repo := NewGormNotificationStatusRepository(newSQLiteDB(t))
		sentAt := time.Date(2024, time.November, 1, 9, 30, 0, 0, time.UTC)

		entry, created, err := repo.MarkSent(ctx, "กก1234", sentAt)
		require.NoError(t, err)

		assert.True(t, created)
		assert.True(t, entry.Sent)
		assert.Equal(t, "กก1234", entry.LicensePlate)
		assert.True(t, sentAt.Equal(entry.SentAt))
	})

	t.Run("second send keeps the original sentAt", func(t *testing.T) {
		repo := NewGormNotificationStatusRepository(newSQLiteDB(t))
		first := time.Date(2024, time.November, 1, 9, 30, 0, 0, time.UTC)
		later := first.Add(48 * time.Hour)

		_, _, err := repo.MarkSent(ctx, "กก1234", first)
		require.NoError(t, err)

		entry, created, err := repo.MarkSent(ctx, "กก1234", later)
		require.NoError(t, err)

		assert.False(t, created)
		assert.True(t, first.Equal(entry.SentAt))
	})
}

func TestGormNotificationStatusRepository_MarkSent_Concurrent(t *testing.T) {
	ctx := context.Background()
	repo := NewGormNotificationStatusRepository(newSQLiteDB(t))
	base := time.Date(2024, time.November, 1, 9, 0, 0, 0, time.UTC)

	const senders = 20
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		created  int
		winnerAt time.Time
		errs     []error
		returned []time.Time
	)
	for i := 0; i < senders; i++ {
		sentAt := base.Add(time.Duration(i) * time.Minute)
		wg.Add(1)
		go func() {
			defer wg.Done()
			entry, isNew, err := repo.MarkSent(ctx, "กก1234", sentAt)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			if isNew {
				created++
				winnerAt = sentAt
			}
			returned = append(returned, entry.SentAt)
		}()
	}
	wg.Wait()

	assert.Empty(t, errs)
	assert.Equal(t, 1, created)
	require.Len(t, returned, senders)

	stored, err := repo.FindByPlate(ctx, "กก1234")
	require.NoError(t, err)
	assert.True(t, stored.Sent)
	assert.True(t, winnerAt.Equal(stored.SentAt), "first recorded send time must be kept")
	for _, at := range returned {
		assert.True(t, winnerAt.Equal(at))
	}
}

func TestGormNotificationStatusRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewGormNotificationStatusRepository(newSQLiteDB(t))

	_, _, err := repo.MarkSent(ctx, "กก1234", time.Now())
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, "กก1234")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, "กก1234")
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = repo.FindByPlate(ctx, "กก1234")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormNotificationStatusRepository_FindAllAndFindSent(t *testing.T) {
	ctx := context.Background()
	repo := NewGormNotificationStatusRepository(newSQLiteDB(t))

	oct := time.Date(2024, time.October, 20, 10, 0, 0, 0, time.UTC)
	nov := time.Date(2024, time.November, 5, 10, 0, 0, 0, time.UTC)
	dec := time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)

	for plate, at := range map[string]time.Time{"ข2": nov, "ก1": oct, "ค3": dec} {
		_, _, err := repo.MarkSent(ctx, plate, at)
		require.NoError(t, err)
	}

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "ก1", all[0].LicensePlate)

	from := time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC)
	sent, err := repo.FindSent(ctx, renewal.SentFilter{From: &from, Until: &dec})
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, "ข2", sent[0].LicensePlate)

	unbounded, err := repo.FindSent(ctx, renewal.SentFilter{})
	require.NoError(t, err)
	require.Len(t, unbounded, 3)
	assert.Equal(t, "ก1", unbounded[0].LicensePlate)
	assert.Equal(t, "ค3", unbounded[2].LicensePlate)
}

// newMockNotificationStatusRepository wires the repository to sqlmock on the Postgres dialect
func newMockNotificationStatusRepository(t *testing.T) (*GormNotificationStatusRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return NewGormNotificationStatusRepository(gormDB), mock, mockDB
}

func TestGormNotificationStatusRepository_MarkSent_PostgresUpsert(t *testing.T) {
	t.Run("conditional upsert that updated nothing is a replay", func(t *testing.T) {
		repo, mock, mockDB := newMockNotificationStatusRepository(t)
		defer mockDB.Close()

		original := time.Date(2024, time.November, 1, 9, 0, 0, 0, time.UTC)

		mock.ExpectExec(`INSERT INTO "notification_statuses" .* ON CONFLICT \("license_plate"\) DO UPDATE SET .*"sent"="excluded"."sent".* WHERE "notification_statuses"."sent" = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "notification_statuses" WHERE license_plate = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("กก1234", 1).
			WillReturnRows(sqlmock.NewRows([]string{"license_plate", "sent", "sent_at", "created_at", "updated_at"}).
				AddRow("กก1234", true, original, original, original))

		entry, created, err := repo.MarkSent(context.Background(), "กก1234", original.Add(time.Hour))
		require.NoError(t, err)

		assert.False(t, created)
		assert.True(t, original.Equal(entry.SentAt))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("store failure is returned", func(t *testing.T) {
		repo, mock, mockDB := newMockNotificationStatusRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`INSERT INTO "notification_statuses"`).
			WillReturnError(sql.ErrConnDone)

		_, _, err := repo.MarkSent(context.Background(), "กก1234", time.Now())
		assert.ErrorIs(t, err, sql.ErrConnDone)
	})
}
