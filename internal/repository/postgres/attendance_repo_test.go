package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"campusevents/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventAttendanceRepository_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ts := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`ON CONFLICT \(event_id, user_id\)\s+DO UPDATE SET attended = EXCLUDED.attended`).
		WithArgs("ev-1", "u1", true, ts).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("att-1"))

	a := &domain.EventAttendance{EventID: "ev-1", UserID: "u1", Attended: true, RecordedAt: ts}
	require.NoError(t, NewEventAttendanceRepository(db).Upsert(context.Background(), a))
	assert.Equal(t, "att-1", a.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventAttendanceRepository_Reads(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	cols := []string{"id", "event_id", "user_id", "attended", "recorded_at"}

	t.Run("get missing", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM event_attendance\s+WHERE event_id = \$1 AND user_id = \$2`).
			WithArgs("ev-1", "u1").
			WillReturnError(sql.ErrNoRows)

		_, err = NewEventAttendanceRepository(db).GetByEventAndUser(ctx, "ev-1", "u1")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("attended by user", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`WHERE user_id = \$1 AND attended = TRUE\s+ORDER BY recorded_at DESC`).
			WithArgs("u1").
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow("att-2", "ev-2", "u1", true, ts).
				AddRow("att-1", "ev-1", "u1", true, ts.Add(-time.Hour)))

		got, err := NewEventAttendanceRepository(db).ListAttendedByUserID(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "ev-2", got[0].EventID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("by event empty", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`WHERE event_id = \$1\s+ORDER BY recorded_at ASC`).
			WithArgs("ev-1").
			WillReturnRows(sqlmock.NewRows(cols))

		got, err := NewEventAttendanceRepository(db).ListByEventID(ctx, "ev-1")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
