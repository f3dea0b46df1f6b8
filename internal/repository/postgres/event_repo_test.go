package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"eventboard/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var eventCols = []string{"id", "title", "description", "date", "location", "organizer_id", "is_approved", "created_at", "updated_at"}

func strPtr(s string) *string        { return &s }
func boolPtr(b bool) *bool           { return &b }
func timePtr(t time.Time) *time.Time { return &t }

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		event   *domain.Event
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
	}{
		{
			name:  "success",
			event: domain.NewEvent("Meetup", "Monthly Go meetup", ts.AddDate(0, 5, 0), "Berlin", "user-1", ts, ts),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events \(title, description, date, location, organizer_id, is_approved, created_at, updated_at\)`).
					WithArgs("Meetup", "Monthly Go meetup", ts.AddDate(0, 5, 0), "Berlin", "user-1", false, ts, ts).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-uuid-1"))
			},
			wantID:  "ev-uuid-1",
			wantErr: false,
		},
		{
			name:  "db error",
			event: domain.NewEvent("Meetup", "desc", ts, "Berlin", "user-1", ts, ts),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantID:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			err = repo.Create(ctx, tt.event)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.event.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		id         string
		mock       func(mock sqlmock.Sqlmock)
		want       *domain.Event
		wantErr    bool
		isNotFound bool
	}{
		{
			name: "success",
			id:   "ev-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, description, date, location, organizer_id, is_approved, created_at, updated_at FROM events WHERE id = \$1`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows(eventCols).
						AddRow("ev-1", "Meetup", "desc", ts.AddDate(0, 5, 0), "Berlin", "user-1", true, ts, ts))
			},
			want: &domain.Event{
				ID: "ev-1", Title: "Meetup", Description: "desc", Date: ts.AddDate(0, 5, 0),
				Location: "Berlin", OrganizerID: "user-1", IsApproved: true, CreatedAt: ts, UpdatedAt: ts,
			},
			wantErr: false,
		},
		{
			name: "not found",
			id:   "ev-missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, description, date`).
					WithArgs("ev-missing").
					WillReturnError(sql.ErrNoRows)
			},
			want:       nil,
			wantErr:    true,
			isNotFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			got, err := repo.GetByID(ctx, tt.id)
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, got)
				if tt.isNotFound {
					require.True(t, errors.Is(err, domain.ErrNotFound))
				}
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_List(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		filter    domain.EventFilter
		mock      func(mock sqlmock.Sqlmock)
		wantLen   int
		wantErr   bool
	}{
		{
			name:   "no filters primary key order",
			filter: domain.EventFilter{},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, description, date, location, organizer_id, is_approved, created_at, updated_at FROM events ORDER BY id ASC`).
					WillReturnRows(sqlmock.NewRows(eventCols).
						AddRow("ev-1", "A", "d", ts, "Berlin", "user-1", true, ts, ts).
						AddRow("ev-2", "B", "d", ts, "Oslo", "user-2", false, ts, ts))
			},
			wantLen: 2,
		},
		{
			name:   "search matches title or description",
			filter: domain.EventFilter{Search: strPtr("meetup")},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM events WHERE \(title ILIKE \$1 OR description ILIKE \$1\) ORDER BY id ASC`).
					WithArgs("%meetup%").
					WillReturnRows(sqlmock.NewRows(eventCols).
						AddRow("ev-1", "Go Meetup", "d", ts, "Berlin", "user-1", true, ts, ts))
			},
			wantLen: 1,
		},
		{
			name: "all filters compose with AND",
			filter: domain.EventFilter{
				Search:     strPtr("go"),
				Location:   strPtr("berlin"),
				StartDate:  timePtr(start),
				EndDate:    timePtr(end),
				IsApproved: boolPtr(true),
				Ordering:   domain.OrderingDateDesc,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM events WHERE \(title ILIKE \$1 OR description ILIKE \$1\) AND location ILIKE \$2 AND date >= \$3 AND date <= \$4 AND is_approved = \$5 ORDER BY date DESC, id ASC`).
					WithArgs("%go%", "%berlin%", start, end, true).
					WillReturnRows(sqlmock.NewRows(eventCols))
			},
			wantLen: 0,
		},
		{
			name:   "search input with like metacharacters is escaped",
			filter: domain.EventFilter{Search: strPtr("100%_go")},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM events WHERE \(title ILIKE \$1 OR description ILIKE \$1\)`).
					WithArgs(`%100\%\_go%`).
					WillReturnRows(sqlmock.NewRows(eventCols))
			},
			wantLen: 0,
		},
		{
			name:   "unrecognized ordering falls back to primary key",
			filter: domain.EventFilter{Ordering: "organizer"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM events ORDER BY id ASC`).
					WillReturnRows(sqlmock.NewRows(eventCols))
			},
			wantLen: 0,
		},
		{
			name:   "ordering by title ascending",
			filter: domain.EventFilter{Ordering: domain.OrderingTitle},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM events ORDER BY title ASC, id ASC`).
					WillReturnRows(sqlmock.NewRows(eventCols))
			},
			wantLen: 0,
		},
		{
			name:   "db error",
			filter: domain.EventFilter{},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			got, err := repo.List(ctx, tt.filter)
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, got)
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Len(t, got, tt.wantLen)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_Update(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("partial update builds set clause for provided fields", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE events SET updated_at = NOW\(\), title = \$1, location = \$2\s+WHERE id = \$3`).
			WithArgs("New title", "Oslo", "ev-1").
			WillReturnRows(sqlmock.NewRows(eventCols).
				AddRow("ev-1", "New title", "desc", ts, "Oslo", "user-1", false, ts, ts.Add(time.Hour)))

		repo := NewEventRepository(db)
		got, err := repo.Update(ctx, "ev-1", domain.EventPatch{Title: strPtr("New title"), Location: strPtr("Oslo")})
		require.NoError(t, err)
		require.Equal(t, "New title", got.Title)
		require.Equal(t, "Oslo", got.Location)
		require.True(t, got.UpdatedAt.After(got.CreatedAt))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty patch fetches current row", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, title, description, date, location, organizer_id, is_approved, created_at, updated_at FROM events WHERE id = \$1`).
			WithArgs("ev-1").
			WillReturnRows(sqlmock.NewRows(eventCols).
				AddRow("ev-1", "Meetup", "desc", ts, "Berlin", "user-1", false, ts, ts))

		repo := NewEventRepository(db)
		got, err := repo.Update(ctx, "ev-1", domain.EventPatch{})
		require.NoError(t, err)
		require.Equal(t, "Meetup", got.Title)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE events SET`).
			WillReturnError(sql.ErrNoRows)

		repo := NewEventRepository(db)
		got, err := repo.Update(ctx, "ev-missing", domain.EventPatch{Title: strPtr("x")})
		require.True(t, errors.Is(err, domain.ErrNotFound))
		require.Nil(t, got)
	})
}

func TestEventRepository_SetApproved(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE events SET is_approved = TRUE, updated_at = NOW\(\)\s+WHERE id = \$1`).
			WithArgs("ev-1").
			WillReturnRows(sqlmock.NewRows(eventCols).
				AddRow("ev-1", "Meetup", "desc", ts, "Berlin", "user-1", true, ts, ts.Add(time.Hour)))

		repo := NewEventRepository(db)
		got, err := repo.SetApproved(ctx, "ev-1")
		require.NoError(t, err)
		require.True(t, got.IsApproved)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE events SET is_approved = TRUE`).
			WithArgs("ev-missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewEventRepository(db)
		got, err := repo.SetApproved(ctx, "ev-missing")
		require.True(t, errors.Is(err, domain.ErrNotFound))
		require.Nil(t, got)
	})
}

func TestEventRepository_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		mock       func(mock sqlmock.Sqlmock)
		wantErr    bool
		isNotFound bool
	}{
		{
			name: "success",
			id:   "ev-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
					WithArgs("ev-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found",
			id:   "ev-missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
					WithArgs("ev-missing").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr:    true,
			isNotFound: true,
		},
		{
			name: "db error",
			id:   "ev-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
					WithArgs("ev-1").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			err = repo.Delete(ctx, tt.id)
			if tt.wantErr {
				require.Error(t, err)
				if tt.isNotFound {
					require.True(t, errors.Is(err, domain.ErrNotFound))
				}
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
