package postgres

import (
	"context"
	"database/sql"
	"testing"

	"neargo/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestSlotRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		id      string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Slot
		wantErr error
	}{
		{
			name: "success",
			id:   "slot-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, event_id, name, capacity, reserved`).
					WithArgs("slot-1").
					WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "name", "capacity", "reserved"}).
						AddRow("slot-1", "ev-1", "Evening show", 10, 2))
			},
			want: &domain.Slot{ID: "slot-1", EventID: "ev-1", Name: "Evening show", Capacity: 10, Reserved: 2},
		},
		{
			name: "not found",
			id:   "slot-missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, event_id, name, capacity, reserved`).
					WithArgs("slot-missing").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "db error",
			id:   "slot-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, event_id, name, capacity, reserved`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewSlotRepository(db)
			got, err := repo.GetByID(ctx, tt.id)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
