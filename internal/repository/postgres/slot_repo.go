package postgres

import (
	"context"
	"database/sql"
	"errors"

	"neargo/internal/domain"
)

type slotRepository struct {
	DB *sql.DB
}

func NewSlotRepository(db *sql.DB) domain.SlotRepository {
	return &slotRepository{
		DB: db,
	}
}

func (r *slotRepository) GetByID(ctx context.Context, id string) (*domain.Slot, error) {
	query := `
		SELECT id, event_id, name, capacity, reserved
		FROM slots
		WHERE id = $1
	`
	s := &domain.Slot{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.EventID, &s.Name, &s.Capacity, &s.Reserved,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}
