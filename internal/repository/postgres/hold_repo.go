package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"neargo/internal/domain"
)

type holdRepository struct {
	DB *sql.DB
}

func NewHoldRepository(db *sql.DB) domain.HoldRepository {
	return &holdRepository{
		DB: db,
	}
}

// CreateIfCapacity locks the slot row for the duration of the capacity check
// and insert. Concurrent reservations for the same slot serialize on the row
// lock, and the held-quantity sum runs after the lock is granted, so it sees
// every competing hold that committed first and the slot cannot be oversold.
func (r *holdRepository) CreateIfCapacity(ctx context.Context, h *domain.Hold, now time.Time) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var capacity, reserved int
	err = tx.QueryRowContext(ctx, `
		SELECT capacity, reserved
		FROM slots
		WHERE id = $1
		FOR UPDATE
	`, h.SlotID).Scan(&capacity, &reserved)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	var held int
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(qty), 0)
		FROM holds
		WHERE slot_id = $1 AND status = 'held' AND expires_at >= $2
	`, h.SlotID, now).Scan(&held)
	if err != nil {
		return false, err
	}

	if h.Qty > capacity-reserved-held {
		return false, nil
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO holds (id, event_id, slot_id, qty, email, status, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, 'held', $6, $7)
	`, h.ID, h.EventID, h.SlotID, h.Qty, h.Email, h.ExpiresAt, now)
	if err != nil {
		return false, err
	}
	return true, tx.Commit()
}

func (r *holdRepository) FreeCapacity(ctx context.Context, slotID string, now time.Time) (int, error) {
	query := `
		SELECT s.capacity, s.reserved, COALESCE((
			SELECT SUM(h.qty) FROM holds h
			WHERE h.slot_id = s.id AND h.status = 'held' AND h.expires_at >= $2
		), 0)
		FROM slots s
		WHERE s.id = $1
	`
	var capacity, reserved, held int
	err := r.DB.QueryRowContext(ctx, query, slotID, now).Scan(&capacity, &reserved, &held)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}
	free := capacity - reserved - held
	if free < 0 {
		free = 0
	}
	return free, nil
}

func (r *holdRepository) GetByID(ctx context.Context, id string) (*domain.Hold, error) {
	query := `
		SELECT id, event_id, slot_id, qty, email, status, expires_at, created_at
		FROM holds
		WHERE id = $1
	`
	h := &domain.Hold{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&h.ID, &h.EventID, &h.SlotID, &h.Qty, &h.Email, &h.Status, &h.ExpiresAt, &h.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return h, nil
}

func (r *holdRepository) Release(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE holds
		SET status = 'released'
		WHERE id = $1 AND status = 'held'
	`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
