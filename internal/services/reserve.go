package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"neargo/internal/domain"
	"neargo/internal/idgen"
)

type reservationService struct {
	slotRepo domain.SlotRepository
	holdRepo domain.HoldRepository
	email    domain.EmailService
	sms      domain.SMSSender
	alertTo  string
	logger   *slog.Logger
	now      func() time.Time
	newID    func() (string, error)
}

// NewReservationService creates a ReservationService. alertTo, when
// non-empty, receives an SMS on every new hold (organizer alert).
func NewReservationService(
	slotRepo domain.SlotRepository,
	holdRepo domain.HoldRepository,
	email domain.EmailService,
	sms domain.SMSSender,
	alertTo string,
	logger *slog.Logger,
) domain.ReservationService {
	return &reservationService{
		slotRepo: slotRepo,
		holdRepo: holdRepo,
		email:    email,
		sms:      sms,
		alertTo:  alertTo,
		logger:   logger,
		now:      time.Now,
		newID:    idgen.NewHoldID,
	}
}

func (s *reservationService) Reserve(ctx context.Context, eventID, slotID string, qty int, email string) (*domain.Hold, error) {
	if qty < 1 {
		return nil, fmt.Errorf("%w: qty must be at least 1", domain.ErrInvalidInput)
	}
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", domain.ErrInvalidInput)
	}

	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get slot: %w", err)
	}
	if eventID != "" && slot.EventID != eventID {
		return nil, domain.ErrNotFound
	}

	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("generate hold id: %w", err)
	}

	now := s.now()
	hold := &domain.Hold{
		ID:        id,
		EventID:   slot.EventID,
		SlotID:    slot.ID,
		Qty:       qty,
		Email:     email,
		Status:    domain.HoldStatusHeld,
		ExpiresAt: now.Add(domain.HoldTTL),
		CreatedAt: now,
	}

	inserted, err := s.holdRepo.CreateIfCapacity(ctx, hold, now)
	if err != nil {
		return nil, fmt.Errorf("create hold: %w", err)
	}
	if !inserted {
		free, err := s.holdRepo.FreeCapacity(ctx, slot.ID, now)
		if err != nil {
			return nil, fmt.Errorf("read free capacity: %w", err)
		}
		return nil, &domain.NoCapacityError{Free: free}
	}

	s.notify(ctx, slot, hold)
	return hold, nil
}

// notify sends the confirmation email and the organizer SMS. Notification
// failures never fail the reservation.
func (s *reservationService) notify(ctx context.Context, slot *domain.Slot, hold *domain.Hold) {
	if s.email != nil {
		err := s.email.SendHoldConfirmation(ctx, &domain.HoldConfirmationEmailData{
			Email:     hold.Email,
			EventID:   slot.EventID,
			SlotName:  slot.Name,
			Qty:       hold.Qty,
			HoldID:    hold.ID,
			ExpiresAt: hold.ExpiresAt,
		})
		if err != nil {
			s.logger.Warn("hold confirmation email failed", "hold_id", hold.ID, "err", err)
		}
	}
	if s.sms != nil && s.alertTo != "" {
		body := fmt.Sprintf("New hold %s: %d spot(s) in slot %s", hold.ID, hold.Qty, slot.Name)
		if err := s.sms.Send(ctx, s.alertTo, body); err != nil {
			s.logger.Warn("hold alert sms failed", "hold_id", hold.ID, "err", err)
		}
	}
}

func (s *reservationService) Release(ctx context.Context, holdID string) error {
	released, err := s.holdRepo.Release(ctx, holdID)
	if err != nil {
		return fmt.Errorf("release hold: %w", err)
	}
	if released {
		return nil
	}
	// Nothing changed: either the hold does not exist, or it was already
	// released/consumed. The latter is an idempotent success.
	if _, err := s.holdRepo.GetByID(ctx, holdID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get hold: %w", err)
	}
	return nil
}
