package service

import (
	"context"

	"github.com/diagnosis/parkingpro/internal/domain"
	"github.com/diagnosis/parkingpro/internal/repo"
	"github.com/diagnosis/parkingpro/pkg/events"
	"github.com/diagnosis/parkingpro/pkg/logger"
)

type BookingService interface {
	Book(ctx context.Context, req *domain.BookSlotRequest) (*domain.Booking, error)
	// ListActive returns the slots held by active, unexpired bookings.
	ListActive(ctx context.Context) ([]string, error)
	// Cancel reports false, with no error, when nothing active matched.
	Cancel(ctx context.Context, req *domain.CancelBookingRequest) (bool, error)
	History(ctx context.Context, req *domain.BookingHistoryRequest) ([]domain.Booking, error)
}

type bookingService struct {
	bookingRepo repo.BookingRepository
	eventBus    events.Publisher
	now         domain.Clock
}

func NewBookingService(bookingRepo repo.BookingRepository, eventBus events.Publisher, now domain.Clock) BookingService {
	if now == nil {
		now = domain.SystemClock
	}
	return &bookingService{
		bookingRepo: bookingRepo,
		eventBus:    eventBus,
		now:         now,
	}
}

// Book records the booking as given. Overlap with other bookings of the same
// slot is not checked, so a slot can be double booked.
func (s *bookingService) Book(ctx context.Context, req *domain.BookSlotRequest) (*domain.Booking, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.Create(ctx, &domain.Booking{
		User:       req.User,
		Slot:       req.Slot,
		StartTime:  req.StartTime.UTC(),
		ExpiryTime: req.ExpiryTime.UTC(),
		Status:     domain.BookingActive,
	})
	if err != nil {
		return nil, domain.NewServerError(domain.MsgServerError, err)
	}

	logger.InfoContext(ctx, "Slot booked", "booking_id", booking.ID, "user", booking.User, "slot", booking.Slot)

	if err := s.eventBus.Publish(ctx, events.BookingCreated, events.BookingCreatedEvent{
		BookingID:  booking.ID,
		User:       booking.User,
		Slot:       booking.Slot,
		StartTime:  booking.StartTime,
		ExpiryTime: booking.ExpiryTime,
	}); err != nil {
		logger.ErrorContext(ctx, "Failed to publish booking created event", "error", err, "booking_id", booking.ID)
	}
	return booking, nil
}

func (s *bookingService) ListActive(ctx context.Context) ([]string, error) {
	slots, err := s.bookingRepo.ListActiveSlots(ctx, s.now())
	if err != nil {
		return nil, domain.NewServerError(domain.MsgServerError, err)
	}
	return slots, nil
}

func (s *bookingService) Cancel(ctx context.Context, req *domain.CancelBookingRequest) (bool, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return false, err
	}
	user, slot := req.User, req.Slot

	now := s.now()
	cancelled, err := s.bookingRepo.CancelActive(ctx, user, slot, now)
	if err != nil {
		return false, domain.NewServerError(domain.MsgServerError, err)
	}
	if !cancelled {
		logger.InfoContext(ctx, "No active booking to cancel", "user", user, "slot", slot)
		return false, nil
	}

	logger.InfoContext(ctx, "Booking cancelled", "user", user, "slot", slot)

	if err := s.eventBus.Publish(ctx, events.BookingCanceled, events.BookingCanceledEvent{
		User:       user,
		Slot:       slot,
		CanceledAt: now,
	}); err != nil {
		logger.ErrorContext(ctx, "Failed to publish booking canceled event", "error", err)
	}
	return true, nil
}

func (s *bookingService) History(ctx context.Context, req *domain.BookingHistoryRequest) ([]domain.Booking, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	history, err := s.bookingRepo.ListByUser(ctx, req.User)
	if err != nil {
		return nil, domain.NewServerError(domain.MsgServerError, err)
	}
	return history, nil
}
