package service

import (
	"context"
	"strings"

	"github.com/diagnosis/parkingpro/internal/domain"
	"github.com/diagnosis/parkingpro/internal/repo"
	"github.com/diagnosis/parkingpro/internal/utils"
	"github.com/diagnosis/parkingpro/pkg/events"
	"github.com/diagnosis/parkingpro/pkg/logger"
)

type ContactService interface {
	Submit(ctx context.Context, req *domain.ContactRequest) (*domain.ContactMessage, error)
}

type contactService struct {
	contactRepo repo.ContactRepository
	eventBus    events.Publisher
	now         domain.Clock
}

func NewContactService(contactRepo repo.ContactRepository, eventBus events.Publisher, now domain.Clock) ContactService {
	if now == nil {
		now = domain.SystemClock
	}
	return &contactService{contactRepo: contactRepo, eventBus: eventBus, now: now}
}

func (s *contactService) Submit(ctx context.Context, req *domain.ContactRequest) (*domain.ContactMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	msg, err := s.contactRepo.Create(ctx, &domain.ContactMessage{
		Name:        strings.TrimSpace(req.Name),
		Email:       utils.NormalizeEmail(req.Email),
		Message:     req.Message,
		SubmittedAt: s.now(),
	})
	if err != nil {
		return nil, domain.NewServerError(domain.MsgServerError, err)
	}

	logger.InfoContext(ctx, "Contact message saved", "message_id", msg.ID, "email", msg.Email)

	if err := s.eventBus.Publish(ctx, events.ContactReceived, events.ContactReceivedEvent{
		MessageID:   msg.ID,
		Email:       msg.Email,
		SubmittedAt: msg.SubmittedAt,
	}); err != nil {
		logger.ErrorContext(ctx, "Failed to publish contact received event", "error", err, "message_id", msg.ID)
	}
	return msg, nil
}
