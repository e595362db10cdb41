package service

import (
	"context"
	"time"

	"github.com/diagnosis/parkingpro/internal/domain"
	"github.com/diagnosis/parkingpro/internal/otp"
	"github.com/diagnosis/parkingpro/internal/platform/mailer"
	"github.com/diagnosis/parkingpro/pkg/events"
	"github.com/diagnosis/parkingpro/pkg/logger"
)

const (
	MsgOTPSendFailed   = "Failed to send OTP"
	MsgOTPVerifyFailed = "OTP verification failed"
)

type OTPService interface {
	Issue(ctx context.Context, req *domain.OTPRequest) error
	Verify(ctx context.Context, req *domain.OTPVerifyRequest) error
}

type otpService struct {
	store    otp.Store
	mailer   mailer.Service
	eventBus events.Publisher
	ttl      time.Duration
	now      domain.Clock
	generate otp.Generator
}

// NewOTPService owns store for its lifetime. A nil clock means the system clock.
func NewOTPService(store otp.Store, m mailer.Service, eventBus events.Publisher, ttl time.Duration, now domain.Clock) OTPService {
	if now == nil {
		now = domain.SystemClock
	}
	return &otpService{
		store:    store,
		mailer:   m,
		eventBus: eventBus,
		ttl:      ttl,
		now:      now,
		generate: otp.GenerateCode,
	}
}

// Issue replaces any outstanding code for the email, then mails the new one.
// The code stays stored even when the mail cannot be sent.
func (s *otpService) Issue(ctx context.Context, req *domain.OTPRequest) error {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}

	code, err := s.generate()
	if err != nil {
		return domain.NewServerError(MsgOTPSendFailed, err)
	}

	expiresAt := s.now().Add(s.ttl)
	if err := s.store.Put(ctx, req.Email, otp.Entry{Code: code, ExpiresAt: expiresAt}); err != nil {
		return domain.NewServerError(MsgOTPSendFailed, err)
	}

	if err := s.mailer.SendOTP(ctx, req.Email, code); err != nil {
		logger.ErrorContext(ctx, "Email send error", "error", err, "email", req.Email)
		return domain.NewServerError(MsgOTPSendFailed, err)
	}

	logger.InfoContext(ctx, "OTP sent", "email", req.Email, "expires_at", expiresAt)

	if err := s.eventBus.Publish(ctx, events.OTPIssued, events.OTPIssuedEvent{
		Email:     req.Email,
		ExpiresAt: expiresAt,
	}); err != nil {
		logger.ErrorContext(ctx, "Failed to publish otp issued event", "error", err)
	}
	return nil
}

func (s *otpService) Verify(ctx context.Context, req *domain.OTPVerifyRequest) error {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}

	entry, ok, err := s.store.Get(ctx, req.Email)
	if err != nil {
		return domain.NewServerError(MsgOTPVerifyFailed, err)
	}
	if !ok {
		return domain.ErrOTPNotFound
	}

	if entry.Expired(s.now()) {
		if err := s.store.Delete(ctx, req.Email); err != nil {
			logger.WarnContext(ctx, "Failed to drop expired OTP", "error", err, "email", req.Email)
		}
		return domain.ErrOTPExpired
	}

	if int(req.OTP) != entry.Code {
		return domain.ErrOTPMismatch
	}

	if err := s.store.Delete(ctx, req.Email); err != nil {
		return domain.NewServerError(MsgOTPVerifyFailed, err)
	}
	logger.InfoContext(ctx, "OTP verified", "email", req.Email)
	return nil
}
