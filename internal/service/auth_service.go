package service

import (
	"context"
	"errors"

	"github.com/diagnosis/parkingpro/internal/domain"
	"github.com/diagnosis/parkingpro/internal/platform/password"
	"github.com/diagnosis/parkingpro/internal/repo"
	"github.com/diagnosis/parkingpro/pkg/auth"
	"github.com/diagnosis/parkingpro/pkg/config"
	"github.com/diagnosis/parkingpro/pkg/events"
	"github.com/diagnosis/parkingpro/pkg/logger"
)

type AuthService interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error)
}

type authService struct {
	userRepo repo.UserRepository
	eventBus events.Publisher
	config   config.AuthConfig
}

func NewAuthService(userRepo repo.UserRepository, eventBus events.Publisher, cfg config.AuthConfig) AuthService {
	return &authService{
		userRepo: userRepo,
		eventBus: eventBus,
		config:   cfg,
	}
}

func (s *authService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, domain.NewServerError(domain.MsgServerError, err)
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}

	existing, err = s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.NewServerError(domain.MsgServerError, err)
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, domain.NewServerError(domain.MsgServerError, err)
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Fullname:     req.Fullname,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		// lost a race with a concurrent registration
		var dk *domain.DuplicateKeyError
		if errors.As(err, &dk) {
			switch dk.Field {
			case "username":
				return nil, domain.ErrUsernameTaken
			case "email":
				return nil, domain.ErrEmailTaken
			default:
				return nil, domain.NewConflictError(domain.MsgAccountExists)
			}
		}
		return nil, domain.NewServerError(domain.MsgServerError, err)
	}

	logger.InfoContext(ctx, "User registered", "user_id", user.ID, "username", user.Username)

	if err := s.eventBus.Publish(ctx, events.UserRegistered, events.UserRegisteredEvent{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}); err != nil {
		logger.ErrorContext(ctx, "Failed to publish user registered event", "error", err, "user_id", user.ID)
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, domain.NewServerError(domain.MsgServerError, err)
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	ok, err := password.Verify(req.Password, user.PasswordHash)
	if err != nil {
		return nil, domain.NewServerError(domain.MsgServerError, err)
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := auth.NewAccessToken(user.ID, user.Username, s.config.JWTSecret, s.config.AccessTokenTTL)
	if err != nil {
		return nil, domain.NewServerError(domain.MsgServerError, err)
	}

	return &domain.LoginResponse{
		Success:  true,
		Message:  "Login successful!",
		Token:    token,
		Username: user.Username,
	}, nil
}
