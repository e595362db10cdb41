package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diagnosis/parkingpro/internal/domain"
	"github.com/diagnosis/parkingpro/internal/repo/memory"
	"github.com/diagnosis/parkingpro/pkg/auth"
	"github.com/diagnosis/parkingpro/pkg/config"
	"github.com/diagnosis/parkingpro/pkg/events"
)

var testAuthConfig = config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTL: time.Hour}

func registerReq(username, email string) *domain.RegisterRequest {
	return &domain.RegisterRequest{
		Fullname:        "Alice Example",
		Username:        username,
		Email:           email,
		Password:        "s3cret!",
		ConfirmPassword: "s3cret!",
	}
}

func TestRegisterRejectsDuplicateUsernameAndEmail(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	svc := NewAuthService(memory.NewUsers(), pub, testAuthConfig)

	u, err := svc.Register(ctx, registerReq("alice", "alice@example.com"))
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "s3cret!", u.PasswordHash)
	assert.Equal(t, []string{events.UserRegistered}, pub.subjects)

	_, err = svc.Register(ctx, registerReq("alice", "other@example.com"))
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	_, err = svc.Register(ctx, registerReq("alice2", " ALICE@example.com "))
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(memory.NewUsers(), events.Noop{}, testAuthConfig)

	req := registerReq("bob", "")
	_, err := svc.Register(context.Background(), req)
	assert.EqualError(t, err, domain.MsgFieldsRequired)

	req = registerReq("bob", "bob@example.com")
	req.ConfirmPassword = "different"
	_, err = svc.Register(context.Background(), req)
	assert.EqualError(t, err, domain.MsgPasswordMismatch)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestRegisterStoreFailureIsServerError(t *testing.T) {
	svc := NewAuthService(brokenUsers{}, events.Noop{}, testAuthConfig)

	_, err := svc.Register(context.Background(), registerReq("carol", "carol@example.com"))
	require.Error(t, err)
	assert.Equal(t, domain.KindServer, domain.KindOf(err))
	assert.True(t, errors.Is(err, errStoreDown))
}

func TestLoginIssuesToken(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(memory.NewUsers(), events.Noop{}, testAuthConfig)
	u, err := svc.Register(ctx, registerReq("alice", "alice@example.com"))
	require.NoError(t, err)

	res, err := svc.Login(ctx, &domain.LoginRequest{Username: "alice", Password: "s3cret!"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Login successful!", res.Message)
	assert.Equal(t, "alice", res.Username)

	claims, err := auth.Parse(res.Token, testAuthConfig.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestLoginFailuresShareOneMessage(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(memory.NewUsers(), events.Noop{}, testAuthConfig)
	_, err := svc.Register(ctx, registerReq("alice", "alice@example.com"))
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, &domain.LoginRequest{Username: "alice", Password: "nope"})
	_, unknownUser := svc.Login(ctx, &domain.LoginRequest{Username: "mallory", Password: "s3cret!"})

	require.Error(t, wrongPassword)
	require.Error(t, unknownUser)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
	assert.EqualError(t, wrongPassword, domain.MsgInvalidCredentials)
	assert.Equal(t, domain.KindAuth, domain.KindOf(unknownUser))
}

func TestLoginRequiresFields(t *testing.T) {
	svc := NewAuthService(memory.NewUsers(), events.Noop{}, testAuthConfig)
	_, err := svc.Login(context.Background(), &domain.LoginRequest{Username: "alice"})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}
