package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diagnosis/parkingpro/internal/otp"
	"github.com/diagnosis/parkingpro/internal/platform/mailer"
	"github.com/diagnosis/parkingpro/pkg/config"
	"github.com/diagnosis/parkingpro/pkg/events"
)

func TestOpenStoreMemoryAndUnknown(t *testing.T) {
	store, err := openStore(context.Background(), &config.Config{Store: config.StoreConfig{Driver: "memory"}})
	require.NoError(t, err)
	assert.NoError(t, store.Ping(context.Background()))

	_, err = openStore(context.Background(), &config.Config{Store: config.StoreConfig{Driver: "sqlite"}})
	assert.Error(t, err)
}

func TestOpenOTPStore(t *testing.T) {
	s, closeFn, err := openOTPStore(&config.Config{OTP: config.OTPConfig{Store: "memory"}})
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &otp.MemoryStore{}, s)

	s, closeFn, err = openOTPStore(&config.Config{
		OTP:   config.OTPConfig{Store: "redis"},
		Redis: config.RedisConfig{URL: "redis://localhost:6379/0"},
	})
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &otp.RedisStore{}, s)

	_, _, err = openOTPStore(&config.Config{
		OTP:   config.OTPConfig{Store: "redis"},
		Redis: config.RedisConfig{URL: "::not a url"},
	})
	assert.Error(t, err)
}

func TestNewMailer(t *testing.T) {
	m, err := newMailer(config.EmailConfig{Driver: "dev"})
	require.NoError(t, err)
	assert.IsType(t, &mailer.DevMailer{}, m)

	m, err = newMailer(config.EmailConfig{Driver: "smtp", SMTPHost: "smtp.gmail.com", SMTPPort: 587})
	require.NoError(t, err)
	assert.IsType(t, &mailer.SMTPMailer{}, m)

	m, err = newMailer(config.EmailConfig{Driver: "mailersend"})
	require.NoError(t, err)
	assert.IsType(t, &mailer.MailerSend{}, m)

	_, err = newMailer(config.EmailConfig{Driver: "pigeon"})
	assert.Error(t, err)
}

func TestOpenEventBusFallsBackToNoop(t *testing.T) {
	assert.IsType(t, events.Noop{}, openEventBus(config.EventsConfig{}))
	assert.IsType(t, events.Noop{}, openEventBus(config.EventsConfig{Driver: "carrier-pigeon"}))

	k := openEventBus(config.EventsConfig{Driver: "kafka", KafkaBrokers: []string{"localhost:9092"}, KafkaTopic: "t"})
	assert.IsType(t, &events.KafkaPublisher{}, k)
	assert.NoError(t, k.Close())
}
