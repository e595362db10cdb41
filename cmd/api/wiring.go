package main

import (
	"context"
	"fmt"

	"github.com/diagnosis/parkingpro/internal/domain"
	"github.com/diagnosis/parkingpro/internal/otp"
	"github.com/diagnosis/parkingpro/internal/platform/mailer"
	"github.com/diagnosis/parkingpro/internal/repo"
	"github.com/diagnosis/parkingpro/internal/repo/memory"
	mongorepo "github.com/diagnosis/parkingpro/internal/repo/mongo"
	"github.com/diagnosis/parkingpro/internal/repo/postgres"
	"github.com/diagnosis/parkingpro/pkg/config"
	"github.com/diagnosis/parkingpro/pkg/database"
	"github.com/diagnosis/parkingpro/pkg/events"
	"github.com/diagnosis/parkingpro/pkg/logger"
)

// openStore builds the configured backend. An unreachable server is logged
// and the process keeps serving; requests fail with a server error until the
// store comes up. Only configuration errors are returned.
func openStore(ctx context.Context, cfg *config.Config) (*repo.Store, error) {
	switch cfg.Store.Driver {
	case "mongo":
		client, db, err := database.ConnectMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		store := mongorepo.NewStore(client, db)
		if err := store.Ping(ctx); err != nil {
			logger.Error("MongoDB connection error", "error", err)
			return store, nil
		}
		logger.Info("Connected to MongoDB", "database", cfg.Mongo.Database)
		if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
			logger.Error("Failed to create MongoDB indexes", "error", err)
		}
		return store, nil

	case "postgres":
		pool, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		store := postgres.NewStore(pool)
		if err := store.Ping(ctx); err != nil {
			logger.Error("Postgres connection error", "error", err)
			return store, nil
		}
		logger.Info("Connected to Postgres")
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			logger.Error("Failed to create Postgres schema", "error", err)
		}
		return store, nil

	case "memory":
		logger.Warn("Using in-memory store; data is lost on restart")
		return memory.NewStore(), nil

	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
}

func openOTPStore(cfg *config.Config) (otp.Store, func(), error) {
	switch cfg.OTP.Store {
	case "memory":
		return otp.NewMemoryStore(), func() {}, nil
	case "redis":
		client, err := otp.NewRedisClient(cfg.Redis.URL)
		if err != nil {
			return nil, nil, err
		}
		return otp.NewRedisStore(client, domain.SystemClock), func() { _ = client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown OTP_STORE %q", cfg.OTP.Store)
	}
}

func newMailer(cfg config.EmailConfig) (mailer.Service, error) {
	switch cfg.Driver {
	case "dev":
		logger.Info("Using development mailer")
		return mailer.NewDevMailer(), nil
	case "smtp":
		logger.Info("Using SMTP mailer", "host", cfg.SMTPHost, "port", cfg.SMTPPort)
		return mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPUseTLS), nil
	case "mailersend":
		m := mailer.NewMailerSend(cfg.MailerSendKey, cfg.FromName, cfg.SMTPFrom)
		if !m.Enabled {
			logger.Warn("MailerSend is not configured; OTP mail will fail")
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown MAIL_DRIVER %q", cfg.Driver)
	}
}

// openEventBus never fails: without a reachable broker events are dropped.
func openEventBus(cfg config.EventsConfig) events.Publisher {
	switch cfg.Driver {
	case "nats":
		bus, err := events.NewNATSEventBus(cfg.NATSURL)
		if err != nil {
			logger.Warn("NATS unavailable, events disabled", "error", err)
			return events.Noop{}
		}
		logger.Info("Publishing events to NATS", "url", cfg.NATSURL)
		return bus
	case "kafka":
		logger.Info("Publishing events to Kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
		return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	case "", "none":
		return events.Noop{}
	default:
		logger.Warn("Unknown EVENTS_DRIVER, events disabled", "driver", cfg.Driver)
		return events.Noop{}
	}
}
