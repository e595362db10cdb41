// Package mongo keeps users, messages and bookings in MongoDB using the same
// collection and field names as the existing Parkingpro database.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/diagnosis/parkingpro/internal/domain"
	"github.com/diagnosis/parkingpro/internal/repo"
	"github.com/diagnosis/parkingpro/pkg/database"
)

const (
	usersCollection    = "users"
	messagesCollection = "messages"
	bookingsCollection = "bookings"
)

// EnsureIndexes creates the unique user indexes and the booking query indexes.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := db.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	_, err = db.Collection(bookingsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "expiryTime", Value: 1}}},
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "startTime", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("bookings indexes: %w", err)
	}
	return nil
}

// NewStore wires all repositories onto one database handle.
func NewStore(client *mongo.Client, db *mongo.Database) *repo.Store {
	return &repo.Store{
		Users:    NewUserRepo(db),
		Contacts: NewContactRepo(db),
		Bookings: NewBookingRepo(db),
		Ping: func(ctx context.Context) error {
			return database.PingMongo(ctx, client)
		},
		Close: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(ctx)
		},
	}
}

// mapDuplicateKey turns an E11000 write error into a DuplicateKeyError,
// reading the field name from the index named in the server message.
func mapDuplicateKey(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}
	msg := err.Error()
	for _, field := range []string{"username", "email"} {
		if strings.Contains(msg, "index: "+field+"_") || strings.Contains(msg, "{ "+field+":") {
			return &domain.DuplicateKeyError{Field: field}
		}
	}
	return &domain.DuplicateKeyError{}
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
