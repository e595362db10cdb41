package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/diagnosis/parkingpro/internal/domain"
	"github.com/diagnosis/parkingpro/internal/repo"
)

type bookingDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	User       string             `bson:"user"`
	Slot       string             `bson:"slot"`
	StartTime  time.Time          `bson:"startTime"`
	ExpiryTime time.Time          `bson:"expiryTime"`
	Status     string             `bson:"status"`
}

func (d *bookingDoc) toDomain() domain.Booking {
	return domain.Booking{
		ID:         d.ID.Hex(),
		User:       d.User,
		Slot:       d.Slot,
		StartTime:  d.StartTime,
		ExpiryTime: d.ExpiryTime,
		Status:     domain.BookingStatus(d.Status),
	}
}

type BookingRepoImpl struct{ coll *mongo.Collection }

func NewBookingRepo(db *mongo.Database) *BookingRepoImpl {
	return &BookingRepoImpl{coll: db.Collection(bookingsCollection)}
}

// activeFilter matches bookings that still hold their slot: an expiryTime
// equal to now has already lapsed.
func activeFilter(now time.Time) bson.M {
	return bson.M{
		"status":     string(domain.BookingActive),
		"expiryTime": bson.M{"$gt": now},
	}
}

func cancelFilter(user, slot string, now time.Time) bson.M {
	filter := activeFilter(now)
	filter["user"] = user
	filter["slot"] = slot
	return filter
}

// historySort is newest start first; _id breaks ties by insertion order.
var historySort = bson.D{{Key: "startTime", Value: -1}, {Key: "_id", Value: -1}}

func (r *BookingRepoImpl) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	status := b.Status
	if status == "" {
		status = domain.BookingActive
	}
	doc := bookingDoc{
		ID:         primitive.NewObjectID(),
		User:       b.User,
		Slot:       b.Slot,
		StartTime:  b.StartTime,
		ExpiryTime: b.ExpiryTime,
		Status:     string(status),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *BookingRepoImpl) ListActiveSlots(ctx context.Context, now time.Time) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetProjection(bson.M{"slot": 1})
	cur, err := r.coll.Find(ctx, activeFilter(now), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	slots := make([]string, 0)
	for cur.Next(ctx) {
		var doc struct {
			Slot string `bson:"slot"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		slots = append(slots, doc.Slot)
	}
	return slots, cur.Err()
}

func (r *BookingRepoImpl) CancelActive(ctx context.Context, user, slot string, now time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, cancelFilter(user, slot, now), bson.M{
		"$set": bson.M{"status": string(domain.BookingCancelled)},
	})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *BookingRepoImpl) ListByUser(ctx context.Context, user string) ([]domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	opts := options.Find().SetSort(historySort)
	cur, err := r.coll.Find(ctx, bson.M{"user": user}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	bs := make([]domain.Booking, 0)
	for cur.Next(ctx) {
		var doc bookingDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		bs = append(bs, doc.toDomain())
	}
	return bs, cur.Err()
}

var _ repo.BookingRepository = (*BookingRepoImpl)(nil)
