package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/diagnosis/parkingpro/internal/domain"
	"github.com/diagnosis/parkingpro/internal/repo"
)

type messageDoc struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Name    string             `bson:"name"`
	Email   string             `bson:"email"`
	Message string             `bson:"message"`
	Date    time.Time          `bson:"date"`
}

type ContactRepoImpl struct{ coll *mongo.Collection }

func NewContactRepo(db *mongo.Database) *ContactRepoImpl {
	return &ContactRepoImpl{coll: db.Collection(messagesCollection)}
}

func (r *ContactRepoImpl) Create(ctx context.Context, m *domain.ContactMessage) (*domain.ContactMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	doc := messageDoc{
		ID:      primitive.NewObjectID(),
		Name:    m.Name,
		Email:   m.Email,
		Message: m.Message,
		Date:    m.SubmittedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	out := *m
	out.ID = doc.ID.Hex()
	return &out, nil
}

var _ repo.ContactRepository = (*ContactRepoImpl)(nil)
