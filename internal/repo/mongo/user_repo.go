package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/diagnosis/parkingpro/internal/domain"
	"github.com/diagnosis/parkingpro/internal/repo"
)

type userDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Fullname string             `bson:"fullname"`
	Username string             `bson:"username"`
	Email    string             `bson:"email"`
	Password string             `bson:"password"`
}

func (d *userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID.Hex(),
		Fullname:     d.Fullname,
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.Password,
	}
}

type UserRepoImpl struct{ coll *mongo.Collection }

func NewUserRepo(db *mongo.Database) *UserRepoImpl {
	return &UserRepoImpl{coll: db.Collection(usersCollection)}
}

func (r *UserRepoImpl) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	doc := userDoc{
		ID:       primitive.NewObjectID(),
		Fullname: u.Fullname,
		Username: u.Username,
		Email:    u.Email,
		Password: u.PasswordHash,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, mapDuplicateKey(err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepoImpl) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepoImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepoImpl) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var doc userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

var _ repo.UserRepository = (*UserRepoImpl)(nil)
