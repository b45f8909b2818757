package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fathima-sithara/socialnet/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateFields(ctx context.Context, id string, fields bson.M) (*models.User, error)
	List(ctx context.Context, excludeID string) ([]models.UserSummary, error)
	SearchByName(ctx context.Context, excludeID, query string) ([]models.UserSummary, error)
	Suggested(ctx context.Context, excludeID string) ([]models.UserSummary, error)
	Follow(ctx context.Context, userID, targetID string) error
	Unfollow(ctx context.Context, userID, targetID string) error
	SetRecentChats(ctx context.Context, id string, chats []string) error
}

type userMongoRepo struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &userMongoRepo{col: db.Collection("users")}
}

func (r *userMongoRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	u.ID = primitive.NewObjectID().Hex()
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	if u.Followers == nil {
		u.Followers = []string{}
	}
	if u.Following == nil {
		u.Following = []string{}
	}
	if _, err := r.col.InsertOne(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userMongoRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userMongoRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userMongoRepo) UpdateFields(ctx context.Context, id string, fields bson.M) (*models.User, error) {
	fields["updated_at"] = time.Now().UTC()
	after := options.After
	var u models.User
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userMongoRepo) List(ctx context.Context, excludeID string) ([]models.UserSummary, error) {
	return r.summaries(ctx, bson.M{"_id": bson.M{"$ne": excludeID}}, nil)
}

func (r *userMongoRepo) SearchByName(ctx context.Context, excludeID, query string) ([]models.UserSummary, error) {
	filter := bson.M{
		"_id":  bson.M{"$ne": excludeID},
		"name": bson.M{"$regex": query, "$options": "i"},
	}
	return r.summaries(ctx, filter, nil)
}

func (r *userMongoRepo) Suggested(ctx context.Context, excludeID string) ([]models.UserSummary, error) {
	sort := bson.D{{Key: "created_at", Value: -1}}
	return r.summaries(ctx, bson.M{"_id": bson.M{"$ne": excludeID}}, sort)
}

func (r *userMongoRepo) summaries(ctx context.Context, filter bson.M, sort bson.D) ([]models.UserSummary, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1, "name": 1, "avatar": 1})
	if sort != nil {
		opts.SetSort(sort)
	}
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.UserSummary{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *userMongoRepo) Follow(ctx context.Context, userID, targetID string) error {
	if _, err := r.col.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"following": targetID}},
	); err != nil {
		return err
	}
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": targetID},
		bson.M{"$addToSet": bson.M{"followers": userID}},
	)
	return err
}

func (r *userMongoRepo) Unfollow(ctx context.Context, userID, targetID string) error {
	if _, err := r.col.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"following": targetID}},
	); err != nil {
		return err
	}
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": targetID},
		bson.M{"$pull": bson.M{"followers": userID}},
	)
	return err
}

func (r *userMongoRepo) SetRecentChats(ctx context.Context, id string, chats []string) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"recent_chats": chats, "updated_at": time.Now().UTC()}},
	)
	return err
}
