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

type GroupRepository interface {
	Create(ctx context.Context, g *models.Group) (*models.Group, error)
	GetByID(ctx context.Context, id string) (*models.Group, error)
	ListForUser(ctx context.Context, userID string) ([]models.Group, error)
	AddMember(ctx context.Context, groupID string, m models.GroupMember) error
	RemoveMember(ctx context.Context, groupID, userID string) error
}

type groupMongoRepo struct {
	col *mongo.Collection
}

func NewGroupRepository(db *mongo.Database) GroupRepository {
	return &groupMongoRepo{col: db.Collection("groups")}
}

func (r *groupMongoRepo) Create(ctx context.Context, g *models.Group) (*models.Group, error) {
	g.ID = primitive.NewObjectID().Hex()
	g.CreatedAt = time.Now().UTC()
	g.UpdatedAt = g.CreatedAt
	if _, err := r.col.InsertOne(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (r *groupMongoRepo) GetByID(ctx context.Context, id string) (*models.Group, error) {
	var g models.Group
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&g)
	if err == mongo.ErrNoDocuments {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *groupMongoRepo) ListForUser(ctx context.Context, userID string) ([]models.Group, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"members.user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Group{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *groupMongoRepo) AddMember(ctx context.Context, groupID string, m models.GroupMember) error {
	// guard against duplicate membership in the filter itself
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": groupID, "members.user_id": bson.M{"$ne": m.UserID}},
		bson.M{
			"$push": bson.M{"members": m},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// either the group is missing or the user is already a member;
		// distinguish for the caller
		if _, gerr := r.GetByID(ctx, groupID); gerr != nil {
			return gerr
		}
	}
	return nil
}

func (r *groupMongoRepo) RemoveMember(ctx context.Context, groupID, userID string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": groupID},
		bson.M{
			"$pull": bson.M{"members": bson.M{"user_id": userID}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrGroupNotFound
	}
	return nil
}
