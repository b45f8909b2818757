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

type NotificationRepository interface {
	Insert(ctx context.Context, n *models.Notification) (*models.Notification, error)
	ListForUser(ctx context.Context, userID string, limit int64) ([]models.Notification, error)
	UnseenCount(ctx context.Context, userID string) (int64, error)
	MarkSeen(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
	DeleteSeenFor(ctx context.Context, userID string) error
}

type notificationMongoRepo struct {
	col *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) NotificationRepository {
	return &notificationMongoRepo{col: db.Collection("notifications")}
}

func (r *notificationMongoRepo) Insert(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	n.ID = primitive.NewObjectID().Hex()
	n.CreatedAt = time.Now().UTC()
	if _, err := r.col.InsertOne(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (r *notificationMongoRepo) ListForUser(ctx context.Context, userID string, limit int64) ([]models.Notification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cur, err := r.col.Find(ctx, bson.M{"to": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Notification{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *notificationMongoRepo) UnseenCount(ctx context.Context, userID string) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"to": userID, "seen": false})
}

func (r *notificationMongoRepo) MarkSeen(ctx context.Context, id string) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"seen": true}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *notificationMongoRepo) Delete(ctx context.Context, id string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *notificationMongoRepo) DeleteSeenFor(ctx context.Context, userID string) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"to": userID, "seen": true})
	return err
}
