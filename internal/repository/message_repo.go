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

type MessageRepository interface {
	Insert(ctx context.Context, m *models.Message) (*models.Message, error)
	GetByID(ctx context.Context, id string) (*models.Message, error)
	HistoryBetween(ctx context.Context, userA, userB string) ([]models.Message, error)
	HistoryForGroup(ctx context.Context, groupID string) ([]models.Message, error)
	MarkDelivered(ctx context.Context, id string) (bool, error)
	MarkSeen(ctx context.Context, id string) (bool, error)
}

type messageMongoRepo struct {
	col *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) MessageRepository {
	return &messageMongoRepo{col: db.Collection("messages")}
}

func (r *messageMongoRepo) Insert(ctx context.Context, m *models.Message) (*models.Message, error) {
	m.ID = primitive.NewObjectID().Hex()
	m.Status = models.StatusSent
	m.CreatedAt = time.Now().UTC()
	if _, err := r.col.InsertOne(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *messageMongoRepo) GetByID(ctx context.Context, id string) (*models.Message, error) {
	var m models.Message
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *messageMongoRepo) HistoryBetween(ctx context.Context, userA, userB string) ([]models.Message, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"sender_id": userA, "receiver_id": userB},
		bson.M{"sender_id": userB, "receiver_id": userA},
	}}
	return r.find(ctx, filter)
}

func (r *messageMongoRepo) HistoryForGroup(ctx context.Context, groupID string) ([]models.Message, error) {
	return r.find(ctx, bson.M{"group_id": groupID})
}

func (r *messageMongoRepo) find(ctx context.Context, filter bson.M) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Message{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkDelivered advances sent -> delivered. Returns false without error
// when the message is missing or already past "sent"; stale and
// duplicate acks are expected.
func (r *messageMongoRepo) MarkDelivered(ctx context.Context, id string) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.StatusSent},
		bson.M{"$set": bson.M{"status": models.StatusDelivered}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// MarkSeen advances any prior status to seen. Same no-op semantics as
// MarkDelivered for missing or already-seen messages.
func (r *messageMongoRepo) MarkSeen(ctx context.Context, id string) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": bson.M{"$ne": models.StatusSeen}},
		bson.M{"$set": bson.M{"status": models.StatusSeen}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}
