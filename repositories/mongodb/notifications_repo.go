package mongodb

import (
	// Go Internal Packages
	"context"
	"fmt"
	"time"

	// Local Packages
	errors "pay-stream/errors"
	models "pay-stream/models"

	// External Packages
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoNotification struct {
	ID            string              `bson:"_id"`
	Type          string              `bson:"type"`
	UserID        int64               `bson:"user_id,omitempty"`
	TransactionID int64               `bson:"transaction_id,omitempty"`
	Recipient     string              `bson:"recipient,omitempty"`
	Subject       string              `bson:"subject,omitempty"`
	Title         string              `bson:"title,omitempty"`
	Message       string              `bson:"message"`
	Priority      string              `bson:"priority"`
	Channels      []string            `bson:"channels"`
	Details       *MongoNotifyDetails `bson:"details,omitempty"`
	Status        string              `bson:"status"`
	Timestamp     time.Time           `bson:"timestamp"`
}

// MongoNotifyDetails keeps the amount as its exact decimal text.
type MongoNotifyDetails struct {
	Amount        string     `bson:"amount"`
	PaymentMethod string     `bson:"payment_method"`
	Description   string     `bson:"description"`
	ConfirmedAt   *time.Time `bson:"confirmed_at,omitempty"`
	FailedAt      *time.Time `bson:"failed_at,omitempty"`
}

func Transform(n models.Notification) MongoNotification {
	doc := MongoNotification{
		ID:            n.ID,
		Type:          n.Type,
		UserID:        n.UserID,
		TransactionID: n.TransactionID,
		Recipient:     n.Recipient,
		Subject:       n.Subject,
		Title:         n.Title,
		Message:       n.Message,
		Priority:      n.Priority,
		Channels:      n.Channels,
		Status:        n.Status,
		Timestamp:     n.Timestamp.UTC(),
	}
	if d := n.Details; d != nil {
		doc.Details = &MongoNotifyDetails{
			Amount:        d.Amount.String(),
			PaymentMethod: d.PaymentMethod,
			Description:   d.Description,
			ConfirmedAt:   d.ConfirmedAt,
			FailedAt:      d.FailedAt,
		}
	}
	return doc
}

// Notification converts a stored document back to the domain type. A stored
// amount that does not parse is an error.
func (m MongoNotification) Notification() (models.Notification, error) {
	n := models.Notification{
		ID:            m.ID,
		Type:          m.Type,
		UserID:        m.UserID,
		TransactionID: m.TransactionID,
		Recipient:     m.Recipient,
		Subject:       m.Subject,
		Title:         m.Title,
		Message:       m.Message,
		Priority:      m.Priority,
		Channels:      m.Channels,
		Status:        m.Status,
		Timestamp:     m.Timestamp,
	}
	if d := m.Details; d != nil {
		amount, err := decimal.NewFromString(d.Amount)
		if err != nil {
			return models.Notification{}, fmt.Errorf("notification %s: invalid amount %q: %w", m.ID, d.Amount, err)
		}
		n.Details = &models.NotificationDetails{
			Amount:        amount,
			PaymentMethod: d.PaymentMethod,
			Description:   d.Description,
			ConfirmedAt:   d.ConfirmedAt,
			FailedAt:      d.FailedAt,
		}
	}
	return n, nil
}

type NotificationRepository struct {
	client     *mongo.Client
	database   string
	collection string
}

func NewNotificationRepository(client *mongo.Client, database, collection string) *NotificationRepository {
	return &NotificationRepository{client: client, database: database, collection: collection}
}

func (r *NotificationRepository) coll() *mongo.Collection {
	return r.client.Database(r.database).Collection(r.collection)
}

// EnsureIndexes creates the indexes backing the history queries.
func (r *NotificationRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "transaction_id", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
	})
	if err != nil {
		return errors.StoreErr("create notification indexes", err)
	}
	return nil
}

// Append inserts one notification. History is append-only.
func (r *NotificationRepository) Append(ctx context.Context, n models.Notification) error {
	if _, err := r.coll().InsertOne(ctx, Transform(n)); err != nil {
		return errors.StoreErr("insert notification", err)
	}
	return nil
}

// List returns the notifications matching filter, newest first.
func (r *NotificationRepository) List(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, error) {
	query := bson.M{}
	if filter.UserID > 0 {
		query["user_id"] = filter.UserID
	}
	if filter.TransactionID > 0 {
		query["transaction_id"] = filter.TransactionID
	}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.coll().Find(ctx, query, opts)
	if err != nil {
		return nil, errors.StoreErr("find notifications", err)
	}

	var docs []MongoNotification
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.StoreErr("decode notifications", err)
	}

	out := make([]models.Notification, len(docs))
	for i, doc := range docs {
		if out[i], err = doc.Notification(); err != nil {
			return nil, errors.StoreErr("decode notifications", err)
		}
	}
	return out, nil
}

// Stats counts notifications per type and those stored at or after since.
func (r *NotificationRepository) Stats(ctx context.Context, since time.Time) (models.NotificationStats, error) {
	stats := models.NotificationStats{ByType: map[string]int64{}}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$type"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := r.coll().Aggregate(ctx, pipeline)
	if err != nil {
		return stats, errors.StoreErr("aggregate notifications", err)
	}

	var groups []struct {
		Type  string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		return stats, errors.StoreErr("decode notification stats", err)
	}
	for _, g := range groups {
		stats.ByType[g.Type] = g.Count
		stats.Total += g.Count
	}

	recent, err := r.coll().CountDocuments(ctx, bson.M{"timestamp": bson.M{"$gte": since.UTC()}})
	if err != nil {
		return stats, errors.StoreErr("count recent notifications", err)
	}
	stats.Last24h = recent
	return stats, nil
}
