package store

import (
	"context"
	"errors"
	"fmt"
	"survey/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type responseDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Age          string             `bson:"age"`
	Gender       string             `bson:"gender"`
	Frequency    string             `bson:"frequency"`
	Satisfaction string             `bson:"satisfaction"`
	Feedback     string             `bson:"feedback,omitempty"`
	UserID       string             `bson:"userId"`
	DisplayName  string             `bson:"displayName"`
	Timestamp    string             `bson:"timestamp"`
	CreatedAt    string             `bson:"createdAt"`
}

func toDocument(r *models.SurveyResponse) *responseDocument {
	return &responseDocument{
		Age:          r.Age,
		Gender:       r.Gender,
		Frequency:    r.Frequency,
		Satisfaction: r.Satisfaction,
		Feedback:     r.Feedback,
		UserID:       r.UserID,
		DisplayName:  r.DisplayName,
		Timestamp:    r.Timestamp,
		CreatedAt:    r.CreatedAt,
	}
}

func (d *responseDocument) toModel() *models.SurveyResponse {
	return &models.SurveyResponse{
		ID:           d.ID.Hex(),
		Age:          d.Age,
		Gender:       d.Gender,
		Frequency:    d.Frequency,
		Satisfaction: d.Satisfaction,
		Feedback:     d.Feedback,
		UserID:       d.UserID,
		DisplayName:  d.DisplayName,
		Timestamp:    d.Timestamp,
		CreatedAt:    d.CreatedAt,
	}
}

type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoStore(client *mongo.Client, database, collection string) *MongoStore {
	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}
}

// EnsureIndexes creates the per-user lookup index. Creating an existing
// index is a no-op on the server.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("userId_createdAt"),
	})
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

func (s *MongoStore) Create(ctx context.Context, record *models.SurveyResponse) (string, error) {
	res, err := s.collection.InsertOne(ctx, toDocument(record))
	if err != nil {
		return "", fmt.Errorf("insert response: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("insert response: unexpected id type")
	}
	return oid.Hex(), nil
}

func (s *MongoStore) QueryByUser(ctx context.Context, userID string) ([]*models.SurveyResponse, error) {
	opts := options.Find().SetSort(newestFirst())
	return s.find(ctx, bson.M{"userId": userID}, opts)
}

func (s *MongoStore) QueryAll(ctx context.Context, limit, offset int) ([]*models.SurveyResponse, error) {
	opts := options.Find().
		SetSort(newestFirst()).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))
	return s.find(ctx, bson.M{}, opts)
}

func (s *MongoStore) Durable() bool { return true }

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.SurveyResponse, error) {
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("query responses: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []responseDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode responses: %w", err)
	}

	out := make([]*models.SurveyResponse, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toModel())
	}
	return out, nil
}

func newestFirst() bson.D {
	return bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}
}
