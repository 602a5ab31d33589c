package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/creativestories/backend/internal/common/clock"
	"github.com/creativestories/backend/internal/common/db"
	"github.com/creativestories/backend/internal/subscriber/domain"
)

var (
	ErrSubscriberNotFound  = errors.New("subscriber not found")
	ErrStoreNotInitialized = errors.New("document store handle is not initialized")
)

type Repository interface {
	Insert(ctx context.Context, email string) (domain.ID, error)
	FindByEmail(ctx context.Context, email string) (domain.Subscriber, error)
	ListAll(ctx context.Context) ([]domain.Subscriber, error)
	ListActive(ctx context.Context) ([]domain.Subscriber, error)
}

type subscriberDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	SubscribedAt time.Time          `bson:"subscribedAt"`
	Status       string             `bson:"status"`
}

type MongoRepository struct {
	database   *mongo.Database
	collection string
	clock      clock.Clock
}

func NewMongoRepository(database *mongo.Database, clk clock.Clock) *MongoRepository {
	return &MongoRepository{
		database:   database,
		collection: "subscribers",
		clock:      clk,
	}
}

func (r *MongoRepository) Insert(ctx context.Context, email string) (domain.ID, error) {
	if r.database == nil {
		return "", ErrStoreNotInitialized
	}

	doc := subscriberDocument{
		Email:        email,
		SubscribedAt: r.clock.Now().UTC(),
		Status:       string(domain.StatusActive),
	}

	start := time.Now()
	res, err := r.database.Collection(r.collection).InsertOne(ctx, doc)
	if err := db.HandleExecError(err, "insert subscriber", start); err != nil {
		return "", err
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("store returned an unexpected identifier type")
	}

	return domain.ID(oid.Hex()), nil
}

func (r *MongoRepository) FindByEmail(ctx context.Context, email string) (domain.Subscriber, error) {
	if r.database == nil {
		return domain.Subscriber{}, ErrStoreNotInitialized
	}

	start := time.Now()
	var doc subscriberDocument
	err := r.database.Collection(r.collection).FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err := db.HandleQueryError(err, ErrSubscriberNotFound, "find subscriber by email", start); err != nil {
		return domain.Subscriber{}, err
	}

	return doc.toDomain(), nil
}

func (r *MongoRepository) ListAll(ctx context.Context) ([]domain.Subscriber, error) {
	return r.list(ctx, bson.M{}, "list subscribers")
}

func (r *MongoRepository) ListActive(ctx context.Context) ([]domain.Subscriber, error) {
	return r.list(ctx, bson.M{"status": string(domain.StatusActive)}, "list active subscribers")
}

func (r *MongoRepository) list(ctx context.Context, filter bson.M, operation string) ([]domain.Subscriber, error) {
	if r.database == nil {
		return nil, ErrStoreNotInitialized
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "subscribedAt", Value: -1}})

	start := time.Now()
	cursor, err := r.database.Collection(r.collection).Find(ctx, filter, findOptions)
	if err := db.HandleQueryError(err, ErrSubscriberNotFound, operation, start); err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	subscribers := []domain.Subscriber{}
	for cursor.Next(ctx) {
		var doc subscriberDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, db.HandleQueryError(err, ErrSubscriberNotFound, operation, start)
		}
		subscribers = append(subscribers, doc.toDomain())
	}

	if err := cursor.Err(); err != nil {
		return nil, db.HandleQueryError(err, ErrSubscriberNotFound, operation, start)
	}

	return subscribers, nil
}

func (d subscriberDocument) toDomain() domain.Subscriber {
	return domain.Subscriber{
		ID:           domain.ID(d.ID.Hex()),
		Email:        d.Email,
		SubscribedAt: d.SubscribedAt,
		Status:       domain.Status(d.Status),
	}
}
