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
	"github.com/creativestories/backend/internal/story/domain"
)

var (
	ErrStoryNotFound       = errors.New("story not found")
	ErrStoreNotInitialized = errors.New("document store handle is not initialized")
)

type Repository interface {
	Create(ctx context.Context, story domain.Story) (domain.ID, error)
	ListAll(ctx context.Context) ([]domain.Story, error)
	FindByID(ctx context.Context, id domain.ID) (domain.Story, error)
	FindMostRecent(ctx context.Context) (domain.Story, error)
}

type storyDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Author    string             `bson:"author"`
	Content   string             `bson:"content"`
	Tags      []string           `bson:"tags"`
	CreatedAt time.Time          `bson:"createdAt"`
}

type MongoRepository struct {
	database   *mongo.Database
	collection string
	clock      clock.Clock
}

func NewMongoRepository(database *mongo.Database, clk clock.Clock) *MongoRepository {
	return &MongoRepository{
		database:   database,
		collection: "stories",
		clock:      clk,
	}
}

func (r *MongoRepository) Create(ctx context.Context, story domain.Story) (domain.ID, error) {
	if r.database == nil {
		return "", ErrStoreNotInitialized
	}

	tags := story.Tags
	if tags == nil {
		tags = []string{}
	}

	doc := storyDocument{
		Title:     story.Title,
		Author:    story.Author,
		Content:   story.Content,
		Tags:      tags,
		CreatedAt: r.clock.Now().UTC(),
	}

	start := time.Now()
	res, err := r.database.Collection(r.collection).InsertOne(ctx, doc)
	if err := db.HandleExecError(err, "create story", start); err != nil {
		return "", err
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("store returned an unexpected identifier type")
	}

	return domain.ID(oid.Hex()), nil
}

func (r *MongoRepository) ListAll(ctx context.Context) ([]domain.Story, error) {
	if r.database == nil {
		return nil, ErrStoreNotInitialized
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	start := time.Now()
	cursor, err := r.database.Collection(r.collection).Find(ctx, bson.M{}, findOptions)
	if err := db.HandleQueryError(err, ErrStoryNotFound, "list stories", start); err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stories := []domain.Story{}
	for cursor.Next(ctx) {
		var doc storyDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, db.HandleQueryError(err, ErrStoryNotFound, "decode story", start)
		}
		stories = append(stories, doc.toDomain())
	}

	if err := cursor.Err(); err != nil {
		return nil, db.HandleQueryError(err, ErrStoryNotFound, "iterate stories", start)
	}

	return stories, nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id domain.ID) (domain.Story, error) {
	if r.database == nil {
		return domain.Story{}, ErrStoreNotInitialized
	}

	oid, err := primitive.ObjectIDFromHex(string(id))
	if err != nil {
		// A malformed identifier can never match a document.
		return domain.Story{}, ErrStoryNotFound
	}

	start := time.Now()
	var doc storyDocument
	err = r.database.Collection(r.collection).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err := db.HandleQueryError(err, ErrStoryNotFound, "find story by id", start); err != nil {
		return domain.Story{}, err
	}

	return doc.toDomain(), nil
}

func (r *MongoRepository) FindMostRecent(ctx context.Context) (domain.Story, error) {
	if r.database == nil {
		return domain.Story{}, ErrStoreNotInitialized
	}

	findOptions := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	start := time.Now()
	var doc storyDocument
	err := r.database.Collection(r.collection).FindOne(ctx, bson.M{}, findOptions).Decode(&doc)
	if err := db.HandleQueryError(err, ErrStoryNotFound, "find most recent story", start); err != nil {
		return domain.Story{}, err
	}

	return doc.toDomain(), nil
}

func (d storyDocument) toDomain() domain.Story {
	return domain.Story{
		ID:        domain.ID(d.ID.Hex()),
		Title:     d.Title,
		Author:    d.Author,
		Content:   d.Content,
		Tags:      d.Tags,
		CreatedAt: d.CreatedAt,
	}
}
