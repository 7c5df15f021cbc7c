package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lockerhub/locker-system/internal/core/domain"
)

const activityCollection = "activity_log"

// ActivityRepository implements ports.ActivityRepository against the
// append-only activity_log collection.
type ActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(activityCollection)}
}

type activityDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Actor     string             `bson:"actor,omitempty"`
	ActorID   int64              `bson:"actor_id"`
	Action    string             `bson:"action"`
	Subject   string             `bson:"subject,omitempty"`
	SubjectID int64              `bson:"subject_id,omitempty"`
	Details   string             `bson:"details,omitempty"`
	Timestamp time.Time          `bson:"timestamp"`
}

func (r *ActivityRepository) Insert(ctx context.Context, entry *domain.ActivityEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := activityDoc{
		Actor:     entry.Actor,
		ActorID:   entry.ActorID,
		Action:    entry.Action,
		Subject:   entry.Subject,
		SubjectID: entry.SubjectID,
		Details:   entry.Details,
		Timestamp: entry.Timestamp.UTC(),
	}
	_, err := r.coll.InsertOne(ctx, doc)
	return err
}

func (r *ActivityRepository) Recent(ctx context.Context, limit int) ([]*domain.ActivityEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))
	return r.find(ctx, opts)
}

func (r *ActivityRepository) All(ctx context.Context) ([]*domain.ActivityEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	return r.find(ctx, opts)
}

func (r *ActivityRepository) find(ctx context.Context, opts *options.FindOptions) ([]*domain.ActivityEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.ActivityEntry
	for cur.Next(ctx) {
		var doc activityDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, &domain.ActivityEntry{
			ID:        doc.ID.Hex(),
			Actor:     doc.Actor,
			ActorID:   doc.ActorID,
			Action:    doc.Action,
			Subject:   doc.Subject,
			SubjectID: doc.SubjectID,
			Details:   doc.Details,
			Timestamp: doc.Timestamp,
		})
	}
	return out, cur.Err()
}

// EnsureIndexes creates the timestamp index backing the recent-activity feed.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "timestamp", Value: -1}},
	})
	return err
}
