package manager

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Submission is an accepted form submission as stored in the archive.
// The proof token is never part of Fields.
type Submission struct {
	ID        string            `bson:"_id" json:"id"`
	Action    string            `bson:"action" json:"action"`
	ClientIP  string            `bson:"client_ip" json:"clientIp"`
	Fields    map[string]string `bson:"fields" json:"fields"`
	CreatedAt time.Time         `bson:"created_at" json:"createdAt"`
}

func NewSubmission(action, clientIP string, fields map[string]string) Submission {
	return Submission{
		ID:        uuid.NewString(),
		Action:    action,
		ClientIP:  clientIP,
		Fields:    fields,
		CreatedAt: time.Now().UTC(),
	}
}

type MongoDBManager struct {
	client                *mongo.Client
	submissionsCollection *mongo.Collection
}

func NewMongoDBManager(ctx context.Context, dbURL, db, submissions string) (*MongoDBManager, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(dbURL))
	if err != nil {
		return nil, err
	}
	return &MongoDBManager{
		client:                client,
		submissionsCollection: client.Database(db).Collection(submissions),
	}, nil
}

func (m *MongoDBManager) ArchiveSubmission(ctx context.Context, s Submission) error {
	_, err := m.submissionsCollection.InsertOne(ctx, s)
	return err
}

func (m *MongoDBManager) EnsureIndexes(ctx context.Context) error {
	_, err := m.submissionsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "action", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}

// RecentSubmissions returns the newest submissions first. An empty action
// matches every form.
func (m *MongoDBManager) RecentSubmissions(ctx context.Context, action string, limit int64) ([]Submission, error) {
	filter := bson.M{}
	if action != "" {
		filter["action"] = action
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cursor, err := m.submissionsCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []Submission
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *MongoDBManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *MongoDBManager) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}
