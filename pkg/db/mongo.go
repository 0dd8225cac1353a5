package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"news-crawler/pkg/domain"
	"news-crawler/pkg/urls"
)

// Client wraps the MongoDB client and article collection
type Client struct {
	mongoClient *mongo.Client
	collection  *mongo.Collection
}

type articleDocument struct {
	domain.Article `bson:",inline"`

	Fingerprint string    `bson:"fingerprint"`
	ClientID    string    `bson:"client_id,omitempty"`
	SavedAt     time.Time `bson:"saved_at"`
}

// NewClient creates a new database client. The driver connects lazily;
// call Connect to verify the server is reachable.
func NewClient(connectionString, databaseName, collectionName string) (*Client, error) {
	mongoClient, err := mongo.Connect(context.Background(), options.Client().ApplyURI(connectionString))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	return &Client{
		mongoClient: mongoClient,
		collection:  mongoClient.Database(databaseName).Collection(collectionName),
	}, nil
}

// Connect verifies the connection to MongoDB
func (c *Client) Connect(ctx context.Context) error {
	return c.mongoClient.Ping(ctx, nil)
}

// Close closes the MongoDB connection
func (c *Client) Close(ctx context.Context) error {
	return c.mongoClient.Disconnect(ctx)
}

// SaveArticle upserts an article keyed by its URL fingerprint
func (c *Client) SaveArticle(ctx context.Context, article domain.Article, clientID string) error {
	doc := articleDocument{
		Fingerprint: urls.Fingerprint(article.URL),
		Article:     article,
		ClientID:    clientID,
		SavedAt:     time.Now().UTC(),
	}

	filter := bson.M{"fingerprint": doc.Fingerprint}
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)

	if _, err := c.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("upsert article %s: %w", article.URL, err)
	}
	return nil
}
