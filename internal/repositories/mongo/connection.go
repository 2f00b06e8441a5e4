package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoInternal is a struct that contains a MongoDB client
type MongoInternal struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoInternal conecta no MONGO_URI e valida com ping
func NewMongoInternal(ctx context.Context, uri, database string) (*MongoInternal, error) {
	if uri == "" {
		return nil, errors.New("MONGO_URI must be set when STORE_DRIVER=mongo")
	}

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	if err := client.Database("admin").RunCommand(connectCtx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	return &MongoInternal{
		client: client,
		db:     client.Database(database),
	}, nil
}

// Disconnect encerra o cliente
func (m *MongoInternal) Disconnect(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
