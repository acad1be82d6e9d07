package database

import (
	"context"
	"fmt"

	"github.com/irsalhamdi/melody-institute/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	Users   = "users"
	Classes = "classes"
	Carts   = "student_cart"
)

// Open connects to the deployment described by cfg and verifies the primary is
// reachable before handing back the database handle.
func Open(ctx context.Context, cfg config.DB) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongo primary: %w", err)
	}

	return client.Database(cfg.Name), nil
}

// Close disconnects the client owning db.
func Close(ctx context.Context, db *mongo.Database) error {
	return db.Client().Disconnect(ctx)
}

// Transaction runs fn inside a multi-document transaction. fn must use the
// context it receives for every operation that belongs to the transaction.
// The driver retries fn on transient transaction errors, so fn must not have
// side effects outside the database.
func Transaction(ctx context.Context, db *mongo.Database, fn func(ctx context.Context) error) error {
	sess, err := db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil {
		return fmt.Errorf("running transaction: %w", err)
	}
	return nil
}
