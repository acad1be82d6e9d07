package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/irsalhamdi/melody-institute/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func collection(db *mongo.Database) *mongo.Collection {
	return db.Collection(database.Users)
}

func List(ctx context.Context, db *mongo.Database) ([]bson.M, error) {
	cur, err := collection(db).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("finding users: %w", err)
	}

	docs := []bson.M{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("reading users: %w", err)
	}
	return docs, nil
}

// Fetch returns the first user with the given email, or nil when there is none.
func Fetch(ctx context.Context, db *mongo.Database, email string) (bson.M, error) {
	var doc bson.M
	err := collection(db).FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding user[%s]: %w", email, err)
	}
	return doc, nil
}

func Create(ctx context.Context, db *mongo.Database, doc map[string]interface{}) (database.InsertResult, error) {
	res, err := collection(db).InsertOne(ctx, doc)
	if err != nil {
		return database.InsertResult{}, fmt.Errorf("inserting user: %w", err)
	}
	return database.NewInsertResult(res), nil
}

func UpdateProfile(ctx context.Context, db *mongo.Database, email string, up ProfileUp) (database.UpdateResult, error) {
	res, err := collection(db).UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": up})
	if err != nil {
		return database.UpdateResult{}, fmt.Errorf("updating profile of user[%s]: %w", email, err)
	}
	return database.NewUpdateResult(res), nil
}

// Increment adds by to counter on the first user with the given email. The
// increment is applied by the server, so concurrent calls never lose updates.
func Increment(ctx context.Context, db *mongo.Database, email string, counter Counter, by int) (database.UpdateResult, error) {
	update := bson.M{"$inc": bson.M{string(counter): by}}
	res, err := collection(db).UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return database.UpdateResult{}, fmt.Errorf("incrementing %s of user[%s]: %w", counter, email, err)
	}
	return database.NewUpdateResult(res), nil
}

func UpdateRole(ctx context.Context, db *mongo.Database, id primitive.ObjectID, role Role) (database.UpdateResult, error) {
	res, err := collection(db).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return database.UpdateResult{}, fmt.Errorf("updating role of user[%s]: %w", id.Hex(), err)
	}
	return database.NewUpdateResult(res), nil
}
