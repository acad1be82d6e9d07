package cart

import (
	"context"
	"fmt"

	"github.com/irsalhamdi/melody-institute/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func collection(db *mongo.Database) *mongo.Collection {
	return db.Collection(database.Carts)
}

// ListByStudent returns every cart of the student. Nothing prevents a student
// from owning more than one.
func ListByStudent(ctx context.Context, db *mongo.Database, email string) ([]bson.M, error) {
	cur, err := collection(db).Find(ctx, bson.M{"student_email": email})
	if err != nil {
		return nil, fmt.Errorf("finding carts of student[%s]: %w", email, err)
	}

	docs := []bson.M{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("reading carts of student[%s]: %w", email, err)
	}
	return docs, nil
}

func Create(ctx context.Context, db *mongo.Database, doc map[string]interface{}) (database.InsertResult, error) {
	res, err := collection(db).InsertOne(ctx, doc)
	if err != nil {
		return database.InsertResult{}, fmt.Errorf("inserting cart: %w", err)
	}
	return database.NewInsertResult(res), nil
}

func replace(ctx context.Context, db *mongo.Database, email string, field string, classes []bson.M) (database.UpdateResult, error) {
	if classes == nil {
		classes = []bson.M{}
	}

	update := bson.M{"$set": bson.M{field: classes}}
	res, err := collection(db).UpdateOne(ctx, bson.M{"student_email": email}, update)
	if err != nil {
		return database.UpdateResult{}, fmt.Errorf("replacing %s of student[%s]: %w", field, email, err)
	}
	return database.NewUpdateResult(res), nil
}

// ReplaceSelected overwrites the selected classes. The last writer wins.
func ReplaceSelected(ctx context.Context, db *mongo.Database, email string, classes []bson.M) (database.UpdateResult, error) {
	return replace(ctx, db, email, "selected_classes", classes)
}

func ReplaceEnrolled(ctx context.Context, db *mongo.Database, email string, classes []bson.M) (database.UpdateResult, error) {
	return replace(ctx, db, email, "enrolled_classes", classes)
}

// PullSelected removes the selected entries whose _id is id.
func PullSelected(ctx context.Context, db *mongo.Database, email string, id string) (database.UpdateResult, error) {
	update := bson.M{"$pull": bson.M{"selected_classes": bson.M{"_id": id}}}
	res, err := collection(db).UpdateOne(ctx, bson.M{"student_email": email}, update)
	if err != nil {
		return database.UpdateResult{}, fmt.Errorf("removing class[%s] from cart of student[%s]: %w", id, email, err)
	}
	return database.NewUpdateResult(res), nil
}
