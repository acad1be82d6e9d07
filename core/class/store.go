package class

import (
	"context"
	"errors"
	"fmt"

	"github.com/irsalhamdi/melody-institute/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("class not found")

func collection(db *mongo.Database) *mongo.Collection {
	return db.Collection(database.Classes)
}

func find(ctx context.Context, db *mongo.Database, filter bson.M) ([]bson.M, error) {
	cur, err := collection(db).Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	docs := []bson.M{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func List(ctx context.Context, db *mongo.Database) ([]bson.M, error) {
	docs, err := find(ctx, db, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("finding classes: %w", err)
	}
	return docs, nil
}

// ListByID returns the classes matching id: at most one, possibly none.
func ListByID(ctx context.Context, db *mongo.Database, id primitive.ObjectID) ([]bson.M, error) {
	docs, err := find(ctx, db, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("finding class[%s]: %w", id.Hex(), err)
	}
	return docs, nil
}

func ListByInstructor(ctx context.Context, db *mongo.Database, email string) ([]bson.M, error) {
	docs, err := find(ctx, db, bson.M{"instructor_email": email})
	if err != nil {
		return nil, fmt.Errorf("finding classes of instructor[%s]: %w", email, err)
	}
	return docs, nil
}

// FetchInstructor returns the instructor_email recorded on the class.
func FetchInstructor(ctx context.Context, db *mongo.Database, id primitive.ObjectID) (string, error) {
	var c Class

	opts := options.FindOne().SetProjection(bson.M{"instructor_email": 1})
	err := collection(db).FindOne(ctx, bson.M{"_id": id}, opts).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("finding class[%s]: %w", id.Hex(), err)
	}
	return c.InstructorEmail, nil
}

func Create(ctx context.Context, db *mongo.Database, doc map[string]interface{}) (database.InsertResult, error) {
	res, err := collection(db).InsertOne(ctx, doc)
	if err != nil {
		return database.InsertResult{}, fmt.Errorf("inserting class: %w", err)
	}
	return database.NewInsertResult(res), nil
}

// statusUpdate builds the one update document applied for a status change.
func statusUpdate(up StatusUp) (bson.M, error) {
	switch up.Status {
	case Approved:
		return bson.M{
			"$set":   bson.M{"status": up.Status},
			"$unset": bson.M{"feedback": ""},
		}, nil
	case Rejected:
		return bson.M{
			"$set": bson.M{"status": up.Status, "feedback": up.Feedback},
		}, nil
	}
	return nil, fmt.Errorf("unsupported status %q", up.Status)
}

func UpdateStatus(ctx context.Context, db *mongo.Database, id primitive.ObjectID, up StatusUp) (database.UpdateResult, error) {
	update, err := statusUpdate(up)
	if err != nil {
		return database.UpdateResult{}, err
	}

	res, err := collection(db).UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return database.UpdateResult{}, fmt.Errorf("updating status of class[%s]: %w", id.Hex(), err)
	}
	return database.NewUpdateResult(res), nil
}

// Enroll takes one seat of the class and counts one more enrolled student.
// Seats may go negative.
func Enroll(ctx context.Context, db *mongo.Database, id primitive.ObjectID) (database.UpdateResult, error) {
	update := bson.M{"$inc": bson.M{"available_seats": -1, "enrolled_students": 1}}
	res, err := collection(db).UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return database.UpdateResult{}, fmt.Errorf("enrolling into class[%s]: %w", id.Hex(), err)
	}
	return database.NewUpdateResult(res), nil
}
