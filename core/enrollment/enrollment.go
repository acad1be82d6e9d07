// Package enrollment moves a class from the selected classes of a student to
// the enrolled ones and keeps the seat and enrollment counters of the class,
// the student and the instructor in step.
//
// All writes of one enrollment happen in a single multi-document transaction:
// either every counter moves and the cart changes, or nothing does.
package enrollment

import (
	"context"
	"errors"
	"fmt"

	"github.com/irsalhamdi/melody-institute/api/weberr"
	"github.com/irsalhamdi/melody-institute/core/cart"
	"github.com/irsalhamdi/melody-institute/core/class"
	"github.com/irsalhamdi/melody-institute/core/user"
	"github.com/irsalhamdi/melody-institute/database"
	"github.com/irsalhamdi/melody-institute/validate"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNoClasses          = errors.New("classes must end with the class being enrolled")
	ErrNoInstructor       = errors.New("the last class carries no instructor_email")
	ErrStudentNotFound    = errors.New("student not found")
	ErrInstructorNotFound = errors.New("instructor not found")
)

type Transition struct {
	db  *mongo.Database
	log logrus.FieldLogger
}

func New(db *mongo.Database, log logrus.FieldLogger) *Transition {
	return &Transition{db: db, log: log}
}

// InstructorEmail returns the instructor of the last class in classes, which
// is the class the client is enrolling into.
func InstructorEmail(classes []bson.M) (string, error) {
	if len(classes) == 0 {
		return "", ErrNoClasses
	}

	email, _ := classes[len(classes)-1]["instructor_email"].(string)
	if email == "" {
		return "", ErrNoInstructor
	}
	return email, nil
}

// Enroll enrolls the student email into class id. classes becomes the new
// list of enrolled classes and its last element names the instructor whose
// student count grows. The class does not have to be in the selected classes
// and seats are not checked.
func (t *Transition) Enroll(ctx context.Context, email string, id string, classes []bson.M) (database.UpdateResult, error) {
	oid, err := validate.ParseID(id)
	if err != nil {
		return database.UpdateResult{}, weberr.BadRequest(err)
	}

	insEmail, err := InstructorEmail(classes)
	if err != nil {
		return database.UpdateResult{}, weberr.BadRequest(err)
	}

	var (
		res      database.UpdateResult
		recorded string
	)
	err = database.Transaction(ctx, t.db, func(ctx context.Context) error {
		if _, err := cart.PullSelected(ctx, t.db, email, id); err != nil {
			return err
		}

		var err error
		recorded, err = class.FetchInstructor(ctx, t.db, oid)
		if errors.Is(err, class.ErrNotFound) {
			return weberr.NotFound(err)
		}
		if err != nil {
			return err
		}

		if _, err := class.Enroll(ctx, t.db, oid); err != nil {
			return err
		}

		up, err := user.Increment(ctx, t.db, email, user.EnrolledCourses, 1)
		if err != nil {
			return err
		}
		if up.MatchedCount == 0 {
			return weberr.NotFound(ErrStudentNotFound)
		}

		up, err = user.Increment(ctx, t.db, insEmail, user.TotalStudents, 1)
		if err != nil {
			return err
		}
		if up.MatchedCount == 0 {
			return weberr.NotFound(ErrInstructorNotFound)
		}

		res, err = cart.ReplaceEnrolled(ctx, t.db, email, classes)
		return err
	})
	if err != nil {
		return database.UpdateResult{}, weberr.Wrap(
			fmt.Errorf("enrolling student[%s] into class[%s]: %w", email, id, err),
			weberr.WithFields(map[string]interface{}{"student": email, "class": id}),
		)
	}

	if recorded != insEmail {
		t.log.WithFields(logrus.Fields{
			"class":            id,
			"instructor":       insEmail,
			"class_instructor": recorded,
		}).Warn("credited instructor differs from the class record")
	}

	return res, nil
}
