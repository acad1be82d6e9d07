package cart

import (
	"context"
	"fmt"
	"net/http"

	"github.com/irsalhamdi/melody-institute/api/web"
	"github.com/irsalhamdi/melody-institute/api/weberr"
	"github.com/irsalhamdi/melody-institute/database"
	"github.com/irsalhamdi/melody-institute/validate"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Enroller moves the class id from the selected classes of the student to the
// enrolled ones, replacing those with classes.
type Enroller interface {
	Enroll(ctx context.Context, email string, id string, classes []bson.M) (database.UpdateResult, error)
}

func HandleShow(db *mongo.Database) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		email := web.Param(r, "email")

		carts, err := ListByStudent(ctx, db, email)
		if err != nil {
			return fmt.Errorf("listing carts: %w", err)
		}

		return web.Respond(ctx, w, carts, http.StatusOK)
	}
}

func HandleCreate(db *mongo.Database) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		doc, err := web.DecodeDocument(w, r)
		if err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		res, err := Create(ctx, db, doc)
		if err != nil {
			return fmt.Errorf("creating cart: %w", err)
		}

		return web.Respond(ctx, w, res, http.StatusOK)
	}
}

func HandleUpdate(db *mongo.Database, enr Enroller) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		email := web.Param(r, "email")

		q := UpdateQuery{
			ClassType: ClassType(web.Query(r, "class_type")),
			ID:        web.Query(r, "id"),
		}
		if err := validate.Check(q); err != nil {
			return weberr.BadRequest(err)
		}

		var up ClassesUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		var (
			res database.UpdateResult
			err error
		)
		switch q.ClassType {
		case Selected:
			res, err = ReplaceSelected(ctx, db, email, up.Classes)
		case Enrolled:
			res, err = enr.Enroll(ctx, email, q.ID, up.Classes)
		}
		if err != nil {
			return fmt.Errorf("updating %s classes: %w", q.ClassType, err)
		}

		return web.Respond(ctx, w, res, http.StatusOK)
	}
}

func HandleDeleteItem(db *mongo.Database) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		q := DeleteQuery{
			Email: web.Query(r, "email"),
			ID:    web.Query(r, "id"),
		}
		if err := validate.Check(q); err != nil {
			return weberr.BadRequest(err)
		}

		res, err := PullSelected(ctx, db, q.Email, q.ID)
		if err != nil {
			return fmt.Errorf("deleting cart item: %w", err)
		}

		return web.Respond(ctx, w, res, http.StatusOK)
	}
}
