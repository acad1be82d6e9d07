package class

import (
	"context"
	"fmt"
	"net/http"

	"github.com/irsalhamdi/melody-institute/api/web"
	"github.com/irsalhamdi/melody-institute/api/weberr"
	"github.com/irsalhamdi/melody-institute/validate"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleList answers with every class, or with the list holding the class
// named by the classId query.
func HandleList(db *mongo.Database) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if classID := web.Query(r, "classId"); classID != "" {
			id, err := validate.ParseID(classID)
			if err != nil {
				return weberr.BadRequest(err)
			}

			classes, err := ListByID(ctx, db, id)
			if err != nil {
				return fmt.Errorf("listing class: %w", err)
			}
			return web.Respond(ctx, w, classes, http.StatusOK)
		}

		classes, err := List(ctx, db)
		if err != nil {
			return fmt.Errorf("listing classes: %w", err)
		}

		return web.Respond(ctx, w, classes, http.StatusOK)
	}
}

func HandleListByInstructor(db *mongo.Database) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		email := web.Param(r, "email")

		classes, err := ListByInstructor(ctx, db, email)
		if err != nil {
			return fmt.Errorf("listing classes by instructor: %w", err)
		}

		return web.Respond(ctx, w, classes, http.StatusOK)
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
			return fmt.Errorf("creating class: %w", err)
		}

		return web.Respond(ctx, w, res, http.StatusOK)
	}
}

func HandleUpdateStatus(db *mongo.Database) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id, err := validate.ParseID(web.Param(r, "id"))
		if err != nil {
			return weberr.BadRequest(err)
		}

		var up StatusUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(up); err != nil {
			return weberr.BadRequest(err)
		}

		res, err := UpdateStatus(ctx, db, id, up)
		if err != nil {
			return fmt.Errorf("updating class status: %w", err)
		}

		return web.Respond(ctx, w, res, http.StatusOK)
	}
}
