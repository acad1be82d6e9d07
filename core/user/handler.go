package user

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/irsalhamdi/melody-institute/api/web"
	"github.com/irsalhamdi/melody-institute/api/weberr"
	"github.com/irsalhamdi/melody-institute/validate"
	"go.mongodb.org/mongo-driver/mongo"
)

func HandleList(db *mongo.Database) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		users, err := List(ctx, db)
		if err != nil {
			return fmt.Errorf("listing users: %w", err)
		}

		return web.Respond(ctx, w, users, http.StatusOK)
	}
}

// HandleShow answers with a null body when no user has the email.
func HandleShow(db *mongo.Database) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		email := web.Param(r, "email")

		usr, err := Fetch(ctx, db, email)
		if err != nil {
			return fmt.Errorf("fetching user: %w", err)
		}

		return web.Respond(ctx, w, usr, http.StatusOK)
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
			return fmt.Errorf("creating user: %w", err)
		}

		return web.Respond(ctx, w, res, http.StatusOK)
	}
}

// HandleUpdate bumps total_classes when the addNewClass query is set and
// otherwise overwrites the profile fields with the body.
func HandleUpdate(db *mongo.Database) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		email := web.Param(r, "email")

		if web.Query(r, "addNewClass") != "" {
			res, err := Increment(ctx, db, email, TotalClasses, 1)
			if err != nil {
				return fmt.Errorf("adding class to user: %w", err)
			}
			return web.Respond(ctx, w, res, http.StatusOK)
		}

		var up ProfileUp
		if err := web.Decode(w, r, &up); err != nil && !errors.Is(err, io.EOF) {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		res, err := UpdateProfile(ctx, db, email, up)
		if err != nil {
			return fmt.Errorf("updating user: %w", err)
		}

		return web.Respond(ctx, w, res, http.StatusOK)
	}
}

func HandleUpdateRole(db *mongo.Database) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id, err := validate.ParseID(web.Query(r, "id"))
		if err != nil {
			return weberr.BadRequest(err)
		}

		var up RoleUp
		if err := web.Decode(w, r, &up); err != nil && !errors.Is(err, io.EOF) {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}
		if up.Role == "" {
			up.Role = Role(web.Query(r, "role"))
		}

		if err := validate.Check(up); err != nil {
			return weberr.BadRequest(err)
		}

		res, err := UpdateRole(ctx, db, id, up.Role)
		if err != nil {
			return fmt.Errorf("updating role: %w", err)
		}

		return web.Respond(ctx, w, res, http.StatusOK)
	}
}
