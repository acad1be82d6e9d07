package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/irsalhamdi/melody-institute/api/web"
	"github.com/sirupsen/logrus"
	"github.com/zenazn/goji/web/mutil"
)

// requestFields names the request, plus the email and class it targets when
// the route or query carries them.
func requestFields(r *http.Request) logrus.Fields {
	fields := logrus.Fields{
		"method":     r.Method,
		"path":       r.URL.Path,
		"remoteaddr": r.RemoteAddr,
	}

	email := web.Param(r, "email")
	if email == "" {
		email = web.Query(r, "email")
	}
	if email != "" {
		fields["email"] = email
	}

	for _, id := range []string{web.Param(r, "id"), web.Query(r, "id"), web.Query(r, "classId")} {
		if id != "" {
			fields["class_id"] = id
			break
		}
	}

	if ct := web.Query(r, "class_type"); ct != "" {
		fields["class_type"] = ct
	}
	return fields
}

func Logger(log logrus.FieldLogger) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			entry := log.WithFields(requestFields(r))
			if rid := ContextRequestID(ctx); rid != "" {
				entry = entry.WithField("req_id", rid)
			}

			entry.Debug("started")
			start := time.Now().UTC()

			lw := mutil.WrapWriter(w)
			err := handler(ctx, lw, r)

			entry.WithFields(logrus.Fields{
				"statuscode": lw.Status(),
				"bytes":      lw.BytesWritten(),
				"since":      time.Since(start).String(),
			}).Info("completed")
			return err
		}
		return h
	}
	return m
}
