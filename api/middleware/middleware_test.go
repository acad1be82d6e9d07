package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/irsalhamdi/melody-institute/api/web"
	"github.com/irsalhamdi/melody-institute/api/weberr"
	"github.com/irsalhamdi/melody-institute/rate"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func serve(h web.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	_ = h(r.Context(), w, r)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var er weberr.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&er); err != nil {
		t.Fatalf("cannot decode error body: %v", err)
	}
	return er.Error
}

func TestErrorsAttachedResponse(t *testing.T) {
	log, hook := test.NewNullLogger()

	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return weberr.BadRequest(errors.New("class_type must be one of [selected enrolled]"))
	}
	mw := web.WrapMiddleware([]web.Middleware{RequestID(), Errors(log)}, h)

	w := serve(mw, httptest.NewRequest(http.MethodPatch, "/api/v1/cart/a@b.c", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	if got := decodeError(t, w); got != "class_type must be one of [selected enrolled]" {
		t.Fatalf("unexpected error message %q", got)
	}

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("expected the error to be logged")
	}
	if entry.Level != logrus.WarnLevel {
		t.Fatalf("expected warn level for a client error, got %s", entry.Level)
	}
	if entry.Data["req_id"] == "" {
		t.Fatal("expected the request id in the log entry")
	}
}

func TestErrorsPlainError(t *testing.T) {
	log, hook := test.NewNullLogger()

	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return errors.New("connection refused")
	}
	w := serve(Errors(log)(h), httptest.NewRequest(http.MethodGet, "/api/v1/users", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
	if got := decodeError(t, w); got != http.StatusText(http.StatusInternalServerError) {
		t.Fatalf("internal details leaked to the client: %q", got)
	}
	if entry := hook.LastEntry(); entry == nil || entry.Level != logrus.ErrorLevel {
		t.Fatal("expected an error level log entry")
	}
}

func TestPanics(t *testing.T) {
	log, hook := test.NewNullLogger()

	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var m map[string]int
		m["boom"]++
		return nil
	}
	mw := web.WrapMiddleware([]web.Middleware{Errors(log), Panics()}, h)

	w := serve(mw, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
	if got := decodeError(t, w); got != "the server encountered a problem and could not process your request" {
		t.Fatalf("unexpected error message %q", got)
	}
	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("expected the panic to be logged")
	}
	if trace, _ := entry.Data["trace"].(string); !strings.Contains(trace, "goroutine") {
		t.Fatal("expected a stack trace in the log entry")
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		seen = ContextRequestID(ctx)
		return nil
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := serve(RequestID()(h), r)
	if seen == "" || w.Header().Get(RequestIDHeader) != seen {
		t.Fatalf("expected a generated id echoed in the response, got %q and %q", seen, w.Header().Get(RequestIDHeader))
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, strings.Repeat("x", DefaultRequestIDLengthLimit+10))
	serve(RequestID()(h), r)
	if len(seen) != DefaultRequestIDLengthLimit {
		t.Fatalf("expected the caller id truncated to %d, got %d", DefaultRequestIDLengthLimit, len(seen))
	}
}

func TestRateLimit(t *testing.T) {
	log, _ := test.NewNullLogger()

	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.Respond(ctx, w, "ok", http.StatusOK)
	}
	lim := rate.NewLimiter(1, 100, rate.Every(time.Hour))
	mw := web.WrapMiddleware([]web.Middleware{Errors(log), RateLimit(lim)}, h)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:5000"
	if w := serve(mw, r); w.Code != http.StatusOK {
		t.Fatalf("first request: expected status %d, got %d", http.StatusOK, w.Code)
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:5001"
	if w := serve(mw, r); w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected status %d, got %d", http.StatusTooManyRequests, w.Code)
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.2:5000"
	if w := serve(mw, r); w.Code != http.StatusOK {
		t.Fatalf("other client: expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name string
		path string
		vars map[string]string
		exp  logrus.Fields
	}{
		{
			name: "enrollment",
			path: "/api/v1/cart/stu@example.com?class_type=enrolled&id=64b7f3c2a1e4d5f6a7b8c9d0",
			vars: map[string]string{"email": "stu@example.com"},
			exp:  logrus.Fields{"email": "stu@example.com", "class_id": "64b7f3c2a1e4d5f6a7b8c9d0", "class_type": "enrolled"},
		},
		{
			name: "cart removal",
			path: "/api/v1/cart?email=stu@example.com&id=drums-101",
			exp:  logrus.Fields{"email": "stu@example.com", "class_id": "drums-101"},
		},
		{
			name: "class review",
			path: "/api/v1/classes/64b7f3c2a1e4d5f6a7b8c9d1",
			vars: map[string]string{"id": "64b7f3c2a1e4d5f6a7b8c9d1"},
			exp:  logrus.Fields{"class_id": "64b7f3c2a1e4d5f6a7b8c9d1"},
		},
		{
			name: "listing",
			path: "/api/v1/users",
			exp:  logrus.Fields{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, hook := test.NewNullLogger()

			h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
				return web.Respond(ctx, w, "ok", http.StatusAccepted)
			}

			r := httptest.NewRequest(http.MethodPatch, tt.path, nil)
			if tt.vars != nil {
				r = mux.SetURLVars(r, tt.vars)
			}
			serve(Logger(log)(h), r)

			entry := hook.LastEntry()
			if entry == nil || entry.Message != "completed" {
				t.Fatal("expected the completed entry")
			}
			if entry.Data["statuscode"] != http.StatusAccepted {
				t.Fatalf("expected status %d in the entry, got %v", http.StatusAccepted, entry.Data["statuscode"])
			}
			for _, k := range []string{"email", "class_id", "class_type"} {
				if entry.Data[k] != tt.exp[k] {
					t.Fatalf("field %s: expected %v, got %v", k, tt.exp[k], entry.Data[k])
				}
			}
		})
	}
}
