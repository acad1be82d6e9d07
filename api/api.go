package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/irsalhamdi/melody-institute/api/middleware"
	"github.com/irsalhamdi/melody-institute/api/web"
	"github.com/irsalhamdi/melody-institute/core/cart"
	"github.com/irsalhamdi/melody-institute/core/class"
	"github.com/irsalhamdi/melody-institute/core/enrollment"
	"github.com/irsalhamdi/melody-institute/core/payment"
	"github.com/irsalhamdi/melody-institute/core/user"
	"github.com/irsalhamdi/melody-institute/rate"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

type APIConfig struct {
	CorsOrigin string
	Log        logrus.FieldLogger
	DB         *mongo.Database
	Payment    payment.Gateway
	Currency   string
	Limiter    *rate.Limiter
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	// Rejections from the limiter still carry the CORS headers.
	if cfg.Limiter != nil {
		a.mw = append(a.mw, middleware.RateLimit(cfg.Limiter))
	}

	enr := enrollment.New(cfg.DB, cfg.Log)

	a.Handle(http.MethodGet, "/", handleRoot)

	a.Handle(http.MethodGet, "/api/v1/users", user.HandleList(cfg.DB))
	a.Handle(http.MethodGet, "/api/v1/users/{email}", user.HandleShow(cfg.DB))
	a.Handle(http.MethodPost, "/api/v1/users", user.HandleCreate(cfg.DB))
	a.Handle(http.MethodPatch, "/api/v1/users/{email}", user.HandleUpdate(cfg.DB))
	a.Handle(http.MethodPatch, "/api/v1/users", user.HandleUpdateRole(cfg.DB))

	a.Handle(http.MethodGet, "/api/v1/classes", class.HandleList(cfg.DB))
	a.Handle(http.MethodGet, "/api/v1/classes/{email}", class.HandleListByInstructor(cfg.DB))
	a.Handle(http.MethodPost, "/api/v1/classes", class.HandleCreate(cfg.DB))
	a.Handle(http.MethodPatch, "/api/v1/classes/{id}", class.HandleUpdateStatus(cfg.DB))

	a.Handle(http.MethodGet, "/api/v1/cart/{email}", cart.HandleShow(cfg.DB))
	a.Handle(http.MethodPost, "/api/v1/cart", cart.HandleCreate(cfg.DB))
	a.Handle(http.MethodPatch, "/api/v1/cart/{email}", cart.HandleUpdate(cfg.DB, enr))
	a.Handle(http.MethodDelete, "/api/v1/cart", cart.HandleDeleteItem(cfg.DB))
	a.Handle(http.MethodDelete, "/api/v1/cart/", cart.HandleDeleteItem(cfg.DB))

	a.Handle(http.MethodPost, "/api/v1/create-payment-intent", payment.HandleCreateIntent(cfg.Payment, cfg.Currency))

	return a.Router
}

func handleRoot(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, "Melody Institute server is running", http.StatusOK)
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {

	handler = web.WrapMiddleware(mw, handler)

	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {

			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}
