package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/irsalhamdi/melody-institute/api/web"
	"github.com/irsalhamdi/melody-institute/api/weberr"
	"github.com/irsalhamdi/melody-institute/rate"
)

// RateLimit rejects requests from clients that exhausted their bucket in lim.
// Clients are keyed by the host part of the remote address.
func RateLimit(lim *rate.Limiter) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !lim.Check(ip) {
				return weberr.TooManyRequests(
					errors.New("rate limit exceeded"),
					weberr.WithFields(map[string]interface{}{"client": ip}),
				)
			}

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
