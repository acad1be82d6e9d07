package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/irsalhamdi/melody-institute/rate"
	"github.com/sirupsen/logrus"
)

func TestRateLimitedResponseKeepsCors(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	lim := rate.NewLimiter(1, 10, rate.Every(time.Hour))
	defer lim.Stop()

	h := APIMux(APIConfig{CorsOrigin: "*", Log: log, Limiter: lim, Currency: "usd"})

	tests := []struct {
		status int
	}{
		{http.StatusOK},
		{http.StatusTooManyRequests},
	}

	for i, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "10.0.0.1:5000"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		if w.Code != tt.status {
			t.Fatalf("request %d: expected status %d, got %d", i, tt.status, w.Code)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Fatalf("request %d: expected the CORS origin header, got %q", i, got)
		}
	}
}
