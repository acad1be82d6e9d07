package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/irsalhamdi/melody-institute/api/web"
	"github.com/irsalhamdi/melody-institute/api/weberr"
	"github.com/plutov/paypal/v4"
	"github.com/stripe/stripe-go/v74"
	stripecl "github.com/stripe/stripe-go/v74/client"
	mock "github.com/stripe/stripe-mock/param"
)

type fakeGateway struct {
	amount   int64
	currency string
	calls    int
	err      error
}

func (f *fakeGateway) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	f.calls++
	f.amount = amount
	f.currency = currency
	if f.err != nil {
		return "", f.err
	}
	return "pi_123_secret_456", nil
}

func TestAmount(t *testing.T) {
	tests := []struct {
		price float64
		exp   int64
	}{
		{49.99, 4999},
		{0.29, 29},
		{19.999, 2000},
		{1, 100},
		{1234.5, 123450},
	}

	for _, tt := range tests {
		if got := Amount(tt.price); got != tt.exp {
			t.Fatalf("price %v: expected %d, got %d", tt.price, tt.exp, got)
		}
	}
}

func TestHandleCreateIntent(t *testing.T) {
	gw := &fakeGateway{}
	h := HandleCreateIntent(gw, "usd")

	r := httptest.NewRequest(http.MethodPost, "/api/v1/create-payment-intent", strings.NewReader(`{"price": 49.99}`))
	w := httptest.NewRecorder()
	if err := h(r.Context(), w, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gw.amount != 4999 || gw.currency != "usd" {
		t.Fatalf("expected a 4999 usd intent, got %d %s", gw.amount, gw.currency)
	}

	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("cannot decode response: %v", err)
	}
	if body["clientSecret"] != "pi_123_secret_456" {
		t.Fatalf("unexpected client secret %v", body["clientSecret"])
	}
	if len(body) != 1 {
		t.Fatalf("expected the client secret only, got %v", body)
	}
}

func TestHandleCreateIntentInvalid(t *testing.T) {
	for _, payload := range []string{`{"price": 0}`, `{"price": -3}`, `{"price": 1000000.01}`, `{"price": 1e300}`, `{}`, `[1]`, ``} {
		gw := &fakeGateway{}
		h := HandleCreateIntent(gw, "usd")

		r := httptest.NewRequest(http.MethodPost, "/api/v1/create-payment-intent", strings.NewReader(payload))
		err := h(r.Context(), httptest.NewRecorder(), r)

		_, status, ok := weberr.Response(err)
		if !ok || status != http.StatusBadRequest {
			t.Fatalf("payload %q: expected a bad request, got %v", payload, err)
		}
		if gw.calls != 0 {
			t.Fatalf("payload %q: the gateway must not be called", payload)
		}
	}
}

func TestHandleCreateIntentGatewayError(t *testing.T) {
	cause := errors.New("card network down")
	h := HandleCreateIntent(&fakeGateway{err: cause}, "usd")

	r := httptest.NewRequest(http.MethodPost, "/api/v1/create-payment-intent", strings.NewReader(`{"price": 10}`))
	err := h(r.Context(), httptest.NewRecorder(), r)
	if !errors.Is(err, cause) {
		t.Fatalf("expected the gateway error, got %v", err)
	}
	if _, _, ok := weberr.Response(err); ok {
		t.Fatal("gateway failures must surface as internal errors")
	}
}

func formList(v any) []any {
	switch vv := v.(type) {
	case []any:
		return vv
	case map[string]any:
		out := make([]any, 0, len(vv))
		for _, it := range vv {
			out = append(out, it)
		}
		return out
	}
	return nil
}

func TestStripe(t *testing.T) {
	var got map[string]any
	intents := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params, err := mock.ParseParams(r)
		if err != nil {
			web.Respond(context.Background(), w, nil, http.StatusBadRequest)
			return
		}
		got = params

		pi := map[string]any{
			"id":            "pi_123",
			"object":        "payment_intent",
			"amount":        4999,
			"currency":      "usd",
			"client_secret": "pi_123_secret_456",
		}
		web.Respond(context.Background(), w, pi, http.StatusOK)
	})

	router := mux.NewRouter()
	router.Handle("/v1/payment_intents", intents).Methods(http.MethodPost)
	srv := httptest.NewServer(router)
	defer srv.Close()

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL: stripe.String(srv.URL),
	})
	api := &stripecl.API{}
	api.Init("sk_test_123", &stripe.Backends{API: backend})

	secret, err := NewStripe(api).CreateIntent(context.Background(), 4999, "usd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "pi_123_secret_456" {
		t.Fatalf("unexpected secret %q", secret)
	}

	if got["amount"] != "4999" || got["currency"] != "usd" {
		t.Fatalf("unexpected intent params %v", got)
	}
	methods := formList(got["payment_method_types"])
	if len(methods) != 1 || methods[0] != "card" {
		t.Fatalf("expected card as the only payment method, got %v", got["payment_method_types"])
	}
}

func TestPaypal(t *testing.T) {
	var units []paypal.PurchaseUnitRequest

	token := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := map[string]any{"access_token": "A21", "token_type": "Bearer", "expires_in": 3600}
		web.Respond(context.Background(), w, tok, http.StatusOK)
	})

	checkout := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var pu struct {
			Intent string                       `json:"intent"`
			Units  []paypal.PurchaseUnitRequest `json:"purchase_units"`
		}
		if err := json.NewDecoder(r.Body).Decode(&pu); err != nil || pu.Intent != "CAPTURE" {
			web.Respond(context.Background(), w, nil, http.StatusBadRequest)
			return
		}
		units = pu.Units

		web.Respond(context.Background(), w, paypal.Order{ID: "5O190127TN364715T", Status: "CREATED"}, http.StatusCreated)
	})

	router := mux.NewRouter()
	router.Handle("/v1/oauth2/token", token).Methods(http.MethodPost)
	router.Handle("/v2/checkout/orders", checkout).Methods(http.MethodPost)
	srv := httptest.NewServer(router)
	defer srv.Close()

	pp, err := paypal.NewClient("client", "secret", srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := pp.GetAccessToken(context.Background()); err != nil {
		t.Fatal(err)
	}

	id, err := NewPaypal(pp).CreateIntent(context.Background(), 4999, "usd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "5O190127TN364715T" {
		t.Fatalf("unexpected order id %q", id)
	}

	if len(units) != 1 || units[0].Amount == nil {
		t.Fatalf("expected a single purchase unit, got %v", units)
	}
	if units[0].Amount.Value != "49.99" || units[0].Amount.Currency != "USD" {
		t.Fatalf("unexpected amount %+v", units[0].Amount)
	}
}
