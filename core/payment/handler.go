package payment

import (
	"context"
	"fmt"
	"net/http"

	"github.com/irsalhamdi/melody-institute/api/web"
	"github.com/irsalhamdi/melody-institute/api/weberr"
	"github.com/irsalhamdi/melody-institute/validate"
)

// HandleCreateIntent creates a payment for the posted price and answers with
// the client secret only. Retried calls create distinct payments.
func HandleCreateIntent(gw Gateway, currency string) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in IntentNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(in); err != nil {
			return weberr.BadRequest(err)
		}

		secret, err := gw.CreateIntent(ctx, Amount(in.Price), currency)
		if err != nil {
			return fmt.Errorf("creating payment intent: %w", err)
		}

		return web.Respond(ctx, w, Intent{ClientSecret: secret}, http.StatusOK)
	}
}
