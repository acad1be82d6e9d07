package payment

import (
	"context"
	"math"
)

// Gateway creates a payment for amount, expressed in the smallest unit of
// currency, and returns the token the client completes it with.
type Gateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (string, error)
}

type IntentNew struct {
	Price float64 `json:"price" validate:"gt=0,lte=1000000"`
}

type Intent struct {
	ClientSecret string `json:"clientSecret"`
}

// Amount converts a price in major units into the smallest currency unit,
// assuming two decimals.
func Amount(price float64) int64 {
	return int64(math.Round(price * 100))
}
