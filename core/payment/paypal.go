package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/plutov/paypal/v4"
)

type orderCreator interface {
	CreateOrder(ctx context.Context, intent string, purchaseUnits []paypal.PurchaseUnitRequest, payer *paypal.CreateOrderPayer, appContext *paypal.ApplicationContext) (*paypal.Order, error)
}

// Paypal creates a CAPTURE order; the order id is what the PayPal buttons on
// the client need to finish the payment.
type Paypal struct {
	orders orderCreator
}

func NewPaypal(pp *paypal.Client) *Paypal {
	return &Paypal{orders: pp}
}

func (p *Paypal) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	units := []paypal.PurchaseUnitRequest{{
		Amount: &paypal.PurchaseUnitAmount{
			Currency: strings.ToUpper(currency),
			Value:    fmt.Sprintf("%d.%02d", amount/100, amount%100),
		},
	}}

	ord, err := p.orders.CreateOrder(ctx, "CAPTURE", units, nil, &paypal.ApplicationContext{})
	if err != nil {
		return "", fmt.Errorf("creating paypal order: %w", err)
	}
	return ord.ID, nil
}
