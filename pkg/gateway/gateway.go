// Package gateway talks to the external card payment gateway.
//
// The service only consumes one operation: create a payment intent for an
// integer minor-unit amount and hand the resulting client secret back to the
// end caller, who completes the charge out-of-band.
package gateway

import "context"

// Intent is the gateway's answer to a create-intent request.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// IntentCreator is the narrow contract the payment finalizer depends on.
// amount is in minor currency units (cents for usd).
type IntentCreator interface {
	CreateIntent(ctx context.Context, amount int64, currency string, methods []string) (*Intent, error)
}
