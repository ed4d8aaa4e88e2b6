package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bistrohq/bistro/pkg/metrics"
)

const clientTimeout = 15 * time.Second

// StripeClient creates payment intents over the gateway's REST API.
// Authentication is basic auth with the secret key as username and an empty
// password. Failures come back synchronously; no retry is attempted.
type StripeClient struct {
	secretKey string
	baseURL   string
	http      *http.Client
}

// NewStripeClient builds a client for the given API base URL (e.g.
// https://api.stripe.com) and secret key.
func NewStripeClient(baseURL, secretKey string) *StripeClient {
	return &StripeClient{
		secretKey: secretKey,
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: clientTimeout},
	}
}

// CreateIntent requests a payment intent for amount minor units.
func (c *StripeClient) CreateIntent(ctx context.Context, amount int64, currency string, methods []string) (*Intent, error) {
	if c.secretKey == "" {
		return nil, fmt.Errorf("gateway: missing secret key")
	}
	if amount <= 0 || currency == "" {
		return nil, fmt.Errorf("gateway: invalid intent params (amount=%d currency=%q)", amount, currency)
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", currency)
	for _, m := range methods {
		form.Add("payment_method_types[]", m)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.secretKey, "")

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveGateway("error", start)
		return nil, fmt.Errorf("gateway: create intent: %w", err)
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		metrics.ObserveGateway("error", start)
		return nil, fmt.Errorf("gateway: create intent failed: %s (%d)", string(body), res.StatusCode)
	}
	metrics.ObserveGateway("ok", start)

	var intent Intent
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, fmt.Errorf("gateway: parse intent json: %w", err)
	}
	return &intent, nil
}
