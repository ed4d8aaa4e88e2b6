package gateway_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bistrohq/bistro/pkg/gateway"
)

func TestCreateIntent(t *testing.T) {
	var gotPath, gotUser, gotAmount, gotCurrency string
	var gotMethods []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, _, _ = r.BasicAuth()
		require.NoError(t, r.ParseForm())
		gotAmount = r.PostForm.Get("amount")
		gotCurrency = r.PostForm.Get("currency")
		gotMethods = r.PostForm["payment_method_types[]"]

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_123","client_secret":"pi_123_secret_abc","amount":1999,"currency":"usd"}`))
	}))
	defer srv.Close()

	client := gateway.NewStripeClient(srv.URL, "sk_test_xyz")
	intent, err := client.CreateIntent(context.Background(), 1999, "usd", []string{"card"})
	require.NoError(t, err)

	assert.Equal(t, "/v1/payment_intents", gotPath)
	assert.Equal(t, "sk_test_xyz", gotUser)
	assert.Equal(t, "1999", gotAmount)
	assert.Equal(t, "usd", gotCurrency)
	assert.Equal(t, []string{"card"}, gotMethods)

	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, "pi_123_secret_abc", intent.ClientSecret)
	assert.EqualValues(t, 1999, intent.Amount)
}

func TestCreateIntent_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"Your card was declined."}}`, http.StatusPaymentRequired)
	}))
	defer srv.Close()

	client := gateway.NewStripeClient(srv.URL, "sk_test_xyz")
	_, err := client.CreateIntent(context.Background(), 1999, "usd", []string{"card"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "402")
}

func TestCreateIntent_InvalidParams(t *testing.T) {
	client := gateway.NewStripeClient("https://api.example.com", "sk_test_xyz")

	_, err := client.CreateIntent(context.Background(), 0, "usd", []string{"card"})
	assert.Error(t, err)

	_, err = client.CreateIntent(context.Background(), 1999, "", []string{"card"})
	assert.Error(t, err)
}

func TestCreateIntent_MissingSecretKey(t *testing.T) {
	client := gateway.NewStripeClient("https://api.example.com", "")
	_, err := client.CreateIntent(context.Background(), 1999, "usd", []string{"card"})
	assert.Error(t, err)
}
