package payments_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plexdi/studio/modules/billing/infrastructure/payments"
)

func TestClient_CreateCheckoutSession(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/payments/createCheckoutSession", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "banner", body["item"])
		assert.Equal(t, "standard", body["tier"])
		assert.Equal(t, float64(1), body["amount"])
		assert.Equal(t, "42", body["CommissionID"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"url":"https://pay/session-1"}`))
	}))
	defer srv.Close()

	client := payments.NewClientWithBaseURL(srv.URL, time.Second)
	url, err := client.CreateCheckoutSession(context.Background(), payments.CheckoutParams{
		Item:         "banner",
		Tier:         "standard",
		Amount:       1,
		CommissionID: "42",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://pay/session-1", url)
}

func TestClient_DefaultsAmountToOne(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(1), body["amount"])
		_, _ = w.Write([]byte(`{"url":"https://pay/x"}`))
	}))
	defer srv.Close()

	client := payments.NewClientWithBaseURL(srv.URL, time.Second)
	_, err := client.CreateCheckoutSession(context.Background(), payments.CheckoutParams{CommissionID: "42"})
	require.NoError(t, err)
}

func TestClient_SurfacesServerMessage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"message":"card declined"}`))
	}))
	defer srv.Close()

	client := payments.NewClientWithBaseURL(srv.URL, time.Second)
	_, err := client.CreateCheckoutSession(context.Background(), payments.CheckoutParams{CommissionID: "42"})
	require.Error(t, err)

	var checkoutErr *payments.CheckoutError
	require.ErrorAs(t, err, &checkoutErr)
	assert.Equal(t, "card declined", checkoutErr.Message)
}

func TestClient_GenericErrorWithoutMessage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := payments.NewClientWithBaseURL(srv.URL, time.Second)
	_, err := client.CreateCheckoutSession(context.Background(), payments.CheckoutParams{CommissionID: "42"})
	require.Error(t, err)

	var checkoutErr *payments.CheckoutError
	require.ErrorAs(t, err, &checkoutErr)
	assert.Equal(t, "Server error: 500", checkoutErr.Message)
}

func TestClient_RejectsEmptyRedirectURL(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := payments.NewClientWithBaseURL(srv.URL, time.Second)
	_, err := client.CreateCheckoutSession(context.Background(), payments.CheckoutParams{CommissionID: "42"})
	require.Error(t, err)
}
