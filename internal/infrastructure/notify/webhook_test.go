package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookNotifier_Notify(t *testing.T) {
	var received Notification
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, time.Second)
	require.True(t, n.Enabled())

	err := n.Notify(context.Background(), Notification{
		Message:  "Successfully processed sales data",
		From:     "2020-03-01",
		To:       "2020-03-10",
		Category: "all",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "Successfully processed sales data", received.Message)
	assert.Equal(t, "2020-03-01", received.From)
	assert.Equal(t, "2020-03-10", received.To)
	assert.Equal(t, "all", received.Category)
}

func TestWebhookNotifier_PayloadShape(t *testing.T) {
	data, err := json.Marshal(Notification{Message: "m", From: "a", To: "b", Category: "jewelery"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"m","from":"a","to":"b","category":"jewelery"}`, string(data))
}

func TestWebhookNotifier_Disabled(t *testing.T) {
	n := NewWebhookNotifier("", 0)
	assert.False(t, n.Enabled())
	assert.NoError(t, n.Notify(context.Background(), Notification{}))

	var nilNotifier *WebhookNotifier
	assert.NoError(t, nilNotifier.Notify(context.Background(), Notification{}))
}

func TestWebhookNotifier_Failures(t *testing.T) {
	t.Run("non 2xx is not retried", func(t *testing.T) {
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls++
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		err := NewWebhookNotifier(srv.URL, time.Second).Notify(context.Background(), Notification{})
		var deliveryErr *NotificationDeliveryError
		require.True(t, errors.As(err, &deliveryErr))
		assert.Equal(t, http.StatusBadGateway, deliveryErr.StatusCode)
		assert.Equal(t, 1, calls)
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		err := NewWebhookNotifier(url, time.Second).Notify(context.Background(), Notification{})
		var deliveryErr *NotificationDeliveryError
		require.True(t, errors.As(err, &deliveryErr))
		assert.Zero(t, deliveryErr.StatusCode)
		assert.Error(t, deliveryErr.Unwrap())
	})
}

func TestWebhookNotifier_NotifySalesProcessed(t *testing.T) {
	var received map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
	}))
	defer srv.Close()

	err := NewWebhookNotifier(srv.URL, time.Second).NotifySalesProcessed(context.Background(), "2020-03-01", "2020-03-10", "jewelery")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"message":  "Successfully processed sales data",
		"from":     "2020-03-01",
		"to":       "2020-03-10",
		"category": "jewelery",
	}, received)
}
