package nlu

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRasaDetector_DetectIntent(t *testing.T) {
	var webhookBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		switch r.URL.Path {
		case "/model/parse":
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "book a haircut tomorrow", body["text"])

			json.NewEncoder(w).Encode(map[string]any{
				"intent": map[string]any{"name": "booking", "confidence": 0.92},
				"entities": []map[string]any{
					{"entity": "service", "value": "Haircut", "confidence_entity": 0.88},
					{"entity": "date", "value": "2024-03-12"},
				},
			})

		case "/webhooks/rest/webhook":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&webhookBody))
			json.NewEncoder(w).Encode([]map[string]any{
				{"text": "Sure, what time works for you?"},
			})

		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	res, err := NewRasaDetector(srv.URL).DetectIntent(
		context.Background(), "book a haircut tomorrow", "sess-1",
	)
	require.NoError(t, err)

	assert.Equal(t, "booking", res.Intent.Name)
	assert.InDelta(t, 0.92, res.Intent.Confidence, 1e-9)
	assert.Equal(t, "Haircut", res.EntityValue("service"))
	assert.Equal(t, "2024-03-12", res.EntityValue("date"))
	assert.Equal(t, "", res.EntityValue("stylist"))
	assert.Equal(t, "Sure, what time works for you?", res.ReplyText)

	// the webhook call carries the session as the sender
	assert.Equal(t, "sess-1", webhookBody["sender"])
	assert.Equal(t, "book a haircut tomorrow", webhookBody["message"])
}

func TestRasaDetector_NoReplyMessages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/model/parse":
			json.NewEncoder(w).Encode(map[string]any{
				"intent": map[string]any{"name": "nlu_fallback", "confidence": 0.3},
			})
		case "/webhooks/rest/webhook":
			json.NewEncoder(w).Encode([]map[string]any{})
		}
	}))
	defer srv.Close()

	res, err := NewRasaDetector(srv.URL).DetectIntent(context.Background(), "???", "sess-2")
	require.NoError(t, err)
	assert.Equal(t, "nlu_fallback", res.Intent.Name)
	assert.Empty(t, res.ReplyText)
}

func TestRasaDetector_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewRasaDetector(srv.URL).DetectIntent(context.Background(), "hi", "sess-3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
}

func TestRasaDetector_SendEventSwallowsFailure(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	// must not panic or surface the error
	NewRasaDetector(srv.URL).SendEvent(
		context.Background(), "sess-4", "booking_confirmed", map[string]any{"id": 1},
	)
	assert.Equal(t, "/conversations/sess-4/tracker/events", gotPath)
}
