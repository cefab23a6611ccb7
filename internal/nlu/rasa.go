package nlu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// RasaDetector talks to a Rasa server over its REST surface: /model/parse
// for intent and entities, the rest webhook for the reply text.
type RasaDetector struct {
	baseURL string
	client  *http.Client
}

func NewRasaDetector(baseURL string) *RasaDetector {
	return &RasaDetector{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type parseResponse struct {
	Intent   Intent   `json:"intent"`
	Entities []Entity `json:"entities"`
}

type webhookMessage struct {
	Text string `json:"text"`
}

func (d *RasaDetector) DetectIntent(
	ctx context.Context,
	message string,
	sessionID string,
) (*Result, error) {

	var parsed parseResponse
	if err := d.post(ctx, "/model/parse", map[string]any{"text": message}, &parsed); err != nil {
		return nil, fmt.Errorf("rasa parse: %w", err)
	}

	var replies []webhookMessage
	if err := d.post(ctx, "/webhooks/rest/webhook", map[string]any{
		"sender":  sessionID,
		"message": message,
	}, &replies); err != nil {
		return nil, fmt.Errorf("rasa webhook: %w", err)
	}

	res := &Result{
		Intent:   parsed.Intent,
		Entities: parsed.Entities,
	}
	if len(replies) > 0 {
		res.ReplyText = replies[0].Text
	}

	return res, nil
}

// SendEvent pushes a custom event onto the conversation tracker. Failures
// are logged and swallowed so a tracker hiccup never breaks a booking.
func (d *RasaDetector) SendEvent(
	ctx context.Context,
	sessionID string,
	eventType string,
	data map[string]any,
) {
	path := fmt.Sprintf("/conversations/%s/tracker/events", sessionID)

	events := []map[string]any{{
		"event": eventType,
		"name":  eventType,
		"data":  data,
	}}

	if err := d.post(ctx, path, events, nil); err != nil {
		log.Printf("rasa tracker event %q: %v", eventType, err)
	}
}

func (d *RasaDetector) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.baseURL+path,
		bytes.NewReader(payload),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var (
	_ IntentDetector = (*RasaDetector)(nil)
	_ EventSender    = (*RasaDetector)(nil)
)
