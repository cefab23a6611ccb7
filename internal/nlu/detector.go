package nlu

import "context"

// Intent is the classifier's top prediction for a message.
type Intent struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

type Entity struct {
	Entity     string  `json:"entity"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence_entity"`
}

type Result struct {
	Intent    Intent   `json:"intent"`
	Entities  []Entity `json:"entities"`
	ReplyText string   `json:"text"`
}

// EntityValue returns the first extracted value for an entity name, empty
// when the entity was not extracted.
func (r *Result) EntityValue(name string) string {
	for _, e := range r.Entities {
		if e.Entity == name {
			return e.Value
		}
	}
	return ""
}

// IntentDetector is the NLU capability boundary. Implementations are
// swappable black boxes; the booking flow only depends on this contract.
type IntentDetector interface {
	DetectIntent(ctx context.Context, message, sessionID string) (*Result, error)
}

// EventSender is the optional tracker side of the contract: detectors
// that keep conversation state server-side accept custom events about
// outcomes they could not observe themselves.
type EventSender interface {
	SendEvent(ctx context.Context, sessionID string, eventType string, data map[string]any)
}
