package speech

import (
	"context"
	"errors"
	"log"
)

// Recognizer turns spoken audio into text.
type Recognizer interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Synthesizer turns reply text into spoken audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// ErrDisabled marks calls against the disabled variant. The voice handler
// degrades to text-only replies when it sees this.
var ErrDisabled = errors.New("speech provider disabled")

// Disabled is the fallback variant when no provider is configured.
type Disabled struct{}

func (Disabled) Transcribe(ctx context.Context, audio []byte) (string, error) {
	return "", ErrDisabled
}

func (Disabled) Synthesize(ctx context.Context, text string) ([]byte, error) {
	return nil, ErrDisabled
}

// Select picks the provider variant once at startup. The fallback is a
// construction-time decision, logged here and nowhere else.
func Select(providerURL, apiKey string) (Recognizer, Synthesizer) {
	if providerURL == "" {
		log.Println("speech: no provider configured, voice replies degrade to text only")
		return Disabled{}, Disabled{}
	}

	p := NewCloudProvider(providerURL, apiKey)
	return p, p
}
