package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// CloudProvider is an HTTP speech service: one POST per capability,
// linear-16 audio in, MP3 audio out.
type CloudProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewCloudProvider(baseURL, apiKey string) *CloudProvider {
	return &CloudProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type transcribeResponse struct {
	Transcript string `json:"transcript"`
}

func (p *CloudProvider) Transcribe(ctx context.Context, audio []byte) (string, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		p.baseURL+"/v1/recognize",
		bytes.NewReader(audio),
	)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	p.authorize(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("speech recognize: unexpected status %d", resp.StatusCode)
	}

	var out transcribeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}

	return out.Transcript, nil
}

func (p *CloudProvider) Synthesize(ctx context.Context, text string) ([]byte, error) {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		p.baseURL+"/v1/synthesize",
		bytes.NewReader(payload),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	p.authorize(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("speech synthesize: unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func (p *CloudProvider) authorize(req *http.Request) {
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}
}
