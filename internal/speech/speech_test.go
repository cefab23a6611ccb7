package speech

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloudProvider_Transcribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/recognize", r.URL.Path)
		require.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x01, 0x02, 0x03}, body)

		json.NewEncoder(w).Encode(map[string]string{"transcript": "book a haircut"})
	}))
	defer srv.Close()

	p := NewCloudProvider(srv.URL, "test-key")

	text, err := p.Transcribe(context.Background(), []byte{0x01, 0x02, 0x03})
	require.NoError(t, err)
	assert.Equal(t, "book a haircut", text)
}

func TestCloudProvider_Synthesize(t *testing.T) {
	audio := []byte("mp3-bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/synthesize", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "see you at ten", body["text"])

		// no api key configured for this provider
		assert.Empty(t, r.Header.Get("Authorization"))

		w.Write(audio)
	}))
	defer srv.Close()

	p := NewCloudProvider(srv.URL, "")

	got, err := p.Synthesize(context.Background(), "see you at ten")
	require.NoError(t, err)
	assert.Equal(t, audio, got)
}

func TestCloudProvider_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewCloudProvider(srv.URL, "k")

	_, err := p.Transcribe(context.Background(), []byte("a"))
	assert.ErrorContains(t, err, "unexpected status 503")

	_, err = p.Synthesize(context.Background(), "text")
	assert.ErrorContains(t, err, "unexpected status 503")
}

func TestDisabled(t *testing.T) {
	var d Disabled

	_, err := d.Transcribe(context.Background(), []byte("a"))
	assert.ErrorIs(t, err, ErrDisabled)

	_, err = d.Synthesize(context.Background(), "text")
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestSelect(t *testing.T) {
	rec, syn := Select("", "")
	assert.IsType(t, Disabled{}, rec)
	assert.IsType(t, Disabled{}, syn)

	rec, syn = Select("http://speech.local", "k")
	assert.IsType(t, &CloudProvider{}, rec)
	assert.IsType(t, &CloudProvider{}, syn)
}
