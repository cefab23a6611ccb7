package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/salonvoice/booking-api/internal/audio"
	"github.com/salonvoice/booking-api/internal/conversation"
	"github.com/salonvoice/booking-api/internal/httperr"
	"github.com/salonvoice/booking-api/internal/httpresp"
	"github.com/salonvoice/booking-api/internal/middleware"
	"github.com/salonvoice/booking-api/internal/speech"
)

// VoiceHandler is the spoken front door: audio in, intent handling via
// the conversation flow, synthesized audio out.
type VoiceHandler struct {
	recognizer  speech.Recognizer
	synthesizer speech.Synthesizer
	audioStore  audio.Store
	flow        *conversation.Flow
}

func NewVoiceHandler(
	recognizer speech.Recognizer,
	synthesizer speech.Synthesizer,
	audioStore audio.Store,
	flow *conversation.Flow,
) *VoiceHandler {
	return &VoiceHandler{
		recognizer:  recognizer,
		synthesizer: synthesizer,
		audioStore:  audioStore,
		flow:        flow,
	}
}

type VoiceResponse struct {
	SessionID string              `json:"session_id"`
	Text      string              `json:"text"`
	AudioURL  string              `json:"audio_url,omitempty"`
	Reply     *conversation.Reply `json:"reply"`
}

func (h *VoiceHandler) ProcessCommand(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextCustomerID).(uint)

	file, _, err := c.Request.FormFile("audio")
	if err != nil {
		httperr.BadRequest(c, "missing_audio", "An audio file is required.")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		httperr.BadRequest(c, "invalid_audio", "Could not read the audio file.")
		return
	}

	transcript, err := h.recognizer.Transcribe(c.Request.Context(), content)
	if err != nil {
		if errors.Is(err, speech.ErrDisabled) {
			httperr.Write(c, http.StatusServiceUnavailable, "speech_unavailable", "Speech recognition is not configured.")
			return
		}
		httperr.Internal(c, "transcription_failed", "Could not transcribe the audio.")
		return
	}

	reply, err := h.flow.HandleMessage(
		c.Request.Context(),
		customerID,
		c.PostForm("session_id"),
		transcript,
	)
	if err != nil {
		httperr.WriteDomain(c, err)
		return
	}

	resp := VoiceResponse{
		SessionID: reply.SessionID,
		Text:      reply.Text,
		Reply:     reply,
	}

	if url, ok := h.synthesizeReply(c, reply.Text); ok {
		resp.AudioURL = url
	}

	httpresp.OK(c, resp)
}

type TextToSpeechRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *VoiceHandler) TextToSpeech(c *gin.Context) {
	var req TextToSpeechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "text is required.")
		return
	}

	url, ok := h.synthesizeReply(c, req.Text)
	if !ok {
		httperr.Write(c, http.StatusServiceUnavailable, "speech_unavailable", "Speech synthesis is not configured.")
		return
	}

	httpresp.OK(c, gin.H{"audio_url": url})
}

// synthesizeReply converts text to audio and stores it, degrading to
// text-only (false) when synthesis is disabled or storage fails.
func (h *VoiceHandler) synthesizeReply(c *gin.Context, text string) (string, bool) {
	if text == "" {
		return "", false
	}

	content, err := h.synthesizer.Synthesize(c.Request.Context(), text)
	if err != nil {
		return "", false
	}

	key := uuid.NewString() + ".mp3"
	url, err := h.audioStore.Put(c.Request.Context(), key, content, "audio/mpeg")
	if err != nil {
		return "", false
	}

	return url, true
}
