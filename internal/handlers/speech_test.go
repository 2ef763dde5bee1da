package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sylvanlabs/sylvan-server/internal/clients"
	"github.com/sylvanlabs/sylvan-server/internal/models"
	"github.com/sylvanlabs/sylvan-server/internal/services"
)

type stubTranscriber struct{ transcript string }

func (s *stubTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	return s.transcript, nil
}

type recordingCompleter struct {
	reply    string
	received []clients.Message
}

func (r *recordingCompleter) Complete(ctx context.Context, messages []clients.Message) (string, error) {
	r.received = messages
	return r.reply, nil
}

type stubSynthesizer struct{}

func (s *stubSynthesizer) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	return []byte("audio"), nil
}

type stubExcursionSource struct {
	excursion *models.Excursion
	calls     int
}

func (s *stubExcursionSource) ActiveExcursion(userID uint) (*models.Excursion, error) {
	s.calls++
	return s.excursion, nil
}

func newVoiceChatApp(completer *recordingCompleter, source *stubExcursionSource, authed bool) *fiber.App {
	voice := services.NewVoiceService(&stubTranscriber{transcript: "how am I doing"}, completer, &stubSynthesizer{})

	app := fiber.New()
	if authed {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("userID", uint(7))
			return c.Next()
		})
	}
	SetupSpeechRoutes(app, voice, nil, source)
	return app
}

func postVoiceChat(t *testing.T, app *fiber.App, body map[string]interface{}) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/voice-chat", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestVoiceChatDerivesActiveExcursionContext(t *testing.T) {
	started := time.Now().Add(-10 * time.Minute)
	source := &stubExcursionSource{
		excursion: &models.Excursion{
			UserID:       7,
			Title:        "Morning walk",
			Status:       models.ExcursionActive,
			DurationMin:  45,
			LocationName: "Riverside Park",
			StartedAt:    &started,
		},
	}
	completer := &recordingCompleter{reply: "You're doing great."}
	app := newVoiceChatApp(completer, source, true)

	resp := postVoiceChat(t, app, map[string]interface{}{
		"audio_base64": base64.StdEncoding.EncodeToString([]byte("audio")),
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	if source.calls != 1 {
		t.Fatalf("excursion lookup called %d times, want 1", source.calls)
	}
	if len(completer.received) == 0 || completer.received[0].Role != "system" {
		t.Fatalf("system prompt missing from completion messages")
	}

	prompt := completer.received[0].Content
	if !strings.Contains(prompt, "guided excursion") {
		t.Error("excursion guidance missing from derived context")
	}
	if !strings.Contains(prompt, "of 45 planned minutes elapsed") {
		t.Error("progress line missing from derived context")
	}
	if !strings.Contains(prompt, "Current location: Riverside Park.") {
		t.Error("location line missing from derived context")
	}
}

func TestVoiceChatCallerContextWins(t *testing.T) {
	source := &stubExcursionSource{
		excursion: &models.Excursion{Status: models.ExcursionActive, DurationMin: 45, LocationName: "Riverside Park"},
	}
	completer := &recordingCompleter{reply: "ok"}
	app := newVoiceChatApp(completer, source, true)

	resp := postVoiceChat(t, app, map[string]interface{}{
		"audio_base64": base64.StdEncoding.EncodeToString([]byte("audio")),
		"user_context": map[string]interface{}{
			"excursion": map[string]interface{}{
				"active":           true,
				"planned_minutes":  20,
				"current_location": "Cedar Grove",
			},
		},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	if source.calls != 0 {
		t.Errorf("excursion lookup called %d times despite caller-supplied context", source.calls)
	}
	prompt := completer.received[0].Content
	if !strings.Contains(prompt, "Current location: Cedar Grove.") {
		t.Error("caller-supplied location missing from prompt")
	}
	if strings.Contains(prompt, "Riverside Park") {
		t.Error("stored excursion overrode the caller's context")
	}
}

func TestVoiceChatUnauthenticatedSkipsExcursionLookup(t *testing.T) {
	source := &stubExcursionSource{
		excursion: &models.Excursion{Status: models.ExcursionActive, DurationMin: 45},
	}
	completer := &recordingCompleter{reply: "ok"}
	app := newVoiceChatApp(completer, source, false)

	resp := postVoiceChat(t, app, map[string]interface{}{
		"audio_base64": base64.StdEncoding.EncodeToString([]byte("audio")),
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	if source.calls != 0 {
		t.Errorf("excursion lookup called %d times for anonymous caller", source.calls)
	}
	if strings.Contains(completer.received[0].Content, "guided excursion") {
		t.Error("excursion guidance present without any context")
	}
}

func TestVoiceChatRejectsWrongMethod(t *testing.T) {
	app := newVoiceChatApp(&recordingCompleter{reply: "ok"}, &stubExcursionSource{}, false)

	req := httptest.NewRequest(http.MethodGet, "/voice-chat", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", resp.StatusCode)
	}
}
