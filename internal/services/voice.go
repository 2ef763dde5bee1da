package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sylvanlabs/sylvan-server/internal/clients"
	"github.com/sylvanlabs/sylvan-server/internal/logger"
)

// personaPrompt is the fixed persona and safety policy every conversation
// starts from.
const personaPrompt = `You are Fern, a warm and grounded nature-therapy companion. You help people reconnect with the outdoors through short, restorative excursions.

Guidelines:
- Keep replies conversational and brief: two to four sentences, suitable for being read aloud.
- Encourage gentle outdoor activity, mindful observation, and rest. Never push beyond what the person says they can do.
- You are not a medical professional. If someone describes a health emergency, urge them to contact local emergency services.
- Never invent trail conditions, opening hours, or weather. If you do not know, say so and suggest how to check.
- Respect the person's stated limits around fitness and mobility at all times.`

// excursionPrompt is appended only while a guided excursion is active.
const excursionPrompt = `The user is currently on a guided excursion. Weave their progress into your replies, offer real-time guidance for the place they are in, and suggest a moment of mindful observation when it fits. If they sound tired or uncomfortable, offer a shorter way back.`

// ExcursionContext describes the caller's active excursion, if any.
type ExcursionContext struct {
	Active          bool   `json:"active"`
	Phase           string `json:"phase,omitempty"`
	ElapsedMinutes  int    `json:"elapsed_minutes,omitempty"`
	PlannedMinutes  int    `json:"planned_minutes,omitempty"`
	CurrentLocation string `json:"current_location,omitempty"`
}

// UserContext carries phase and preference fields supplied by the app.
// Only non-empty preference fields are surfaced to the assistant.
type UserContext struct {
	Excursion         *ExcursionContext `json:"excursion,omitempty"`
	PreferredActivity string            `json:"preferred_activity,omitempty"`
	TherapyGoals      string            `json:"therapy_goals,omitempty"`
	FitnessLevel      string            `json:"fitness_level,omitempty"`
	MobilityLevel     string            `json:"mobility_level,omitempty"`
}

// VoiceRequest is one inbound voice-chat turn.
type VoiceRequest struct {
	AudioBase64 string
	History     []clients.Message
	Context     *UserContext
	Voice       string
}

// VoiceResult is the uniform voice-chat envelope. Exactly one of the
// success fields or Error is populated.
type VoiceResult struct {
	OK                  bool           `json:"ok"`
	Transcript          string         `json:"transcript,omitempty"`
	ResponseText        string         `json:"response_text,omitempty"`
	ResponseAudioBase64 string         `json:"response_audio_base64,omitempty"`
	Error               *EnvelopeError `json:"error,omitempty"`
	Meta                Meta           `json:"meta"`
}

// TTSResult is the text-to-speech envelope.
type TTSResult struct {
	OK          bool           `json:"ok"`
	AudioBase64 string         `json:"audio_base64,omitempty"`
	Error       *EnvelopeError `json:"error,omitempty"`
	Meta        Meta           `json:"meta"`
}

// VoiceService orchestrates the transcription → completion → synthesis
// pipeline. Each step feeds the next, so they run strictly in sequence;
// any failure short-circuits the rest and returns a single error envelope
// with no partial results.
type VoiceService struct {
	transcriber clients.Transcriber
	completer   clients.Completer
	synthesizer clients.Synthesizer
}

func NewVoiceService(transcriber clients.Transcriber, completer clients.Completer, synthesizer clients.Synthesizer) *VoiceService {
	return &VoiceService{
		transcriber: transcriber,
		completer:   completer,
		synthesizer: synthesizer,
	}
}

// Process runs one voice-chat turn end to end.
func (s *VoiceService) Process(ctx context.Context, req *VoiceRequest) *VoiceResult {
	traceID := uuid.NewString()
	start := time.Now()
	log := logger.GetLogger("voice").With("trace_id", traceID)

	fail := func(err error) *VoiceResult {
		log.Errorf("voice pipeline failed: %v", err)
		return &VoiceResult{
			OK: false,
			Error: &EnvelopeError{
				Code:    CodeVoiceProcessingFailed,
				Message: err.Error(),
			},
			Meta: Meta{LatencyMS: time.Since(start).Milliseconds(), TraceID: traceID},
		}
	}

	audio, err := base64.StdEncoding.DecodeString(req.AudioBase64)
	if err != nil {
		return fail(fmt.Errorf("invalid audio encoding: %w", err))
	}

	transcript, err := s.transcriber.Transcribe(ctx, audio)
	if err != nil {
		return fail(err)
	}
	log.Infof("transcribed %d bytes of audio into %d chars", len(audio), len(transcript))

	messages := make([]clients.Message, 0, len(req.History)+2)
	messages = append(messages, clients.Message{
		Role:    "system",
		Content: BuildSystemPrompt(req.Context),
	})
	messages = append(messages, req.History...)
	messages = append(messages, clients.Message{Role: "user", Content: transcript})

	reply, err := s.completer.Complete(ctx, messages)
	if err != nil {
		return fail(err)
	}

	replyAudio, err := s.synthesizer.Synthesize(ctx, reply, req.Voice)
	if err != nil {
		return fail(err)
	}

	log.Infof("voice turn completed in %dms", time.Since(start).Milliseconds())

	return &VoiceResult{
		OK:                  true,
		Transcript:          transcript,
		ResponseText:        reply,
		ResponseAudioBase64: base64.StdEncoding.EncodeToString(replyAudio),
		Meta:                Meta{LatencyMS: time.Since(start).Milliseconds(), TraceID: traceID},
	}
}

// Synthesize runs the TTS-only pipeline with the same envelope contract.
func (s *VoiceService) Synthesize(ctx context.Context, text, voice string) *TTSResult {
	traceID := uuid.NewString()
	start := time.Now()
	log := logger.GetLogger("tts").With("trace_id", traceID)

	audio, err := s.synthesizer.Synthesize(ctx, text, voice)
	if err != nil {
		log.Errorf("speech synthesis failed: %v", err)
		return &TTSResult{
			OK: false,
			Error: &EnvelopeError{
				Code:    CodeTTSFailed,
				Message: err.Error(),
			},
			Meta: Meta{LatencyMS: time.Since(start).Milliseconds(), TraceID: traceID},
		}
	}

	return &TTSResult{
		OK:          true,
		AudioBase64: base64.StdEncoding.EncodeToString(audio),
		Meta:        Meta{LatencyMS: time.Since(start).Milliseconds(), TraceID: traceID},
	}
}

// BuildSystemPrompt assembles the system prompt: the fixed persona block,
// excursion guidance when one is active, and a preferences section listing
// only the non-empty fields.
func BuildSystemPrompt(uc *UserContext) string {
	var b strings.Builder
	b.WriteString(personaPrompt)

	if uc == nil {
		return b.String()
	}

	if exc := uc.Excursion; exc != nil && exc.Active {
		b.WriteString("\n\n")
		b.WriteString(excursionPrompt)
		if exc.PlannedMinutes > 0 {
			fmt.Fprintf(&b, "\nProgress: %d of %d planned minutes elapsed.", exc.ElapsedMinutes, exc.PlannedMinutes)
		}
		if exc.Phase != "" {
			fmt.Fprintf(&b, "\nPhase: %s.", exc.Phase)
		}
		if exc.CurrentLocation != "" {
			fmt.Fprintf(&b, "\nCurrent location: %s.", exc.CurrentLocation)
		}
	}

	prefs := []struct {
		label string
		value string
	}{
		{"Preferred activity", uc.PreferredActivity},
		{"Therapy goals", uc.TherapyGoals},
		{"Fitness level", uc.FitnessLevel},
		{"Mobility level", uc.MobilityLevel},
	}

	var lines []string
	for _, p := range prefs {
		if p.value != "" {
			lines = append(lines, fmt.Sprintf("- %s: %s", p.label, p.value))
		}
	}
	if len(lines) > 0 {
		b.WriteString("\n\nUser preferences:\n")
		b.WriteString(strings.Join(lines, "\n"))
	}

	return b.String()
}
