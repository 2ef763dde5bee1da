package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sylvanlabs/sylvan-server/internal/clients"
	"github.com/sylvanlabs/sylvan-server/internal/logger"
	"github.com/sylvanlabs/sylvan-server/internal/models"
	"github.com/sylvanlabs/sylvan-server/internal/services"
)

// ExcursionSource looks up a user's currently active excursion.
type ExcursionSource interface {
	ActiveExcursion(userID uint) (*models.Excursion, error)
}

type SpeechHandler struct {
	voice      *services.VoiceService
	chat       *services.ChatService
	excursions ExcursionSource
}

func NewSpeechHandler(voice *services.VoiceService, chat *services.ChatService, excursions ExcursionSource) *SpeechHandler {
	return &SpeechHandler{voice: voice, chat: chat, excursions: excursions}
}

// SetupSpeechRoutes registers the speech endpoints on all methods so that
// wrong-method requests get a 405 with the envelope error shape.
func SetupSpeechRoutes(router fiber.Router, voice *services.VoiceService, chat *services.ChatService, excursions ExcursionSource) {
	h := NewSpeechHandler(voice, chat, excursions)

	router.All("/text-to-speech", h.TextToSpeech)
	router.All("/voice-chat", h.VoiceChat)
}

type ttsRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice,omitempty"`
}

// TextToSpeech synthesizes speech for a text snippet
func (h *SpeechHandler) TextToSpeech(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return respondError(c, fiber.StatusMethodNotAllowed, services.CodeMethodNotAllowed, "only POST is supported")
	}

	var req ttsRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, services.CodeInvalidRequest, "Invalid request body")
	}

	if req.Text == "" {
		return respondError(c, fiber.StatusBadRequest, services.CodeInvalidRequest, "text is required")
	}

	result := h.voice.Synthesize(c.UserContext(), req.Text, req.Voice)
	if !result.OK {
		return c.Status(fiber.StatusInternalServerError).JSON(result)
	}

	return c.JSON(result)
}

type voiceChatRequest struct {
	AudioBase64         string                `json:"audio_base64"`
	ConversationHistory []clients.Message     `json:"conversation_history,omitempty"`
	UserContext         *services.UserContext `json:"user_context,omitempty"`
	SessionID           string                `json:"session_id,omitempty"`
	Voice               string                `json:"voice,omitempty"`
}

// VoiceChat runs one voice turn: transcription, completion, synthesis.
// When an authenticated caller names a session, both turns are persisted.
func (h *SpeechHandler) VoiceChat(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return respondError(c, fiber.StatusMethodNotAllowed, services.CodeMethodNotAllowed, "only POST is supported")
	}

	var req voiceChatRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, services.CodeInvalidRequest, "Invalid request body")
	}

	if req.AudioBase64 == "" {
		return respondError(c, fiber.StatusBadRequest, services.CodeInvalidRequest, "audio_base64 is required")
	}

	userID, authed := c.Locals("userID").(uint)

	// When an authenticated caller sends no excursion context of their own,
	// derive it from their active excursion so the assistant tracks progress
	// without the app having to resend it every turn. The caller's explicit
	// context always wins.
	if authed && h.excursions != nil && (req.UserContext == nil || req.UserContext.Excursion == nil) {
		exc, err := h.excursions.ActiveExcursion(userID)
		switch {
		case err != nil:
			logger.GetLogger("voice").Warnf("failed to look up active excursion for user %d: %v", userID, err)
		case exc != nil:
			if req.UserContext == nil {
				req.UserContext = &services.UserContext{}
			}
			req.UserContext.Excursion = services.ExcursionContextFrom(exc)
		}
	}

	result := h.voice.Process(c.UserContext(), &services.VoiceRequest{
		AudioBase64: req.AudioBase64,
		History:     req.ConversationHistory,
		Context:     req.UserContext,
		Voice:       req.Voice,
	})
	if !result.OK {
		return c.Status(fiber.StatusInternalServerError).JSON(result)
	}

	// Session persistence is best-effort; a storage error never fails a
	// turn that already completed.
	if req.SessionID != "" && authed {
		if err := h.chat.AppendTurn(userID, req.SessionID, result.Transcript, result.ResponseText); err != nil {
			logger.GetLogger("voice").Warnf("failed to persist turn for session %s: %v", req.SessionID, err)
		}
	}

	return c.JSON(result)
}
