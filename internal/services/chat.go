package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sylvanlabs/sylvan-server/internal/database"
	"github.com/sylvanlabs/sylvan-server/internal/models"
)

// ErrSessionNotFound is returned when a session does not exist or belongs
// to another user.
var ErrSessionNotFound = errors.New("session not found")

type ChatService struct {
	db *database.DB
}

func NewChatService(db *database.DB) *ChatService {
	return &ChatService{db: db}
}

type CreateSessionRequest struct {
	Title string `json:"title,omitempty"`
}

// CreateSession starts a new conversation for the user
func (s *ChatService) CreateSession(userID uint, req *CreateSessionRequest) (*models.ChatSession, error) {
	title := req.Title
	if title == "" {
		title = "New conversation"
	}

	session := models.ChatSession{
		ID:     uuid.NewString(),
		UserID: userID,
		Title:  title,
	}

	if err := s.db.Create(&session).Error; err != nil {
		return nil, err
	}

	return &session, nil
}

// ListSessions returns the user's sessions, most recent first
func (s *ChatService) ListSessions(userID uint) ([]models.ChatSession, error) {
	var sessions []models.ChatSession
	err := s.db.Where("user_id = ?", userID).Order("updated_at DESC").Find(&sessions).Error
	return sessions, err
}

// GetSession returns one of the user's sessions
func (s *ChatService) GetSession(userID uint, sessionID string) (*models.ChatSession, error) {
	var session models.ChatSession
	if err := s.db.Where("id = ? AND user_id = ?", sessionID, userID).First(&session).Error; err != nil {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

// DeleteSession removes a session and its messages
func (s *ChatService) DeleteSession(userID uint, sessionID string) error {
	if _, err := s.GetSession(userID, sessionID); err != nil {
		return err
	}

	if err := s.db.Where("session_id = ?", sessionID).Delete(&models.ChatMessage{}).Error; err != nil {
		return err
	}
	return s.db.Where("id = ?", sessionID).Delete(&models.ChatSession{}).Error
}

// GetMessages returns a session's messages in caller-supplied order
func (s *ChatService) GetMessages(userID uint, sessionID string) ([]models.ChatMessage, error) {
	if _, err := s.GetSession(userID, sessionID); err != nil {
		return nil, err
	}

	var messages []models.ChatMessage
	err := s.db.Where("session_id = ?", sessionID).Order("id ASC").Find(&messages).Error
	return messages, err
}

// AppendTurn persists one user turn and the assistant reply
func (s *ChatService) AppendTurn(userID uint, sessionID, userText, assistantText string) error {
	session, err := s.GetSession(userID, sessionID)
	if err != nil {
		return err
	}

	messages := []models.ChatMessage{
		{SessionID: session.ID, Role: models.RoleUser, Content: userText},
		{SessionID: session.ID, Role: models.RoleAssistant, Content: assistantText},
	}
	if err := s.db.Create(&messages).Error; err != nil {
		return err
	}

	// Touch updated_at so the session sorts to the top
	return s.db.Model(session).Update("updated_at", time.Now()).Error
}
