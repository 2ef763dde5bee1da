package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/sylvanlabs/sylvan-server/internal/database"
	"github.com/sylvanlabs/sylvan-server/internal/models"
	"gorm.io/gorm"
)

// ErrExcursionNotFound is returned when an excursion does not exist or
// belongs to another user.
var ErrExcursionNotFound = errors.New("excursion not found")

type ExcursionService struct {
	db *database.DB
}

func NewExcursionService(db *database.DB) *ExcursionService {
	return &ExcursionService{db: db}
}

type CreateExcursionRequest struct {
	Title        string   `json:"title"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	LocationName string   `json:"location_name,omitempty"`
	DurationMin  int      `json:"duration_min,omitempty"`
}

type UpdateExcursionRequest struct {
	Status *string `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

// Legal status transitions; completed and cancelled are terminal.
var excursionTransitions = map[string][]string{
	models.ExcursionPlanned: {models.ExcursionActive, models.ExcursionCancelled},
	models.ExcursionActive:  {models.ExcursionCompleted, models.ExcursionCancelled},
}

// Create records a new planned excursion
func (s *ExcursionService) Create(userID uint, req *CreateExcursionRequest) (*models.Excursion, error) {
	if req.Title == "" {
		return nil, errors.New("title is required")
	}

	duration := req.DurationMin
	if duration <= 0 {
		duration = 30
	}

	excursion := models.Excursion{
		UserID:       userID,
		Title:        req.Title,
		Lat:          req.Lat,
		Lng:          req.Lng,
		LocationName: req.LocationName,
		DurationMin:  duration,
		Status:       models.ExcursionPlanned,
	}

	if err := s.db.Create(&excursion).Error; err != nil {
		return nil, err
	}

	return &excursion, nil
}

// List returns the user's excursions, most recent first
func (s *ExcursionService) List(userID uint) ([]models.Excursion, error) {
	var excursions []models.Excursion
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&excursions).Error
	return excursions, err
}

// Get returns one of the user's excursions
func (s *ExcursionService) Get(userID, excursionID uint) (*models.Excursion, error) {
	var excursion models.Excursion
	if err := s.db.Where("id = ? AND user_id = ?", excursionID, userID).First(&excursion).Error; err != nil {
		return nil, ErrExcursionNotFound
	}
	return &excursion, nil
}

// Update applies a status transition and/or note edit
func (s *ExcursionService) Update(userID, excursionID uint, req *UpdateExcursionRequest) (*models.Excursion, error) {
	excursion, err := s.Get(userID, excursionID)
	if err != nil {
		return nil, err
	}

	if req.Status != nil && *req.Status != excursion.Status {
		if !transitionAllowed(excursion.Status, *req.Status) {
			return nil, fmt.Errorf("cannot transition excursion from %s to %s", excursion.Status, *req.Status)
		}

		now := time.Now()
		switch *req.Status {
		case models.ExcursionActive:
			excursion.StartedAt = &now
		case models.ExcursionCompleted:
			excursion.CompletedAt = &now
		}
		excursion.Status = *req.Status
	}

	if req.Notes != nil {
		excursion.Notes = *req.Notes
	}

	if err := s.db.Save(excursion).Error; err != nil {
		return nil, err
	}

	return excursion, nil
}

// ActiveExcursion returns the user's currently active excursion. Having no
// active excursion is not an error; both return values are nil then.
func (s *ExcursionService) ActiveExcursion(userID uint) (*models.Excursion, error) {
	var excursion models.Excursion
	err := s.db.Where("user_id = ? AND status = ?", userID, models.ExcursionActive).
		Order("started_at DESC").First(&excursion).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &excursion, nil
}

// ExcursionContextFrom maps an active excursion record onto the prompt
// context used by the voice pipeline.
func ExcursionContextFrom(exc *models.Excursion) *ExcursionContext {
	ec := &ExcursionContext{
		Active:          true,
		Phase:           exc.Status,
		PlannedMinutes:  exc.DurationMin,
		CurrentLocation: exc.LocationName,
	}
	if exc.StartedAt != nil {
		ec.ElapsedMinutes = int(time.Since(*exc.StartedAt).Minutes())
	}
	return ec
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range excursionTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
