package services

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/shaysadin/wedding-seating-api/internal/domain/event"
	"github.com/shaysadin/wedding-seating-api/internal/domain/guest"
	"github.com/shaysadin/wedding-seating-api/internal/domain/user"
	"github.com/shaysadin/wedding-seating-api/internal/storage/postgres"
	"github.com/shaysadin/wedding-seating-api/internal/validation"
)

// EventService handles event business logic
type EventService struct {
	eventRepo postgres.EventRepository
	userRepo  postgres.UserRepository
	validator validation.EventValidation
}

// NewEventService creates a new event service instance
func NewEventService(eventRepo postgres.EventRepository, userRepo postgres.UserRepository) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		userRepo:  userRepo,
		validator: validation.EventValidation{},
	}
}

// CreateEventRequest represents a request to create an event
type CreateEventRequest struct {
	Name      string    `json:"name" binding:"required"`
	BrideName string    `json:"bride_name"`
	GroomName string    `json:"groom_name"`
	Venue     string    `json:"venue"`
	OwnerID   string    `json:"owner_id" binding:"required"`
	Date      time.Time `json:"date" binding:"required"`
}

// CreateEvent creates a new event
func (s *EventService) CreateEvent(req CreateEventRequest) (*event.Event, error) {
	if err := s.validator.ValidateEventName(req.Name); err != nil {
		return nil, err
	}

	if err := validation.ValidateUUID(req.OwnerID, "owner_id"); err != nil {
		return nil, err
	}

	ownerID, _ := uuid.Parse(req.OwnerID)

	// Verify the owner exists
	if _, err := s.userRepo.GetByID(req.OwnerID); err != nil {
		return nil, errors.New("owner not found")
	}

	newEvent := event.NewEvent(
		req.Name,
		req.BrideName,
		req.GroomName,
		req.Venue,
		ownerID,
		req.Date,
	)

	if err := newEvent.Validate(); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Create(newEvent); err != nil {
		return nil, err
	}

	return newEvent, nil
}

// GetAllEvents returns all events
func (s *EventService) GetAllEvents() ([]*event.Event, error) {
	return s.eventRepo.GetAll()
}

// GetEventByID returns an event by its ID
func (s *EventService) GetEventByID(id string) (*event.Event, error) {
	if err := validation.ValidateUUID(id, "event_id"); err != nil {
		return nil, err
	}

	return s.eventRepo.GetByID(id)
}

// GetEventsByOwner returns all events belonging to an owner
func (s *EventService) GetEventsByOwner(ownerID string) ([]*event.Event, error) {
	if err := validation.ValidateUUID(ownerID, "owner_id"); err != nil {
		return nil, err
	}

	return s.eventRepo.GetByOwner(ownerID)
}

// UpdateEventStage transitions an event to a new stage
func (s *EventService) UpdateEventStage(eventID, stage string) (*event.Event, error) {
	if err := validation.ValidateUUID(eventID, "event_id"); err != nil {
		return nil, err
	}

	newStage, ok := event.StageFromString(stage)
	if !ok {
		return nil, errors.New("unknown event stage: " + stage)
	}

	eventObj, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return nil, errors.New("event not found")
	}

	if err := eventObj.UpdateStage(newStage); err != nil {
		return nil, err
	}

	if err := s.eventRepo.UpdateStage(eventID, newStage); err != nil {
		return nil, err
	}

	return eventObj, nil
}

// GuestService handles guest list business logic
type GuestService struct {
	guestRepo postgres.GuestRepository
	eventRepo postgres.EventRepository
	validator validation.GuestValidation
}

// NewGuestService creates a new guest service instance
func NewGuestService(guestRepo postgres.GuestRepository, eventRepo postgres.EventRepository) *GuestService {
	return &GuestService{
		guestRepo: guestRepo,
		eventRepo: eventRepo,
		validator: validation.GuestValidation{},
	}
}

// CreateGuestRequest represents a request to add a guest to an event
type CreateGuestRequest struct {
	Name           string `json:"name" binding:"required"`
	Phone          string `json:"phone"`
	Side           string `json:"side"`
	GroupName      string `json:"group_name"`
	ExpectedGuests int    `json:"expected_guests"`
}

// CreateGuest adds a guest to an event's guest list
func (s *GuestService) CreateGuest(eventID string, req CreateGuestRequest) (*guest.Guest, error) {
	if err := validation.ValidateUUID(eventID, "event_id"); err != nil {
		return nil, err
	}

	if err := s.validator.ValidateGuestName(req.Name); err != nil {
		return nil, err
	}

	if err := s.validator.ValidateExpectedGuests(req.ExpectedGuests); err != nil {
		return nil, err
	}

	// Verify the event exists
	if _, err := s.eventRepo.GetByID(eventID); err != nil {
		return nil, errors.New("event not found")
	}

	eventUUID, _ := uuid.Parse(eventID)

	newGuest := guest.NewGuest(eventUUID, req.Name, req.Side, req.GroupName, req.ExpectedGuests)
	newGuest.Phone = req.Phone

	if err := s.guestRepo.Create(newGuest); err != nil {
		return nil, err
	}

	return newGuest, nil
}

// GetGuestsByEvent returns an event's full guest list with RSVP state
func (s *GuestService) GetGuestsByEvent(eventID string) ([]*guest.Guest, error) {
	if err := validation.ValidateUUID(eventID, "event_id"); err != nil {
		return nil, err
	}

	return s.guestRepo.GetByEventID(eventID)
}

// UpdateRSVPRequest represents an RSVP response for a guest
type UpdateRSVPRequest struct {
	Status     string `json:"status" binding:"required"`
	GuestCount int    `json:"guest_count"`
}

// UpdateRSVP records or updates a guest's RSVP response
func (s *GuestService) UpdateRSVP(guestID string, req UpdateRSVPRequest) (*guest.Guest, error) {
	if err := validation.ValidateUUID(guestID, "guest_id"); err != nil {
		return nil, err
	}

	status, ok := guest.RSVPStatusFromString(req.Status)
	if !ok {
		return nil, errors.New("unknown RSVP status: " + req.Status)
	}

	if req.GuestCount < 0 {
		return nil, errors.New("guest_count must not be negative")
	}

	if _, err := s.guestRepo.GetByID(guestID); err != nil {
		return nil, errors.New("guest not found")
	}

	if err := s.guestRepo.UpsertRSVP(guestID, status, req.GuestCount); err != nil {
		return nil, err
	}

	return s.guestRepo.GetByID(guestID)
}

// UserService handles user business logic
type UserService struct {
	userRepo  postgres.UserRepository
	validator validation.UserValidation
}

// NewUserService creates a new user service instance
func NewUserService(userRepo postgres.UserRepository) *UserService {
	return &UserService{
		userRepo:  userRepo,
		validator: validation.UserValidation{},
	}
}

// CreateUserRequest represents a request to create a user
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateUser creates a new user with a hashed password
func (s *UserService) CreateUser(req CreateUserRequest) (*user.User, error) {
	if err := s.validator.ValidateUserName(req.Name); err != nil {
		return nil, err
	}

	if err := s.validator.ValidateUserEmail(req.Email); err != nil {
		return nil, err
	}

	if err := validation.ValidateMinLength(req.Password, 8, "password"); err != nil {
		return nil, err
	}

	if existing, _ := s.userRepo.GetByEmail(req.Email); existing != nil {
		return nil, errors.New("email already registered")
	}

	newUser, err := user.NewUser(req.Name, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(newUser); err != nil {
		return nil, err
	}

	return newUser, nil
}

// Authenticate verifies a user's credentials and returns the user on success
func (s *UserService) Authenticate(email, password string) (*user.User, error) {
	if err := s.validator.ValidateUserEmail(email); err != nil {
		return nil, err
	}

	u, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}

	if !u.CheckPassword(password) {
		return nil, errors.New("invalid credentials")
	}

	return u, nil
}
