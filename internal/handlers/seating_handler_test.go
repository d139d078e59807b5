package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaysadin/wedding-seating-api/internal/domain/guest"
	"github.com/shaysadin/wedding-seating-api/internal/domain/seating"
	"github.com/shaysadin/wedding-seating-api/internal/handlers"
	"github.com/shaysadin/wedding-seating-api/internal/services"
)

type fakeGuestRepo struct {
	guests []*guest.Guest
}

func (r *fakeGuestRepo) Create(g *guest.Guest) error { return nil }
func (r *fakeGuestRepo) GetByID(id string) (*guest.Guest, error) {
	for _, g := range r.guests {
		if g.ID.String() == id {
			return g, nil
		}
	}
	return nil, errors.New("guest not found")
}
func (r *fakeGuestRepo) GetByEventID(eventID string) ([]*guest.Guest, error) {
	var out []*guest.Guest
	for _, g := range r.guests {
		if g.EventID.String() == eventID {
			out = append(out, g)
		}
	}
	return out, nil
}
func (r *fakeGuestRepo) Update(g *guest.Guest) error { return nil }
func (r *fakeGuestRepo) Delete(id string) error      { return nil }
func (r *fakeGuestRepo) UpsertRSVP(guestID string, status guest.RSVPStatus, guestCount int) error {
	return nil
}

type fakeTableRepo struct {
	applyCalls int
}

func (r *fakeTableRepo) GetByID(id string) (*seating.Table, error) {
	return nil, errors.New("table not found")
}
func (r *fakeTableRepo) GetByEventID(eventID string) ([]*seating.Table, error) { return nil, nil }
func (r *fakeTableRepo) CountByEventID(eventID string) (int64, error)          { return 0, nil }
func (r *fakeTableRepo) GetAssignmentsByEventID(eventID string) ([]*seating.Assignment, error) {
	return nil, nil
}
func (r *fakeTableRepo) ApplyPlan(ctx context.Context, eventID uuid.UUID, plan *seating.Plan, clearExisting bool) error {
	r.applyCalls++
	return nil
}
func (r *fakeTableRepo) ReplaceSeats(tableID uuid.UUID, seats []seating.Seat) error { return nil }
func (r *fakeTableRepo) AssignGuest(eventID, tableID, guestID uuid.UUID) error      { return nil }
func (r *fakeTableRepo) AssignSeat(tableID uuid.UUID, seatNumber int, guestID uuid.UUID) error {
	return nil
}

func seatingRouter(guestRepo *fakeGuestRepo, tableRepo *fakeTableRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	seatingService := services.NewSeatingService(guestRepo, tableRepo)
	handler := handlers.NewSeatingHandler(seatingService, nil, nil)

	router := gin.New()
	router.POST("/api/events/:event_id/seating/auto-arrange", handler.AutoArrange)
	router.POST("/api/events/:event_id/seating/auto-arrange-configs", handler.AutoArrangeConfigs)
	return router
}

func TestAutoArrangeEndpointEmptyPool(t *testing.T) {
	tableRepo := &fakeTableRepo{}
	router := seatingRouter(&fakeGuestRepo{}, tableRepo)

	body := `{"table_size": 4, "clear_existing": true}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/events/"+uuid.NewString()+"/seating/auto-arrange", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, tableRepo.applyCalls, "empty pool must not mutate anything")
}

func TestAutoArrangeEndpointSuccess(t *testing.T) {
	eventID := uuid.New()
	guestRepo := &fakeGuestRepo{}
	for i := 0; i < 5; i++ {
		guestRepo.guests = append(guestRepo.guests, guest.NewGuest(eventID, "Guest", "bride", "family", 1))
	}

	tableRepo := &fakeTableRepo{}
	router := seatingRouter(guestRepo, tableRepo)

	body := `{"table_size": 4, "clear_existing": true}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/events/"+eventID.String()+"/seating/auto-arrange", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, tableRepo.applyCalls)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), `"tables_created":2`)
	assert.Contains(t, w.Body.String(), `"remaining_unseated":0`)
}

func TestAutoArrangeConfigsEndpointPartialNotice(t *testing.T) {
	eventID := uuid.New()
	guestRepo := &fakeGuestRepo{}
	for i := 0; i < 6; i++ {
		guestRepo.guests = append(guestRepo.guests, guest.NewGuest(eventID, "Guest", "bride", "family", 1))
	}

	tableRepo := &fakeTableRepo{}
	router := seatingRouter(guestRepo, tableRepo)

	// One table of four for a six-guest group, no mixing: two guests stay
	// unseated, which is a notice on the success payload, not an error.
	body := `{"configs": [{"capacity": 4, "count": 1, "group_assignments": ["family"]}], "clear_existing": true}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/events/"+eventID.String()+"/seating/auto-arrange-configs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, tableRepo.applyCalls)
	assert.Contains(t, w.Body.String(), "2 guest(s) could not be seated")
	assert.Contains(t, w.Body.String(), `"remaining_unseated":2`)
}

func TestAutoArrangeEndpointRejectsBadPayload(t *testing.T) {
	router := seatingRouter(&fakeGuestRepo{}, &fakeTableRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/events/"+uuid.NewString()+"/seating/auto-arrange", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
