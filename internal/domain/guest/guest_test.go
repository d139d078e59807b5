package guest

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSeatDemand_Declined(t *testing.T) {
	g := NewGuest(uuid.New(), "Dana", "bride", "family", 4)
	g.RSVP = &RSVP{Status: RSVPDeclined, GuestCount: 3}

	assert.Equal(t, 0, g.SeatDemand(), "declined guests need no seats")
}

func TestSeatDemand_AcceptedUsesConfirmedCount(t *testing.T) {
	g := NewGuest(uuid.New(), "Dana", "bride", "family", 4)
	g.RSVP = &RSVP{Status: RSVPAccepted, GuestCount: 2}

	assert.Equal(t, 2, g.SeatDemand())
}

func TestSeatDemand_AcceptedWithoutCountDefaultsToOne(t *testing.T) {
	g := NewGuest(uuid.New(), "Dana", "bride", "family", 4)
	g.RSVP = &RSVP{Status: RSVPAccepted}

	assert.Equal(t, 1, g.SeatDemand(), "accepted with no head count counts as one")
}

func TestSeatDemand_PendingUsesExpected(t *testing.T) {
	g := NewGuest(uuid.New(), "Dana", "bride", "family", 3)
	g.RSVP = &RSVP{Status: RSVPPending, GuestCount: 5}

	assert.Equal(t, 3, g.SeatDemand(), "pending replies fall back to the estimate")
}

func TestSeatDemand_MissingRSVPUsesExpected(t *testing.T) {
	g := NewGuest(uuid.New(), "Dana", "bride", "family", 2)

	assert.Equal(t, 2, g.SeatDemand())
}

func TestSeatDemand_ZeroExpectedDefaultsToOne(t *testing.T) {
	g := &Guest{ID: uuid.New(), Name: "Dana"}

	assert.Equal(t, 1, g.SeatDemand())
}

func TestStatus_DefaultsToPending(t *testing.T) {
	g := NewGuest(uuid.New(), "Dana", "bride", "family", 1)

	assert.Equal(t, RSVPPending, g.Status())
}

func TestRSVPStatus_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(RSVPAccepted)
	assert.NoError(t, err)
	assert.Equal(t, `"accepted"`, string(data))

	var s RSVPStatus
	assert.NoError(t, json.Unmarshal([]byte(`"declined"`), &s))
	assert.Equal(t, RSVPDeclined, s)

	assert.Error(t, json.Unmarshal([]byte(`"maybe"`), &s))
}

func TestGuest_Validate(t *testing.T) {
	g := NewGuest(uuid.New(), "Dana", "bride", "family", 1)
	assert.NoError(t, g.Validate())

	g.Name = ""
	assert.Error(t, g.Validate())
}
