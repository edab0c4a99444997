package domain

import "time"

// Status is the lifecycle state of an itinerary. The set is open-ended:
// the server is authoritative and unknown values are carried through as-is.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusBooked    Status = "booked"
	StatusTraveling Status = "traveling"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// SeatClass is the cabin of a flight segment. Open-ended like Status.
type SeatClass string

const (
	SeatEconomy  SeatClass = "economy"
	SeatPremium  SeatClass = "premium"
	SeatBusiness SeatClass = "business"
	SeatFirst    SeatClass = "first"
)

// FlightSegment is one leg of an itinerary.
// ID is empty for a segment that has not been persisted yet.
// Departure and Arrival are kept as entered (e.g. "2024-01-01T10:00").
type FlightSegment struct {
	ID           string    `json:"id,omitempty"`
	From         string    `json:"from"`
	To           string    `json:"to"`
	Departure    string    `json:"departure"`
	Arrival      string    `json:"arrival"`
	Carrier      string    `json:"carrier,omitempty"`
	FlightNumber string    `json:"flightNumber,omitempty"`
	SeatClass    SeatClass `json:"seatClass,omitempty"`
}

// IsDraft reports whether the segment has no server identity yet.
func (s FlightSegment) IsDraft() bool {
	return s.ID == ""
}

// Itinerary is a trip plan owned by an employee. EmployeeID is a plain
// reference; the employee's lifecycle is independent of the itinerary.
type Itinerary struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employeeId"`
	Purpose    string          `json:"purpose"`
	Status     Status          `json:"status"`
	Segments   []FlightSegment `json:"segments"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  *time.Time      `json:"updatedAt,omitempty"`
}

// NewItinerary is the create body: Itinerary minus id and timestamps.
type NewItinerary struct {
	EmployeeID string          `json:"employeeId"`
	Purpose    string          `json:"purpose"`
	Status     Status          `json:"status"`
	Segments   []FlightSegment `json:"segments"`
}

// ItineraryDraft is the value bag of the itinerary form. The status is
// chosen at submission time, not by the user.
type ItineraryDraft struct {
	EmployeeID string          `json:"employeeId"`
	Purpose    string          `json:"purpose"`
	Segments   []FlightSegment `json:"segments"`
}

// WithStatus converts the draft into a create body.
func (d ItineraryDraft) WithStatus(s Status) NewItinerary {
	return NewItinerary{
		EmployeeID: d.EmployeeID,
		Purpose:    d.Purpose,
		Status:     s,
		Segments:   d.Segments,
	}
}

// ItineraryPatch is a partial update. Nil fields are left unchanged;
// a non-nil Segments replaces the whole sequence.
type ItineraryPatch struct {
	EmployeeID *string          `json:"employeeId,omitempty"`
	Purpose    *string          `json:"purpose,omitempty"`
	Status     *Status          `json:"status,omitempty"`
	Segments   *[]FlightSegment `json:"segments,omitempty"`
}

// ItineraryFilter narrows a list query. Empty fields are not sent.
type ItineraryFilter struct {
	EmployeeID string
	Status     Status
}
