package forms

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/flightplanner/client/internal/domain"
	"github.com/flightplanner/client/internal/form"
)

// Itinerary form fields.
var (
	ItineraryEmployeeID = form.Field[domain.ItineraryDraft, string]{
		Name:  "employeeId",
		Apply: func(d domain.ItineraryDraft, v string) domain.ItineraryDraft { d.EmployeeID = v; return d },
	}
	ItineraryPurpose = form.Field[domain.ItineraryDraft, string]{
		Name:  "purpose",
		Apply: func(d domain.ItineraryDraft, v string) domain.ItineraryDraft { d.Purpose = v; return d },
	}
	ItinerarySegments = form.Field[domain.ItineraryDraft, []domain.FlightSegment]{
		Name:  "segments",
		Apply: func(d domain.ItineraryDraft, v []domain.FlightSegment) domain.ItineraryDraft {
			d.Segments = v
			return d
		},
	}
)

// ValidateItinerary checks the employee reference, the purpose, and every
// segment. All segments are checked; one bad segment does not hide the
// errors of the next. Lengths are counted in characters, not bytes.
func ValidateItinerary(v domain.ItineraryDraft) form.Errors {
	errs := form.Errors{}
	if v.EmployeeID == "" {
		errs["employeeId"] = "Employee required"
	}
	if utf8.RuneCountInString(strings.TrimSpace(v.Purpose)) < 3 {
		errs["purpose"] = "Min 3 chars"
	}
	if len(v.Segments) == 0 {
		errs["segments"] = "At least one segment"
		return errs
	}
	for i, s := range v.Segments {
		if utf8.RuneCountInString(s.From) != 3 {
			errs[form.Path("segments", i, "from")] = "IATA"
		}
		if utf8.RuneCountInString(s.To) != 3 {
			errs[form.Path("segments", i, "to")] = "IATA"
		}
		if s.Departure == "" {
			errs[form.Path("segments", i, "departure")] = "Required"
		}
		if s.Arrival == "" {
			errs[form.Path("segments", i, "arrival")] = "Required"
		}
		if utf8.RuneCountInString(s.Carrier) < 2 {
			errs[form.Path("segments", i, "carrier")] = "Carrier"
		}
		if utf8.RuneCountInString(s.FlightNumber) < 2 {
			errs[form.Path("segments", i, "flightNumber")] = "Flight#"
		}
	}
	return errs
}

// NewItineraryForm returns an empty itinerary form.
func NewItineraryForm() *form.Form[domain.ItineraryDraft] {
	return form.New(domain.ItineraryDraft{}, ValidateItinerary)
}

// EmptySegment is the blank segment draft offered for input.
func EmptySegment() domain.FlightSegment {
	return domain.FlightSegment{SeatClass: domain.SeatEconomy}
}

// SegmentDraftReady reports whether a pending segment has enough data to be
// added to the form: both airports and both times.
func SegmentDraftReady(s domain.FlightSegment) bool {
	return s.From != "" && s.To != "" && s.Departure != "" && s.Arrival != ""
}

// AppendSegment returns a new slice with s appended. segs is not modified.
func AppendSegment(segs []domain.FlightSegment, s domain.FlightSegment) []domain.FlightSegment {
	out := slices.Clone(segs)
	return append(out, s)
}

// RemoveSegment returns a new slice without the segment at index i.
// An out-of-range index returns a copy of segs.
func RemoveSegment(segs []domain.FlightSegment, i int) []domain.FlightSegment {
	out := slices.Clone(segs)
	if i < 0 || i >= len(out) {
		return out
	}
	return slices.Delete(out, i, i+1)
}
