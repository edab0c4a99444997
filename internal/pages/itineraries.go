package pages

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/flightplanner/client/internal/domain"
	"github.com/flightplanner/client/internal/form"
	"github.com/flightplanner/client/internal/forms"
)

// ItineraryAPI is the subset of the API client the itinerary page uses.
type ItineraryAPI interface {
	ListItineraries(ctx context.Context, filter domain.ItineraryFilter) ([]domain.Itinerary, error)
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
	CreateItinerary(ctx context.Context, in domain.NewItinerary) (domain.Itinerary, error)
}

// ItinerariesView is a point-in-time copy of the itinerary page state.
type ItinerariesView struct {
	Configured  bool
	Loading     bool
	Error       string
	Creating    bool
	CreateError string
	Itineraries []domain.Itinerary
	Employees   []domain.Employee
	Pending     domain.FlightSegment
}

// ItinerariesPage controls the itinerary list and the "create itinerary"
// form, including the pending segment being typed in before it is added.
type ItinerariesPage struct {
	api        ItineraryAPI
	configured bool
	log        *slog.Logger

	// Form is the create-itinerary form. Edit it with form.Set.
	Form *form.Form[domain.ItineraryDraft]

	mu          sync.Mutex
	closed      bool
	loading     bool
	err         string
	creating    bool
	createErr   string
	itineraries []domain.Itinerary
	employees   []domain.Employee
	pending     domain.FlightSegment
}

// NewItinerariesPage returns a page backed by api. When configured is false
// the page never issues requests.
func NewItinerariesPage(api ItineraryAPI, configured bool, log *slog.Logger) *ItinerariesPage {
	if log == nil {
		log = slog.Default()
	}
	return &ItinerariesPage{
		api:        api,
		configured: configured,
		log:        log,
		Form:       forms.NewItineraryForm(),
		pending:    forms.EmptySegment(),
	}
}

// Close marks the page as gone. Late results are discarded.
func (p *ItinerariesPage) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}

// Load fetches itineraries (narrowed by filter) and employees in parallel.
// Both lists are replaced only if both requests succeed.
func (p *ItinerariesPage) Load(ctx context.Context, filter domain.ItineraryFilter) error {
	p.mu.Lock()
	if !p.configured {
		p.mu.Unlock()
		return domain.ErrNotConfigured
	}
	if p.loading {
		p.mu.Unlock()
		return domain.ErrBusy
	}
	p.loading = true
	p.err = ""
	p.mu.Unlock()

	var (
		itineraries []domain.Itinerary
		employees   []domain.Employee
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		itineraries, err = p.api.ListItineraries(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		employees, err = p.api.ListEmployees(gctx)
		return err
	})
	err := g.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.loading = false
	if err != nil {
		p.err = err.Error()
		p.log.WarnContext(ctx, "load itineraries failed", "error", err)
		return err
	}
	p.itineraries = itineraries
	p.employees = employees
	return nil
}

// Pending returns the segment draft being edited.
func (p *ItinerariesPage) Pending() domain.FlightSegment {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending
}

// SetPending replaces the segment draft being edited.
func (p *ItinerariesPage) SetPending(s domain.FlightSegment) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = s
}

// AddSegment appends the pending segment to the form and starts a fresh
// draft. It does nothing and returns false while the draft lacks airports
// or times.
func (p *ItinerariesPage) AddSegment() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !forms.SegmentDraftReady(p.pending) {
		return false
	}
	seg := p.pending
	form.Set(p.Form, forms.ItinerarySegments, forms.AppendSegment(p.Form.Values().Segments, seg))
	p.pending = forms.EmptySegment()
	return true
}

// RemoveSegment drops the segment at index i from the form.
func (p *ItinerariesPage) RemoveSegment(i int) {
	form.Set(p.Form, forms.ItinerarySegments, forms.RemoveSegment(p.Form.Values().Segments, i))
}

// Submit creates a draft itinerary from the form. On success the saved
// record is put at the top of the list and the form is reset.
func (p *ItinerariesPage) Submit(ctx context.Context) error {
	p.mu.Lock()
	switch {
	case !p.configured:
		p.mu.Unlock()
		return domain.ErrNotConfigured
	case p.creating:
		p.mu.Unlock()
		return domain.ErrBusy
	case !p.Form.Valid():
		p.mu.Unlock()
		return fmt.Errorf("%w: itinerary form is invalid", domain.ErrValidation)
	}
	p.creating = true
	p.createErr = ""
	in := p.Form.Values().WithStatus(domain.StatusDraft)
	p.mu.Unlock()

	saved, err := p.api.CreateItinerary(ctx, in)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.creating = false
	if err != nil {
		p.createErr = err.Error()
		p.log.WarnContext(ctx, "create itinerary failed", "error", err)
		return err
	}
	p.itineraries = append([]domain.Itinerary{saved}, p.itineraries...)
	p.Form.Reset()
	return nil
}

// CanSubmit reports whether the create button should be enabled.
func (p *ItinerariesPage) CanSubmit() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.configured && !p.creating && p.Form.Valid()
}

// Reset clears the create-itinerary form.
func (p *ItinerariesPage) Reset() {
	p.Form.Reset()
}

// EmployeeName returns the display name of the employee with the given id,
// or "Unknown employee" if it is not in the loaded list.
func (p *ItinerariesPage) EmployeeName(id string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range p.employees {
		if e.ID == id {
			return e.FullName()
		}
	}
	return "Unknown employee"
}

// Snapshot returns a copy of the page state.
func (p *ItinerariesPage) Snapshot() ItinerariesView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return ItinerariesView{
		Configured:  p.configured,
		Loading:     p.loading,
		Error:       p.err,
		Creating:    p.creating,
		CreateError: p.createErr,
		Itineraries: slices.Clone(p.itineraries),
		Employees:   slices.Clone(p.employees),
		Pending:     p.pending,
	}
}
