package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/flightplanner/client/internal/domain"
)

// ListItineraries handles GET /itineraries with optional employeeId and
// status filters.
func (c *Client) ListItineraries(ctx context.Context, filter domain.ItineraryFilter) ([]domain.Itinerary, error) {
	q := url.Values{}
	if err := addQuery(q, "employeeId", filter.EmployeeID); err != nil {
		return nil, wrap("ListItineraries", err)
	}
	if err := addQuery(q, "status", string(filter.Status)); err != nil {
		return nil, wrap("ListItineraries", err)
	}

	path := "/itineraries"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	out, err := send[[]domain.Itinerary](ctx, c, http.MethodGet, path, nil)
	if err != nil {
		return nil, wrap("ListItineraries", err)
	}
	if out == nil {
		out = []domain.Itinerary{}
	}
	return out, nil
}

// GetItinerary handles GET /itineraries/{id}.
func (c *Client) GetItinerary(ctx context.Context, id string) (domain.Itinerary, error) {
	p, err := itineraryPath(id)
	if err != nil {
		return domain.Itinerary{}, wrap("GetItinerary", err)
	}
	out, err := send[domain.Itinerary](ctx, c, http.MethodGet, p, nil)
	return out, wrap("GetItinerary", err)
}

// CreateItinerary handles POST /itineraries.
func (c *Client) CreateItinerary(ctx context.Context, in domain.NewItinerary) (domain.Itinerary, error) {
	out, err := send[domain.Itinerary](ctx, c, http.MethodPost, "/itineraries", in)
	return out, wrap("CreateItinerary", err)
}

// UpdateItinerary handles PATCH /itineraries/{id}.
func (c *Client) UpdateItinerary(ctx context.Context, id string, patch domain.ItineraryPatch) (domain.Itinerary, error) {
	p, err := itineraryPath(id)
	if err != nil {
		return domain.Itinerary{}, wrap("UpdateItinerary", err)
	}
	out, err := send[domain.Itinerary](ctx, c, http.MethodPatch, p, patch)
	return out, wrap("UpdateItinerary", err)
}

// DeleteItinerary handles DELETE /itineraries/{id}.
func (c *Client) DeleteItinerary(ctx context.Context, id string) error {
	p, err := itineraryPath(id)
	if err != nil {
		return wrap("DeleteItinerary", err)
	}
	return wrap("DeleteItinerary", c.sendDelete(ctx, p, "itinerary"))
}

func itineraryPath(id string) (string, error) {
	p, err := pathParam("id", id)
	if err != nil {
		return "", err
	}
	return "/itineraries/" + p, nil
}
