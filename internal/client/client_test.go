package client_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightplanner/client/internal/client"
)

// ---- helpers ---------------------------------------------------------------

// newFakeAPI starts an httptest server whose routes are registered by setup
// on a chi router mounted under /api, the way the real backend serves them.
func newFakeAPI(t *testing.T, setup func(r chi.Router)) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Route("/api", setup)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

// newClient returns a Client pointed at srv with the given API key.
func newClient(t *testing.T, srv *httptest.Server, apiKey string) *client.Client {
	t.Helper()
	c, err := client.New(client.Options{
		Origin:     srv.URL,
		APIKey:     apiKey,
		HTTPClient: srv.Client(),
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	return c
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ---- base path and URL construction ----------------------------------------

func TestResolveBase(t *testing.T) {
	cases := []struct{ in, want string }{
		{in: "", want: "/api"},
		{in: "   ", want: "/api"},
		{in: "/api/", want: "/api"},
		{in: " /v2 ", want: "/v2"},
		{in: "https://planner.example.com/api/", want: "https://planner.example.com/api"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, client.ResolveBase(tc.in), "input %q", tc.in)
	}
}

func TestBuildURL_doesNotDoublePrefix(t *testing.T) {
	c, err := client.New(client.Options{})
	require.NoError(t, err)

	assert.Equal(t, "/api/employees", c.BuildURL("/api/employees"))
	assert.Equal(t, "/api/employees", c.BuildURL("/employees"))
	assert.Equal(t, "/api/employees", c.BuildURL("employees"))
}

func TestBuildURL_usesOverrideBase(t *testing.T) {
	c, err := client.New(client.Options{Base: "https://planner.example.com/v1/"})
	require.NoError(t, err)

	assert.Equal(t, "https://planner.example.com/v1", c.Base())
	assert.Equal(t, "https://planner.example.com/v1/itineraries", c.BuildURL("/itineraries"))
	assert.Equal(t, "/api/itineraries", c.BuildURL("/api/itineraries"))
}

func TestNew_rejectsOriginWithoutHost(t *testing.T) {
	_, err := client.New(client.Options{Origin: "localhost"})
	require.Error(t, err)
}

func TestRelativeBaseWithoutOrigin_fails(t *testing.T) {
	c, err := client.New(client.Options{})
	require.NoError(t, err)

	_, err = c.ListEmployees(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "client.Client.ListEmployees")
}

// ---- headers ---------------------------------------------------------------

func TestAPIKeyHeader_sentWhenConfigured(t *testing.T) {
	var got string
	srv := newFakeAPI(t, func(r chi.Router) {
		r.Get("/employees", func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("x-api-key")
			writeJSON(t, w, http.StatusOK, []any{})
		})
	})

	_, err := newClient(t, srv, "secret").ListEmployees(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "secret", got)
}

func TestAPIKeyHeader_absentWhenNotConfigured(t *testing.T) {
	present := true
	srv := newFakeAPI(t, func(r chi.Router) {
		r.Get("/employees", func(w http.ResponseWriter, r *http.Request) {
			_, present = r.Header["X-Api-Key"]
			writeJSON(t, w, http.StatusOK, []any{})
		})
	})

	_, err := newClient(t, srv, "").ListEmployees(context.Background())

	require.NoError(t, err)
	assert.False(t, present)
}

// ---- error translation -----------------------------------------------------

func TestError_nestedMessage(t *testing.T) {
	srv := newFakeAPI(t, func(r chi.Router) {
		r.Post("/employees", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusConflict, map[string]any{
				"error": map[string]any{"code": "CONFLICT", "message": "Email already exists"},
			})
		})
	})

	_, err := newClient(t, srv, "k").CreateEmployee(context.Background(), validNewEmployee())

	require.Error(t, err)
	assert.Equal(t, "Email already exists", err.Error())

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "Conflict", apiErr.Status)
}

func TestError_topLevelMessage(t *testing.T) {
	srv := newFakeAPI(t, func(r chi.Router) {
		r.Get("/employees", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusUnauthorized, map[string]any{"message": "Missing API key"})
		})
	})

	_, err := newClient(t, srv, "").ListEmployees(context.Background())

	require.EqualError(t, err, "Missing API key")
}

func TestError_jsonWithoutMessageFallsBackToStatusText(t *testing.T) {
	srv := newFakeAPI(t, func(r chi.Router) {
		r.Get("/employees/{id}", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusNotFound, map[string]any{"error": "nope"})
		})
	})

	_, err := newClient(t, srv, "k").GetEmployee(context.Background(), "e1")

	require.EqualError(t, err, "Not Found")
}

func TestError_unparsableBody(t *testing.T) {
	srv := newFakeAPI(t, func(r chi.Router) {
		r.Get("/itineraries", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("<html>boom</html>"))
		})
	})

	_, err := newClient(t, srv, "k").ListItineraries(context.Background(), emptyFilter())

	require.EqualError(t, err, "HTTP 500: Internal Server Error")
}

func TestError_emptyBody(t *testing.T) {
	srv := newFakeAPI(t, func(r chi.Router) {
		r.Get("/itineraries/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
	})

	_, err := newClient(t, srv, "k").GetItinerary(context.Background(), "i1")

	require.EqualError(t, err, "HTTP 502: Bad Gateway")
}

func TestError_successWithBadJSON(t *testing.T) {
	srv := newFakeAPI(t, func(r chi.Router) {
		r.Get("/employees", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("{not json"))
		})
	})

	_, err := newClient(t, srv, "k").ListEmployees(context.Background())

	require.Error(t, err)
	var apiErr *client.APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.ErrorContains(t, err, "decode response")
}

func TestContextCancelled(t *testing.T) {
	srv := newFakeAPI(t, func(r chi.Router) {
		r.Get("/employees", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, []any{})
		})
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newClient(t, srv, "k").ListEmployees(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

// ---- logging ---------------------------------------------------------------

func TestRoundTripLoggedAtDebug(t *testing.T) {
	srv := newFakeAPI(t, func(r chi.Router) {
		r.Get("/employees", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, []any{})
		})
	})
	var buf bytes.Buffer
	c, err := client.New(client.Options{
		Origin:     srv.URL,
		HTTPClient: srv.Client(),
		Logger:     slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
	})
	require.NoError(t, err)

	_, err = c.ListEmployees(context.Background())
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/api/employees", entry["path"])
	assert.EqualValues(t, http.StatusOK, entry["status"])
	assert.NotNil(t, entry["duration_ms"])
}
