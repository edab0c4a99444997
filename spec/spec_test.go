package spec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/flightplanner/client/spec"
)

type document struct {
	OpenAPI    string                    `yaml:"openapi"`
	Servers    []struct{ URL string }    `yaml:"servers"`
	Paths      map[string]map[string]any `yaml:"paths"`
	Components struct {
		SecuritySchemes map[string]struct {
			In   string `yaml:"in"`
			Name string `yaml:"name"`
		} `yaml:"securitySchemes"`
		Schemas map[string]struct {
			Enum []string `yaml:"enum"`
		} `yaml:"schemas"`
	} `yaml:"components"`
}

func load(t *testing.T) document {
	t.Helper()
	var doc document
	require.NoError(t, yaml.Unmarshal(spec.OpenAPI, &doc))
	return doc
}

// TestOpenAPI_declaresClientRoutes checks that every route the API client
// calls is described.
func TestOpenAPI_declaresClientRoutes(t *testing.T) {
	doc := load(t)

	require.Equal(t, "3.0.3", doc.OpenAPI)
	require.Len(t, doc.Servers, 1)
	assert.Equal(t, "/api", doc.Servers[0].URL)

	routes := map[string][]string{
		"/employees":             {"get", "post"},
		"/employees/{id}":        {"get", "patch", "delete"},
		"/employees/{id}/avatar": {"get", "post"},
		"/itineraries":           {"get", "post"},
		"/itineraries/{id}":      {"get", "patch", "delete"},
	}
	for path, methods := range routes {
		item, ok := doc.Paths[path]
		require.True(t, ok, "missing path %s", path)
		for _, m := range methods {
			assert.Contains(t, item, m, "%s %s", m, path)
		}
	}
}

// TestOpenAPI_apiKeyHeader checks the authentication scheme the client uses.
func TestOpenAPI_apiKeyHeader(t *testing.T) {
	doc := load(t)

	scheme, ok := doc.Components.SecuritySchemes["apiKey"]
	require.True(t, ok)
	assert.Equal(t, "header", scheme.In)
	assert.Equal(t, "x-api-key", scheme.Name)
}

// TestOpenAPI_enums checks the status and seat class sets.
func TestOpenAPI_enums(t *testing.T) {
	doc := load(t)

	assert.Equal(t, []string{"draft", "booked", "traveling", "completed", "cancelled"}, doc.Components.Schemas["Status"].Enum)
	assert.Equal(t, []string{"economy", "premium", "business", "first"}, doc.Components.Schemas["SeatClass"].Enum)
}
