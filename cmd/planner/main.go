// Package main is the planner command-line front-end. It drives the same
// page controllers a graphical front-end would, printing lists as tables.
//
// Usage:
//
//	planner [-v] <command> [flags]
//
// Commands: employees, itineraries, add-employee, add-itinerary,
// upload-avatar, delete-employee, delete-itinerary.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/flightplanner/client/internal/client"
	"github.com/flightplanner/client/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// newClient builds the API client from configuration.
func newClient(cfg config.Config, logger *slog.Logger) (*client.Client, error) {
	return client.New(client.Options{
		Base:       cfg.APIBase,
		Origin:     cfg.APIOrigin,
		APIKey:     cfg.APIKey,
		HTTPClient: &http.Client{Timeout: cfg.APITimeout},
		Logger:     logger,
	})
}
