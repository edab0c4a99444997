package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/flightplanner/client/internal/client"
	"github.com/flightplanner/client/internal/config"
	"github.com/flightplanner/client/internal/domain"
	"github.com/flightplanner/client/internal/form"
	"github.com/flightplanner/client/internal/forms"
	"github.com/flightplanner/client/internal/pages"
)

// errUsage is returned after usage text has already been printed.
var errUsage = errors.New("usage")

// errNoKey explains how to configure the client.
var errNoKey = errors.New("API key not configured: set API_KEY")

// command is one planner subcommand.
type command struct {
	name    string
	summary string
	run     func(ctx context.Context, e *env, args []string) error
}

// env carries what every command needs.
type env struct {
	cfg    config.Config
	api    *client.Client
	log    *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

var commands = []command{
	{"employees", "list employees", runEmployees},
	{"itineraries", "list itineraries", runItineraries},
	{"add-employee", "create an employee", runAddEmployee},
	{"add-itinerary", "create a draft itinerary", runAddItinerary},
	{"upload-avatar", "upload an employee avatar image", runUploadAvatar},
	{"delete-employee", "delete an employee", runDeleteEmployee},
	{"delete-itinerary", "delete an itinerary", runDeleteItinerary},
}

// run parses global flags, builds the client, and dispatches to a command.
func run(ctx context.Context, cfg config.Config, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("planner", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "Enable debug logging to stderr")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: planner [-v] <command> [flags]")
		fmt.Fprintln(stderr, "\nCommands:")
		for _, c := range commands {
			fmt.Fprintf(stderr, "  %-18s %s\n", c.name, c.summary)
		}
		fmt.Fprintln(stderr, "\nFlags:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	api, err := newClient(cfg, logger)
	if err != nil {
		return err
	}
	e := &env{cfg: cfg, api: api, log: logger, stdout: stdout, stderr: stderr}

	name := fs.Arg(0)
	for _, c := range commands {
		if c.name == name {
			return c.run(ctx, e, fs.Args()[1:])
		}
	}
	fmt.Fprintf(stderr, "unknown command %q\n", name)
	fs.Usage()
	return errUsage
}

// parse parses a command's flags, reporting usage errors as errUsage.
func (e *env) parse(fs *flag.FlagSet, args []string) error {
	fs.SetOutput(e.stderr)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	return nil
}

// notConfigured maps domain.ErrNotConfigured to a readable hint.
func notConfigured(err error) error {
	if errors.Is(err, domain.ErrNotConfigured) {
		return errNoKey
	}
	return err
}

// printErrors writes each form error as "path: message" in path order.
func printErrors(w io.Writer, errs form.Errors) {
	for _, path := range errs.Fields() {
		fmt.Fprintf(w, "  %s: %s\n", path, errs[path])
	}
}

func runEmployees(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("employees", flag.ContinueOnError)
	filter := fs.String("filter", "", "Only show employees whose name or department contains this text")
	if err := e.parse(fs, args); err != nil {
		return err
	}

	page := pages.NewEmployeesPage(e.api, e.cfg.Configured(), e.log)
	defer page.Close()
	if err := page.Load(ctx); err != nil {
		return notConfigured(err)
	}

	tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tDEPARTMENT\tTITLE\tACTIVE")
	for _, emp := range page.Filter(*filter) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%t\n",
			emp.ID, emp.FullName(), emp.Email, dash(emp.Department), dash(emp.Title), emp.Active)
	}
	return tw.Flush()
}

func runItineraries(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("itineraries", flag.ContinueOnError)
	employeeID := fs.String("employee", "", "Only show itineraries of this employee id")
	status := fs.String("status", "", "Only show itineraries with this status (draft, booked, traveling, completed, cancelled)")
	if err := e.parse(fs, args); err != nil {
		return err
	}

	page := pages.NewItinerariesPage(e.api, e.cfg.Configured(), e.log)
	defer page.Close()
	filter := domain.ItineraryFilter{EmployeeID: *employeeID, Status: domain.Status(*status)}
	if err := page.Load(ctx, filter); err != nil {
		return notConfigured(err)
	}

	tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMPLOYEE\tPURPOSE\tSTATUS\tROUTE")
	for _, it := range page.Snapshot().Itineraries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			it.ID, page.EmployeeName(it.EmployeeID), it.Purpose, it.Status, route(it.Segments))
	}
	return tw.Flush()
}

func runAddEmployee(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("add-employee", flag.ContinueOnError)
	first := fs.String("first", "", "First name (required)")
	last := fs.String("last", "", "Last name (required)")
	email := fs.String("email", "", "Email address (required)")
	department := fs.String("department", "", "Department (required)")
	title := fs.String("title", "", "Job title (required)")
	if err := e.parse(fs, args); err != nil {
		return err
	}

	page := pages.NewEmployeesPage(e.api, e.cfg.Configured(), e.log)
	defer page.Close()
	form.Set(page.Form, forms.EmployeeFirstName, *first)
	form.Set(page.Form, forms.EmployeeLastName, *last)
	form.Set(page.Form, forms.EmployeeEmail, *email)
	form.Set(page.Form, forms.EmployeeDepartment, *department)
	form.Set(page.Form, forms.EmployeeTitle, *title)

	if err := page.Create(ctx); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			fmt.Fprintln(e.stderr, "invalid employee:")
			printErrors(e.stderr, page.Form.Errors())
			if strings.TrimSpace(*department) == "" || strings.TrimSpace(*title) == "" {
				fmt.Fprintln(e.stderr, "  department and title are required")
			}
		}
		return notConfigured(err)
	}

	saved := page.Snapshot().Employees[0]
	fmt.Fprintf(e.stdout, "created employee %s (%s)\n", saved.ID, saved.FullName())
	return nil
}

func runAddItinerary(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("add-itinerary", flag.ContinueOnError)
	employeeID := fs.String("employee", "", "Employee id (required)")
	purpose := fs.String("purpose", "", "Trip purpose, at least 3 characters (required)")
	var segments []domain.FlightSegment
	fs.Func("segment", "Flight segment FROM,TO,DEPARTURE,ARRIVAL[,CARRIER,FLIGHT[,SEAT]] (repeatable)", func(s string) error {
		seg, err := parseSegment(s)
		if err != nil {
			return err
		}
		segments = append(segments, seg)
		return nil
	})
	if err := e.parse(fs, args); err != nil {
		return err
	}

	page := pages.NewItinerariesPage(e.api, e.cfg.Configured(), e.log)
	defer page.Close()
	form.Set(page.Form, forms.ItineraryEmployeeID, *employeeID)
	form.Set(page.Form, forms.ItineraryPurpose, *purpose)
	for i, seg := range segments {
		page.SetPending(seg)
		if !page.AddSegment() {
			return fmt.Errorf("segment %d: airports and times are required", i+1)
		}
	}

	if err := page.Submit(ctx); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			fmt.Fprintln(e.stderr, "invalid itinerary:")
			printErrors(e.stderr, page.Form.Errors())
		}
		return notConfigured(err)
	}

	saved := page.Snapshot().Itineraries[0]
	fmt.Fprintf(e.stdout, "created itinerary %s (%s, %s)\n", saved.ID, saved.Status, route(saved.Segments))
	return nil
}

func runUploadAvatar(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("upload-avatar", flag.ContinueOnError)
	id := fs.String("id", "", "Employee id (required)")
	path := fs.String("file", "", "PNG, JPEG or WebP image, at most 2 MiB (required)")
	if err := e.parse(fs, args); err != nil {
		return err
	}
	if *id == "" || *path == "" {
		fmt.Fprintln(e.stderr, "upload-avatar: -id and -file are required")
		fs.PrintDefaults()
		return errUsage
	}
	if !e.cfg.Configured() {
		return errNoKey
	}

	data, err := os.ReadFile(*path)
	if err != nil {
		return err
	}
	var file openapi_types.File
	file.InitFromBytes(data, filepath.Base(*path))

	res, err := e.api.UploadAvatar(ctx, *id, file)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "%s: %s\n", res.Message, e.api.AvatarURL(*id))
	return nil
}

func runDeleteEmployee(ctx context.Context, e *env, args []string) error {
	return runDelete(ctx, e, "delete-employee", args, e.api.DeleteEmployee)
}

func runDeleteItinerary(ctx context.Context, e *env, args []string) error {
	return runDelete(ctx, e, "delete-itinerary", args, e.api.DeleteItinerary)
}

func runDelete(ctx context.Context, e *env, name string, args []string, del func(context.Context, string) error) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	id := fs.String("id", "", "Record id (required)")
	if err := e.parse(fs, args); err != nil {
		return err
	}
	if *id == "" {
		fmt.Fprintf(e.stderr, "%s: -id is required\n", name)
		return errUsage
	}
	if !e.cfg.Configured() {
		return errNoKey
	}
	if err := del(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "deleted %s\n", *id)
	return nil
}

// parseSegment reads FROM,TO,DEPARTURE,ARRIVAL[,CARRIER,FLIGHT[,SEAT]].
// Airport codes are upper-cased; the seat class defaults to economy.
func parseSegment(s string) (domain.FlightSegment, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 4 || len(parts) > 7 {
		return domain.FlightSegment{}, fmt.Errorf("segment %q: want FROM,TO,DEPARTURE,ARRIVAL[,CARRIER,FLIGHT[,SEAT]]", s)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	seg := forms.EmptySegment()
	seg.From = strings.ToUpper(parts[0])
	seg.To = strings.ToUpper(parts[1])
	seg.Departure = parts[2]
	seg.Arrival = parts[3]
	if len(parts) > 4 {
		seg.Carrier = parts[4]
	}
	if len(parts) > 5 {
		seg.FlightNumber = parts[5]
	}
	if len(parts) > 6 && parts[6] != "" {
		seg.SeatClass = domain.SeatClass(strings.ToLower(parts[6]))
	}
	return seg, nil
}

// route renders segments as "FRA→JFK→SFO". A leg that does not start where
// the previous one ended begins a new group after a space.
func route(segs []domain.FlightSegment) string {
	if len(segs) == 0 {
		return "-"
	}
	var b strings.Builder
	b.WriteString(segs[0].From)
	for i, s := range segs {
		if i > 0 && segs[i-1].To != s.From {
			b.WriteString(" " + s.From)
		}
		b.WriteString("→" + s.To)
	}
	return b.String()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
