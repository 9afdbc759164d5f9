package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/neuromap-brasil/neuromap/internal/application/services"
	"github.com/neuromap-brasil/neuromap/internal/bootstrap"
	"github.com/neuromap-brasil/neuromap/internal/domain/entities"
	"github.com/neuromap-brasil/neuromap/internal/infrastructure/observability"
	"github.com/neuromap-brasil/neuromap/pkg/config"
	apperrors "github.com/neuromap-brasil/neuromap/pkg/errors"
)

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ", ")
}

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

type options struct {
	apiKey string
	query  entities.ClinicSearchQuery
	asJSON bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	defaults := entities.NewDefaultClinicSearchQuery()
	var (
		opts        options
		conditions  stringList
		specialties stringList
	)

	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.apiKey, "api-key", "", "Model API key (defaults to LLM_API_KEY)")
	fs.StringVar(&opts.query.City, "city", defaults.City, "City or neighbourhood")
	fs.StringVar(&opts.query.State, "state", defaults.State, "State abbreviation")
	fs.StringVar(&opts.query.Address, "address", "", "Specific address (optional)")
	fs.IntVar(&opts.query.RadiusKm, "radius", defaults.RadiusKm, fmt.Sprintf("Search radius in km (%d-%d)", entities.MinRadiusKm, entities.MaxRadiusKm))
	fs.Var(&conditions, "condition", "Condition filter, repeatable: "+strings.Join(entities.ConditionOptions, " | "))
	fs.Var(&specialties, "specialty", "Specialty filter, repeatable: "+strings.Join(entities.SpecialtyOptions, " | "))
	fs.BoolVar(&opts.asJSON, "json", false, "Print the parsed clinics as JSON instead of text")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	opts.query.Conditions = conditions
	opts.query.Specialties = specialties
	return opts, nil
}

// clinicSearcher is the slice of ClinicSearchService the CLI drives.
type clinicSearcher interface {
	Search(ctx context.Context, apiKey string, query entities.ClinicSearchQuery) (*services.ClinicSearchResult, error)
	Messages() services.Messages
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return 1
	}

	// stdout carries results only.
	observability.InitLoggerWithWriter(cfg.OTEL.ServiceName+"-cli", cfg.App.Env, stderr)

	if opts.apiKey == "" {
		opts.apiKey = cfg.LLM.APIKey
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		fmt.Fprintf(stderr, "metrics error: %v\n", err)
		return 1
	}

	geolocationProvider, closeGeolocation := bootstrap.NewGeolocationProvider(ctx, cfg, metrics)
	defer closeGeolocation()

	llm, err := bootstrap.NewLanguageModelProvider(cfg, metrics)
	if err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return 1
	}

	service := services.NewClinicSearchService(geolocationProvider, llm, services.MessagesFor(cfg.App.Locale), metrics)
	return search(ctx, service, opts, stdout, stderr)
}

func search(ctx context.Context, service clinicSearcher, opts options, stdout, stderr io.Writer) int {
	result, err := service.Search(ctx, opts.apiKey, opts.query)
	if err != nil {
		msg := service.Messages().ErrorText(err)
		if apperrors.IsType(err, apperrors.ErrorTypeMissingCredential) {
			msg += " (-api-key or LLM_API_KEY)"
		}
		fmt.Fprintln(stderr, msg)
		return 1
	}

	if opts.asJSON {
		if err := writeJSON(stdout, result); err != nil {
			fmt.Fprintf(stderr, "failed to write results: %v\n", err)
			return 1
		}
		return 0
	}

	fmt.Fprint(stdout, result.Rendered.Text())
	return 0
}

func writeJSON(w io.Writer, result *services.ClinicSearchResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(result)
}
