package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/neuromap-brasil/neuromap/internal/domain/entities"
	"github.com/neuromap-brasil/neuromap/internal/domain/providers"
	"github.com/neuromap-brasil/neuromap/internal/infrastructure/observability"
	apperrors "github.com/neuromap-brasil/neuromap/pkg/errors"
)

// ClinicSearchResult is the outcome of one search round trip.
type ClinicSearchResult struct {
	ID       string                     `json:"id"`
	Query    entities.ClinicSearchQuery `json:"query"`
	Center   *providers.Coordinates     `json:"center,omitempty"`
	Prompt   string                     `json:"-"`
	Clinics  []entities.ClinicRecord    `json:"clinics"`
	Rendered RenderedResults            `json:"rendered"`
}

// ClinicSearchService runs geocode, prompt, model call, parse and render for
// one user action. It holds no per-search state.
type ClinicSearchService struct {
	geolocation providers.GeolocationProvider
	llm         providers.LanguageModelProvider
	messages    Messages
	metrics     *observability.Metrics
}

// NewClinicSearchService creates a new clinic search service. geolocation may
// be nil, in which case prompts never carry coordinates.
func NewClinicSearchService(
	geolocation providers.GeolocationProvider,
	llm providers.LanguageModelProvider,
	messages Messages,
	metrics *observability.Metrics,
) *ClinicSearchService {
	return &ClinicSearchService{
		geolocation: geolocation,
		llm:         llm,
		messages:    messages,
		metrics:     metrics,
	}
}

// Messages returns the catalog results are rendered with.
func (s *ClinicSearchService) Messages() Messages {
	return s.messages
}

// Search performs one clinic search with the caller's API key.
func (s *ClinicSearchService) Search(ctx context.Context, apiKey string, query entities.ClinicSearchQuery) (*ClinicSearchResult, error) {
	ctx, span := observability.StartSpan(ctx, "ClinicSearchService.Search")
	defer span.End()

	searchID := uuid.NewString()
	logger := observability.LoggerFromContext(ctx).With().Str("search_id", searchID).Logger()

	if strings.TrimSpace(apiKey) == "" {
		return nil, apperrors.NewMissingCredentialError()
	}

	query = NormalizeClinicSearchQuery(query)
	if err := ValidateClinicSearchQuery(query); err != nil {
		return nil, err
	}

	location := LocationString(query)
	observability.SetSpanAttributes(span,
		attribute.String("search.id", searchID),
		attribute.String("search.location", location),
		attribute.Int("search.radius_km", query.RadiusKm),
	)

	center := s.geocode(ctx, location)
	prompt := BuildClinicPrompt(query, center, s.messages)

	logger.Info().
		Str("location", location).
		Int("radius_km", query.RadiusKm).
		Strs("conditions", query.Conditions).
		Strs("specialties", query.Specialties).
		Bool("has_center", center != nil).
		Str("provider", s.llm.Name()).
		Msg("dispatching clinic search")

	text, err := s.llm.Generate(ctx, apiKey, prompt)
	if err != nil {
		observability.RecordError(span, err)
		if apperrors.TypeOf(err) == "" {
			err = apperrors.NewExternalError("language model request failed", err)
		}
		logger.Error().Err(err).Msg("language model request failed")
		return nil, err
	}

	clinics, err := ParseClinicResponse(text)
	if err != nil {
		observability.RecordError(span, err)
		logger.Warn().Err(err).Int("response_bytes", len(text)).Msg("model response rejected")
		return nil, err
	}

	observability.RecordSearchResults(ctx, s.metrics, len(clinics))
	logger.Info().Int("clinics", len(clinics)).Msg("clinic search completed")

	return &ClinicSearchResult{
		ID:       searchID,
		Query:    query,
		Center:   center,
		Prompt:   prompt,
		Clinics:  clinics,
		Rendered: RenderClinicResults(query, clinics, s.messages),
	}, nil
}

// geocode resolves location; every failure is a tolerated miss.
func (s *ClinicSearchService) geocode(ctx context.Context, location string) *providers.Coordinates {
	if s.geolocation == nil {
		return nil
	}

	coords, err := s.geolocation.Geocode(ctx, location)
	if err != nil || coords == nil {
		miss := apperrors.NewGeocodingMissError(location, err)
		observability.LoggerFromContext(ctx).Warn().Err(miss).Msg("continuing without center coordinates")
		return nil
	}
	return coords
}

// NormalizeClinicSearchQuery trims text fields and drops blank or repeated
// filter entries, keeping selection order.
func NormalizeClinicSearchQuery(query entities.ClinicSearchQuery) entities.ClinicSearchQuery {
	query.City = strings.TrimSpace(query.City)
	query.State = strings.TrimSpace(query.State)
	query.Address = strings.TrimSpace(query.Address)
	query.Conditions = dedupe(query.Conditions)
	query.Specialties = dedupe(query.Specialties)
	return query
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
