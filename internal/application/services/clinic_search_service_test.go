package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuromap-brasil/neuromap/internal/domain/entities"
	"github.com/neuromap-brasil/neuromap/internal/domain/providers"
	apperrors "github.com/neuromap-brasil/neuromap/pkg/errors"
)

type stubGeolocation struct {
	coords *providers.Coordinates
	err    error
	calls  []string
}

func (s *stubGeolocation) Geocode(ctx context.Context, address string) (*providers.Coordinates, error) {
	s.calls = append(s.calls, address)
	return s.coords, s.err
}

type stubLanguageModel struct {
	response string
	err      error
	apiKeys  []string
	prompts  []string
}

func (s *stubLanguageModel) Generate(ctx context.Context, apiKey, prompt string) (string, error) {
	s.apiKeys = append(s.apiKeys, apiKey)
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

func (s *stubLanguageModel) Name() string {
	return "stub"
}

func TestClinicSearchService_Search_Success(t *testing.T) {
	geo := &stubGeolocation{coords: &providers.Coordinates{Latitude: -23.5891, Longitude: -46.6342}}
	llm := &stubLanguageModel{response: `{"clinics":[{"name":"Clínica A","dist":1.2,"especialidades":["Psicologia"]}]}`}
	service := NewClinicSearchService(geo, llm, PortugueseMessages, nil)

	query := entities.NewDefaultClinicSearchQuery()
	query.Conditions = []string{entities.ConditionAutism}

	result, err := service.Search(context.Background(), "user-key", query)
	require.NoError(t, err)

	assert.NotEmpty(t, result.ID)
	assert.Equal(t, []string{"Vila Mariana, SP, Brasil"}, geo.calls)
	assert.Equal(t, []string{"user-key"}, llm.apiKeys)
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "latitude -23.5891")
	assert.Contains(t, llm.prompts[0], entities.ConditionAutism)
	assert.Equal(t, llm.prompts[0], result.Prompt)
	assert.Equal(t, geo.coords, result.Center)
	require.Len(t, result.Clinics, 1)
	assert.Len(t, result.Rendered.Clinics, 1)
}

func TestClinicSearchService_Search_MissingCredential(t *testing.T) {
	geo := &stubGeolocation{}
	llm := &stubLanguageModel{}
	service := NewClinicSearchService(geo, llm, PortugueseMessages, nil)

	_, err := service.Search(context.Background(), "   ", entities.NewDefaultClinicSearchQuery())

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeMissingCredential))
	assert.Empty(t, geo.calls)
	assert.Empty(t, llm.prompts)
}

func TestClinicSearchService_Search_GeocodingMissIsTolerated(t *testing.T) {
	geo := &stubGeolocation{err: errors.New("nominatim timeout")}
	llm := &stubLanguageModel{response: `{"clinics": []}`}
	service := NewClinicSearchService(geo, llm, EnglishMessages, nil)

	result, err := service.Search(context.Background(), "key", entities.NewDefaultClinicSearchQuery())
	require.NoError(t, err)

	assert.Nil(t, result.Center)
	assert.NotContains(t, llm.prompts[0], "Approximate center coordinates")
	assert.Equal(t, EnglishMessages.NoResults, result.Rendered.Notice)
}

func TestClinicSearchService_Search_WithoutGeolocationProvider(t *testing.T) {
	llm := &stubLanguageModel{response: `{"clinics": []}`}
	service := NewClinicSearchService(nil, llm, PortugueseMessages, nil)

	result, err := service.Search(context.Background(), "key", entities.NewDefaultClinicSearchQuery())
	require.NoError(t, err)
	assert.Nil(t, result.Center)
}

func TestClinicSearchService_Search_ResponseFormatError(t *testing.T) {
	llm := &stubLanguageModel{response: "not json"}
	service := NewClinicSearchService(nil, llm, PortugueseMessages, nil)

	result, err := service.Search(context.Background(), "key", entities.NewDefaultClinicSearchQuery())

	assert.Nil(t, result)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeResponseFormat))
}

func TestClinicSearchService_Search_TransportErrorPropagates(t *testing.T) {
	llm := &stubLanguageModel{err: errors.New("connection reset")}
	service := NewClinicSearchService(nil, llm, PortugueseMessages, nil)

	_, err := service.Search(context.Background(), "key", entities.NewDefaultClinicSearchQuery())

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
	assert.ErrorContains(t, err, "connection reset")
	assert.Len(t, llm.prompts, 1)
}

func TestClinicSearchService_Search_KeepsProviderErrorType(t *testing.T) {
	llm := &stubLanguageModel{err: apperrors.NewUnauthorizedError("rejected", nil)}
	service := NewClinicSearchService(nil, llm, PortugueseMessages, nil)

	_, err := service.Search(context.Background(), "key", entities.NewDefaultClinicSearchQuery())
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
}

func TestClinicSearchService_Search_ValidationHappensBeforeNetwork(t *testing.T) {
	cases := map[string]entities.ClinicSearchQuery{
		"radius too small":  {City: "Moema", State: "SP", RadiusKm: 0},
		"radius too large":  {City: "Moema", State: "SP", RadiusKm: 21},
		"unknown condition": {City: "Moema", State: "SP", RadiusKm: 5, Conditions: []string{"Dislexia"}},
		"unknown specialty": {City: "Moema", State: "SP", RadiusKm: 5, Specialties: []string{"Equoterapia"}},
	}

	for name, query := range cases {
		t.Run(name, func(t *testing.T) {
			geo := &stubGeolocation{}
			llm := &stubLanguageModel{}
			service := NewClinicSearchService(geo, llm, PortugueseMessages, nil)

			_, err := service.Search(context.Background(), "key", query)

			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
			assert.Empty(t, geo.calls)
			assert.Empty(t, llm.prompts)
		})
	}
}

func TestNormalizeClinicSearchQuery(t *testing.T) {
	query := NormalizeClinicSearchQuery(entities.ClinicSearchQuery{
		City:        "  Pinheiros ",
		State:       " SP",
		Conditions:  []string{entities.ConditionAutism, " ", entities.ConditionAutism},
		Specialties: []string{"Nutrição", "Psicologia", "Nutrição"},
	})

	assert.Equal(t, "Pinheiros", query.City)
	assert.Equal(t, "SP", query.State)
	assert.Equal(t, []string{entities.ConditionAutism}, query.Conditions)
	assert.Equal(t, []string{"Nutrição", "Psicologia"}, query.Specialties)
}
