package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuromap-brasil/neuromap/internal/domain/entities"
	apperrors "github.com/neuromap-brasil/neuromap/pkg/errors"
)

func TestParseClinicResponse_EmptyList(t *testing.T) {
	clinics, err := ParseClinicResponse(`{"clinics": []}`)
	require.NoError(t, err)
	assert.Empty(t, clinics)
}

func TestParseClinicResponse_MissingKeyIsEmpty(t *testing.T) {
	for _, raw := range []string{`{}`, `{"results": [{"name": "A"}]}`, `{"clinics": null}`} {
		clinics, err := ParseClinicResponse(raw)
		require.NoError(t, err, raw)
		assert.NotNil(t, clinics)
		assert.Empty(t, clinics)
	}
}

func TestParseClinicResponse_TrimsWhitespaceAndFence(t *testing.T) {
	clinics, err := ParseClinicResponse("\n  ```json\n{\"clinics\":[{\"name\":\"A\"}]}\n```  \n")
	require.NoError(t, err)
	require.Len(t, clinics, 1)
	assert.Equal(t, "A", clinics[0].Name.Value)
}

func TestParseClinicResponse_FormatErrors(t *testing.T) {
	cases := map[string]string{
		"not json":         "not json",
		"extra prose":      `Aqui estão as clínicas: {"clinics": []}`,
		"trailing prose":   `{"clinics": []} Espero ter ajudado!`,
		"truncated":        `{"clinics": [{"name": "A", "dist": 1.`,
		"top-level array":  `[{"name": "A"}]`,
		"top-level null":   `null`,
		"clinics not list": `{"clinics": "nenhuma"}`,
		"record not obj":   `{"clinics": ["A"]}`,
		"bad field type":   `{"clinics": [{"especialidades": "Psicologia"}]}`,
		"dist NaN":         `{"clinics": [{"name": "A", "dist": "NaN"}]}`,
		"dist Inf":         `{"clinics": [{"name": "A", "dist": "Inf"}]}`,
		"dist infinity":    `{"clinics": [{"name": "A", "dist": "-infinity"}]}`,
		"dist overflow":    `{"clinics": [{"name": "A", "dist": 1e400}]}`,
		"empty":            "   ",
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			clinics, err := ParseClinicResponse(raw)
			assert.Nil(t, clinics)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeResponseFormat), "got %v", err)
		})
	}
}

func TestParseClinicResponse_NumericStringDistance(t *testing.T) {
	clinics, err := ParseClinicResponse(`{"clinics": [{"name": "A", "dist": " 2.5 "}]}`)
	require.NoError(t, err)
	require.Len(t, clinics, 1)
	assert.Equal(t, 2.5, clinics[0].DistanceKm.Value)
}

func TestParseClinicResponse_DropsBlankSpecialties(t *testing.T) {
	clinics, err := ParseClinicResponse(`{"clinics": [{"name": "A", "especialidades": ["Psicologia", null, "  ", "Pediasuit"]}]}`)
	require.NoError(t, err)
	require.Len(t, clinics, 1)
	assert.Equal(t, []string{"Psicologia", "Pediasuit"}, clinics[0].Specialties)

	rendered := RenderClinicResults(entities.ClinicSearchQuery{City: "Moema", State: "SP", RadiusKm: 5}, clinics, EnglishMessages)
	require.Len(t, rendered.Clinics, 1)
	assert.NotContains(t, rendered.Text(), "\n•\n")
	assert.Contains(t, rendered.Text(), "• Pediasuit")
}

func TestParseClinicResponse_FormatErrorCarriesCause(t *testing.T) {
	_, err := ParseClinicResponse("not json")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Error(t, appErr.Err)
}

func TestParseClinicResponse_RoundTripFromPrompt(t *testing.T) {
	query := entities.ClinicSearchQuery{
		City:        "Vila Mariana",
		State:       "SP",
		RadiusKm:    5,
		Conditions:  []string{entities.ConditionAutism, entities.ConditionCerebralPalsy},
		Specialties: []string{"Fonoaudiologia", "Fisioterapia"},
	}
	prompt := BuildClinicPrompt(query, nil, PortugueseMessages)
	require.Contains(t, prompt, `"especialidades"`)

	raw := `{"clinics": [{
		"name": "Instituto Movimento",
		"address": "Rua Vergueiro, 3000 - Vila Mariana, São Paulo - SP",
		"phone": "Não disponível",
		"rating": "4.8",
		"dist": 2.345,
		"atende": {"autismo": "SIM", "down": "NÃO", "paralisia": "SIM"},
		"especialidades": ["Fisioterapia", "Fonoaudiologia", "Pediasuit"],
		"maps_link": "https://www.google.com/maps/search/?api=1&query=Instituto+Movimento+Sao+Paulo"
	}]}`

	clinics, err := ParseClinicResponse(raw)
	require.NoError(t, err)
	require.Len(t, clinics, 1)

	clinic := clinics[0]
	assert.Equal(t, entities.Some("Instituto Movimento"), clinic.Name)
	assert.Equal(t, entities.Some("Rua Vergueiro, 3000 - Vila Mariana, São Paulo - SP"), clinic.Address)
	assert.Equal(t, entities.Some("Não disponível"), clinic.Phone)
	assert.Equal(t, entities.Some("4.8"), clinic.Rating)
	assert.Equal(t, entities.Some(2.345), clinic.DistanceKm)
	assert.Equal(t, entities.NewSupportFlag("SIM"), clinic.Supports.Autism)
	assert.Equal(t, entities.NewSupportFlag("NÃO"), clinic.Supports.DownSyndrome)
	assert.Equal(t, entities.NewSupportFlag("SIM"), clinic.Supports.CerebralPalsy)
	assert.Equal(t, []string{"Fisioterapia", "Fonoaudiologia", "Pediasuit"}, clinic.Specialties)
	assert.Equal(t, entities.Some("https://www.google.com/maps/search/?api=1&query=Instituto+Movimento+Sao+Paulo"), clinic.MapsLink)
}
