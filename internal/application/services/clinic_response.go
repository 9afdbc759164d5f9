package services

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/neuromap-brasil/neuromap/internal/domain/entities"
	apperrors "github.com/neuromap-brasil/neuromap/pkg/errors"
)

type clinicResponse struct {
	Clinics []entities.ClinicRecord `json:"clinics"`
}

// ParseClinicResponse decodes the model reply and returns the records under
// "clinics", or an empty list when the key is absent. Anything that is not a
// single JSON object of the expected shape is a RESPONSE_FORMAT error.
func ParseClinicResponse(raw string) ([]entities.ClinicRecord, error) {
	cleaned := stripCodeFence(strings.TrimSpace(raw))

	if !strings.HasPrefix(cleaned, "{") {
		var probe any
		if err := json.Unmarshal([]byte(cleaned), &probe); err != nil {
			return nil, apperrors.NewResponseFormatError(err)
		}
		return nil, apperrors.NewResponseFormatError(errors.New("expected a JSON object"))
	}

	var payload clinicResponse
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, apperrors.NewResponseFormatError(err)
	}
	if payload.Clinics == nil {
		return []entities.ClinicRecord{}, nil
	}
	for i := range payload.Clinics {
		payload.Clinics[i].Specialties = dropBlank(payload.Clinics[i].Specialties)
	}
	return payload.Clinics, nil
}

// dropBlank removes empty entries, which is also what a null element of
// "especialidades" decodes to.
func dropBlank(values []string) []string {
	if values == nil {
		return nil
	}
	out := values[:0]
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

// stripCodeFence removes a markdown ```json fence wrapped around the whole reply.
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") || !strings.HasSuffix(text, "```") || len(text) < 6 {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
