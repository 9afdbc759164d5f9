package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ClinicRecord is one clinic as returned by the language model. It is
// decoded once per search and discarded after rendering.
type ClinicRecord struct {
	Name        Optional[string]  `json:"name,omitzero"`
	Address     Optional[string]  `json:"address,omitzero"`
	Phone       Optional[string]  `json:"phone,omitzero"`
	Rating      Optional[string]  `json:"rating,omitzero"`
	DistanceKm  Optional[float64] `json:"dist,omitzero"`
	Supports    ClinicSupports    `json:"atende,omitzero"`
	Specialties []string          `json:"especialidades,omitempty"`
	MapsLink    Optional[string]  `json:"maps_link,omitzero"`
}

// ClinicSupports lists which of the three conditions a clinic serves.
type ClinicSupports struct {
	Autism        SupportFlag `json:"autismo,omitzero"`
	DownSyndrome  SupportFlag `json:"down,omitzero"`
	CerebralPalsy SupportFlag `json:"paralisia,omitzero"`
}

// SupportFlag keeps the model's answer verbatim ("SIM", "NÃO", ...).
// JSON booleans are accepted and stored as "SIM"/"NÃO".
type SupportFlag struct {
	Text    string
	Present bool
}

// NewSupportFlag returns a present flag with the given text.
func NewSupportFlag(text string) SupportFlag {
	return SupportFlag{Text: text, Present: true}
}

// Supported interprets the flag; absent flags are unsupported.
func (f SupportFlag) Supported() bool {
	if !f.Present {
		return false
	}
	switch strings.ToUpper(strings.TrimSpace(f.Text)) {
	case "SIM", "S", "YES", "Y", "TRUE":
		return true
	}
	return false
}

// TextOr returns the raw text, or def when absent.
func (f SupportFlag) TextOr(def string) string {
	if f.Present {
		return f.Text
	}
	return def
}

func (f SupportFlag) IsZero() bool {
	return !f.Present
}

func (f SupportFlag) MarshalJSON() ([]byte, error) {
	if !f.Present {
		return []byte("null"), nil
	}
	return json.Marshal(f.Text)
}

func (f *SupportFlag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = SupportFlag{}
	case bytes.Equal(data, []byte("true")):
		*f = NewSupportFlag("SIM")
	case bytes.Equal(data, []byte("false")):
		*f = NewSupportFlag("NÃO")
	default:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("support flag must be text or boolean, got %s", data)
		}
		*f = NewSupportFlag(s)
	}
	return nil
}

func (s ClinicSupports) IsZero() bool {
	return !s.Autism.Present && !s.DownSyndrome.Present && !s.CerebralPalsy.Present
}
