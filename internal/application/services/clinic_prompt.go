package services

import (
	"fmt"
	"strings"

	"github.com/neuromap-brasil/neuromap/internal/domain/entities"
	"github.com/neuromap-brasil/neuromap/internal/domain/providers"
)

const searchCountry = "Brasil"

// LocationString is the free-text location used both for geocoding and in
// the prompt: the specific address when given, otherwise the city.
func LocationString(query entities.ClinicSearchQuery) string {
	place := strings.TrimSpace(query.Address)
	if place == "" {
		place = strings.TrimSpace(query.City)
	}
	return fmt.Sprintf("%s, %s, %s", place, strings.TrimSpace(query.State), searchCountry)
}

// BuildClinicPrompt renders the instruction sent to the language model.
// center is omitted from the prompt when nil. It never fails.
func BuildClinicPrompt(query entities.ClinicSearchQuery, center *providers.Coordinates, msgs Messages) string {
	var b strings.Builder

	b.WriteString(msgs.PromptIntro)
	b.WriteString("\n")
	fmt.Fprintf(&b, msgs.PromptLocation, LocationString(query))
	b.WriteString("\n")
	if center != nil {
		fmt.Fprintf(&b, msgs.PromptCenter, center.Latitude, center.Longitude, query.RadiusKm)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, msgs.PromptRadius, query.RadiusKm)
	b.WriteString("\n")
	fmt.Fprintf(&b, msgs.PromptConditions, joinOr(query.Conditions, msgs.AnyRelevant))
	b.WriteString("\n")
	fmt.Fprintf(&b, msgs.PromptSpecialties, joinOr(query.Specialties, msgs.AnyRelevant))
	b.WriteString("\n\n")
	b.WriteString(msgs.PromptInstructions)
	b.WriteString("\n")

	return b.String()
}

func joinOr(values []string, empty string) string {
	if len(values) == 0 {
		return empty
	}
	return strings.Join(values, ", ")
}
