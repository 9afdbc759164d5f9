package services

import (
	"fmt"
	"strings"

	"github.com/neuromap-brasil/neuromap/internal/domain/entities"
)

// LineKind tells a front end how to style a rendered line.
type LineKind string

const (
	LineKindTitle   LineKind = "title"
	LineKindField   LineKind = "field"
	LineKindSection LineKind = "section"
	LineKindItem    LineKind = "item"
	LineKindLink    LineKind = "link"
)

const blockSeparator = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

// Line is one user-visible output line.
type Line struct {
	Kind  LineKind `json:"kind"`
	Icon  string   `json:"icon,omitempty"`
	Label string   `json:"label,omitempty"`
	Value string   `json:"value,omitempty"`
}

// String renders the line as plain text, e.g. "📞 TELEFONE: (11) 5555-0000".
func (l Line) String() string {
	prefix := l.Icon
	if l.Kind == LineKindItem {
		prefix = "•"
	}

	text := l.Value
	if l.Label != "" {
		text = l.Label + ":"
		if l.Value != "" {
			text += " " + l.Value
		}
	}
	return strings.TrimSpace(prefix + " " + text)
}

// ClinicBlock is the rendered form of one clinic.
type ClinicBlock struct {
	Lines []Line `json:"lines"`
}

// RenderedResults is everything shown after a search.
type RenderedResults struct {
	Header  []Line        `json:"header"`
	Clinics []ClinicBlock `json:"clinics"`
	Notice  string        `json:"notice,omitempty"`
}

// Text renders the results as plain text, one line per entry.
func (r RenderedResults) Text() string {
	var b strings.Builder
	for _, line := range r.Header {
		b.WriteString(line.String())
		b.WriteString("\n")
	}
	for _, block := range r.Clinics {
		b.WriteString(blockSeparator)
		b.WriteString("\n")
		for _, line := range block.Lines {
			b.WriteString(line.String())
			b.WriteString("\n")
		}
	}
	if r.Notice != "" {
		b.WriteString(r.Notice)
		b.WriteString("\n")
	}
	return b.String()
}

// RenderClinicResults maps the query summary and parsed clinics onto display
// lines. Absent fields get the catalog placeholders; it never fails.
func RenderClinicResults(query entities.ClinicSearchQuery, clinics []entities.ClinicRecord, msgs Messages) RenderedResults {
	result := RenderedResults{
		Header:  renderHeader(query, len(clinics), msgs),
		Clinics: make([]ClinicBlock, 0, len(clinics)),
	}

	for _, clinic := range clinics {
		result.Clinics = append(result.Clinics, renderClinic(clinic, msgs))
	}

	if len(clinics) == 0 {
		result.Notice = msgs.NoResults
	}
	return result
}

func renderHeader(query entities.ClinicSearchQuery, total int, msgs Messages) []Line {
	return []Line{
		{Kind: LineKindField, Icon: "📍", Label: msgs.LabelSearchLocation, Value: strings.ToUpper(strings.TrimSpace(query.City))},
		{Kind: LineKindField, Icon: "🎯", Label: msgs.LabelRadius, Value: fmt.Sprintf("%dkm", query.RadiusKm)},
		{Kind: LineKindField, Icon: "🧩", Label: msgs.LabelConditions, Value: joinOr(query.Conditions, msgs.NoneSelected)},
		{Kind: LineKindField, Icon: "⚕️", Label: msgs.LabelSpecialties, Value: joinOr(query.Specialties, msgs.NoneSelected)},
		{Kind: LineKindField, Icon: "📊", Label: msgs.LabelTotal, Value: fmt.Sprintf("%d", total)},
	}
}

func renderClinic(clinic entities.ClinicRecord, msgs Messages) ClinicBlock {
	lines := []Line{
		{Kind: LineKindTitle, Icon: "🏥", Value: strings.ToUpper(clinic.Name.OrDefault(msgs.NameNotAvailable))},
		{Kind: LineKindField, Icon: "📍", Value: clinic.Address.OrDefault(msgs.AddressNotAvailable)},
		{Kind: LineKindField, Icon: "📞", Label: msgs.LabelPhone, Value: clinic.Phone.OrDefault(msgs.NotAvailable)},
		{Kind: LineKindField, Icon: "⭐", Label: msgs.LabelRating, Value: clinic.Rating.OrDefault(msgs.NotAvailable)},
		{Kind: LineKindField, Icon: "📏", Label: msgs.LabelDistance, Value: fmt.Sprintf(msgs.DistanceFormat, clinic.DistanceKm.OrDefault(0))},
		{Kind: LineKindSection, Icon: "🧩", Label: msgs.LabelSupports},
		{Kind: LineKindItem, Label: msgs.LabelAutism, Value: clinic.Supports.Autism.TextOr(msgs.No)},
		{Kind: LineKindItem, Label: msgs.LabelDownSyndrome, Value: clinic.Supports.DownSyndrome.TextOr(msgs.No)},
		{Kind: LineKindItem, Label: msgs.LabelCerebralPalsy, Value: clinic.Supports.CerebralPalsy.TextOr(msgs.No)},
		{Kind: LineKindSection, Icon: "⚕️", Label: msgs.LabelOfferedSpecialty},
	}

	for _, specialty := range clinic.Specialties {
		lines = append(lines, Line{Kind: LineKindItem, Value: specialty})
	}

	lines = append(lines,
		Line{Kind: LineKindSection, Icon: "🔗", Label: msgs.LabelMapsLink},
		Line{Kind: LineKindLink, Value: clinic.MapsLink.OrDefault(msgs.LinkNotAvailable)},
	)

	return ClinicBlock{Lines: lines}
}
