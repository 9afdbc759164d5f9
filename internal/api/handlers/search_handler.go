package handlers

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/neuromap-brasil/neuromap/internal/application/services"
	"github.com/neuromap-brasil/neuromap/internal/domain/entities"
	"github.com/neuromap-brasil/neuromap/internal/infrastructure/observability"
	apperrors "github.com/neuromap-brasil/neuromap/pkg/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

// apiKeyHeader lets API clients send the model credential outside the body.
const apiKeyHeader = "X-Model-API-Key"

// maxSearchBodyBytes bounds POST bodies on both search routes.
const maxSearchBodyBytes = 64 << 10

// SearchHandler serves the search page and the JSON search API.
type SearchHandler struct {
	service *services.ClinicSearchService
	page    *template.Template
}

// NewSearchHandler parses the embedded page template.
func NewSearchHandler(service *services.ClinicSearchService) (*SearchHandler, error) {
	page, err := template.New("search.html").Funcs(template.FuncMap{
		"contains": func(values []string, v string) bool {
			return slices.Contains(values, v)
		},
		"isURL": func(s string) bool {
			return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
		},
	}).ParseFS(templateFS, "templates/search.html")
	if err != nil {
		return nil, err
	}
	return &SearchHandler{service: service, page: page}, nil
}

// searchRequest is the JSON body of POST /api/search. Omitted city, state and
// radius fall back to the form defaults; values that are sent, blank ones
// included, are validated as given.
type searchRequest struct {
	APIKey      string   `json:"api_key"`
	City        *string  `json:"city"`
	State       *string  `json:"state"`
	Address     string   `json:"address"`
	RadiusKm    *int     `json:"radius_km"`
	Conditions  []string `json:"conditions"`
	Specialties []string `json:"specialties"`
}

func (req searchRequest) query() entities.ClinicSearchQuery {
	query := entities.NewDefaultClinicSearchQuery()
	if req.City != nil {
		query.City = *req.City
	}
	if req.State != nil {
		query.State = *req.State
	}
	if req.RadiusKm != nil {
		query.RadiusKm = *req.RadiusKm
	}
	query.Address = req.Address
	query.Conditions = req.Conditions
	query.Specialties = req.Specialties
	return query
}

// pageData is what templates/search.html renders.
type pageData struct {
	Messages    services.Messages
	Query       entities.ClinicSearchQuery
	Conditions  []string
	Specialties []string
	MinRadius   int
	MaxRadius   int
	Warning     string
	Error       string
	Results     *services.RenderedResults
}

func (h *SearchHandler) newPageData(query entities.ClinicSearchQuery) pageData {
	return pageData{
		Messages:    h.service.Messages(),
		Query:       query,
		Conditions:  entities.ConditionOptions,
		Specialties: entities.SpecialtyOptions,
		MinRadius:   entities.MinRadiusKm,
		MaxRadius:   entities.MaxRadiusKm,
	}
}

// Index handles GET /
func (h *SearchHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, h.newPageData(entities.NewDefaultClinicSearchQuery()))
}

// SubmitForm handles POST /search
func (h *SearchHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSearchBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	query, formErr := queryFromForm(r)
	data := h.newPageData(query)
	if formErr != nil {
		data.Error = data.Messages.ErrorText(formErr)
		h.renderPage(w, r, http.StatusBadRequest, data)
		return
	}

	result, err := h.service.Search(r.Context(), r.PostForm.Get("api_key"), query)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeMissingCredential) {
			data.Warning = data.Messages.ErrorText(err)
		} else {
			data.Error = data.Messages.ErrorText(err)
		}
		h.renderPage(w, r, statusForError(err), data)
		return
	}

	data.Query = result.Query
	data.Results = &result.Rendered
	h.renderPage(w, r, http.StatusOK, data)
}

// Search handles POST /api/search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSearchBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	apiKey := req.APIKey
	if strings.TrimSpace(apiKey) == "" {
		apiKey = r.Header.Get(apiKeyHeader)
	}

	result, err := h.service.Search(r.Context(), apiKey, req.query())
	if err != nil {
		respondWithAppError(w, h.service.Messages(), err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// Options handles GET /api/options
func (h *SearchHandler) Options(w http.ResponseWriter, r *http.Request) {
	defaults := entities.NewDefaultClinicSearchQuery()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"conditions":  entities.ConditionOptions,
		"specialties": entities.SpecialtyOptions,
		"radius_km": map[string]int{
			"min":     entities.MinRadiusKm,
			"max":     entities.MaxRadiusKm,
			"default": defaults.RadiusKm,
		},
		"defaults": map[string]string{
			"city":  defaults.City,
			"state": defaults.State,
		},
	})
}

func (h *SearchHandler) renderPage(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.page.Execute(w, data); err != nil {
		observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("failed to render search page")
	}
}

// queryFromForm reads the search fields of a submitted form. City and state
// keep their defaults only when the field is missing from the form.
func queryFromForm(r *http.Request) (entities.ClinicSearchQuery, error) {
	query := entities.NewDefaultClinicSearchQuery()
	if city, ok := r.PostForm["city"]; ok {
		query.City = firstOrEmpty(city)
	}
	if state, ok := r.PostForm["state"]; ok {
		query.State = firstOrEmpty(state)
	}
	query.Address = r.PostForm.Get("address")
	query.Conditions = r.PostForm["condition"]
	query.Specialties = r.PostForm["specialty"]

	if raw := strings.TrimSpace(r.PostForm.Get("radius_km")); raw != "" {
		radius, err := strconv.Atoi(raw)
		if err != nil {
			return query, apperrors.NewValidationError("radius must be a whole number of km")
		}
		query.RadiusKm = radius
	}
	return query, nil
}

func firstOrEmpty(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
