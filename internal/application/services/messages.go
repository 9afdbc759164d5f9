package services

import (
	"errors"
	"fmt"

	apperrors "github.com/neuromap-brasil/neuromap/pkg/errors"
)

// Messages is the user-facing and prompt text for one locale.
type Messages struct {
	Locale string

	Title      string
	Subtitle   string
	Disclaimer string

	MissingCredential   string
	ResponseFormatError string
	TransportError      string
	UnauthorizedError   string
	ValidationError     string

	FormAPIKey      string
	FormCity        string
	FormState       string
	FormAddress     string
	FormRadius      string
	FormConditions  string
	FormSpecialties string
	FormSubmit      string

	PromptIntro        string
	PromptLocation     string
	PromptCenter       string
	PromptRadius       string
	PromptConditions   string
	PromptSpecialties  string
	PromptInstructions string
	AnyRelevant        string

	LabelSearchLocation string
	LabelRadius         string
	LabelConditions     string
	LabelSpecialties    string
	LabelTotal          string
	NoneSelected        string

	LabelPhone            string
	LabelRating           string
	LabelDistance         string
	DistanceFormat        string
	LabelSupports         string
	LabelAutism           string
	LabelDownSyndrome     string
	LabelCerebralPalsy    string
	LabelOfferedSpecialty string
	LabelMapsLink         string
	NameNotAvailable      string
	AddressNotAvailable   string
	NotAvailable          string
	No                    string
	LinkNotAvailable      string
	NoResults             string
}

// clinicJSONSchema is the reply shape the model is asked for. The keys are
// what entities.ClinicRecord decodes.
const clinicJSONSchema = `{"clinics": [{"name": "...", "address": "...", "phone": "...", "rating": "...", "dist": number, "atende": {"autismo": "SIM/NÃO", "down": "SIM/NÃO", "paralisia": "SIM/NÃO"}, "especialidades": ["...", "..."], "maps_link": "..."}, ...]}`

// PortugueseMessages is the default catalog.
var PortugueseMessages = Messages{
	Locale: "pt-BR",

	Title:      "NeuroMap Brasil",
	Subtitle:   "Assistente especializado em buscas de clínicas para TEA, Síndrome de Down e Paralisia Cerebral, com restrição geográfica absoluta.",
	Disclaimer: "Nota: As buscas são realizadas por IA, baseada em conhecimento treinado. Os resultados podem não ser exaustivos ou atualizados em tempo real. Verifique sempre as informações diretamente com as clínicas.",

	MissingCredential:   "Insira a chave API do modelo para realizar buscas. Para o Gemini, obtenha em: https://aistudio.google.com/app/apikey",
	ResponseFormatError: "Erro ao processar resposta da IA: %v",
	TransportError:      "Erro ao consultar a IA: %v",
	UnauthorizedError:   "A chave API foi recusada pelo provedor da IA.",
	ValidationError:     "Parâmetros de busca inválidos: %s",

	FormAPIKey:      "Chave API do modelo",
	FormCity:        "Cidade/Bairro",
	FormState:       "Estado (sigla)",
	FormAddress:     "Endereço específico (opcional)",
	FormRadius:      "Raio de busca (km)",
	FormConditions:  "Condições atendidas",
	FormSpecialties: "Especialidades",
	FormSubmit:      "Buscar clínicas",

	PromptIntro:       "Você é um assistente especializado em buscar clínicas no Brasil para Transtorno do Espectro Autista (TEA), Síndrome de Down e Paralisia Cerebral.",
	PromptLocation:    "Localização central: %s.",
	PromptCenter:      "Coordenadas aproximadas do centro: latitude %v, longitude %v. Use isso para estimar distâncias e respeitar rigorosamente o raio de %d km.",
	PromptRadius:      "Raio máximo: %d km. DESCARTE qualquer clínica fora desse raio.",
	PromptConditions:  "Condições a atender (pelo menos uma): %s.",
	PromptSpecialties: "Especialidades a oferecer (pelo menos uma): %s.",
	PromptInstructions: `Liste clínicas relevantes dentro do raio, priorizando as que atendem múltiplas condições e especialidades.
Não limite a um número específico; liste todas as que você souber que se encaixem, mas foque em qualidade.
Para cada clínica, forneça:
- Nome
- Endereço completo
- Telefone (se souber, senão 'Não disponível')
- Avaliação (nota média, se souber, senão 'Não disponível')
- Distância aproximada do centro (em km)
- Atende: lista com Autismo (TEA): SIM/NÃO, Síndrome de Down: SIM/NÃO, Paralisia Cerebral: SIM/NÃO
- Especialidades oferecidas: lista das principais
- Link Google Maps: https://www.google.com/maps/search/?api=1&query=[NOME+DA+CLINICA]+[CIDADE]

Saída em formato JSON estrito: ` + clinicJSONSchema + `
Não inclua texto extra fora do JSON.`,
	AnyRelevant: "Qualquer uma relevante",

	LabelSearchLocation: "BUSCA REALIZADA EM",
	LabelRadius:         "RAIO",
	LabelConditions:     "CONDIÇÕES",
	LabelSpecialties:    "ESPECIALIDADES",
	LabelTotal:          "TOTAL DE RESULTADOS",
	NoneSelected:        "Nenhuma selecionada",

	LabelPhone:            "TELEFONE",
	LabelRating:           "AVALIAÇÃO",
	LabelDistance:         "DISTÂNCIA DO CENTRO",
	DistanceFormat:        "aproximadamente %.1fkm",
	LabelSupports:         "ATENDE",
	LabelAutism:           "Autismo (TEA)",
	LabelDownSyndrome:     "Síndrome de Down",
	LabelCerebralPalsy:    "Paralisia Cerebral",
	LabelOfferedSpecialty: "ESPECIALIDADES OFERECIDAS",
	LabelMapsLink:         "LINK GOOGLE MAPS",
	NameNotAvailable:      "Nome não disponível",
	AddressNotAvailable:   "Endereço não disponível",
	NotAvailable:          "Não disponível",
	No:                    "NÃO",
	LinkNotAvailable:      "Link não disponível",
	NoResults:             "Nenhum resultado encontrado pela IA dentro do raio e filtros. Tente ampliar o raio ou ajustar os filtros. Lembre-se que a IA usa conhecimento pré-treinado.",
}

// EnglishMessages is the "en" catalog.
var EnglishMessages = Messages{
	Locale: "en",

	Title:      "NeuroMap Brasil",
	Subtitle:   "Clinic search assistant for autism (ASD), Down syndrome and cerebral palsy, restricted to a strict search radius.",
	Disclaimer: "Note: searches are answered by an AI model from its training data. Results may be incomplete or out of date. Always confirm details directly with the clinics.",

	MissingCredential:   "Enter the model API key to search. For Gemini, get one at: https://aistudio.google.com/app/apikey",
	ResponseFormatError: "Could not process the AI response: %v",
	TransportError:      "The AI request failed: %v",
	UnauthorizedError:   "The AI provider rejected the API key.",
	ValidationError:     "Invalid search parameters: %s",

	FormAPIKey:      "Model API key",
	FormCity:        "City/neighbourhood",
	FormState:       "State (abbreviation)",
	FormAddress:     "Specific address (optional)",
	FormRadius:      "Search radius (km)",
	FormConditions:  "Conditions served",
	FormSpecialties: "Specialties",
	FormSubmit:      "Search clinics",

	PromptIntro:       "You are an assistant specialised in finding clinics in Brazil for Autism Spectrum Disorder (ASD), Down syndrome and cerebral palsy.",
	PromptLocation:    "Central location: %s.",
	PromptCenter:      "Approximate center coordinates: latitude %v, longitude %v. Use them to estimate distances and strictly respect the %d km radius.",
	PromptRadius:      "Maximum radius: %d km. DISCARD any clinic outside this radius.",
	PromptConditions:  "Conditions to serve (at least one): %s.",
	PromptSpecialties: "Specialties to offer (at least one): %s.",
	PromptInstructions: `List relevant clinics inside the radius, favouring those that serve several conditions and specialties.
Do not limit the list to a fixed number; list every clinic you know that fits, but focus on quality.
For each clinic, provide:
- Name
- Full address
- Phone (if known, otherwise 'not available')
- Rating (average score, if known, otherwise 'not available')
- Approximate distance from the center (in km)
- Serves: Autism (ASD): SIM/NÃO, Down syndrome: SIM/NÃO, Cerebral palsy: SIM/NÃO
- Specialties offered: the main ones
- Google Maps link: https://www.google.com/maps/search/?api=1&query=[CLINIC+NAME]+[CITY]

Output strict JSON: ` + clinicJSONSchema + `
Do not include any text outside the JSON.`,
	AnyRelevant: "any relevant one",

	LabelSearchLocation: "SEARCH LOCATION",
	LabelRadius:         "RADIUS",
	LabelConditions:     "CONDITIONS",
	LabelSpecialties:    "SPECIALTIES",
	LabelTotal:          "TOTAL RESULTS",
	NoneSelected:        "none selected",

	LabelPhone:            "PHONE",
	LabelRating:           "RATING",
	LabelDistance:         "DISTANCE FROM CENTER",
	DistanceFormat:        "approximately %.1fkm",
	LabelSupports:         "SERVES",
	LabelAutism:           "Autism (ASD)",
	LabelDownSyndrome:     "Down syndrome",
	LabelCerebralPalsy:    "Cerebral palsy",
	LabelOfferedSpecialty: "SPECIALTIES OFFERED",
	LabelMapsLink:         "GOOGLE MAPS LINK",
	NameNotAvailable:      "name not available",
	AddressNotAvailable:   "address not available",
	NotAvailable:          "not available",
	No:                    "no",
	LinkNotAvailable:      "link not available",
	NoResults:             "No results found within the radius and filters. Try broadening the radius or adjusting the filters. Remember the AI answers from pre-trained knowledge.",
}

// MessagesFor returns the catalog for locale, falling back to Portuguese.
func MessagesFor(locale string) Messages {
	if locale == EnglishMessages.Locale {
		return EnglishMessages
	}
	return PortugueseMessages
}

// ErrorText renders err with the catalog text for its error type.
func (m Messages) ErrorText(err error) string {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return fmt.Sprintf(m.TransportError, err)
	}

	switch appErr.Type {
	case apperrors.ErrorTypeMissingCredential:
		return m.MissingCredential
	case apperrors.ErrorTypeUnauthorized:
		return m.UnauthorizedError
	case apperrors.ErrorTypeValidation:
		return fmt.Sprintf(m.ValidationError, appErr.Message)
	case apperrors.ErrorTypeResponseFormat:
		return fmt.Sprintf(m.ResponseFormatError, causeOf(appErr))
	default:
		return fmt.Sprintf(m.TransportError, causeOf(appErr))
	}
}

func causeOf(appErr *apperrors.AppError) error {
	if appErr.Err != nil {
		return appErr.Err
	}
	return errors.New(appErr.Message)
}
