package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Rrens/docchat/internal/api/response"
	"github.com/Rrens/docchat/internal/domain"
	"github.com/Rrens/docchat/internal/service"
)

// SettingsHandler handles settings endpoints
type SettingsHandler struct {
	chat *service.ChatService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(chat *service.ChatService) *SettingsHandler {
	return &SettingsHandler{chat: chat}
}

// settingsView never carries the API key in clear
type settingsView struct {
	Provider  domain.Provider `json:"provider"`
	APIKey    string          `json:"apiKey"`
	HasAPIKey bool            `json:"hasApiKey"`
	ModelName string          `json:"modelName"`
	BaseURL   string          `json:"baseUrl"`
}

func newSettingsView(s domain.AppSettings) settingsView {
	return settingsView{
		Provider:  s.Provider,
		APIKey:    s.MaskedAPIKey(),
		HasAPIKey: s.APIKey != "",
		ModelName: s.ModelName,
		BaseURL:   s.BaseURL,
	}
}

// settingsInput is the settings form. A nil APIKey keeps the saved key.
type settingsInput struct {
	Provider  string  `json:"provider"`
	APIKey    *string `json:"apiKey"`
	ModelName string  `json:"modelName"`
	BaseURL   string  `json:"baseUrl"`
}

// Get returns the current settings with the API key masked
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.OK(w, newSettingsView(h.chat.Settings()))
}

// Update validates and saves the settings
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input settingsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, response.CodeInvalidBody, "invalid request body")
		return
	}

	settings := domain.AppSettings{
		Provider:  domain.Provider(input.Provider),
		APIKey:    h.chat.Settings().APIKey,
		ModelName: input.ModelName,
		BaseURL:   input.BaseURL,
	}
	if input.APIKey != nil {
		settings.APIKey = *input.APIKey
	}

	if err := validate.Struct(settings); err != nil {
		response.BadRequest(w, response.CodeValidation, validationMessage(err))
		return
	}

	if err := h.chat.SaveSettings(r.Context(), settings); err != nil {
		writeError(w, r, err)
		return
	}

	response.OK(w, newSettingsView(settings))
}

type switchProviderInput struct {
	Provider string `json:"provider" validate:"required,oneof=gemini openai"`
}

// SwitchProvider returns the form values after a provider change. The
// result is not saved.
func (h *SettingsHandler) SwitchProvider(w http.ResponseWriter, r *http.Request) {
	var input switchProviderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, response.CodeInvalidBody, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, response.CodeValidation, validationMessage(err))
		return
	}

	provider, err := domain.ParseProvider(input.Provider)
	if err != nil {
		response.BadRequest(w, response.CodeValidation, err.Error())
		return
	}

	response.OK(w, newSettingsView(h.chat.SwitchProvider(provider)))
}
