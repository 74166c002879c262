package handler

import (
	"github.com/labstack/echo/v4"

	"marketplace/internal/domain/entity"
	"marketplace/internal/infrastructure/i18n"
	"marketplace/internal/usecase"
	"marketplace/pkg/errors"
	"marketplace/pkg/response"
)

type SettingsHandler struct {
	settings   *usecase.SettingsStore
	translator *i18n.Translator
}

func NewSettingsHandler(settings *usecase.SettingsStore, translator *i18n.Translator) *SettingsHandler {
	return &SettingsHandler{
		settings:   settings,
		translator: translator,
	}
}

type languageRequest struct {
	Language string `json:"language" validate:"required"`
}

func (h *SettingsHandler) GetSettings(c echo.Context) error {
	return response.Success(c, h.settings.Get())
}

func (h *SettingsHandler) GetCategory(c echo.Context) error {
	section, err := h.settings.Category(entity.SettingsCategory(c.Param("category")))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, section)
}

func (h *SettingsHandler) UpdateGeneral(c echo.Context) error {
	var req entity.GeneralSettings
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	updated, err := h.settings.UpdateGeneral(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, updated)
}

func (h *SettingsHandler) UpdateAppearance(c echo.Context) error {
	var req entity.AppearanceSettings
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	updated, err := h.settings.UpdateAppearance(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, updated)
}

func (h *SettingsHandler) UpdateNotifications(c echo.Context) error {
	var req entity.NotificationSettings
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	updated, err := h.settings.UpdateNotifications(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, updated)
}

func (h *SettingsHandler) GetLanguage(c echo.Context) error {
	return response.Success(c, map[string]interface{}{
		"language":  h.translator.Language(),
		"supported": i18n.SupportedLanguages(),
	})
}

// SetLanguage switches the display language for this process only; the
// appearance settings keep their stored default.
func (h *SettingsHandler) SetLanguage(c echo.Context) error {
	var req languageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}
	if !h.translator.SetLanguage(req.Language) {
		return response.Error(c, errors.BadRequest("Unsupported language", nil))
	}
	return response.Success(c, map[string]string{"language": h.translator.Language()})
}
