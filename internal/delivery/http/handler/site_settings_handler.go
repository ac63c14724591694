package handler

import (
	"net/http"

	"clinic-cms/internal/delivery/dto"
	"clinic-cms/internal/usecase"
	"clinic-cms/pkg/response"
	"clinic-cms/pkg/validator"
)

type SiteSettingsHandler struct {
	settingsUsecase usecase.SiteSettingsUsecase
	validator       *validator.CustomValidator
}

func NewSiteSettingsHandler(settingsUsecase usecase.SiteSettingsUsecase, validator *validator.CustomValidator) *SiteSettingsHandler {
	return &SiteSettingsHandler{
		settingsUsecase: settingsUsecase,
		validator:       validator,
	}
}

// Get
// @Summary Get site settings
// @Tags Settings
// @Security CookieAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/settings [get]
func (h *SiteSettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsUsecase.Get(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get settings")
		return
	}

	response.Success(w, http.StatusOK, "Settings retrieved successfully", settings)
}

// Update
// @Summary Update site settings
// @Tags Settings
// @Security CookieAuth
// @Accept json
// @Produce json
// @Param request body dto.SiteSettingsRequest true "Site Settings Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/settings [put]
func (h *SiteSettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.SiteSettingsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	settings, err := h.settingsUsecase.Update(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to update settings")
		return
	}

	response.Success(w, http.StatusOK, "Settings updated successfully", settings)
}
