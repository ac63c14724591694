package handler

import (
	"errors"
	"net/http"

	"clinic-cms/internal/delivery/dto"
	"clinic-cms/internal/usecase"
	"clinic-cms/pkg/response"
	"clinic-cms/pkg/validator"
)

type ExpertiseAreaHandler struct {
	areaUsecase usecase.ExpertiseAreaUsecase
	validator   *validator.CustomValidator
}

func NewExpertiseAreaHandler(areaUsecase usecase.ExpertiseAreaUsecase, validator *validator.CustomValidator) *ExpertiseAreaHandler {
	return &ExpertiseAreaHandler{
		areaUsecase: areaUsecase,
		validator:   validator,
	}
}

// @Summary Create an expertise area
// @Tags Expertise Areas
// @Security CookieAuth
// @Accept json
// @Produce json
// @Param request body dto.ExpertiseAreaRequest true "Expertise Area Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/expertise-areas [post]
func (h *ExpertiseAreaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ExpertiseAreaRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	area, err := h.areaUsecase.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create expertise area")
		return
	}

	response.Success(w, http.StatusCreated, "Expertise area created successfully", area)
}

// @Summary List expertise areas
// @Tags Expertise Areas
// @Security CookieAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Name search"
// @Success 200 {object} response.Response
// @Router /admin/expertise-areas [get]
func (h *ExpertiseAreaHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	query := listQuery(r)
	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	areas, total, err := h.areaUsecase.GetAll(r.Context(), query)
	if err != nil {
		response.InternalServerError(w, "Failed to get expertise areas")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Expertise areas retrieved successfully", areas, listMeta(query, total))
}

// @Summary Get expertise area by ID
// @Tags Expertise Areas
// @Security CookieAuth
// @Produce json
// @Param id path string true "Expertise area ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/expertise-areas/{id} [get]
func (h *ExpertiseAreaHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid expertise area ID", nil)
		return
	}

	area, err := h.areaUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to get expertise area")
		return
	}

	response.Success(w, http.StatusOK, "Expertise area retrieved successfully", area)
}

// @Summary Update an expertise area
// @Tags Expertise Areas
// @Security CookieAuth
// @Accept json
// @Produce json
// @Param id path string true "Expertise area ID"
// @Param request body dto.ExpertiseAreaRequest true "Expertise Area Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/expertise-areas/{id} [put]
func (h *ExpertiseAreaHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid expertise area ID", nil)
		return
	}

	var req dto.ExpertiseAreaRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	area, err := h.areaUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update expertise area")
		return
	}

	response.Success(w, http.StatusOK, "Expertise area updated successfully", area)
}

// @Summary Delete an expertise area
// @Tags Expertise Areas
// @Security CookieAuth
// @Produce json
// @Param id path string true "Expertise area ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/expertise-areas/{id} [delete]
func (h *ExpertiseAreaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid expertise area ID", nil)
		return
	}

	if err := h.areaUsecase.Delete(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete expertise area")
		return
	}

	response.Success(w, http.StatusOK, "Expertise area deleted successfully", nil)
}

func (h *ExpertiseAreaHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrExpertiseAreaNotFound):
		response.NotFound(w, "Expertise area not found")
	case errors.Is(err, usecase.ErrExpertiseAreaInUse):
		response.Conflict(w, "Expertise area still has treatment categories")
	case errors.Is(err, usecase.ErrSlugAlreadyExists):
		response.Conflict(w, "Slug already exists")
	case errors.Is(err, usecase.ErrInvalidSlug):
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
