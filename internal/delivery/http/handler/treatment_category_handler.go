package handler

import (
	"errors"
	"net/http"

	"clinic-cms/internal/delivery/dto"
	"clinic-cms/internal/usecase"
	"clinic-cms/pkg/response"
	"clinic-cms/pkg/validator"
)

type TreatmentCategoryHandler struct {
	categoryUsecase usecase.TreatmentCategoryUsecase
	validator       *validator.CustomValidator
}

func NewTreatmentCategoryHandler(categoryUsecase usecase.TreatmentCategoryUsecase, validator *validator.CustomValidator) *TreatmentCategoryHandler {
	return &TreatmentCategoryHandler{
		categoryUsecase: categoryUsecase,
		validator:       validator,
	}
}

// Create
// @Summary Create a treatment category
// @Tags Treatment Categories
// @Security CookieAuth
// @Accept json
// @Produce json
// @Param request body dto.TreatmentCategoryRequest true "Treatment Category Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/treatment-categories [post]
func (h *TreatmentCategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.TreatmentCategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	category, err := h.categoryUsecase.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create treatment category")
		return
	}

	response.Success(w, http.StatusCreated, "Treatment category created successfully", category)
}

// GetAll
// @Summary List treatment categories
// @Tags Treatment Categories
// @Security CookieAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Name search"
// @Param expertise_area_id query string false "Expertise area ID"
// @Success 200 {object} response.Response
// @Router /admin/treatment-categories [get]
func (h *TreatmentCategoryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	areaID, err := queryUUID(r, "expertise_area_id")
	if err != nil {
		response.BadRequest(w, "Invalid expertise_area_id")
		return
	}

	query := dto.TreatmentCategoryListQuery{
		ListQuery:       listQuery(r),
		ExpertiseAreaID: areaID,
	}
	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	categories, total, err := h.categoryUsecase.GetAll(r.Context(), query)
	if err != nil {
		response.InternalServerError(w, "Failed to get treatment categories")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Treatment categories retrieved successfully", categories, listMeta(query.ListQuery, total))
}

// GetByID
// @Summary Get treatment category by ID
// @Tags Treatment Categories
// @Security CookieAuth
// @Produce json
// @Param id path string true "Treatment category ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/treatment-categories/{id} [get]
func (h *TreatmentCategoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid treatment category ID", nil)
		return
	}

	category, err := h.categoryUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to get treatment category")
		return
	}

	response.Success(w, http.StatusOK, "Treatment category retrieved successfully", category)
}

// Update
// @Summary Update a treatment category
// @Tags Treatment Categories
// @Security CookieAuth
// @Accept json
// @Produce json
// @Param id path string true "Treatment category ID"
// @Param request body dto.TreatmentCategoryRequest true "Treatment Category Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/treatment-categories/{id} [put]
func (h *TreatmentCategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid treatment category ID", nil)
		return
	}

	var req dto.TreatmentCategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	category, err := h.categoryUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update treatment category")
		return
	}

	response.Success(w, http.StatusOK, "Treatment category updated successfully", category)
}

// Delete refuses categories that still hold procedures.
// @Summary Delete a treatment category
// @Tags Treatment Categories
// @Security CookieAuth
// @Produce json
// @Param id path string true "Treatment category ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/treatment-categories/{id} [delete]
func (h *TreatmentCategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid treatment category ID", nil)
		return
	}

	if err := h.categoryUsecase.Delete(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete treatment category")
		return
	}

	response.Success(w, http.StatusOK, "Treatment category deleted successfully", nil)
}

func (h *TreatmentCategoryHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrTreatmentCategoryNotFound):
		response.NotFound(w, "Treatment category not found")
	case errors.Is(err, usecase.ErrTreatmentCategoryInUse):
		response.Conflict(w, "Treatment category still has procedures")
	case errors.Is(err, usecase.ErrSlugAlreadyExists):
		response.Conflict(w, "Slug already exists")
	case errors.Is(err, usecase.ErrInvalidSlug):
		response.BadRequest(w, err.Error())
	case errors.Is(err, usecase.ErrInvalidExpertiseArea):
		response.BadRequest(w, "Expertise area does not exist")
	default:
		response.InternalServerError(w, fallback)
	}
}
