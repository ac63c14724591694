package handler

import (
	"errors"
	"net/http"
	"strings"

	"clinic-cms/internal/delivery/dto"
	"clinic-cms/internal/usecase"
	"clinic-cms/pkg/response"
	"clinic-cms/pkg/validator"
)

type ProcedureHandler struct {
	procedureUsecase usecase.ProcedureUsecase
	validator        *validator.CustomValidator
}

func NewProcedureHandler(procedureUsecase usecase.ProcedureUsecase, validator *validator.CustomValidator) *ProcedureHandler {
	return &ProcedureHandler{
		procedureUsecase: procedureUsecase,
		validator:        validator,
	}
}

// Create handles procedure creation
// @Summary Create a new procedure
// @Tags Procedures
// @Security CookieAuth
// @Accept json
// @Produce json
// @Param request body dto.ProcedureRequest true "Procedure Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/procedures [post]
func (h *ProcedureHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ProcedureRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	procedure, err := h.procedureUsecase.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create procedure")
		return
	}

	response.Success(w, http.StatusCreated, "Procedure created successfully", procedure)
}

// GetAll handles listing procedures
// @Summary List procedures
// @Tags Procedures
// @Security CookieAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Title search"
// @Param status query string false "draft, published or archived"
// @Param category_id query string false "Treatment category ID"
// @Param featured query bool false "Featured only"
// @Success 200 {object} response.Response
// @Router /admin/procedures [get]
func (h *ProcedureHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	categoryID, err := queryUUID(r, "category_id")
	if err != nil {
		response.BadRequest(w, "Invalid category_id")
		return
	}
	featured, err := queryBool(r, "featured")
	if err != nil {
		response.BadRequest(w, "Invalid featured flag")
		return
	}

	query := dto.ProcedureListQuery{
		ListQuery:  listQuery(r),
		Status:     strings.TrimSpace(r.URL.Query().Get("status")),
		CategoryID: categoryID,
		Featured:   featured,
	}
	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	procedures, total, err := h.procedureUsecase.GetAll(r.Context(), query)
	if err != nil {
		response.InternalServerError(w, "Failed to get procedures")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Procedures retrieved successfully", procedures, listMeta(query.ListQuery, total))
}

// GetByID handles getting a procedure by ID
// @Summary Get procedure by ID
// @Tags Procedures
// @Security CookieAuth
// @Produce json
// @Param id path string true "Procedure ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/procedures/{id} [get]
func (h *ProcedureHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid procedure ID", nil)
		return
	}

	procedure, err := h.procedureUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to get procedure")
		return
	}

	response.Success(w, http.StatusOK, "Procedure retrieved successfully", procedure)
}

// Update handles procedure update
// @Summary Update a procedure
// @Tags Procedures
// @Security CookieAuth
// @Accept json
// @Produce json
// @Param id path string true "Procedure ID"
// @Param request body dto.ProcedureRequest true "Procedure Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/procedures/{id} [put]
func (h *ProcedureHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid procedure ID", nil)
		return
	}

	var req dto.ProcedureRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	procedure, err := h.procedureUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update procedure")
		return
	}

	response.Success(w, http.StatusOK, "Procedure updated successfully", procedure)
}

// Delete handles procedure deletion. Its FAQs are removed with it.
// @Summary Delete a procedure
// @Tags Procedures
// @Security CookieAuth
// @Produce json
// @Param id path string true "Procedure ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/procedures/{id} [delete]
func (h *ProcedureHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid procedure ID", nil)
		return
	}

	if err := h.procedureUsecase.Delete(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete procedure")
		return
	}

	response.Success(w, http.StatusOK, "Procedure deleted successfully", nil)
}

func (h *ProcedureHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrProcedureNotFound):
		response.NotFound(w, "Procedure not found")
	case errors.Is(err, usecase.ErrSlugAlreadyExists):
		response.Conflict(w, "Slug already exists")
	case errors.Is(err, usecase.ErrInvalidSlug):
		response.BadRequest(w, err.Error())
	case errors.Is(err, usecase.ErrInvalidTreatmentCategory):
		response.BadRequest(w, "Treatment category does not exist")
	default:
		response.InternalServerError(w, fallback)
	}
}
