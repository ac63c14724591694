package handler

import (
	"errors"
	"net/http"

	"clinic-cms/internal/delivery/dto"
	"clinic-cms/internal/usecase"
	"clinic-cms/pkg/response"
	"clinic-cms/pkg/validator"
)

type FAQHandler struct {
	faqUsecase usecase.FAQUsecase
	validator  *validator.CustomValidator
}

func NewFAQHandler(faqUsecase usecase.FAQUsecase, validator *validator.CustomValidator) *FAQHandler {
	return &FAQHandler{
		faqUsecase: faqUsecase,
		validator:  validator,
	}
}

// Create handles FAQ creation. Without procedure_id the FAQ is global.
// @Summary Create a FAQ
// @Tags FAQs
// @Security CookieAuth
// @Accept json
// @Produce json
// @Param request body dto.FAQRequest true "FAQ Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/faqs [post]
func (h *FAQHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.FAQRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	faq, err := h.faqUsecase.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create FAQ")
		return
	}

	response.Success(w, http.StatusCreated, "FAQ created successfully", faq)
}

// GetAll
// @Summary List FAQs
// @Tags FAQs
// @Security CookieAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Question search"
// @Param procedure_id query string false "Procedure ID"
// @Param global query bool false "Only FAQs without a procedure"
// @Success 200 {object} response.Response
// @Router /admin/faqs [get]
func (h *FAQHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	procedureID, err := queryUUID(r, "procedure_id")
	if err != nil {
		response.BadRequest(w, "Invalid procedure_id")
		return
	}
	global, err := queryBool(r, "global")
	if err != nil {
		response.BadRequest(w, "Invalid global flag")
		return
	}

	query := dto.FAQListQuery{
		ListQuery:   listQuery(r),
		ProcedureID: procedureID,
		Global:      global != nil && *global,
	}
	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	faqs, total, err := h.faqUsecase.GetAll(r.Context(), query)
	if err != nil {
		response.InternalServerError(w, "Failed to get FAQs")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "FAQs retrieved successfully", faqs, listMeta(query.ListQuery, total))
}

// GetByID
// @Summary Get FAQ by ID
// @Tags FAQs
// @Security CookieAuth
// @Produce json
// @Param id path string true "FAQ ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/faqs/{id} [get]
func (h *FAQHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid FAQ ID", nil)
		return
	}

	faq, err := h.faqUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to get FAQ")
		return
	}

	response.Success(w, http.StatusOK, "FAQ retrieved successfully", faq)
}

// Update
// @Summary Update a FAQ
// @Tags FAQs
// @Security CookieAuth
// @Accept json
// @Produce json
// @Param id path string true "FAQ ID"
// @Param request body dto.FAQRequest true "FAQ Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/faqs/{id} [put]
func (h *FAQHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid FAQ ID", nil)
		return
	}

	var req dto.FAQRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	faq, err := h.faqUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update FAQ")
		return
	}

	response.Success(w, http.StatusOK, "FAQ updated successfully", faq)
}

// Delete
// @Summary Delete a FAQ
// @Tags FAQs
// @Security CookieAuth
// @Produce json
// @Param id path string true "FAQ ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/faqs/{id} [delete]
func (h *FAQHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid FAQ ID", nil)
		return
	}

	if err := h.faqUsecase.Delete(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete FAQ")
		return
	}

	response.Success(w, http.StatusOK, "FAQ deleted successfully", nil)
}

func (h *FAQHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrFAQNotFound):
		response.NotFound(w, "FAQ not found")
	case errors.Is(err, usecase.ErrInvalidProcedure):
		response.BadRequest(w, "Procedure does not exist")
	default:
		response.InternalServerError(w, fallback)
	}
}
