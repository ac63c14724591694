package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"clinic-cms/internal/delivery/dto"
	"clinic-cms/internal/delivery/http/middleware"
	"clinic-cms/internal/domain/entity"
	"clinic-cms/internal/usecase"
	"clinic-cms/pkg/response"
	"clinic-cms/pkg/validator"
)

type AppointmentRequestHandler struct {
	appointmentUsecase usecase.AppointmentRequestUsecase
	validator          *validator.CustomValidator
	trustProxy         bool
}

func NewAppointmentRequestHandler(appointmentUsecase usecase.AppointmentRequestUsecase, validator *validator.CustomValidator, trustProxy bool) *AppointmentRequestHandler {
	return &AppointmentRequestHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
		trustProxy:         trustProxy,
	}
}

// Submit handles public appointment requests
// @Summary Request an appointment
// @Tags Appointment Requests
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Appointment Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /appointment-requests [post]
func (h *AppointmentRequestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	receipt, err := h.appointmentUsecase.Submit(r.Context(), &req, submissionMeta(r, entity.AppointmentSourceAPI, h.trustProxy))
	if err != nil {
		if fields, ok := appointmentFieldErrors(err); ok {
			response.ValidationError(w, fields)
			return
		}
		response.InternalServerError(w, "Failed to submit appointment request")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment request received", receipt)
}

// GetAll lists appointment requests, newest first
// @Summary List appointment requests
// @Tags Appointment Requests
// @Security CookieAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Name, email or phone search"
// @Param status query string false "new, contacted, scheduled, completed or cancelled"
// @Success 200 {object} response.Response
// @Router /admin/appointment-requests [get]
func (h *AppointmentRequestHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	query := dto.AppointmentRequestListQuery{
		ListQuery: listQuery(r),
		Status:    strings.TrimSpace(r.URL.Query().Get("status")),
	}
	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	requests, total, err := h.appointmentUsecase.GetAll(r.Context(), query)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointment requests")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Appointment requests retrieved successfully", requests, listMeta(query.ListQuery, total))
}

// GetByID
// @Summary Get appointment request by ID
// @Tags Appointment Requests
// @Security CookieAuth
// @Produce json
// @Param id path string true "Appointment request ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/appointment-requests/{id} [get]
func (h *AppointmentRequestHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment request ID", nil)
		return
	}

	request, err := h.appointmentUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to get appointment request")
		return
	}

	response.Success(w, http.StatusOK, "Appointment request retrieved successfully", request)
}

// Update changes status and admin notes
// @Summary Update an appointment request
// @Tags Appointment Requests
// @Security CookieAuth
// @Accept json
// @Produce json
// @Param id path string true "Appointment request ID"
// @Param request body dto.UpdateAppointmentRequest true "Update Appointment Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/appointment-requests/{id} [put]
func (h *AppointmentRequestHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment request ID", nil)
		return
	}

	var req dto.UpdateAppointmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	request, err := h.appointmentUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update appointment request")
		return
	}

	response.Success(w, http.StatusOK, "Appointment request updated successfully", request)
}

// Delete
// @Summary Delete an appointment request
// @Tags Appointment Requests
// @Security CookieAuth
// @Produce json
// @Param id path string true "Appointment request ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/appointment-requests/{id} [delete]
func (h *AppointmentRequestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment request ID", nil)
		return
	}

	if err := h.appointmentUsecase.Delete(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete appointment request")
		return
	}

	response.Success(w, http.StatusOK, "Appointment request deleted successfully", nil)
}

func (h *AppointmentRequestHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrAppointmentRequestNotFound):
		response.NotFound(w, "Appointment request not found")
	case errors.Is(err, usecase.ErrInvalidStatus):
		response.BadRequest(w, "Invalid status")
	default:
		response.InternalServerError(w, fallback)
	}
}

func submissionMeta(r *http.Request, source string, trustProxy bool) usecase.SubmissionMeta {
	return usecase.SubmissionMeta{
		Source:    source,
		IPAddress: middleware.ClientIP(r, trustProxy),
		UserAgent: r.UserAgent(),
	}
}

// appointmentFieldErrors maps submission errors that belong to one field
// onto the same field -> message shape the validator produces.
func appointmentFieldErrors(err error) (map[string]string, bool) {
	switch {
	case errors.Is(err, usecase.ErrPreferredDateInPast):
		return map[string]string{"preferred_date": "Preferred date cannot be in the past"}, true
	case errors.Is(err, usecase.ErrInvalidProcedure):
		return map[string]string{"procedure_id": "Please choose one of the listed procedures"}, true
	case errors.Is(err, usecase.ErrConsentRequired):
		return map[string]string{"consent": "Consent is required"}, true
	}
	var parseErr *time.ParseError
	if errors.As(err, &parseErr) {
		return map[string]string{"preferred_date": "Preferred date must use the YYYY-MM-DD format"}, true
	}
	return nil, false
}
