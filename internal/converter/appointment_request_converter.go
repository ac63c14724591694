package converter

import (
	"clinic-cms/internal/delivery/dto"
	"clinic-cms/internal/domain/entity"
	"clinic-cms/pkg/validator"
)

func AppointmentRequestToResponse(request *entity.AppointmentRequest) *dto.AppointmentRequestResponse {
	if request == nil {
		return nil
	}

	response := &dto.AppointmentRequestResponse{
		ID:          request.ID,
		FullName:    request.FullName,
		Email:       request.Email,
		Phone:       request.Phone,
		ProcedureID: request.ProcedureID,
		Procedure:   procedureToSummary(request.Procedure),
		Message:     request.Message,
		Status:      string(request.Status),
		AdminNotes:  request.AdminNotes,
		Source:      request.Source,
		IPAddress:   request.IPAddress,
		UserAgent:   request.UserAgent,
		ContactedAt: request.ContactedAt,
		CreatedAt:   request.CreatedAt,
		UpdatedAt:   request.UpdatedAt,
	}

	if request.PreferredDate != nil {
		response.PreferredDate = request.PreferredDate.Format(validator.DateLayout)
	}

	return response
}

func AppointmentRequestsToResponses(requests []entity.AppointmentRequest) []dto.AppointmentRequestResponse {
	responses := make([]dto.AppointmentRequestResponse, len(requests))
	for i := range requests {
		responses[i] = *AppointmentRequestToResponse(&requests[i])
	}
	return responses
}
