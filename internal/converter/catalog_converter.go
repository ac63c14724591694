package converter

import (
	"clinic-cms/internal/delivery/dto"
	"clinic-cms/internal/domain/entity"
)

func ExpertiseAreaToResponse(area *entity.ExpertiseArea) *dto.ExpertiseAreaResponse {
	if area == nil {
		return nil
	}

	return &dto.ExpertiseAreaResponse{
		ID:          area.ID,
		Name:        area.Name,
		Slug:        area.Slug,
		Description: area.Description,
		Icon:        area.Icon,
		SortOrder:   area.SortOrder,
		CreatedAt:   area.CreatedAt,
		UpdatedAt:   area.UpdatedAt,
	}
}

func ExpertiseAreasToResponses(areas []entity.ExpertiseArea) []dto.ExpertiseAreaResponse {
	responses := make([]dto.ExpertiseAreaResponse, len(areas))
	for i := range areas {
		responses[i] = *ExpertiseAreaToResponse(&areas[i])
	}
	return responses
}

func expertiseAreaToSummary(area *entity.ExpertiseArea) *dto.ExpertiseAreaSummary {
	if area == nil {
		return nil
	}
	return &dto.ExpertiseAreaSummary{ID: area.ID, Name: area.Name, Slug: area.Slug}
}

func TreatmentCategoryToResponse(category *entity.TreatmentCategory) *dto.TreatmentCategoryResponse {
	if category == nil {
		return nil
	}

	return &dto.TreatmentCategoryResponse{
		ID:              category.ID,
		ExpertiseAreaID: category.ExpertiseAreaID,
		ExpertiseArea:   expertiseAreaToSummary(category.ExpertiseArea),
		Name:            category.Name,
		Slug:            category.Slug,
		Description:     category.Description,
		SortOrder:       category.SortOrder,
		CreatedAt:       category.CreatedAt,
		UpdatedAt:       category.UpdatedAt,
	}
}

func TreatmentCategoriesToResponses(categories []entity.TreatmentCategory) []dto.TreatmentCategoryResponse {
	responses := make([]dto.TreatmentCategoryResponse, len(categories))
	for i := range categories {
		responses[i] = *TreatmentCategoryToResponse(&categories[i])
	}
	return responses
}

func treatmentCategoryToSummary(category *entity.TreatmentCategory) *dto.TreatmentCategorySummary {
	if category == nil {
		return nil
	}
	return &dto.TreatmentCategorySummary{ID: category.ID, Name: category.Name, Slug: category.Slug}
}

func ProcedureToResponse(procedure *entity.Procedure) *dto.ProcedureResponse {
	if procedure == nil {
		return nil
	}

	return &dto.ProcedureResponse{
		ID:                  procedure.ID,
		TreatmentCategoryID: procedure.TreatmentCategoryID,
		TreatmentCategory:   treatmentCategoryToSummary(procedure.TreatmentCategory),
		Title:               procedure.Title,
		Slug:                procedure.Slug,
		Summary:             procedure.Summary,
		Content:             procedure.Content,
		ImageURL:            procedure.ImageURL,
		Duration:            procedure.Duration,
		RecoveryTime:        procedure.RecoveryTime,
		PriceFrom:           procedure.PriceFrom,
		Status:              string(procedure.Status),
		IsFeatured:          procedure.IsFeatured,
		SortOrder:           procedure.SortOrder,
		MetaTitle:           procedure.MetaTitle,
		MetaDescription:     procedure.MetaDescription,
		PublishedAt:         procedure.PublishedAt,
		CreatedAt:           procedure.CreatedAt,
		UpdatedAt:           procedure.UpdatedAt,
	}
}

func ProceduresToResponses(procedures []entity.Procedure) []dto.ProcedureResponse {
	responses := make([]dto.ProcedureResponse, len(procedures))
	for i := range procedures {
		responses[i] = *ProcedureToResponse(&procedures[i])
	}
	return responses
}

func procedureToSummary(procedure *entity.Procedure) *dto.ProcedureSummary {
	if procedure == nil {
		return nil
	}
	return &dto.ProcedureSummary{ID: procedure.ID, Title: procedure.Title, Slug: procedure.Slug}
}

func FAQToResponse(faq *entity.FAQ) *dto.FAQResponse {
	if faq == nil {
		return nil
	}

	return &dto.FAQResponse{
		ID:          faq.ID,
		ProcedureID: faq.ProcedureID,
		Procedure:   procedureToSummary(faq.Procedure),
		Question:    faq.Question,
		Answer:      faq.Answer,
		SortOrder:   faq.SortOrder,
		IsPublished: faq.IsPublished,
		CreatedAt:   faq.CreatedAt,
		UpdatedAt:   faq.UpdatedAt,
	}
}

func FAQsToResponses(faqs []entity.FAQ) []dto.FAQResponse {
	responses := make([]dto.FAQResponse, len(faqs))
	for i := range faqs {
		responses[i] = *FAQToResponse(&faqs[i])
	}
	return responses
}
