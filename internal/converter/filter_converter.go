package converter

import (
	"clinic-cms/internal/delivery/dto"
	"clinic-cms/internal/domain/entity"
)

// The filter converters map delivery list queries onto domain filters so the
// repository layer never sees DTOs.

func pagination(q dto.ListQuery) entity.Pagination {
	return entity.Pagination{Page: q.Page, Limit: q.Limit}.Normalize()
}

func ProcedureFilterFromQuery(q dto.ProcedureListQuery) entity.ProcedureFilter {
	return entity.ProcedureFilter{
		Pagination:          pagination(q.ListQuery),
		Search:              q.Search,
		Status:              entity.ContentStatus(q.Status),
		TreatmentCategoryID: q.CategoryID,
		Featured:            q.Featured,
	}
}

func TreatmentCategoryFilterFromQuery(q dto.TreatmentCategoryListQuery) entity.TreatmentCategoryFilter {
	return entity.TreatmentCategoryFilter{
		Pagination:      pagination(q.ListQuery),
		Search:          q.Search,
		ExpertiseAreaID: q.ExpertiseAreaID,
	}
}

func ExpertiseAreaFilterFromQuery(q dto.ListQuery) entity.ExpertiseAreaFilter {
	return entity.ExpertiseAreaFilter{Pagination: pagination(q), Search: q.Search}
}

func CategoryFilterFromQuery(q dto.ListQuery) entity.CategoryFilter {
	return entity.CategoryFilter{Pagination: pagination(q), Search: q.Search}
}

func BlogPostFilterFromQuery(q dto.BlogPostListQuery) entity.BlogPostFilter {
	return entity.BlogPostFilter{
		Pagination: pagination(q.ListQuery),
		Search:     q.Search,
		Status:     entity.ContentStatus(q.Status),
		CategoryID: q.CategoryID,
	}
}

func FAQFilterFromQuery(q dto.FAQListQuery) entity.FAQFilter {
	return entity.FAQFilter{
		Pagination:  pagination(q.ListQuery),
		Search:      q.Search,
		ProcedureID: q.ProcedureID,
		GlobalOnly:  q.Global,
	}
}

func AppointmentRequestFilterFromQuery(q dto.AppointmentRequestListQuery) entity.AppointmentRequestFilter {
	return entity.AppointmentRequestFilter{
		Pagination: pagination(q.ListQuery),
		Search:     q.Search,
		Status:     entity.AppointmentRequestStatus(q.Status),
	}
}

func UserFilterFromQuery(q dto.ListQuery) entity.UserFilter {
	return entity.UserFilter{Pagination: pagination(q), Search: q.Search}
}

func AuditLogFilterFromQuery(q dto.AuditLogListQuery) entity.AuditLogFilter {
	return entity.AuditLogFilter{Pagination: pagination(q.ListQuery), Action: q.Action}
}
