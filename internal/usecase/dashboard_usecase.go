package usecase

import (
	"context"

	"clinic-cms/internal/converter"
	"clinic-cms/internal/delivery/dto"
	"clinic-cms/internal/domain/entity"
	"clinic-cms/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const dashboardRecentRequests = 5

type DashboardUsecase interface {
	Summary(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	procedureRepo   repository.ProcedureRepository
	postRepo        repository.BlogPostRepository
	faqRepo         repository.FAQRepository
	appointmentRepo repository.AppointmentRequestRepository
}

func NewDashboardUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	procedureRepo repository.ProcedureRepository,
	postRepo repository.BlogPostRepository,
	faqRepo repository.FAQRepository,
	appointmentRepo repository.AppointmentRequestRepository,
) DashboardUsecase {
	return &dashboardUsecase{
		db:              db,
		log:             log,
		procedureRepo:   procedureRepo,
		postRepo:        postRepo,
		faqRepo:         faqRepo,
		appointmentRepo: appointmentRepo,
	}
}

// Summary counts content and leads. Every known status is present in the
// maps, zero when no row has it.
func (u *dashboardUsecase) Summary(ctx context.Context) (*dto.DashboardResponse, error) {
	db := u.db.WithContext(ctx)

	procedures, err := u.procedureRepo.CountByStatus(db)
	if err != nil {
		u.log.Warnf("Failed to count procedures: %+v", err)
		return nil, err
	}

	posts, err := u.postRepo.CountByStatus(db)
	if err != nil {
		u.log.Warnf("Failed to count blog posts: %+v", err)
		return nil, err
	}

	faqs, err := u.faqRepo.Count(db)
	if err != nil {
		u.log.Warnf("Failed to count faqs: %+v", err)
		return nil, err
	}

	requests, err := u.appointmentRepo.CountByStatus(db)
	if err != nil {
		u.log.Warnf("Failed to count appointment requests: %+v", err)
		return nil, err
	}

	recent, err := u.appointmentRepo.FindRecent(db, dashboardRecentRequests)
	if err != nil {
		u.log.Warnf("Failed to find recent appointment requests: %+v", err)
		return nil, err
	}

	resp := &dto.DashboardResponse{
		Procedures:          contentCounts(procedures),
		BlogPosts:           contentCounts(posts),
		FAQs:                faqs,
		AppointmentRequests: make(map[string]int64, len(entity.AppointmentStatuses)),
		RecentRequests:      converter.AppointmentRequestsToResponses(recent),
	}
	for _, status := range entity.AppointmentStatuses {
		resp.AppointmentRequests[string(status)] = requests[status]
	}

	return resp, nil
}

func contentCounts(counts map[entity.ContentStatus]int64) map[string]int64 {
	out := map[string]int64{}
	for _, status := range []entity.ContentStatus{entity.ContentStatusDraft, entity.ContentStatusPublished, entity.ContentStatusArchived} {
		out[string(status)] = counts[status]
	}
	return out
}
