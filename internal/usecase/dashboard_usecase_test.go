package usecase

import (
	"context"
	"testing"

	"clinic-cms/internal/delivery/dto"
	"clinic-cms/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardUsecase_SummaryZeroFillsStatuses(t *testing.T) {
	env := newTestEnv(t)
	ctx := actorContext(uuid.New())

	_, err := env.newProcedureUsecase().Create(ctx, &dto.ProcedureRequest{Title: "Facelift", Status: "published"})
	require.NoError(t, err)
	_, err = env.newProcedureUsecase().Create(ctx, &dto.ProcedureRequest{Title: "Brow Lift", Status: "draft"})
	require.NoError(t, err)
	_, err = env.newFAQUsecase().Create(ctx, &dto.FAQRequest{Question: "Parking?", Answer: "Yes."})
	require.NoError(t, err)
	_, err = env.newAppointmentRequestUsecase(appointmentNow).Submit(context.Background(), validAppointment(), SubmissionMeta{})
	require.NoError(t, err)

	uc := NewDashboardUsecase(
		env.db, env.log,
		repository.NewProcedureRepository(),
		repository.NewBlogPostRepository(),
		repository.NewFAQRepository(),
		repository.NewAppointmentRequestRepository(),
	)

	summary, err := uc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]int64{"draft": 1, "published": 1, "archived": 0}, summary.Procedures)
	assert.Equal(t, map[string]int64{"draft": 0, "published": 0, "archived": 0}, summary.BlogPosts)
	assert.Equal(t, int64(1), summary.FAQs)
	assert.Equal(t, int64(1), summary.AppointmentRequests["new"])
	assert.Equal(t, int64(0), summary.AppointmentRequests["cancelled"])
	assert.Len(t, summary.AppointmentRequests, 5)
	require.Len(t, summary.RecentRequests, 1)
	assert.Equal(t, "jane.doe@example.com", summary.RecentRequests[0].Email)
}
