package handler

import (
	"context"
	"io"
	"net/http"

	"clinic-cms/config"
	"clinic-cms/internal/delivery/dto"
	"clinic-cms/internal/delivery/web"
	"clinic-cms/internal/usecase"
	"clinic-cms/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

var testCookie = config.CookieConfig{Name: "admin_token"}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestTemplates() *web.Templates {
	return web.MustTemplates()
}

// MockProcedureUsecase is a mock implementation of usecase.ProcedureUsecase
type MockProcedureUsecase struct {
	mock.Mock
}

func (m *MockProcedureUsecase) Create(ctx context.Context, req *dto.ProcedureRequest) (*dto.ProcedureResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProcedureResponse), args.Error(1)
}

func (m *MockProcedureUsecase) GetAll(ctx context.Context, query dto.ProcedureListQuery) ([]dto.ProcedureResponse, int64, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]dto.ProcedureResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockProcedureUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProcedureResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProcedureResponse), args.Error(1)
}

func (m *MockProcedureUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.ProcedureRequest) (*dto.ProcedureResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProcedureResponse), args.Error(1)
}

func (m *MockProcedureUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAuthUsecase is a mock implementation of usecase.AuthUsecase
type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}

func (m *MockAuthUsecase) Logout(ctx context.Context, userID uuid.UUID, tokenID string) error {
	args := m.Called(ctx, userID, tokenID)
	return args.Error(0)
}

func (m *MockAuthUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *MockAuthUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, req *dto.ChangePasswordRequest) error {
	args := m.Called(ctx, userID, req)
	return args.Error(0)
}

// MockScriptUsecase is a mock implementation of usecase.ScriptUsecase
type MockScriptUsecase struct {
	mock.Mock
}

func (m *MockScriptUsecase) List(ctx context.Context) []dto.ScriptResponse {
	args := m.Called(ctx)
	return args.Get(0).([]dto.ScriptResponse)
}

func (m *MockScriptUsecase) Run(ctx context.Context, name string) (*dto.ScriptRunResponse, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ScriptRunResponse), args.Error(1)
}

// MockAppointmentRequestUsecase is a mock implementation of usecase.AppointmentRequestUsecase
type MockAppointmentRequestUsecase struct {
	mock.Mock
}

func (m *MockAppointmentRequestUsecase) Submit(ctx context.Context, req *dto.CreateAppointmentRequest, meta usecase.SubmissionMeta) (*dto.AppointmentReceipt, error) {
	args := m.Called(ctx, req, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AppointmentReceipt), args.Error(1)
}

func (m *MockAppointmentRequestUsecase) GetAll(ctx context.Context, query dto.AppointmentRequestListQuery) ([]dto.AppointmentRequestResponse, int64, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]dto.AppointmentRequestResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockAppointmentRequestUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentRequestResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AppointmentRequestResponse), args.Error(1)
}

func (m *MockAppointmentRequestUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentRequestResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AppointmentRequestResponse), args.Error(1)
}

func (m *MockAppointmentRequestUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDashboardUsecase is a mock implementation of usecase.DashboardUsecase
type MockDashboardUsecase struct {
	mock.Mock
}

func (m *MockDashboardUsecase) Summary(ctx context.Context) (*dto.DashboardResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DashboardResponse), args.Error(1)
}

// MockPublicSiteUsecase is a mock implementation of usecase.PublicSiteUsecase
type MockPublicSiteUsecase struct {
	mock.Mock
}

func (m *MockPublicSiteUsecase) Home(ctx context.Context) (*dto.HomePage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.HomePage), args.Error(1)
}

func (m *MockPublicSiteUsecase) Procedures(ctx context.Context, categorySlug string) (*dto.ProceduresPage, error) {
	args := m.Called(ctx, categorySlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProceduresPage), args.Error(1)
}

func (m *MockPublicSiteUsecase) Procedure(ctx context.Context, slug string) (*dto.ProcedurePage, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProcedurePage), args.Error(1)
}

func (m *MockPublicSiteUsecase) Expertise(ctx context.Context, slug string) (*dto.ExpertisePage, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ExpertisePage), args.Error(1)
}

func (m *MockPublicSiteUsecase) Blog(ctx context.Context, categorySlug string, page int) (*dto.BlogPage, error) {
	args := m.Called(ctx, categorySlug, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BlogPage), args.Error(1)
}

func (m *MockPublicSiteUsecase) Post(ctx context.Context, slug string) (*dto.PostPage, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PostPage), args.Error(1)
}

func (m *MockPublicSiteUsecase) FAQ(ctx context.Context) (*dto.FAQPage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.FAQPage), args.Error(1)
}

func (m *MockPublicSiteUsecase) Contact(ctx context.Context) (*dto.ContactPage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ContactPage), args.Error(1)
}

func (m *MockPublicSiteUsecase) Sitemap(ctx context.Context) ([]dto.SitemapURL, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.SitemapURL), args.Error(1)
}

func (m *MockPublicSiteUsecase) WarmCache(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockPublicSiteUsecase) PurgeCache(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// stubClaims is a ClaimsReader with a fixed answer.
type stubClaims struct {
	claims *jwt.Claims
}

func (s stubClaims) Claims(r *http.Request) (*jwt.Claims, bool) {
	return s.claims, s.claims != nil
}

// MockSiteSettingsUsecase is a mock implementation of usecase.SiteSettingsUsecase
type MockSiteSettingsUsecase struct {
	mock.Mock
}

func (m *MockSiteSettingsUsecase) Get(ctx context.Context) (*dto.SiteSettingsResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SiteSettingsResponse), args.Error(1)
}

func (m *MockSiteSettingsUsecase) Update(ctx context.Context, req *dto.SiteSettingsRequest) (*dto.SiteSettingsResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SiteSettingsResponse), args.Error(1)
}

// MockAuditLogUsecase is a mock implementation of usecase.AuditLogUsecase
type MockAuditLogUsecase struct {
	mock.Mock
}

func (m *MockAuditLogUsecase) GetAll(ctx context.Context, query dto.AuditLogListQuery) ([]dto.AuditLogResponse, int64, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]dto.AuditLogResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockAuditLogUsecase) GetByID(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuditLogResponse), args.Error(1)
}
