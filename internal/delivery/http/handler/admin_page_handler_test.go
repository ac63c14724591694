package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"clinic-cms/internal/delivery/dto"
	"clinic-cms/internal/domain/entity"
	"clinic-cms/internal/usecase"
	"clinic-cms/pkg/jwt"
	"clinic-cms/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type adminPageMocks struct {
	auth         *MockAuthUsecase
	dashboard    *MockDashboardUsecase
	appointments *MockAppointmentRequestUsecase
}

func newAdminPageHandler(claims *jwt.Claims) (*AdminPageHandler, adminPageMocks) {
	m := adminPageMocks{
		auth:         new(MockAuthUsecase),
		dashboard:    new(MockDashboardUsecase),
		appointments: new(MockAppointmentRequestUsecase),
	}
	h := NewAdminPageHandler(m.auth, m.dashboard, m.appointments, stubClaims{claims: claims},
		newTestTemplates(), validator.NewValidator(), testCookie, newTestLogger())
	return h, m
}

func loginForm(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestAdminPageHandler_LoginForm(t *testing.T) {
	h, _ := newAdminPageHandler(nil)

	w := httptest.NewRecorder()
	h.LoginForm(w, httptest.NewRequest(http.MethodGet, "/admin/login?next=/admin/appointments", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="next" value="/admin/appointments"`)
}

func TestAdminPageHandler_LoginForm_AlreadySignedIn(t *testing.T) {
	h, _ := newAdminPageHandler(&jwt.Claims{UserID: uuid.New(), RoleID: entity.RoleIDEditor})

	w := httptest.NewRecorder()
	h.LoginForm(w, httptest.NewRequest(http.MethodGet, "/admin/login", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))
}

func TestAdminPageHandler_Login_RedirectsToNext(t *testing.T) {
	h, m := newAdminPageHandler(nil)

	m.auth.On("Login", mock.Anything, &dto.LoginRequest{Email: "admin@clinic.test", Password: "secret123"}).
		Return(&dto.LoginResponse{Token: "signed.jwt.token", ExpiresAt: time.Now().Add(time.Hour)}, nil)

	w := httptest.NewRecorder()
	h.Login(w, loginForm(url.Values{
		"email":    {" admin@clinic.test "},
		"password": {"secret123"},
		"next":     {"/admin/appointments?status=new"},
	}))

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/appointments?status=new", w.Header().Get("Location"))
	cookie := findCookie(w, testCookie.Name)
	require.NotNil(t, cookie)
	assert.Equal(t, "signed.jwt.token", cookie.Value)
	m.auth.AssertExpectations(t)
}

func TestAdminPageHandler_Login_IgnoresForeignNext(t *testing.T) {
	h, m := newAdminPageHandler(nil)

	m.auth.On("Login", mock.Anything, mock.Anything).
		Return(&dto.LoginResponse{Token: "signed.jwt.token", ExpiresAt: time.Now().Add(time.Hour)}, nil)

	for _, next := range []string{"https://evil.test/admin", "//evil.test/admin", "/blog"} {
		w := httptest.NewRecorder()
		h.Login(w, loginForm(url.Values{"email": {"admin@clinic.test"}, "password": {"secret123"}, "next": {next}}))

		require.Equal(t, http.StatusSeeOther, w.Code, next)
		assert.Equal(t, "/admin", w.Header().Get("Location"), next)
	}
}

func TestAdminPageHandler_Login_InvalidCredentials(t *testing.T) {
	h, m := newAdminPageHandler(nil)
	m.auth.On("Login", mock.Anything, mock.Anything).Return(nil, usecase.ErrInvalidCredentials)

	w := httptest.NewRecorder()
	h.Login(w, loginForm(url.Values{"email": {"admin@clinic.test"}, "password": {"wrong"}}))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")
	assert.Contains(t, w.Body.String(), `value="admin@clinic.test"`)
	assert.Nil(t, findCookie(w, testCookie.Name))
}

func TestAdminPageHandler_Login_MissingFields(t *testing.T) {
	h, m := newAdminPageHandler(nil)

	w := httptest.NewRecorder()
	h.Login(w, loginForm(url.Values{"email": {"admin@clinic.test"}}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	m.auth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestAdminPageHandler_Logout(t *testing.T) {
	h, m := newAdminPageHandler(nil)

	userID := uuid.New()
	m.auth.On("Logout", mock.Anything, userID, "token-1").Return(errors.New("redis down"))

	w := httptest.NewRecorder()
	h.Logout(w, signedIn(httptest.NewRequest(http.MethodPost, "/admin/logout", nil), userID, entity.RoleIDAdmin))

	// A failed revoke still signs the browser out.
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))
	require.NotNil(t, findCookie(w, testCookie.Name))
	m.auth.AssertExpectations(t)
}

func TestAdminPageHandler_Dashboard(t *testing.T) {
	h, m := newAdminPageHandler(nil)

	m.dashboard.On("Summary", mock.Anything).Return(&dto.DashboardResponse{
		Procedures:          map[string]int64{"published": 4, "draft": 1},
		BlogPosts:           map[string]int64{"published": 2},
		FAQs:                7,
		AppointmentRequests: map[string]int64{"new": 3},
		RecentRequests: []dto.AppointmentRequestResponse{{
			FullName:  "Jane Doe",
			Email:     "jane@example.com",
			Status:    "new",
			Procedure: &dto.ProcedureSummary{Title: "Botox"},
			CreatedAt: time.Date(2024, 5, 6, 9, 30, 0, 0, time.UTC),
		}},
	}, nil)

	w := httptest.NewRecorder()
	h.Dashboard(w, signedIn(httptest.NewRequest(http.MethodGet, "/admin", nil), uuid.New(), entity.RoleIDEditor))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "admin@clinic.test")
	assert.Contains(t, body, "Published: 4")
	assert.Contains(t, body, "Jane Doe")
	assert.Contains(t, body, "2024-05-06 09:30")
}

func TestAdminPageHandler_Appointments(t *testing.T) {
	h, m := newAdminPageHandler(nil)

	m.appointments.On("GetAll", mock.Anything, mock.MatchedBy(func(q dto.AppointmentRequestListQuery) bool {
		return q.Status == "contacted" && q.Page == 2 && q.Search == "jane"
	})).Return([]dto.AppointmentRequestResponse{{ID: uuid.New(), FullName: "Jane Doe", Status: "contacted"}}, int64(45), nil)

	w := httptest.NewRecorder()
	h.Appointments(w, signedIn(httptest.NewRequest(http.MethodGet, "/admin/appointments?status=contacted&page=2&search=jane", nil), uuid.New(), entity.RoleIDEditor))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Jane Doe")
	assert.Contains(t, body, "Page 2 of 3")
	assert.Contains(t, body, "page=1&status=contacted")
	assert.Contains(t, body, "page=3&status=contacted")
	m.appointments.AssertExpectations(t)
}

func TestAdminPageHandler_Appointments_UnknownStatusIsIgnored(t *testing.T) {
	h, m := newAdminPageHandler(nil)

	m.appointments.On("GetAll", mock.Anything, mock.MatchedBy(func(q dto.AppointmentRequestListQuery) bool {
		return q.Status == ""
	})).Return([]dto.AppointmentRequestResponse{}, int64(0), nil)

	w := httptest.NewRecorder()
	h.Appointments(w, signedIn(httptest.NewRequest(http.MethodGet, "/admin/appointments?status=lost", nil), uuid.New(), entity.RoleIDEditor))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No appointment requests match.")
}
