package handler

import (
	"errors"
	"net/http"
	"strings"

	"clinic-cms/config"
	"clinic-cms/internal/delivery/dto"
	"clinic-cms/internal/delivery/http/middleware"
	"clinic-cms/internal/delivery/web"
	"clinic-cms/internal/domain/entity"
	"clinic-cms/internal/usecase"
	"clinic-cms/pkg/jwt"
	"clinic-cms/pkg/validator"

	"github.com/sirupsen/logrus"
)

const adminHomePath = "/admin"

// ClaimsReader reports whether a request already carries a valid session.
// *middleware.AuthMiddleware satisfies it.
type ClaimsReader interface {
	Claims(r *http.Request) (*jwt.Claims, bool)
}

// AdminPageHandler serves the HTML side of the admin panel. Content editing
// itself goes through the JSON API.
type AdminPageHandler struct {
	authUsecase        usecase.AuthUsecase
	dashboardUsecase   usecase.DashboardUsecase
	appointmentUsecase usecase.AppointmentRequestUsecase
	sessions           ClaimsReader
	templates          *web.Templates
	validator          *validator.CustomValidator
	cookie             config.CookieConfig
	log                *logrus.Logger
}

func NewAdminPageHandler(
	authUsecase usecase.AuthUsecase,
	dashboardUsecase usecase.DashboardUsecase,
	appointmentUsecase usecase.AppointmentRequestUsecase,
	sessions ClaimsReader,
	templates *web.Templates,
	validator *validator.CustomValidator,
	cookie config.CookieConfig,
	log *logrus.Logger,
) *AdminPageHandler {
	return &AdminPageHandler{
		authUsecase:        authUsecase,
		dashboardUsecase:   dashboardUsecase,
		appointmentUsecase: appointmentUsecase,
		sessions:           sessions,
		templates:          templates,
		validator:          validator,
		cookie:             cookie,
		log:                log,
	}
}

type adminLoginView struct {
	Title     string
	UserEmail string
	Email     string
	Next      string
	Error     string
}

type adminDashboardView struct {
	Title     string
	UserEmail string
	Summary   *dto.DashboardResponse
}

type adminAppointmentsView struct {
	Title      string
	UserEmail  string
	Requests   []dto.AppointmentRequestResponse
	Statuses   []string
	Status     string
	Search     string
	Page       int
	TotalPages int
	Total      int64
	PrevPage   int
	NextPage   int
}

func (h *AdminPageHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	next := r.URL.Query().Get("next")
	if _, ok := h.sessions.Claims(r); ok {
		http.Redirect(w, r, redirectTarget(next), http.StatusSeeOther)
		return
	}

	h.render(w, http.StatusOK, "admin_login", adminLoginView{Title: "Sign in", Next: next})
}

// Login handles the HTML login form and redirects to ?next= on success.
func (h *AdminPageHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		h.render(w, http.StatusBadRequest, "admin_login", adminLoginView{Title: "Sign in", Error: "The form could not be read"})
		return
	}

	req := dto.LoginRequest{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	view := adminLoginView{Title: "Sign in", Email: req.Email, Next: r.PostFormValue("next")}

	if err := h.validator.Validate(&req); err != nil {
		view.Error = "Enter your email and password"
		h.render(w, http.StatusBadRequest, "admin_login", view)
		return
	}

	login, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			view.Error = "Invalid email or password"
			h.render(w, http.StatusUnauthorized, "admin_login", view)
			return
		}
		h.log.Warnf("Failed to login from admin form: %+v", err)
		view.Error = "Sign in is unavailable right now, please try again"
		h.render(w, http.StatusInternalServerError, "admin_login", view)
		return
	}

	setAuthCookie(w, h.cookie, login.Token, login.ExpiresAt)
	http.Redirect(w, r, redirectTarget(view.Next), http.StatusSeeOther)
}

func (h *AdminPageHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, okUser := middleware.GetUserIDFromContext(r.Context())
	tokenID, okToken := middleware.GetTokenIDFromContext(r.Context())
	if okUser && okToken {
		if err := h.authUsecase.Logout(r.Context(), userID, tokenID); err != nil {
			h.log.Warnf("Failed to logout from admin page: %+v", err)
		}
	}

	clearAuthCookie(w, h.cookie)
	http.Redirect(w, r, middleware.AdminLoginPath, http.StatusSeeOther)
}

func (h *AdminPageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboardUsecase.Summary(r.Context())
	if err != nil {
		h.log.Warnf("Failed to load dashboard: %+v", err)
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	email, _ := middleware.GetUserEmailFromContext(r.Context())
	h.render(w, http.StatusOK, "admin_dashboard", adminDashboardView{
		Title:     "Dashboard",
		UserEmail: email,
		Summary:   summary,
	})
}

func (h *AdminPageHandler) Appointments(w http.ResponseWriter, r *http.Request) {
	query := dto.AppointmentRequestListQuery{ListQuery: listQuery(r)}
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	if entity.AppointmentRequestStatus(status).Valid() {
		query.Status = status
	}

	requests, total, err := h.appointmentUsecase.GetAll(r.Context(), query)
	if err != nil {
		h.log.Warnf("Failed to load appointment requests page: %+v", err)
		http.Error(w, "Failed to load appointment requests", http.StatusInternalServerError)
		return
	}

	meta := listMeta(query.ListQuery, total)
	statuses := make([]string, len(entity.AppointmentStatuses))
	for i, s := range entity.AppointmentStatuses {
		statuses[i] = string(s)
	}

	email, _ := middleware.GetUserEmailFromContext(r.Context())
	view := adminAppointmentsView{
		Title:      "Appointment requests",
		UserEmail:  email,
		Requests:   requests,
		Statuses:   statuses,
		Status:     query.Status,
		Search:     query.Search,
		Page:       meta.Page,
		TotalPages: meta.TotalPages,
		Total:      total,
	}
	if view.Page > 1 {
		view.PrevPage = view.Page - 1
	}
	if view.Page < view.TotalPages {
		view.NextPage = view.Page + 1
	}

	h.render(w, http.StatusOK, "admin_appointments", view)
}

func (h *AdminPageHandler) render(w http.ResponseWriter, status int, name string, data interface{}) {
	if err := h.templates.RenderHTML(w, status, name, data); err != nil {
		h.log.Errorf("Failed to render %s: %+v", name, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func redirectTarget(next string) string {
	if middleware.SafeNext(next) {
		return next
	}
	return adminHomePath
}
