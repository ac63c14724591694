package http

import (
	"net/http"

	"clinic-cms/internal/delivery/http/handler"
	"clinic-cms/internal/delivery/http/middleware"
	"clinic-cms/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth               *handler.AuthHandler
	Procedure          *handler.ProcedureHandler
	TreatmentCategory  *handler.TreatmentCategoryHandler
	ExpertiseArea      *handler.ExpertiseAreaHandler
	BlogPost           *handler.BlogPostHandler
	Category           *handler.CategoryHandler
	FAQ                *handler.FAQHandler
	AppointmentRequest *handler.AppointmentRequestHandler
	SiteSettings       *handler.SiteSettingsHandler
	User               *handler.UserHandler
	AuditLog           *handler.AuditLogHandler
	Dashboard          *handler.DashboardHandler
	Script             *handler.ScriptHandler
	PublicPage         *handler.PublicPageHandler
	AdminPage          *handler.AdminPageHandler
}

// RateLimiters keeps sign-in attempts and lead capture in separate buckets so
// one never spends the other's allowance.
type RateLimiters struct {
	Auth *middleware.RateLimiter
	Lead *middleware.RateLimiter
}

type Router struct {
	router         *mux.Router
	handlers       Handlers
	authMiddleware *middleware.AuthMiddleware
	corsMiddleware *middleware.CORSMiddleware
	limiters       RateLimiters
	log            *logrus.Logger
	trustProxy     bool
}

func NewRouter(
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	limiters RateLimiters,
	log *logrus.Logger,
	trustProxy bool,
) *Router {
	return &Router{
		router:         mux.NewRouter(),
		handlers:       handlers,
		authMiddleware: authMiddleware,
		corsMiddleware: corsMiddleware,
		limiters:       limiters,
		log:            log,
		trustProxy:     trustProxy,
	}
}

func (r *Router) Setup() *mux.Router {
	h := r.handlers

	r.router.Use(middleware.Recoverer(r.log))
	r.router.Use(middleware.RequestLogger(r.log, r.trustProxy))

	api := r.router.PathPrefix("/api").Subrouter()
	api.Use(r.corsMiddleware.Handle)

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Public API (rate limited)
	api.Handle("/appointment-requests", r.limiters.Lead.Limit(http.HandlerFunc(h.AppointmentRequest.Submit))).Methods(http.MethodPost, http.MethodOptions)
	api.Handle("/admin/auth/login", r.limiters.Auth.Limit(http.HandlerFunc(h.Auth.Login))).Methods(http.MethodPost, http.MethodOptions)

	// Authenticated admin API
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)

	admin.HandleFunc("/auth/logout", h.Auth.Logout).Methods(http.MethodPost)
	admin.HandleFunc("/auth/me", h.Auth.GetCurrentUser).Methods(http.MethodGet)
	admin.HandleFunc("/auth/password", h.Auth.ChangePassword).Methods(http.MethodPut)

	// Content and appointment requests (admin, editor)
	editor := admin.NewRoute().Subrouter()
	editor.Use(middleware.RequireEditor)

	editor.HandleFunc("/dashboard", h.Dashboard.Summary).Methods(http.MethodGet)

	editor.HandleFunc("/procedures", h.Procedure.Create).Methods(http.MethodPost)
	editor.HandleFunc("/procedures", h.Procedure.GetAll).Methods(http.MethodGet)
	editor.HandleFunc("/procedures/{id}", h.Procedure.GetByID).Methods(http.MethodGet)
	editor.HandleFunc("/procedures/{id}", h.Procedure.Update).Methods(http.MethodPut)
	editor.HandleFunc("/procedures/{id}", h.Procedure.Delete).Methods(http.MethodDelete)

	editor.HandleFunc("/treatment-categories", h.TreatmentCategory.Create).Methods(http.MethodPost)
	editor.HandleFunc("/treatment-categories", h.TreatmentCategory.GetAll).Methods(http.MethodGet)
	editor.HandleFunc("/treatment-categories/{id}", h.TreatmentCategory.GetByID).Methods(http.MethodGet)
	editor.HandleFunc("/treatment-categories/{id}", h.TreatmentCategory.Update).Methods(http.MethodPut)
	editor.HandleFunc("/treatment-categories/{id}", h.TreatmentCategory.Delete).Methods(http.MethodDelete)

	editor.HandleFunc("/expertise-areas", h.ExpertiseArea.Create).Methods(http.MethodPost)
	editor.HandleFunc("/expertise-areas", h.ExpertiseArea.GetAll).Methods(http.MethodGet)
	editor.HandleFunc("/expertise-areas/{id}", h.ExpertiseArea.GetByID).Methods(http.MethodGet)
	editor.HandleFunc("/expertise-areas/{id}", h.ExpertiseArea.Update).Methods(http.MethodPut)
	editor.HandleFunc("/expertise-areas/{id}", h.ExpertiseArea.Delete).Methods(http.MethodDelete)

	editor.HandleFunc("/blog-posts", h.BlogPost.Create).Methods(http.MethodPost)
	editor.HandleFunc("/blog-posts", h.BlogPost.GetAll).Methods(http.MethodGet)
	editor.HandleFunc("/blog-posts/{id}", h.BlogPost.GetByID).Methods(http.MethodGet)
	editor.HandleFunc("/blog-posts/{id}", h.BlogPost.Update).Methods(http.MethodPut)
	editor.HandleFunc("/blog-posts/{id}", h.BlogPost.Delete).Methods(http.MethodDelete)

	editor.HandleFunc("/categories", h.Category.Create).Methods(http.MethodPost)
	editor.HandleFunc("/categories", h.Category.GetAll).Methods(http.MethodGet)
	editor.HandleFunc("/categories/{id}", h.Category.GetByID).Methods(http.MethodGet)
	editor.HandleFunc("/categories/{id}", h.Category.Update).Methods(http.MethodPut)
	editor.HandleFunc("/categories/{id}", h.Category.Delete).Methods(http.MethodDelete)

	editor.HandleFunc("/faqs", h.FAQ.Create).Methods(http.MethodPost)
	editor.HandleFunc("/faqs", h.FAQ.GetAll).Methods(http.MethodGet)
	editor.HandleFunc("/faqs/{id}", h.FAQ.GetByID).Methods(http.MethodGet)
	editor.HandleFunc("/faqs/{id}", h.FAQ.Update).Methods(http.MethodPut)
	editor.HandleFunc("/faqs/{id}", h.FAQ.Delete).Methods(http.MethodDelete)

	editor.HandleFunc("/appointment-requests", h.AppointmentRequest.GetAll).Methods(http.MethodGet)
	editor.HandleFunc("/appointment-requests/{id}", h.AppointmentRequest.GetByID).Methods(http.MethodGet)
	editor.HandleFunc("/appointment-requests/{id}", h.AppointmentRequest.Update).Methods(http.MethodPut)
	editor.HandleFunc("/appointment-requests/{id}", h.AppointmentRequest.Delete).Methods(http.MethodDelete)

	// Settings, users, audit logs and scripts (admin only)
	adminOnly := admin.NewRoute().Subrouter()
	adminOnly.Use(middleware.RequireAdmin)

	adminOnly.HandleFunc("/settings", h.SiteSettings.Get).Methods(http.MethodGet)
	adminOnly.HandleFunc("/settings", h.SiteSettings.Update).Methods(http.MethodPut)

	adminOnly.HandleFunc("/users", h.User.Create).Methods(http.MethodPost)
	adminOnly.HandleFunc("/users", h.User.GetAll).Methods(http.MethodGet)
	adminOnly.HandleFunc("/users/{id}", h.User.GetByID).Methods(http.MethodGet)
	adminOnly.HandleFunc("/users/{id}", h.User.Update).Methods(http.MethodPut)
	adminOnly.HandleFunc("/users/{id}", h.User.Delete).Methods(http.MethodDelete)

	adminOnly.HandleFunc("/audit-logs", h.AuditLog.GetAll).Methods(http.MethodGet)
	adminOnly.HandleFunc("/audit-logs/{id:[0-9]+}", h.AuditLog.GetByID).Methods(http.MethodGet)

	adminOnly.HandleFunc("/scripts", h.Script.List).Methods(http.MethodGet)
	adminOnly.HandleFunc("/scripts/{name}/run", h.Script.Run).Methods(http.MethodPost)

	api.NotFoundHandler = http.HandlerFunc(r.apiNotFound)

	// Admin HTML
	r.router.HandleFunc("/admin/login", h.AdminPage.LoginForm).Methods(http.MethodGet)
	r.router.Handle("/admin/login", r.limiters.Auth.Limit(http.HandlerFunc(h.AdminPage.Login))).Methods(http.MethodPost)

	adminPages := r.router.PathPrefix("/admin").Subrouter()
	adminPages.Use(r.authMiddleware.AuthenticatePage)
	adminPages.HandleFunc("", h.AdminPage.Dashboard).Methods(http.MethodGet)
	adminPages.HandleFunc("/", h.AdminPage.Dashboard).Methods(http.MethodGet)
	adminPages.HandleFunc("/appointments", h.AdminPage.Appointments).Methods(http.MethodGet)
	adminPages.HandleFunc("/logout", h.AdminPage.Logout).Methods(http.MethodPost)

	// Public site
	r.router.HandleFunc("/", h.PublicPage.Home).Methods(http.MethodGet)
	r.router.HandleFunc("/procedures", h.PublicPage.Procedures).Methods(http.MethodGet)
	r.router.HandleFunc("/procedures/{slug}", h.PublicPage.Procedure).Methods(http.MethodGet)
	r.router.HandleFunc("/expertise/{slug}", h.PublicPage.Expertise).Methods(http.MethodGet)
	r.router.HandleFunc("/blog", h.PublicPage.Blog).Methods(http.MethodGet)
	r.router.HandleFunc("/blog/{slug}", h.PublicPage.Post).Methods(http.MethodGet)
	r.router.HandleFunc("/faq", h.PublicPage.FAQ).Methods(http.MethodGet)
	r.router.HandleFunc("/contact", h.PublicPage.Contact).Methods(http.MethodGet)
	r.router.Handle("/contact", r.limiters.Lead.Limit(http.HandlerFunc(h.PublicPage.SubmitContact))).Methods(http.MethodPost)
	r.router.HandleFunc("/sitemap.xml", h.PublicPage.Sitemap).Methods(http.MethodGet)

	r.router.NotFoundHandler = http.HandlerFunc(h.PublicPage.NotFound)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (r *Router) apiNotFound(w http.ResponseWriter, req *http.Request) {
	response.NotFound(w, "Endpoint not found")
}
