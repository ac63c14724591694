package handler

import (
	"encoding/xml"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"clinic-cms/internal/delivery/dto"
	"clinic-cms/internal/delivery/web"
	"clinic-cms/internal/domain/entity"
	"clinic-cms/internal/usecase"
	"clinic-cms/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// PublicPageHandler serves the server-rendered marketing site.
type PublicPageHandler struct {
	siteUsecase        usecase.PublicSiteUsecase
	appointmentUsecase usecase.AppointmentRequestUsecase
	templates          *web.Templates
	validator          *validator.CustomValidator
	log                *logrus.Logger
	trustProxy         bool
}

func NewPublicPageHandler(
	siteUsecase usecase.PublicSiteUsecase,
	appointmentUsecase usecase.AppointmentRequestUsecase,
	templates *web.Templates,
	validator *validator.CustomValidator,
	log *logrus.Logger,
	trustProxy bool,
) *PublicPageHandler {
	return &PublicPageHandler{
		siteUsecase:        siteUsecase,
		appointmentUsecase: appointmentUsecase,
		templates:          templates,
		validator:          validator,
		log:                log,
		trustProxy:         trustProxy,
	}
}

// contactForm keeps the raw form values so they can be echoed back.
type contactForm struct {
	FullName      string
	Email         string
	Phone         string
	ProcedureID   string
	PreferredDate string
	Message       string
	Consent       bool
	Website       string
}

type contactView struct {
	*dto.ContactPage
	Form    contactForm
	Errors  map[string]string
	Receipt *dto.AppointmentReceipt
}

type statusView struct {
	Site dto.SiteInfo
	Meta dto.PageMeta
}

func (h *PublicPageHandler) Home(w http.ResponseWriter, r *http.Request) {
	page, err := h.siteUsecase.Home(r.Context())
	if err != nil {
		h.pageError(w, r, err)
		return
	}
	h.render(w, http.StatusOK, "home", page)
}

func (h *PublicPageHandler) Procedures(w http.ResponseWriter, r *http.Request) {
	page, err := h.siteUsecase.Procedures(r.Context(), strings.TrimSpace(r.URL.Query().Get("category")))
	if err != nil {
		h.pageError(w, r, err)
		return
	}
	h.render(w, http.StatusOK, "procedures", page)
}

func (h *PublicPageHandler) Procedure(w http.ResponseWriter, r *http.Request) {
	page, err := h.siteUsecase.Procedure(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		h.pageError(w, r, err)
		return
	}
	h.render(w, http.StatusOK, "procedure", page)
}

func (h *PublicPageHandler) Expertise(w http.ResponseWriter, r *http.Request) {
	page, err := h.siteUsecase.Expertise(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		h.pageError(w, r, err)
		return
	}
	h.render(w, http.StatusOK, "expertise", page)
}

func (h *PublicPageHandler) Blog(w http.ResponseWriter, r *http.Request) {
	pageNumber, _ := strconv.Atoi(r.URL.Query().Get("page"))
	page, err := h.siteUsecase.Blog(r.Context(), strings.TrimSpace(r.URL.Query().Get("category")), pageNumber)
	if err != nil {
		h.pageError(w, r, err)
		return
	}
	h.render(w, http.StatusOK, "blog", page)
}

func (h *PublicPageHandler) Post(w http.ResponseWriter, r *http.Request) {
	page, err := h.siteUsecase.Post(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		h.pageError(w, r, err)
		return
	}
	h.render(w, http.StatusOK, "post", page)
}

func (h *PublicPageHandler) FAQ(w http.ResponseWriter, r *http.Request) {
	page, err := h.siteUsecase.FAQ(r.Context())
	if err != nil {
		h.pageError(w, r, err)
		return
	}
	h.render(w, http.StatusOK, "faq", page)
}

// Contact renders the appointment form. ?procedure=<id> preselects a
// procedure.
func (h *PublicPageHandler) Contact(w http.ResponseWriter, r *http.Request) {
	page, err := h.siteUsecase.Contact(r.Context())
	if err != nil {
		h.pageError(w, r, err)
		return
	}

	view := contactView{
		ContactPage: page,
		Form:        contactForm{ProcedureID: r.URL.Query().Get("procedure")},
		Errors:      map[string]string{},
	}
	h.render(w, http.StatusOK, "contact", view)
}

// SubmitContact handles the HTML form post. Validation errors re-render the
// form with the submitted values.
func (h *PublicPageHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	page, err := h.siteUsecase.Contact(r.Context())
	if err != nil {
		h.pageError(w, r, err)
		return
	}

	view := contactView{ContactPage: page, Errors: map[string]string{}}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		view.Errors["_form"] = "The form could not be read, please try again."
		h.render(w, http.StatusBadRequest, "contact", view)
		return
	}

	view.Form = contactForm{
		FullName:      strings.TrimSpace(r.PostFormValue("full_name")),
		Email:         strings.TrimSpace(r.PostFormValue("email")),
		Phone:         strings.TrimSpace(r.PostFormValue("phone")),
		ProcedureID:   strings.TrimSpace(r.PostFormValue("procedure_id")),
		PreferredDate: strings.TrimSpace(r.PostFormValue("preferred_date")),
		Message:       strings.TrimSpace(r.PostFormValue("message")),
		Consent:       r.PostFormValue("consent") != "",
		Website:       r.PostFormValue("website"),
	}

	req := dto.CreateAppointmentRequest{
		FullName:      view.Form.FullName,
		Email:         view.Form.Email,
		Phone:         view.Form.Phone,
		PreferredDate: view.Form.PreferredDate,
		Message:       view.Form.Message,
		Consent:       view.Form.Consent,
		Website:       view.Form.Website,
	}
	if view.Form.ProcedureID != "" {
		id, err := uuid.Parse(view.Form.ProcedureID)
		if err != nil {
			view.Errors["procedure_id"] = "Please choose one of the listed procedures"
		} else {
			req.ProcedureID = &id
		}
	}

	if err := h.validator.Validate(&req); err != nil {
		for field, msg := range h.validator.FormatValidationErrors(err) {
			view.Errors[field] = msg
		}
	}
	if len(view.Errors) > 0 {
		h.render(w, http.StatusBadRequest, "contact", view)
		return
	}

	receipt, err := h.appointmentUsecase.Submit(r.Context(), &req, submissionMeta(r, entity.AppointmentSourceWeb, h.trustProxy))
	if err != nil {
		fields, ok := appointmentFieldErrors(err)
		if !ok {
			h.log.Warnf("Failed to submit contact form: %+v", err)
			view.Errors["_form"] = "Your request could not be sent, please try again or call us."
			h.render(w, http.StatusInternalServerError, "contact", view)
			return
		}
		view.Errors = fields
		h.render(w, http.StatusBadRequest, "contact", view)
		return
	}

	view.Receipt = receipt
	h.render(w, http.StatusOK, "contact", view)
}

type sitemapURLSet struct {
	XMLName xml.Name          `xml:"urlset"`
	Xmlns   string            `xml:"xmlns,attr"`
	URLs    []sitemapURLEntry `xml:"url"`
}

type sitemapURLEntry struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func (h *PublicPageHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	urls, err := h.siteUsecase.Sitemap(r.Context())
	if err != nil {
		h.log.Warnf("Failed to build sitemap: %+v", err)
		http.Error(w, "sitemap unavailable", http.StatusInternalServerError)
		return
	}

	set := sitemapURLSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, u := range urls {
		entry := sitemapURLEntry{Loc: u.Loc}
		if u.LastMod != nil {
			entry.LastMod = u.LastMod.UTC().Format("2006-01-02")
		}
		set.URLs = append(set.URLs, entry)
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		h.log.Warnf("Failed to encode sitemap: %+v", err)
		http.Error(w, "sitemap unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(xml.Header))
	w.Write(out)
}

// NotFound is the router's fallback for unknown paths.
func (h *PublicPageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderStatus(w, r, http.StatusNotFound, "not_found", "Page not found")
}

func (h *PublicPageHandler) pageError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, usecase.ErrPageNotFound) {
		h.NotFound(w, r)
		return
	}
	h.log.WithField("path", r.URL.Path).Warnf("Failed to load page: %+v", err)
	h.renderStatus(w, r, http.StatusInternalServerError, "error", "Something went wrong")
}

// renderStatus borrows the site info from the cached contact page.
func (h *PublicPageHandler) renderStatus(w http.ResponseWriter, r *http.Request, status int, name, title string) {
	view := statusView{Meta: dto.PageMeta{Title: title}}
	if page, err := h.siteUsecase.Contact(r.Context()); err == nil {
		view.Site = page.Site
		view.Meta.Title = title + " | " + page.Site.SiteName
	}
	h.render(w, status, name, view)
}

func (h *PublicPageHandler) render(w http.ResponseWriter, status int, name string, data interface{}) {
	if err := h.templates.RenderHTML(w, status, name, data); err != nil {
		h.log.Errorf("Failed to render %s: %+v", name, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
