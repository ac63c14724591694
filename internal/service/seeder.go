package service

import (
	"context"
	"strings"
	"time"

	"clinic-cms/config"
	"clinic-cms/internal/domain/entity"
	"clinic-cms/internal/domain/repository"
	"clinic-cms/pkg/slug"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedReport counts the rows inserted by one Seed run.
type SeedReport struct {
	Roles               int
	Users               int
	Settings            int
	ExpertiseAreas      int
	TreatmentCategories int
	Procedures          int
	FAQs                int
	Categories          int
}

func (r SeedReport) Total() int {
	return r.Roles + r.Users + r.Settings + r.ExpertiseAreas + r.TreatmentCategories + r.Procedures + r.FAQs + r.Categories
}

// SeedRepositories groups the repositories the seeder writes through.
type SeedRepositories struct {
	Role              repository.RoleRepository
	User              repository.UserRepository
	Settings          repository.SiteSettingsRepository
	ExpertiseArea     repository.ExpertiseAreaRepository
	TreatmentCategory repository.TreatmentCategoryRepository
	Procedure         repository.ProcedureRepository
	FAQ               repository.FAQRepository
	Category          repository.CategoryRepository
}

// Seeder inserts baseline data. Rows are matched by slug, email or question
// and are never duplicated or overwritten.
type Seeder struct {
	db    *gorm.DB
	log   *logrus.Logger
	repos SeedRepositories
	now   func() time.Time
}

func NewSeeder(db *gorm.DB, log *logrus.Logger, repos SeedRepositories) *Seeder {
	return &Seeder{db: db, log: log, repos: repos, now: time.Now}
}

type seedProcedure struct {
	category     string
	title        string
	summary      string
	content      string
	duration     string
	recoveryTime string
	priceFrom    int64
	featured     bool
	faqs         [][2]string
}

var (
	seedAreas = []entity.ExpertiseArea{
		{Name: "Plastic & Aesthetic Surgery", Slug: "plastic-aesthetic-surgery", Icon: "scalpel", SortOrder: 1,
			Description: "Reconstructive and cosmetic procedures performed by board-certified surgeons."},
		{Name: "Dental Care", Slug: "dental-care", Icon: "tooth", SortOrder: 2,
			Description: "Implants, veneers and smile design in our in-house dental studio."},
		{Name: "Eye Care", Slug: "eye-care", Icon: "eye", SortOrder: 3,
			Description: "Laser vision correction and lens surgery."},
	}

	// treatment category slug -> expertise area slug
	seedTreatmentCategories = []struct {
		area string
		cat  entity.TreatmentCategory
	}{
		{"plastic-aesthetic-surgery", entity.TreatmentCategory{Name: "Face", Slug: "face", SortOrder: 1}},
		{"plastic-aesthetic-surgery", entity.TreatmentCategory{Name: "Body Contouring", Slug: "body-contouring", SortOrder: 2}},
		{"dental-care", entity.TreatmentCategory{Name: "Dental Implants", Slug: "dental-implants", SortOrder: 1}},
		{"eye-care", entity.TreatmentCategory{Name: "Laser Vision Correction", Slug: "laser-vision-correction", SortOrder: 1}},
	}

	seedProcedures = []seedProcedure{
		{
			category: "face", title: "Rhinoplasty", featured: true, priceFrom: 3500,
			summary:      "Reshape the nose for balance and easier breathing.",
			content:      "## What is rhinoplasty?\n\nRhinoplasty changes the shape or function of the nose.\n\n- General anaesthesia\n- One night in hospital",
			duration:     "2-3 hours",
			recoveryTime: "7-10 days",
			faqs: [][2]string{
				{"Will there be visible scars?", "Most incisions are made inside the nose and are not visible."},
				{"When can I return to work?", "Usually after 7 to 10 days, once the splint is removed."},
			},
		},
		{
			category: "face", title: "Blepharoplasty", priceFrom: 2200,
			summary:      "Eyelid surgery to remove excess skin and refresh the eyes.",
			content:      "Blepharoplasty removes excess skin and fat from the upper or lower eyelids.",
			duration:     "1-2 hours",
			recoveryTime: "5-7 days",
		},
		{
			category: "body-contouring", title: "Liposuction", featured: true, priceFrom: 2800,
			summary:      "Remove stubborn fat deposits that resist diet and exercise.",
			content:      "Liposuction sculpts the body by removing localized fat.",
			duration:     "1-3 hours",
			recoveryTime: "1-2 weeks",
		},
		{
			category: "dental-implants", title: "Single Tooth Implant", featured: true, priceFrom: 900,
			summary:      "A titanium implant and crown that replace a missing tooth.",
			content:      "An implant is placed in the jaw bone and topped with a porcelain crown after healing.",
			duration:     "1 hour",
			recoveryTime: "3-6 months osseointegration",
			faqs: [][2]string{
				{"Is the procedure painful?", "It is performed under local anaesthesia; most patients report mild discomfort."},
			},
		},
		{
			category: "laser-vision-correction", title: "LASIK", priceFrom: 1200,
			summary:      "Laser reshaping of the cornea to reduce dependence on glasses.",
			content:      "LASIK corrects myopia, hyperopia and astigmatism in a short outpatient procedure.",
			duration:     "20 minutes",
			recoveryTime: "1-2 days",
		},
	}

	seedGlobalFAQs = [][2]string{
		{"How do I book a consultation?", "Send the contact form or call us; our coordinators reply within one working day."},
		{"Do you offer payment plans?", "Yes, instalment plans are available for most procedures."},
		{"Is there parking at the clinic?", "Free patient parking is available in front of the building."},
	}

	seedBlogCategories = []entity.Category{
		{Name: "Clinic News", Slug: "clinic-news", Description: "Announcements from the clinic."},
		{Name: "Patient Guides", Slug: "patient-guides", Description: "Preparing for and recovering from treatment."},
	}
)

// Seed runs every step in one transaction.
func (s *Seeder) Seed(ctx context.Context, admin config.AdminConfig) (*SeedReport, error) {
	report := &SeedReport{}

	tx := s.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	steps := []func(tx *gorm.DB, report *SeedReport) error{
		s.seedRoles,
		func(tx *gorm.DB, report *SeedReport) error { return s.seedAdmin(tx, report, admin) },
		s.seedSettings,
		s.seedCatalog,
		s.seedGlobalFAQs,
		s.seedBlogCategories,
	}
	for _, step := range steps {
		if err := step(tx, report); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		s.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	s.log.WithField("inserted", report.Total()).Info("Seed completed")
	return report, nil
}

func (s *Seeder) seedRoles(tx *gorm.DB, report *SeedReport) error {
	for _, role := range entity.DefaultRoles() {
		existing, err := s.repos.Role.FindByID(tx, role.ID)
		if err != nil {
			s.log.Warnf("Failed to find role: %+v", err)
			return err
		}
		if existing != nil {
			continue
		}
		role := role
		if err := s.repos.Role.Upsert(tx, &role); err != nil {
			s.log.Warnf("Failed to create role: %+v", err)
			return err
		}
		report.Roles++
	}
	return nil
}

func (s *Seeder) seedAdmin(tx *gorm.DB, report *SeedReport, admin config.AdminConfig) error {
	email := strings.ToLower(strings.TrimSpace(admin.Email))
	if email == "" || admin.Password == "" {
		s.log.Warn("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin user")
		return nil
	}

	existing, err := s.repos.User.FindByEmail(tx, email)
	if err != nil {
		s.log.Warnf("Failed to find user by email: %+v", err)
		return err
	}
	if existing != nil {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Warnf("Failed to hash password: %+v", err)
		return err
	}

	name := admin.Name
	if name == "" {
		name = "Administrator"
	}
	user := &entity.User{
		RoleID:   entity.RoleIDAdmin,
		Email:    email,
		Password: string(hashedPassword),
		FullName: name,
		IsActive: true,
	}
	if err := s.repos.User.Create(tx, user); err != nil {
		s.log.Warnf("Failed to create admin user: %+v", err)
		return err
	}
	report.Users++
	return nil
}

func (s *Seeder) seedSettings(tx *gorm.DB, report *SeedReport) error {
	var count int64
	if err := tx.Model(&entity.SiteSettings{}).Count(&count).Error; err != nil {
		s.log.Warnf("Failed to count settings: %+v", err)
		return err
	}
	if count > 0 {
		return nil
	}
	if _, err := s.repos.Settings.Get(tx); err != nil {
		s.log.Warnf("Failed to create settings: %+v", err)
		return err
	}
	report.Settings++
	return nil
}

func (s *Seeder) seedCatalog(tx *gorm.DB, report *SeedReport) error {
	areaIDs := make(map[string]uuid.UUID, len(seedAreas))
	for _, area := range seedAreas {
		existing, err := s.repos.ExpertiseArea.FindBySlug(tx, area.Slug)
		if err != nil {
			s.log.Warnf("Failed to find expertise area: %+v", err)
			return err
		}
		if existing != nil {
			areaIDs[area.Slug] = existing.ID
			continue
		}
		area := area
		if err := s.repos.ExpertiseArea.Create(tx, &area); err != nil {
			s.log.Warnf("Failed to create expertise area: %+v", err)
			return err
		}
		areaIDs[area.Slug] = area.ID
		report.ExpertiseAreas++
	}

	categoryIDs := make(map[string]uuid.UUID, len(seedTreatmentCategories))
	for _, item := range seedTreatmentCategories {
		existing, err := s.repos.TreatmentCategory.FindBySlug(tx, item.cat.Slug)
		if err != nil {
			s.log.Warnf("Failed to find treatment category: %+v", err)
			return err
		}
		if existing != nil {
			categoryIDs[item.cat.Slug] = existing.ID
			continue
		}
		category := item.cat
		if id, ok := areaIDs[item.area]; ok {
			category.ExpertiseAreaID = &id
		}
		if err := s.repos.TreatmentCategory.Create(tx, &category); err != nil {
			s.log.Warnf("Failed to create treatment category: %+v", err)
			return err
		}
		categoryIDs[category.Slug] = category.ID
		report.TreatmentCategories++
	}

	for i, item := range seedProcedures {
		procedureID, err := s.seedProcedure(tx, report, item, i+1, categoryIDs)
		if err != nil {
			return err
		}
		for j, qa := range item.faqs {
			if err := s.seedFAQ(tx, report, &procedureID, qa, j+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) seedProcedure(tx *gorm.DB, report *SeedReport, item seedProcedure, sortOrder int, categoryIDs map[string]uuid.UUID) (uuid.UUID, error) {
	slugValue := slug.Make(item.title)
	existing, err := s.repos.Procedure.FindBySlug(tx, slugValue)
	if err != nil {
		s.log.Warnf("Failed to find procedure: %+v", err)
		return uuid.Nil, err
	}
	if existing != nil {
		return existing.ID, nil
	}

	price := decimal.NewFromInt(item.priceFrom)
	procedure := &entity.Procedure{
		Title:        item.title,
		Slug:         slugValue,
		Summary:      item.summary,
		Content:      item.content,
		Duration:     item.duration,
		RecoveryTime: item.recoveryTime,
		PriceFrom:    &price,
		Status:       entity.ContentStatusPublished,
		IsFeatured:   item.featured,
		SortOrder:    sortOrder,
		MetaTitle:    item.title,
	}
	if id, ok := categoryIDs[item.category]; ok {
		procedure.TreatmentCategoryID = &id
	}
	procedure.StampPublished(s.now())

	if err := s.repos.Procedure.Create(tx, procedure); err != nil {
		s.log.Warnf("Failed to create procedure: %+v", err)
		return uuid.Nil, err
	}
	report.Procedures++
	return procedure.ID, nil
}

func (s *Seeder) seedFAQ(tx *gorm.DB, report *SeedReport, procedureID *uuid.UUID, qa [2]string, sortOrder int) error {
	existing, err := s.repos.FAQ.FindByQuestion(tx, procedureID, qa[0])
	if err != nil {
		s.log.Warnf("Failed to find FAQ: %+v", err)
		return err
	}
	if existing != nil {
		return nil
	}

	faq := &entity.FAQ{
		ProcedureID: procedureID,
		Question:    qa[0],
		Answer:      qa[1],
		SortOrder:   sortOrder,
		IsPublished: true,
	}
	if err := s.repos.FAQ.Create(tx, faq); err != nil {
		s.log.Warnf("Failed to create FAQ: %+v", err)
		return err
	}
	report.FAQs++
	return nil
}

func (s *Seeder) seedGlobalFAQs(tx *gorm.DB, report *SeedReport) error {
	for i, qa := range seedGlobalFAQs {
		if err := s.seedFAQ(tx, report, nil, qa, i+1); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedBlogCategories(tx *gorm.DB, report *SeedReport) error {
	for _, category := range seedBlogCategories {
		existing, err := s.repos.Category.FindBySlug(tx, category.Slug)
		if err != nil {
			s.log.Warnf("Failed to find category: %+v", err)
			return err
		}
		if existing != nil {
			continue
		}
		category := category
		if err := s.repos.Category.Create(tx, &category); err != nil {
			s.log.Warnf("Failed to create category: %+v", err)
			return err
		}
		report.Categories++
	}
	return nil
}
