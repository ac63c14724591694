package repository

import (
	"testing"
	"time"

	"clinic-cms/internal/domain/entity"
	"clinic-cms/internal/infrastructure/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLiteConnection(":memory:", logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) (*entity.ExpertiseArea, *entity.TreatmentCategory, []*entity.Procedure) {
	t.Helper()
	area := &entity.ExpertiseArea{Name: "Aesthetics", Slug: "aesthetics"}
	require.NoError(t, NewExpertiseAreaRepository().Create(db, area))

	category := &entity.TreatmentCategory{Name: "Face", Slug: "face", ExpertiseAreaID: &area.ID}
	require.NoError(t, NewTreatmentCategoryRepository().Create(db, category))

	price := decimal.NewFromInt(1500)
	now := time.Now()
	procedures := []*entity.Procedure{
		{Title: "Rhinoplasty", Slug: "rhinoplasty", Status: entity.ContentStatusPublished, IsFeatured: true, SortOrder: 1, TreatmentCategoryID: &category.ID, PriceFrom: &price, PublishedAt: &now},
		{Title: "Facelift", Slug: "facelift", Status: entity.ContentStatusPublished, SortOrder: 2, TreatmentCategoryID: &category.ID, PublishedAt: &now},
		{Title: "Brow Lift", Slug: "brow-lift", Status: entity.ContentStatusDraft, SortOrder: 3, TreatmentCategoryID: &category.ID},
	}
	repo := NewProcedureRepository()
	for _, p := range procedures {
		require.NoError(t, repo.Create(db, p))
	}
	return area, category, procedures
}

func TestProcedureRepository_FindAllFilters(t *testing.T) {
	db := newTestDB(t)
	_, category, _ := seedCatalog(t, db)
	repo := NewProcedureRepository()

	all, total, err := repo.FindAll(db, entity.ProcedureFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, all, 3)
	assert.Equal(t, "rhinoplasty", all[0].Slug)
	require.NotNil(t, all[0].TreatmentCategory)
	assert.Equal(t, "face", all[0].TreatmentCategory.Slug)

	drafts, total, err := repo.FindAll(db, entity.ProcedureFilter{Status: entity.ContentStatusDraft})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "brow-lift", drafts[0].Slug)

	featured := true
	list, total, err := repo.FindAll(db, entity.ProcedureFilter{Featured: &featured, TreatmentCategoryID: &category.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "rhinoplasty", list[0].Slug)

	list, total, err = repo.FindAll(db, entity.ProcedureFilter{Search: "LIFT"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)

	page, total, err := repo.FindAll(db, entity.ProcedureFilter{Pagination: entity.Pagination{Page: 2, Limit: 2}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, "brow-lift", page[0].Slug)
}

func TestProcedureRepository_SearchEscapesWildcards(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	list, total, err := NewProcedureRepository().FindAll(db, entity.ProcedureFilter{Search: "%"})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)
}

func TestProcedureRepository_PublishedQueries(t *testing.T) {
	db := newTestDB(t)
	_, _, procedures := seedCatalog(t, db)
	repo := NewProcedureRepository()

	faqRepo := NewFAQRepository()
	require.NoError(t, faqRepo.Create(db, &entity.FAQ{ProcedureID: &procedures[0].ID, Question: "Visible?", Answer: "Yes", IsPublished: true}))
	require.NoError(t, faqRepo.Create(db, &entity.FAQ{ProcedureID: &procedures[0].ID, Question: "Hidden?", Answer: "Yes"}))

	published, err := repo.FindPublished(db, entity.ProcedureFilter{})
	require.NoError(t, err)
	assert.Len(t, published, 2)

	found, err := repo.FindPublishedBySlug(db, "rhinoplasty")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Len(t, found.FAQs, 1)
	assert.Equal(t, "Visible?", found.FAQs[0].Question)
	require.NotNil(t, found.TreatmentCategory)
	require.NotNil(t, found.TreatmentCategory.ExpertiseArea)
	assert.Equal(t, "aesthetics", found.TreatmentCategory.ExpertiseArea.Slug)
	assert.True(t, found.PriceFrom.Equal(decimal.NewFromInt(1500)))

	draft, err := repo.FindPublishedBySlug(db, "brow-lift")
	require.NoError(t, err)
	assert.Nil(t, draft)

	related, err := repo.FindRelated(db, found, 3)
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, "facelift", related[0].Slug)
}

func TestProcedureRepository_SlugExistsAndCounts(t *testing.T) {
	db := newTestDB(t)
	_, category, procedures := seedCatalog(t, db)
	repo := NewProcedureRepository()

	exists, err := repo.SlugExists(db, "facelift", nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.SlugExists(db, "facelift", &procedures[1].ID)
	require.NoError(t, err)
	assert.False(t, exists)

	n, err := repo.CountByCategory(db, category.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	counts, err := repo.CountByStatus(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[entity.ContentStatusPublished])
	assert.Equal(t, int64(1), counts[entity.ContentStatusDraft])

	affected, err := repo.Delete(db, procedures[2].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	missing, err := repo.FindByID(db, procedures[2].ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestExpertiseAreaRepository_Catalog(t *testing.T) {
	db := newTestDB(t)
	area, _, _ := seedCatalog(t, db)
	repo := NewExpertiseAreaRepository()

	found, err := repo.FindBySlugWithCatalog(db, "aesthetics")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Len(t, found.TreatmentCategories, 1)
	assert.Len(t, found.TreatmentCategories[0].Procedures, 2)

	n, err := NewTreatmentCategoryRepository().CountByExpertiseArea(db, area.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	areas, err := repo.FindAllWithCategories(db)
	require.NoError(t, err)
	require.Len(t, areas, 1)
	assert.Len(t, areas[0].TreatmentCategories, 1)

	missing, err := repo.FindBySlugWithCatalog(db, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTreatmentCategoryRepository_WithPublishedProcedures(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	categories, err := NewTreatmentCategoryRepository().FindAllWithPublishedProcedures(db)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Len(t, categories[0].Procedures, 2)
}

func TestFAQRepository_Queries(t *testing.T) {
	db := newTestDB(t)
	_, _, procedures := seedCatalog(t, db)
	repo := NewFAQRepository()

	require.NoError(t, repo.Create(db, &entity.FAQ{Question: "Parking?", Answer: "Yes", IsPublished: true}))
	require.NoError(t, repo.Create(db, &entity.FAQ{Question: "Draft global", Answer: "-"}))
	require.NoError(t, repo.Create(db, &entity.FAQ{ProcedureID: &procedures[0].ID, Question: "Pain?", Answer: "Little", IsPublished: true}))
	require.NoError(t, repo.Create(db, &entity.FAQ{ProcedureID: &procedures[2].ID, Question: "Draft procedure", Answer: "-", IsPublished: true}))

	global, err := repo.FindPublished(db, nil)
	require.NoError(t, err)
	require.Len(t, global, 1)
	assert.Equal(t, "Parking?", global[0].Question)

	grouped, err := repo.FindPublishedForProcedures(db)
	require.NoError(t, err)
	require.Len(t, grouped, 1)
	assert.Equal(t, "Pain?", grouped[0].Question)
	require.NotNil(t, grouped[0].Procedure)
	assert.Equal(t, "rhinoplasty", grouped[0].Procedure.Slug)

	list, total, err := repo.FindAll(db, entity.FAQFilter{GlobalOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)

	published := true
	_, total, err = repo.FindAll(db, entity.FAQFilter{ProcedureID: &procedures[0].ID, Published: &published})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	require.NoError(t, repo.DeleteByProcedure(db, procedures[0].ID))
	n, err := repo.Count(db)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestBlogPostRepository_Published(t *testing.T) {
	db := newTestDB(t)
	category := &entity.Category{Name: "News", Slug: "news"}
	require.NoError(t, NewCategoryRepository().Create(db, category))
	repo := NewBlogPostRepository()

	older := time.Now().Add(-48 * time.Hour)
	newer := time.Now().Add(-time.Hour)
	require.NoError(t, repo.Create(db, &entity.BlogPost{Title: "Old", Slug: "old", Status: entity.ContentStatusPublished, PublishedAt: &older, CategoryID: &category.ID}))
	require.NoError(t, repo.Create(db, &entity.BlogPost{Title: "New", Slug: "new", Status: entity.ContentStatusPublished, PublishedAt: &newer}))
	require.NoError(t, repo.Create(db, &entity.BlogPost{Title: "Draft", Slug: "draft", Status: entity.ContentStatusDraft}))

	posts, total, err := repo.FindPublished(db, entity.BlogPostFilter{Pagination: entity.Pagination{Page: 1, Limit: 9}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, posts, 2)
	assert.Equal(t, "new", posts[0].Slug)

	posts, total, err = repo.FindPublished(db, entity.BlogPostFilter{CategoryID: &category.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.NotNil(t, posts[0].Category)
	assert.Equal(t, "news", posts[0].Category.Slug)

	n, err := repo.CountByCategory(db, category.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	draft, err := repo.FindPublishedBySlug(db, "draft")
	require.NoError(t, err)
	assert.Nil(t, draft)
}

func TestAppointmentRequestRepository(t *testing.T) {
	db := newTestDB(t)
	_, _, procedures := seedCatalog(t, db)
	repo := NewAppointmentRequestRepository()

	date := time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC)
	first := &entity.AppointmentRequest{FullName: "Ada Lovelace", Email: "ada@example.com", Phone: "+441234567", ProcedureID: &procedures[0].ID, PreferredDate: &date, Status: entity.AppointmentStatusNew, Source: entity.AppointmentSourceWeb}
	require.NoError(t, repo.Create(db, first))
	second := &entity.AppointmentRequest{FullName: "Alan Turing", Email: "alan@example.com", Phone: "+449876543", Status: entity.AppointmentStatusContacted, Source: entity.AppointmentSourceAPI}
	require.NoError(t, repo.Create(db, second))

	list, total, err := repo.FindAll(db, entity.AppointmentRequestFilter{Status: entity.AppointmentStatusNew})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.NotNil(t, list[0].Procedure)
	require.NotNil(t, list[0].PreferredDate)
	assert.Equal(t, "2030-01-02", list[0].PreferredDate.Format("2006-01-02"))

	_, total, err = repo.FindAll(db, entity.AppointmentRequestFilter{Search: "turing"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	counts, err := repo.CountByStatus(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[entity.AppointmentStatusNew])
	assert.Equal(t, int64(1), counts[entity.AppointmentStatusContacted])

	require.NoError(t, repo.ClearProcedure(db, procedures[0].ID))
	found, err := repo.FindByID(db, first.ID)
	require.NoError(t, err)
	assert.Nil(t, found.ProcedureID)

	recent, err := repo.FindRecent(db, 5)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestSiteSettingsRepository_GetCreatesDefaults(t *testing.T) {
	db := newTestDB(t)
	repo := NewSiteSettingsRepository()

	settings, err := repo.Get(db)
	require.NoError(t, err)
	assert.Equal(t, entity.SiteSettingsID, settings.ID)
	assert.Equal(t, entity.DefaultSiteSettings().SiteName, settings.SiteName)

	settings.SiteName = "Harbor Clinic"
	settings.SocialLinks = entity.JSON{"instagram": "https://instagram.com/harbor"}
	require.NoError(t, repo.Save(db, settings))

	again, err := repo.Get(db)
	require.NoError(t, err)
	assert.Equal(t, "Harbor Clinic", again.SiteName)
	assert.Equal(t, "https://instagram.com/harbor", again.SocialLinks["instagram"])

	var rows int64
	require.NoError(t, db.Model(&entity.SiteSettings{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestUserRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository()

	user := &entity.User{RoleID: entity.RoleIDEditor, Email: "Editor@Clinic.test", Password: "hash", FullName: "Ed Itor", IsActive: true}
	require.NoError(t, repo.Create(db, user))
	assert.NotEqual(t, uuid.Nil, user.ID)

	found, err := repo.FindByEmail(db, "editor@clinic.test")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, entity.RoleEditor, found.Role.RoleName)

	missing, err := repo.FindByEmail(db, "nobody@clinic.test")
	require.NoError(t, err)
	assert.Nil(t, missing)

	err = repo.Create(db, &entity.User{RoleID: entity.RoleIDAdmin, Email: "Editor@Clinic.test", Password: "x", FullName: "Dup"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	require.NoError(t, repo.UpdateLastLogin(db, user.ID))
	found, err = repo.FindByID(db, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, found.LastLoginAt)

	users, total, err := repo.FindAll(db, entity.UserFilter{Search: "itor"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, users, 1)

	require.NoError(t, repo.Delete(db, user.ID))
	found, err = repo.FindByID(db, user.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestAuditLogRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewAuditLogRepository()

	require.NoError(t, repo.Create(db, &entity.AuditLog{Action: entity.AuditActionProcedureCreate, Metadata: entity.JSON{"slug": "x"}}))
	require.NoError(t, repo.Create(db, &entity.AuditLog{Action: entity.AuditActionUserLogin}))

	logs, total, err := repo.FindAll(db, entity.AuditLogFilter{Action: entity.AuditActionProcedureCreate})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "x", logs[0].Metadata["slug"])

	found, err := repo.FindByID(db, logs[0].ID)
	require.NoError(t, err)
	require.NotNil(t, found)

	missing, err := repo.FindByID(db, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRoleRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewRoleRepository()

	roles, err := repo.FindAll(db)
	require.NoError(t, err)
	assert.Len(t, roles, 2)

	require.NoError(t, repo.Upsert(db, &entity.Role{ID: entity.RoleIDEditor, RoleName: entity.RoleEditor, Description: "changed"}))
	role, err := repo.FindByID(db, entity.RoleIDEditor)
	require.NoError(t, err)
	assert.Equal(t, "changed", role.Description)
}
