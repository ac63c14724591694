package usecase

import (
	"context"
	"testing"

	"clinic-cms/internal/delivery/dto"
	"clinic-cms/internal/domain/entity"
	"clinic-cms/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) newCategoryUsecase() CategoryUsecase {
	return NewCategoryUsecase(e.db, e.log, repository.NewCategoryRepository(), repository.NewBlogPostRepository(), e.audit, e.cache)
}

func (e *testEnv) newBlogPostUsecase() BlogPostUsecase {
	return NewBlogPostUsecase(e.db, e.log, repository.NewBlogPostRepository(), repository.NewCategoryRepository(), e.audit, e.cache)
}

func (e *testEnv) newFAQUsecase() FAQUsecase {
	return NewFAQUsecase(e.db, e.log, repository.NewFAQRepository(), repository.NewProcedureRepository(), e.audit, e.cache)
}

func TestBlogPostUsecase_CreateRecordsAuthor(t *testing.T) {
	env := newTestEnv(t)
	author := &entity.User{RoleID: entity.RoleIDEditor, Email: "editor@clinic.test", Password: "x", FullName: "Dr. Editor", IsActive: true}
	require.NoError(t, repository.NewUserRepository().Create(env.db, author))
	ctx := actorContext(author.ID)

	category, err := env.newCategoryUsecase().Create(ctx, &dto.CategoryRequest{Name: "Recovery Tips"})
	require.NoError(t, err)
	assert.Equal(t, "recovery-tips", category.Slug)

	post, err := env.newBlogPostUsecase().Create(ctx, &dto.BlogPostRequest{
		CategoryID: &category.ID,
		Title:      "Five Things After Surgery",
		Status:     "published",
	})
	require.NoError(t, err)
	require.NotNil(t, post.AuthorID)
	assert.Equal(t, author.ID, *post.AuthorID)
	assert.NotNil(t, post.PublishedAt)

	stored, err := env.newBlogPostUsecase().GetByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Editor", stored.AuthorName)
	require.NotNil(t, stored.Category)
	assert.Equal(t, "recovery-tips", stored.Category.Slug)
}

func TestBlogPostUsecase_RejectsUnknownCategory(t *testing.T) {
	env := newTestEnv(t)
	missing := uuid.New()

	_, err := env.newBlogPostUsecase().Create(actorContext(uuid.New()), &dto.BlogPostRequest{CategoryID: &missing, Title: "Hello", Status: "draft"})
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestCategoryUsecase_DeleteInUse(t *testing.T) {
	env := newTestEnv(t)
	ctx := actorContext(uuid.New())
	categories := env.newCategoryUsecase()

	category, err := categories.Create(ctx, &dto.CategoryRequest{Name: "News"})
	require.NoError(t, err)
	post, err := env.newBlogPostUsecase().Create(ctx, &dto.BlogPostRequest{CategoryID: &category.ID, Title: "Opening", Status: "draft"})
	require.NoError(t, err)

	assert.ErrorIs(t, categories.Delete(ctx, category.ID), ErrCategoryInUse)

	require.NoError(t, env.newBlogPostUsecase().Delete(ctx, post.ID))
	require.NoError(t, categories.Delete(ctx, category.ID))
	assert.ErrorIs(t, categories.Delete(ctx, category.ID), ErrCategoryNotFound)
}

func TestCategoryUsecase_UpdateSlugConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := actorContext(uuid.New())
	categories := env.newCategoryUsecase()

	_, err := categories.Create(ctx, &dto.CategoryRequest{Name: "News"})
	require.NoError(t, err)
	other, err := categories.Create(ctx, &dto.CategoryRequest{Name: "Events"})
	require.NoError(t, err)

	_, err = categories.Update(ctx, other.ID, &dto.CategoryRequest{Name: "Events", Slug: "news"})
	assert.ErrorIs(t, err, ErrSlugAlreadyExists)

	// Keeping its own slug is not a conflict.
	updated, err := categories.Update(ctx, other.ID, &dto.CategoryRequest{Name: "Clinic Events", Slug: "events"})
	require.NoError(t, err)
	assert.Equal(t, "Clinic Events", updated.Name)
}

func TestFAQUsecase_GlobalAndProcedureScoped(t *testing.T) {
	env := newTestEnv(t)
	ctx := actorContext(uuid.New())
	faqs := env.newFAQUsecase()

	procedure, err := env.newProcedureUsecase().Create(ctx, &dto.ProcedureRequest{Title: "Facelift", Status: "published"})
	require.NoError(t, err)

	_, err = faqs.Create(ctx, &dto.FAQRequest{Question: "Where are you?", Answer: "Downtown.", IsPublished: true})
	require.NoError(t, err)
	scoped, err := faqs.Create(ctx, &dto.FAQRequest{ProcedureID: &procedure.ID, Question: "How long?", Answer: "Two hours.", IsPublished: true})
	require.NoError(t, err)
	require.NotNil(t, scoped.Procedure)
	assert.Equal(t, "facelift", scoped.Procedure.Slug)

	global, total, err := faqs.GetAll(ctx, dto.FAQListQuery{Global: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, global, 1)
	assert.Equal(t, "Where are you?", global[0].Question)

	_, total, err = faqs.GetAll(ctx, dto.FAQListQuery{ProcedureID: &procedure.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	missing := uuid.New()
	_, err = faqs.Create(ctx, &dto.FAQRequest{ProcedureID: &missing, Question: "Lost?", Answer: "Yes."})
	assert.ErrorIs(t, err, ErrInvalidProcedure)
}

func TestSiteSettingsUsecase_UpdateAuditsAndPurges(t *testing.T) {
	env := newTestEnv(t)
	ctx := actorContext(uuid.New())
	uc := NewSiteSettingsUsecase(env.db, env.log, repository.NewSiteSettingsRepository(), env.audit, env.cache)

	current, err := uc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultSiteSettings().SiteName, current.SiteName)

	cacheKey := env.primeCache(t)
	updated, err := uc.Update(ctx, &dto.SiteSettingsRequest{
		SiteName:     "Harbor Clinic",
		ContactEmail: "hello@harbor.test",
		SocialLinks:  map[string]string{"instagram": "https://instagram.com/harbor"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Harbor Clinic", updated.SiteName)
	assert.Equal(t, "https://instagram.com/harbor", updated.SocialLinks["instagram"])
	assert.False(t, env.mr.Exists(cacheKey))

	reloaded, err := uc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hello@harbor.test", reloaded.ContactEmail)
	assert.Equal(t, int64(1), env.auditCount(t, entity.AuditActionSettingsUpdate))
}

func TestPurgePublicCache_NilInvalidatorIsSkipped(t *testing.T) {
	env := newTestEnv(t)
	uc := NewCategoryUsecase(env.db, env.log, repository.NewCategoryRepository(), repository.NewBlogPostRepository(), env.audit, nil)

	_, err := uc.Create(actorContext(uuid.New()), &dto.CategoryRequest{Name: "News"})
	assert.NoError(t, err)
}
