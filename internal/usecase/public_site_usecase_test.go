package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"clinic-cms/internal/domain/entity"
	"clinic-cms/internal/repository"
	"clinic-cms/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publicFixture struct {
	area      *entity.ExpertiseArea
	category  *entity.TreatmentCategory
	featured  *entity.Procedure
	other     *entity.Procedure
	draft     *entity.Procedure
	blogTopic *entity.Category
}

func seedPublicSite(t *testing.T, env *testEnv, posts int) publicFixture {
	t.Helper()
	db := env.db
	now := time.Now().UTC()

	f := publicFixture{
		area:      &entity.ExpertiseArea{Name: "Plastic Surgery", Slug: "plastic-surgery", Description: "Reconstructive and aesthetic care"},
		blogTopic: &entity.Category{Name: "Recovery", Slug: "recovery"},
	}
	require.NoError(t, repository.NewExpertiseAreaRepository().Create(db, f.area))

	f.category = &entity.TreatmentCategory{Name: "Face", Slug: "face", ExpertiseAreaID: &f.area.ID}
	require.NoError(t, repository.NewTreatmentCategoryRepository().Create(db, f.category))

	price := decimal.NewFromInt(2500)
	f.featured = &entity.Procedure{Title: "Rhinoplasty", Slug: "rhinoplasty", Content: "Reshapes the **nose**.", Status: entity.ContentStatusPublished, IsFeatured: true, SortOrder: 1, TreatmentCategoryID: &f.category.ID, PriceFrom: &price, PublishedAt: &now}
	f.other = &entity.Procedure{Title: "Facelift", Slug: "facelift", Summary: "Lifts the face", Status: entity.ContentStatusPublished, SortOrder: 2, TreatmentCategoryID: &f.category.ID, PublishedAt: &now}
	f.draft = &entity.Procedure{Title: "Brow Lift", Slug: "brow-lift", Status: entity.ContentStatusDraft, SortOrder: 3, TreatmentCategoryID: &f.category.ID}
	procedures := repository.NewProcedureRepository()
	for _, p := range []*entity.Procedure{f.featured, f.other, f.draft} {
		require.NoError(t, procedures.Create(db, p))
	}

	faqs := repository.NewFAQRepository()
	require.NoError(t, faqs.Create(db, &entity.FAQ{Question: "Where is the clinic?", Answer: "On *Main* street.", IsPublished: true}))
	require.NoError(t, faqs.Create(db, &entity.FAQ{Question: "Hidden?", Answer: "Yes.", IsPublished: false}))
	require.NoError(t, faqs.Create(db, &entity.FAQ{ProcedureID: &f.featured.ID, Question: "Is it painful?", Answer: "<script>alert(1)</script>Mildly.", IsPublished: true}))
	require.NoError(t, faqs.Create(db, &entity.FAQ{ProcedureID: &f.draft.ID, Question: "Draft question", Answer: "Never shown.", IsPublished: true}))

	require.NoError(t, repository.NewCategoryRepository().Create(db, f.blogTopic))
	blog := repository.NewBlogPostRepository()
	for i := 0; i < posts; i++ {
		published := now.Add(-time.Duration(i) * time.Hour)
		require.NoError(t, blog.Create(db, &entity.BlogPost{
			CategoryID:  &f.blogTopic.ID,
			Title:       fmt.Sprintf("Post %02d", i),
			Slug:        fmt.Sprintf("post-%02d", i),
			Content:     "Body text",
			Status:      entity.ContentStatusPublished,
			PublishedAt: &published,
		}))
	}
	require.NoError(t, blog.Create(db, &entity.BlogPost{Title: "Unpublished", Slug: "unpublished", Status: entity.ContentStatusDraft}))

	return f
}

func TestPublicSiteUsecase_Home(t *testing.T) {
	env := newTestEnv(t)
	seedPublicSite(t, env, 4)

	page, err := env.newPublicSiteUsecase(nil).Home(context.Background())
	require.NoError(t, err)

	assert.Equal(t, entity.DefaultSiteSettings().SiteName, page.Site.SiteName)
	assert.Equal(t, "https://clinic.test/", page.Meta.CanonicalURL)
	require.Len(t, page.ExpertiseAreas, 1)
	assert.Equal(t, "face", page.ExpertiseAreas[0].Categories[0].Slug)
	require.Len(t, page.FeaturedProcedures, 1)
	assert.Equal(t, "2500.00", page.FeaturedProcedures[0].PriceFrom)
	assert.Equal(t, "Reshapes the nose.", page.FeaturedProcedures[0].Summary)
	require.Len(t, page.LatestPosts, 3)
	assert.Equal(t, "post-00", page.LatestPosts[0].Slug)
	require.Len(t, page.FAQs, 1)
	assert.Contains(t, string(page.FAQs[0].AnswerHTML), "<em>Main</em>")
}

func TestPublicSiteUsecase_ProcedurePage(t *testing.T) {
	env := newTestEnv(t)
	seedPublicSite(t, env, 0)
	uc := env.newPublicSiteUsecase(nil)

	page, err := uc.Procedure(context.Background(), "rhinoplasty")
	require.NoError(t, err)
	assert.Equal(t, "Rhinoplasty | "+entity.DefaultSiteSettings().SiteName, page.Meta.Title)
	assert.Equal(t, "Reshapes the nose.", page.Meta.Description)
	assert.Contains(t, string(page.Procedure.ContentHTML), "<strong>nose</strong>")
	require.NotNil(t, page.Procedure.Area)
	assert.Equal(t, "plastic-surgery", page.Procedure.Area.Slug)
	require.Len(t, page.FAQs, 1)
	assert.NotContains(t, string(page.FAQs[0].AnswerHTML), "<script>")
	require.Len(t, page.Related, 1)
	assert.Equal(t, "facelift", page.Related[0].Slug)

	_, err = uc.Procedure(context.Background(), "brow-lift")
	assert.ErrorIs(t, err, ErrPageNotFound)
}

func TestPublicSiteUsecase_ProceduresByCategory(t *testing.T) {
	env := newTestEnv(t)
	seedPublicSite(t, env, 0)
	uc := env.newPublicSiteUsecase(nil)

	all, err := uc.Procedures(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all.Procedures, 2)
	assert.Nil(t, all.ActiveCategory)

	face, err := uc.Procedures(context.Background(), "face")
	require.NoError(t, err)
	require.NotNil(t, face.ActiveCategory)
	assert.Equal(t, "https://clinic.test/procedures?category=face", face.Meta.CanonicalURL)
	assert.Len(t, face.Procedures, 2)

	_, err = uc.Procedures(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrPageNotFound)
}

func TestPublicSiteUsecase_Expertise(t *testing.T) {
	env := newTestEnv(t)
	seedPublicSite(t, env, 0)
	uc := env.newPublicSiteUsecase(nil)

	page, err := uc.Expertise(context.Background(), "plastic-surgery")
	require.NoError(t, err)
	require.Len(t, page.Categories, 1)
	assert.Len(t, page.Categories[0].Procedures, 2)

	_, err = uc.Expertise(context.Background(), "dental")
	assert.ErrorIs(t, err, ErrPageNotFound)
}

func TestPublicSiteUsecase_BlogPagination(t *testing.T) {
	env := newTestEnv(t)
	seedPublicSite(t, env, BlogPageSize+2)
	uc := env.newPublicSiteUsecase(nil)

	first, err := uc.Blog(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Page)
	assert.Equal(t, 2, first.TotalPages)
	assert.Len(t, first.Posts, BlogPageSize)
	assert.Zero(t, first.PrevPage)
	assert.Equal(t, 2, first.NextPage)

	second, err := uc.Blog(context.Background(), "recovery", 2)
	require.NoError(t, err)
	assert.Len(t, second.Posts, 2)
	assert.Equal(t, 1, second.PrevPage)
	assert.Zero(t, second.NextPage)
	require.NotNil(t, second.ActiveCategory)

	_, err = uc.Blog(context.Background(), "nope", 1)
	assert.ErrorIs(t, err, ErrPageNotFound)

	post, err := uc.Post(context.Background(), "post-01")
	require.NoError(t, err)
	assert.Equal(t, "Body text", post.Meta.Description)

	_, err = uc.Post(context.Background(), "unpublished")
	assert.ErrorIs(t, err, ErrPageNotFound)
}

func TestPublicSiteUsecase_BlogPageOutOfRange(t *testing.T) {
	env := newTestEnv(t)
	seedPublicSite(t, env, BlogPageSize+2)
	uc := env.newPublicSiteUsecase(env.cache)
	ctx := context.Background()

	for _, page := range []int{3, 500, entity.MaxPage + 1, int(^uint(0) >> 1)} {
		_, err := uc.Blog(ctx, "", page)
		assert.ErrorIs(t, err, ErrPageNotFound, page)
	}

	// Only real pages reach the cache.
	_, err := uc.Blog(ctx, "", 2)
	require.NoError(t, err)
	var keys []string
	for _, key := range env.mr.Keys() {
		if strings.HasPrefix(key, service.PublicKey("blog")) {
			keys = append(keys, key)
		}
	}
	assert.Equal(t, []string{service.PublicKey("blog", "2")}, keys)

	// An empty blog still has its first page.
	empty := newTestEnv(t)
	seedPublicSite(t, empty, 0)
	first, err := empty.newPublicSiteUsecase(nil).Blog(ctx, "", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, first.TotalPages)
	assert.Empty(t, first.Posts)
}

func TestPublicSiteUsecase_CategorySlugDoesNotShareListCache(t *testing.T) {
	env := newTestEnv(t)
	f := seedPublicSite(t, env, 1)
	uc := env.newPublicSiteUsecase(env.cache)
	ctx := context.Background()

	treatments := &entity.TreatmentCategory{Name: "All In One", Slug: "all", ExpertiseAreaID: &f.area.ID}
	require.NoError(t, repository.NewTreatmentCategoryRepository().Create(env.db, treatments))
	onlyOne := &entity.Procedure{Title: "Combo", Slug: "combo", Status: entity.ContentStatusPublished, TreatmentCategoryID: &treatments.ID}
	require.NoError(t, repository.NewProcedureRepository().Create(env.db, onlyOne))

	filtered, err := uc.Procedures(ctx, "all")
	require.NoError(t, err)
	require.NotNil(t, filtered.ActiveCategory)
	assert.Len(t, filtered.Procedures, 1)

	unfiltered, err := uc.Procedures(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, unfiltered.ActiveCategory)
	assert.Len(t, unfiltered.Procedures, 3)

	topic := &entity.Category{Name: "Everything", Slug: "all"}
	require.NoError(t, repository.NewCategoryRepository().Create(env.db, topic))

	filteredBlog, err := uc.Blog(ctx, "all", 1)
	require.NoError(t, err)
	assert.Empty(t, filteredBlog.Posts)

	blog, err := uc.Blog(ctx, "", 1)
	require.NoError(t, err)
	assert.Nil(t, blog.ActiveCategory)
	assert.Len(t, blog.Posts, 1)

	assert.True(t, env.mr.Exists(service.PublicKey("procedures")))
	assert.True(t, env.mr.Exists(service.PublicKey("procedures", "category", "all")))
	assert.True(t, env.mr.Exists(service.PublicKey("blog", "category", "all", "1")))
}

func TestPublicSiteUsecase_FAQGroupsPublishedProcedures(t *testing.T) {
	env := newTestEnv(t)
	seedPublicSite(t, env, 0)

	page, err := env.newPublicSiteUsecase(nil).FAQ(context.Background())
	require.NoError(t, err)
	require.Len(t, page.General, 1)
	require.Len(t, page.ByProcedure, 1)
	assert.Equal(t, "rhinoplasty", page.ByProcedure[0].Slug)
	assert.Len(t, page.ByProcedure[0].FAQs, 1)
}

func TestPublicSiteUsecase_ContactAndSitemap(t *testing.T) {
	env := newTestEnv(t)
	seedPublicSite(t, env, 2)
	uc := env.newPublicSiteUsecase(nil)

	contact, err := uc.Contact(context.Background())
	require.NoError(t, err)
	assert.Len(t, contact.Procedures, 2)

	urls, err := uc.Sitemap(context.Background())
	require.NoError(t, err)
	var locs []string
	for _, u := range urls {
		locs = append(locs, u.Loc)
	}
	assert.Contains(t, locs, "https://clinic.test/procedures/rhinoplasty")
	assert.Contains(t, locs, "https://clinic.test/expertise/plastic-surgery")
	assert.Contains(t, locs, "https://clinic.test/blog/post-01")
	assert.NotContains(t, locs, "https://clinic.test/procedures/brow-lift")
	assert.NotContains(t, locs, "https://clinic.test/blog/unpublished")
}

func TestPublicSiteUsecase_CachedUntilPurged(t *testing.T) {
	env := newTestEnv(t)
	f := seedPublicSite(t, env, 0)
	uc := env.newPublicSiteUsecase(env.cache)
	ctx := context.Background()

	page, err := uc.Procedure(ctx, "facelift")
	require.NoError(t, err)
	assert.Equal(t, "Facelift", page.Procedure.Title)
	assert.True(t, env.mr.Exists(service.PublicKey("procedure", "facelift")))

	f.other.Title = "Deep Plane Facelift"
	require.NoError(t, repository.NewProcedureRepository().Update(env.db, f.other))

	page, err = uc.Procedure(ctx, "facelift")
	require.NoError(t, err)
	assert.Equal(t, "Facelift", page.Procedure.Title)

	_, err = uc.PurgeCache(ctx)
	require.NoError(t, err)

	page, err = uc.Procedure(ctx, "facelift")
	require.NoError(t, err)
	assert.Equal(t, "Deep Plane Facelift", page.Procedure.Title)
}

func TestPublicSiteUsecase_WarmCache(t *testing.T) {
	env := newTestEnv(t)
	seedPublicSite(t, env, BlogPageSize+1)
	ctx := context.Background()

	_, err := env.newPublicSiteUsecase(nil).WarmCache(ctx)
	assert.ErrorIs(t, err, ErrCacheDisabled)

	stored, err := env.newPublicSiteUsecase(env.cache).WarmCache(ctx)
	require.NoError(t, err)

	// home, procedures, faq, contact, sitemap, 2 procedures, 1 area,
	// 2 blog pages and every published post.
	assert.Equal(t, 5+2+1+2+BlogPageSize+1, stored)

	var cached int
	for _, key := range env.mr.Keys() {
		if strings.HasPrefix(key, service.PublicKeyPrefix) {
			cached++
		}
	}
	assert.Equal(t, stored, cached)
	assert.True(t, env.mr.Exists(service.PublicKey("blog", "2")))
	assert.True(t, env.mr.Exists(service.PublicKey("post", "post-00")))
}
