package usecase

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"clinic-cms/internal/converter"
	"clinic-cms/internal/delivery/dto"
	"clinic-cms/internal/domain/entity"
	"clinic-cms/internal/domain/repository"
	"clinic-cms/internal/service"
	"clinic-cms/pkg/markdown"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPageNotFound  = errors.New("page not found")
	ErrCacheDisabled = errors.New("content cache is not configured")
)

const (
	BlogPageSize        = 9
	homeLatestPosts     = 3
	relatedProcedures   = 3
	metaDescriptionSize = 160
)

type PublicSiteUsecase interface {
	Home(ctx context.Context) (*dto.HomePage, error)
	Procedures(ctx context.Context, categorySlug string) (*dto.ProceduresPage, error)
	Procedure(ctx context.Context, slug string) (*dto.ProcedurePage, error)
	Expertise(ctx context.Context, slug string) (*dto.ExpertisePage, error)
	Blog(ctx context.Context, categorySlug string, page int) (*dto.BlogPage, error)
	Post(ctx context.Context, slug string) (*dto.PostPage, error)
	FAQ(ctx context.Context) (*dto.FAQPage, error)
	Contact(ctx context.Context) (*dto.ContactPage, error)
	Sitemap(ctx context.Context) ([]dto.SitemapURL, error)
	WarmCache(ctx context.Context) (int, error)
	PurgeCache(ctx context.Context) (int, error)
}

type PublicRepositories struct {
	Settings          repository.SiteSettingsRepository
	ExpertiseArea     repository.ExpertiseAreaRepository
	TreatmentCategory repository.TreatmentCategoryRepository
	Procedure         repository.ProcedureRepository
	Category          repository.CategoryRepository
	BlogPost          repository.BlogPostRepository
	FAQ               repository.FAQRepository
}

type publicSiteUsecase struct {
	db       *gorm.DB
	log      *logrus.Logger
	repos    PublicRepositories
	renderer *markdown.Renderer
	cache    *service.ContentCache
	baseURL  string
}

// NewPublicSiteUsecase builds the read side of the site. cache may be nil,
// in which case every page is computed per request.
func NewPublicSiteUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	repos PublicRepositories,
	renderer *markdown.Renderer,
	cache *service.ContentCache,
	baseURL string,
) PublicSiteUsecase {
	return &publicSiteUsecase{
		db:       db,
		log:      log,
		repos:    repos,
		renderer: renderer,
		cache:    cache,
		baseURL:  baseURL,
	}
}

func (u *publicSiteUsecase) Home(ctx context.Context) (*dto.HomePage, error) {
	return service.Remember(ctx, u.cache, service.PublicKey("home"), u.loadHome)
}

func (u *publicSiteUsecase) Procedures(ctx context.Context, categorySlug string) (*dto.ProceduresPage, error) {
	key := listKey("procedures", categorySlug)
	return service.Remember(ctx, u.cache, key, func(ctx context.Context) (*dto.ProceduresPage, error) {
		return u.loadProcedures(ctx, categorySlug)
	})
}

func (u *publicSiteUsecase) Procedure(ctx context.Context, slug string) (*dto.ProcedurePage, error) {
	return service.Remember(ctx, u.cache, service.PublicKey("procedure", slug), func(ctx context.Context) (*dto.ProcedurePage, error) {
		return u.loadProcedure(ctx, slug)
	})
}

func (u *publicSiteUsecase) Expertise(ctx context.Context, slug string) (*dto.ExpertisePage, error) {
	return service.Remember(ctx, u.cache, service.PublicKey("expertise", slug), func(ctx context.Context) (*dto.ExpertisePage, error) {
		return u.loadExpertise(ctx, slug)
	})
}

func (u *publicSiteUsecase) Blog(ctx context.Context, categorySlug string, page int) (*dto.BlogPage, error) {
	if page < 1 {
		page = 1
	}
	if page > entity.MaxPage {
		return nil, ErrPageNotFound
	}
	key := listKey("blog", categorySlug, strconv.Itoa(page))
	return service.Remember(ctx, u.cache, key, func(ctx context.Context) (*dto.BlogPage, error) {
		return u.loadBlog(ctx, categorySlug, page)
	})
}

func (u *publicSiteUsecase) Post(ctx context.Context, slug string) (*dto.PostPage, error) {
	return service.Remember(ctx, u.cache, service.PublicKey("post", slug), func(ctx context.Context) (*dto.PostPage, error) {
		return u.loadPost(ctx, slug)
	})
}

func (u *publicSiteUsecase) FAQ(ctx context.Context) (*dto.FAQPage, error) {
	return service.Remember(ctx, u.cache, service.PublicKey("faq"), u.loadFAQ)
}

func (u *publicSiteUsecase) Contact(ctx context.Context) (*dto.ContactPage, error) {
	return service.Remember(ctx, u.cache, service.PublicKey("contact"), u.loadContact)
}

func (u *publicSiteUsecase) Sitemap(ctx context.Context) ([]dto.SitemapURL, error) {
	return service.Remember(ctx, u.cache, service.PublicKey("sitemap"), u.loadSitemap)
}

// WarmCache computes every public page reachable without query parameters
// (plus the paginated blog) and writes them in pipelined batches.
func (u *publicSiteUsecase) WarmCache(ctx context.Context) (int, error) {
	if u.cache == nil {
		return 0, ErrCacheDisabled
	}

	var entries []service.CacheEntry
	add := func(key string, value interface{}, err error) error {
		if err != nil {
			return fmt.Errorf("warm %s: %w", key, err)
		}
		entries = append(entries, service.CacheEntry{Key: key, Value: value})
		return nil
	}

	home, err := u.loadHome(ctx)
	if err := add(service.PublicKey("home"), home, err); err != nil {
		return 0, err
	}
	procedures, err := u.loadProcedures(ctx, "")
	if err := add(listKey("procedures", ""), procedures, err); err != nil {
		return 0, err
	}
	faq, err := u.loadFAQ(ctx)
	if err := add(service.PublicKey("faq"), faq, err); err != nil {
		return 0, err
	}
	contact, err := u.loadContact(ctx)
	if err := add(service.PublicKey("contact"), contact, err); err != nil {
		return 0, err
	}
	sitemap, err := u.loadSitemap(ctx)
	if err := add(service.PublicKey("sitemap"), sitemap, err); err != nil {
		return 0, err
	}

	for _, card := range procedures.Procedures {
		page, err := u.loadProcedure(ctx, card.Slug)
		if err := add(service.PublicKey("procedure", card.Slug), page, err); err != nil {
			return 0, err
		}
	}

	for _, area := range home.ExpertiseAreas {
		page, err := u.loadExpertise(ctx, area.Slug)
		if err := add(service.PublicKey("expertise", area.Slug), page, err); err != nil {
			return 0, err
		}
	}

	for page := 1; ; page++ {
		blog, err := u.loadBlog(ctx, "", page)
		if err := add(listKey("blog", "", strconv.Itoa(page)), blog, err); err != nil {
			return 0, err
		}
		for _, card := range blog.Posts {
			post, err := u.loadPost(ctx, card.Slug)
			if err := add(service.PublicKey("post", card.Slug), post, err); err != nil {
				return 0, err
			}
		}
		if page >= blog.TotalPages {
			break
		}
	}

	return u.cache.SetMany(ctx, entries)
}

func (u *publicSiteUsecase) PurgeCache(ctx context.Context) (int, error) {
	if u.cache == nil {
		return 0, ErrCacheDisabled
	}
	return u.cache.Purge(ctx)
}

func (u *publicSiteUsecase) loadHome(ctx context.Context) (*dto.HomePage, error) {
	db := u.db.WithContext(ctx)

	site, settings, err := u.siteInfo(db)
	if err != nil {
		return nil, err
	}

	areas, err := u.repos.ExpertiseArea.FindAllWithCategories(db)
	if err != nil {
		u.log.Warnf("Failed to load expertise areas: %+v", err)
		return nil, err
	}

	featured := true
	procedures, err := u.repos.Procedure.FindPublished(db, entity.ProcedureFilter{Featured: &featured})
	if err != nil {
		u.log.Warnf("Failed to load featured procedures: %+v", err)
		return nil, err
	}

	posts, _, err := u.repos.BlogPost.FindPublished(db, entity.BlogPostFilter{
		Pagination: entity.Pagination{Page: 1, Limit: homeLatestPosts},
	})
	if err != nil {
		u.log.Warnf("Failed to load latest posts: %+v", err)
		return nil, err
	}

	faqs, err := u.repos.FAQ.FindPublished(db, nil)
	if err != nil {
		u.log.Warnf("Failed to load global faqs: %+v", err)
		return nil, err
	}

	page := &dto.HomePage{
		Site: site,
		Meta: dto.PageMeta{
			Title:        settings.DefaultMetaTitle,
			Description:  settings.DefaultMetaDescription,
			CanonicalURL: u.url("/"),
		},
		ExpertiseAreas:     make([]dto.ExpertiseAreaCard, len(areas)),
		FeaturedProcedures: u.procedureCards(procedures),
		LatestPosts:        blogPostCards(posts),
		FAQs:               u.faqItems(faqs),
	}
	if page.Meta.Title == "" {
		page.Meta.Title = settings.SiteName
	}
	for i := range areas {
		page.ExpertiseAreas[i] = expertiseAreaCard(&areas[i])
	}

	return page, nil
}

func (u *publicSiteUsecase) loadProcedures(ctx context.Context, categorySlug string) (*dto.ProceduresPage, error) {
	db := u.db.WithContext(ctx)

	site, settings, err := u.siteInfo(db)
	if err != nil {
		return nil, err
	}

	categories, err := u.repos.TreatmentCategory.FindAllWithPublishedProcedures(db)
	if err != nil {
		u.log.Warnf("Failed to load treatment categories: %+v", err)
		return nil, err
	}

	page := &dto.ProceduresPage{
		Site: site,
		Meta: dto.PageMeta{
			Title:        pageTitle("Procedures", settings.SiteName),
			Description:  settings.DefaultMetaDescription,
			CanonicalURL: u.url("/procedures"),
		},
	}

	filter := entity.ProcedureFilter{}
	for i := range categories {
		category := &categories[i]
		if len(category.Procedures) > 0 {
			page.Categories = append(page.Categories, dto.Link{Name: category.Name, Slug: category.Slug})
		}
		if categorySlug != "" && category.Slug == categorySlug {
			page.ActiveCategory = &dto.Link{Name: category.Name, Slug: category.Slug}
			filter.TreatmentCategoryID = &category.ID
		}
	}

	if categorySlug != "" {
		if page.ActiveCategory == nil {
			return nil, ErrPageNotFound
		}
		page.Meta.Title = pageTitle(page.ActiveCategory.Name, settings.SiteName)
		page.Meta.CanonicalURL = u.url("/procedures?category=" + page.ActiveCategory.Slug)
	}

	procedures, err := u.repos.Procedure.FindPublished(db, filter)
	if err != nil {
		u.log.Warnf("Failed to load published procedures: %+v", err)
		return nil, err
	}
	page.Procedures = u.procedureCards(procedures)

	return page, nil
}

func (u *publicSiteUsecase) loadProcedure(ctx context.Context, slug string) (*dto.ProcedurePage, error) {
	db := u.db.WithContext(ctx)

	procedure, err := u.repos.Procedure.FindPublishedBySlug(db, slug)
	if err != nil {
		u.log.Warnf("Failed to load procedure: %+v", err)
		return nil, err
	}
	if procedure == nil {
		return nil, ErrPageNotFound
	}

	site, settings, err := u.siteInfo(db)
	if err != nil {
		return nil, err
	}

	related, err := u.repos.Procedure.FindRelated(db, procedure, relatedProcedures)
	if err != nil {
		u.log.Warnf("Failed to load related procedures: %+v", err)
		return nil, err
	}

	detail := dto.ProcedureDetail{
		ID:           procedure.ID.String(),
		Title:        procedure.Title,
		Slug:         procedure.Slug,
		Summary:      procedure.Summary,
		ContentHTML:  u.render(procedure.Content),
		ImageURL:     procedure.ImageURL,
		Duration:     procedure.Duration,
		RecoveryTime: procedure.RecoveryTime,
		PriceFrom:    formatPrice(procedure),
	}
	if category := procedure.TreatmentCategory; category != nil {
		detail.Category = &dto.Link{Name: category.Name, Slug: category.Slug}
		if area := category.ExpertiseArea; area != nil {
			detail.Area = &dto.Link{Name: area.Name, Slug: area.Slug}
		}
	}

	return &dto.ProcedurePage{
		Site: site,
		Meta: dto.PageMeta{
			Title:        pageTitle(firstNonEmpty(procedure.MetaTitle, procedure.Title), settings.SiteName),
			Description:  firstNonEmpty(procedure.MetaDescription, procedure.Summary, u.renderer.PlainText(procedure.Content, metaDescriptionSize)),
			CanonicalURL: u.url("/procedures/" + procedure.Slug),
		},
		Procedure: detail,
		FAQs:      u.faqItems(procedure.FAQs),
		Related:   u.procedureCards(related),
	}, nil
}

func (u *publicSiteUsecase) loadExpertise(ctx context.Context, slug string) (*dto.ExpertisePage, error) {
	db := u.db.WithContext(ctx)

	area, err := u.repos.ExpertiseArea.FindBySlugWithCatalog(db, slug)
	if err != nil {
		u.log.Warnf("Failed to load expertise area: %+v", err)
		return nil, err
	}
	if area == nil {
		return nil, ErrPageNotFound
	}

	site, settings, err := u.siteInfo(db)
	if err != nil {
		return nil, err
	}

	page := &dto.ExpertisePage{
		Site: site,
		Meta: dto.PageMeta{
			Title:        pageTitle(area.Name, settings.SiteName),
			Description:  firstNonEmpty(area.Description, settings.DefaultMetaDescription),
			CanonicalURL: u.url("/expertise/" + area.Slug),
		},
		Area:       expertiseAreaCard(area),
		Categories: make([]dto.CategorySection, len(area.TreatmentCategories)),
	}
	for i := range area.TreatmentCategories {
		category := &area.TreatmentCategories[i]
		page.Categories[i] = dto.CategorySection{
			Name:        category.Name,
			Slug:        category.Slug,
			Description: category.Description,
			Procedures:  u.procedureCards(category.Procedures),
		}
	}

	return page, nil
}

func (u *publicSiteUsecase) loadBlog(ctx context.Context, categorySlug string, pageNumber int) (*dto.BlogPage, error) {
	db := u.db.WithContext(ctx)

	site, settings, err := u.siteInfo(db)
	if err != nil {
		return nil, err
	}

	categories, _, err := u.repos.Category.FindAll(db, entity.CategoryFilter{
		Pagination: entity.Pagination{Page: 1, Limit: entity.MaxPageLimit},
	})
	if err != nil {
		u.log.Warnf("Failed to load blog categories: %+v", err)
		return nil, err
	}

	page := &dto.BlogPage{
		Site: site,
		Meta: dto.PageMeta{
			Title:        pageTitle("Blog", settings.SiteName),
			Description:  settings.DefaultMetaDescription,
			CanonicalURL: u.url("/blog"),
		},
		Categories: make([]dto.Link, len(categories)),
		Page:       pageNumber,
	}

	filter := entity.BlogPostFilter{Pagination: entity.Pagination{Page: pageNumber, Limit: BlogPageSize}}
	for i := range categories {
		page.Categories[i] = dto.Link{Name: categories[i].Name, Slug: categories[i].Slug}
		if categorySlug != "" && categories[i].Slug == categorySlug {
			page.ActiveCategory = &page.Categories[i]
			filter.CategoryID = &categories[i].ID
		}
	}
	if categorySlug != "" {
		if page.ActiveCategory == nil {
			return nil, ErrPageNotFound
		}
		page.Meta.Title = pageTitle(page.ActiveCategory.Name, settings.SiteName)
		page.Meta.CanonicalURL = u.url("/blog?category=" + page.ActiveCategory.Slug)
	}

	posts, total, err := u.repos.BlogPost.FindPublished(db, filter)
	if err != nil {
		u.log.Warnf("Failed to load published posts: %+v", err)
		return nil, err
	}

	page.TotalPages = int((total + BlogPageSize - 1) / BlogPageSize)
	if page.TotalPages == 0 {
		page.TotalPages = 1
	}
	if pageNumber > page.TotalPages {
		return nil, ErrPageNotFound
	}
	page.Posts = blogPostCards(posts)
	if pageNumber > 1 {
		page.PrevPage = pageNumber - 1
	}
	if pageNumber < page.TotalPages {
		page.NextPage = pageNumber + 1
	}

	return page, nil
}

func (u *publicSiteUsecase) loadPost(ctx context.Context, slug string) (*dto.PostPage, error) {
	db := u.db.WithContext(ctx)

	post, err := u.repos.BlogPost.FindPublishedBySlug(db, slug)
	if err != nil {
		u.log.Warnf("Failed to load blog post: %+v", err)
		return nil, err
	}
	if post == nil {
		return nil, ErrPageNotFound
	}

	site, settings, err := u.siteInfo(db)
	if err != nil {
		return nil, err
	}

	detail := dto.PostDetail{
		Title:         post.Title,
		Slug:          post.Slug,
		Excerpt:       post.Excerpt,
		ContentHTML:   u.render(post.Content),
		CoverImageURL: post.CoverImageURL,
		PublishedAt:   post.PublishedAt,
	}
	if post.Author != nil {
		detail.AuthorName = post.Author.FullName
	}
	if post.Category != nil {
		detail.Category = &dto.Link{Name: post.Category.Name, Slug: post.Category.Slug}
	}

	return &dto.PostPage{
		Site: site,
		Meta: dto.PageMeta{
			Title:        pageTitle(firstNonEmpty(post.MetaTitle, post.Title), settings.SiteName),
			Description:  firstNonEmpty(post.MetaDescription, post.Excerpt, u.renderer.PlainText(post.Content, metaDescriptionSize)),
			CanonicalURL: u.url("/blog/" + post.Slug),
		},
		Post: detail,
	}, nil
}

func (u *publicSiteUsecase) loadFAQ(ctx context.Context) (*dto.FAQPage, error) {
	db := u.db.WithContext(ctx)

	site, settings, err := u.siteInfo(db)
	if err != nil {
		return nil, err
	}

	general, err := u.repos.FAQ.FindPublished(db, nil)
	if err != nil {
		u.log.Warnf("Failed to load global faqs: %+v", err)
		return nil, err
	}

	procedureFAQs, err := u.repos.FAQ.FindPublishedForProcedures(db)
	if err != nil {
		u.log.Warnf("Failed to load procedure faqs: %+v", err)
		return nil, err
	}

	page := &dto.FAQPage{
		Site: site,
		Meta: dto.PageMeta{
			Title:        pageTitle("Frequently asked questions", settings.SiteName),
			Description:  settings.DefaultMetaDescription,
			CanonicalURL: u.url("/faq"),
		},
		General: u.faqItems(general),
	}

	// Rows arrive ordered by procedure, so consecutive FAQs share a group.
	for i := range procedureFAQs {
		faq := &procedureFAQs[i]
		if faq.Procedure == nil {
			continue
		}
		n := len(page.ByProcedure)
		if n == 0 || page.ByProcedure[n-1].Slug != faq.Procedure.Slug {
			page.ByProcedure = append(page.ByProcedure, dto.ProcedureFAQGroup{
				Title: faq.Procedure.Title,
				Slug:  faq.Procedure.Slug,
			})
			n++
		}
		page.ByProcedure[n-1].FAQs = append(page.ByProcedure[n-1].FAQs, u.faqItem(faq))
	}

	return page, nil
}

func (u *publicSiteUsecase) loadContact(ctx context.Context) (*dto.ContactPage, error) {
	db := u.db.WithContext(ctx)

	site, settings, err := u.siteInfo(db)
	if err != nil {
		return nil, err
	}

	procedures, err := u.repos.Procedure.FindPublished(db, entity.ProcedureFilter{})
	if err != nil {
		u.log.Warnf("Failed to load published procedures: %+v", err)
		return nil, err
	}

	page := &dto.ContactPage{
		Site: site,
		Meta: dto.PageMeta{
			Title:        pageTitle("Contact", settings.SiteName),
			Description:  settings.DefaultMetaDescription,
			CanonicalURL: u.url("/contact"),
		},
		Procedures: make([]dto.ProcedureOption, len(procedures)),
	}
	for i := range procedures {
		page.Procedures[i] = dto.ProcedureOption{ID: procedures[i].ID.String(), Title: procedures[i].Title}
	}

	return page, nil
}

func (u *publicSiteUsecase) loadSitemap(ctx context.Context) ([]dto.SitemapURL, error) {
	db := u.db.WithContext(ctx)

	urls := []dto.SitemapURL{
		{Loc: u.url("/")},
		{Loc: u.url("/procedures")},
		{Loc: u.url("/blog")},
		{Loc: u.url("/faq")},
		{Loc: u.url("/contact")},
	}

	procedures, err := u.repos.Procedure.FindPublished(db, entity.ProcedureFilter{})
	if err != nil {
		u.log.Warnf("Failed to load published procedures: %+v", err)
		return nil, err
	}
	for i := range procedures {
		urls = append(urls, dto.SitemapURL{Loc: u.url("/procedures/" + procedures[i].Slug), LastMod: timePtr(procedures[i].UpdatedAt)})
	}

	areas, err := u.repos.ExpertiseArea.FindAllWithCategories(db)
	if err != nil {
		u.log.Warnf("Failed to load expertise areas: %+v", err)
		return nil, err
	}
	for i := range areas {
		urls = append(urls, dto.SitemapURL{Loc: u.url("/expertise/" + areas[i].Slug), LastMod: timePtr(areas[i].UpdatedAt)})
	}

	for page := 1; ; page++ {
		posts, total, err := u.repos.BlogPost.FindPublished(db, entity.BlogPostFilter{
			Pagination: entity.Pagination{Page: page, Limit: entity.MaxPageLimit},
		})
		if err != nil {
			u.log.Warnf("Failed to load published posts: %+v", err)
			return nil, err
		}
		for i := range posts {
			urls = append(urls, dto.SitemapURL{Loc: u.url("/blog/" + posts[i].Slug), LastMod: timePtr(posts[i].UpdatedAt)})
		}
		if len(posts) == 0 || int64(page*entity.MaxPageLimit) >= total {
			break
		}
	}

	return urls, nil
}

func (u *publicSiteUsecase) siteInfo(db *gorm.DB) (dto.SiteInfo, *entity.SiteSettings, error) {
	settings, err := u.repos.Settings.Get(db)
	if err != nil {
		u.log.Warnf("Failed to load site settings: %+v", err)
		return dto.SiteInfo{}, nil, err
	}

	return dto.SiteInfo{
		SiteName:       settings.SiteName,
		Tagline:        settings.Tagline,
		ContactEmail:   settings.ContactEmail,
		ContactPhone:   settings.ContactPhone,
		WhatsAppNumber: settings.WhatsAppNumber,
		Address:        settings.Address,
		WorkingHours:   settings.WorkingHours,
		SocialLinks:    converter.SocialLinks(settings.SocialLinks),
	}, settings, nil
}

func (u *publicSiteUsecase) render(src string) template.HTML {
	html, err := u.renderer.ToHTML(src)
	if err != nil {
		u.log.Warnf("Failed to render markdown: %+v", err)
		return ""
	}
	return html
}

func (u *publicSiteUsecase) procedureCards(procedures []entity.Procedure) []dto.ProcedureCard {
	cards := make([]dto.ProcedureCard, len(procedures))
	for i := range procedures {
		p := &procedures[i]
		cards[i] = dto.ProcedureCard{
			Title:        p.Title,
			Slug:         p.Slug,
			Summary:      firstNonEmpty(p.Summary, u.renderer.PlainText(p.Content, metaDescriptionSize)),
			ImageURL:     p.ImageURL,
			Duration:     p.Duration,
			RecoveryTime: p.RecoveryTime,
			PriceFrom:    formatPrice(p),
		}
		if p.TreatmentCategory != nil {
			cards[i].Category = &dto.Link{Name: p.TreatmentCategory.Name, Slug: p.TreatmentCategory.Slug}
		}
	}
	return cards
}

func (u *publicSiteUsecase) faqItems(faqs []entity.FAQ) []dto.FAQItem {
	items := make([]dto.FAQItem, len(faqs))
	for i := range faqs {
		items[i] = u.faqItem(&faqs[i])
	}
	return items
}

func (u *publicSiteUsecase) faqItem(faq *entity.FAQ) dto.FAQItem {
	return dto.FAQItem{Question: faq.Question, AnswerHTML: u.render(faq.Answer)}
}

func (u *publicSiteUsecase) url(path string) string {
	return u.baseURL + path
}

func blogPostCards(posts []entity.BlogPost) []dto.BlogPostCard {
	cards := make([]dto.BlogPostCard, len(posts))
	for i := range posts {
		p := &posts[i]
		cards[i] = dto.BlogPostCard{
			Title:         p.Title,
			Slug:          p.Slug,
			Excerpt:       p.Excerpt,
			CoverImageURL: p.CoverImageURL,
			PublishedAt:   p.PublishedAt,
		}
		if p.Category != nil {
			cards[i].Category = &dto.Link{Name: p.Category.Name, Slug: p.Category.Slug}
		}
	}
	return cards
}

func expertiseAreaCard(area *entity.ExpertiseArea) dto.ExpertiseAreaCard {
	card := dto.ExpertiseAreaCard{
		Name:        area.Name,
		Slug:        area.Slug,
		Description: area.Description,
		Icon:        area.Icon,
		Categories:  make([]dto.Link, len(area.TreatmentCategories)),
	}
	for i := range area.TreatmentCategories {
		card.Categories[i] = dto.Link{Name: area.TreatmentCategories[i].Name, Slug: area.TreatmentCategories[i].Slug}
	}
	return card
}

func formatPrice(p *entity.Procedure) string {
	if p.PriceFrom == nil {
		return ""
	}
	return p.PriceFrom.StringFixed(2)
}

func pageTitle(title, siteName string) string {
	if title == "" || title == siteName {
		return siteName
	}
	return title + " | " + siteName
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// listKey keeps filtered list pages under their own "category" segment so
// no category slug can collide with the unfiltered page.
func listKey(page, categorySlug string, rest ...string) string {
	parts := []string{page}
	if categorySlug != "" {
		parts = append(parts, "category", categorySlug)
	}
	return service.PublicKey(append(parts, rest...)...)
}

func timePtr(t time.Time) *time.Time {
	return &t
}
