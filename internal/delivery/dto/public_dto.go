package dto

import (
	"html/template"
	"time"
)

// View models for the server-rendered public pages. They are cached in Redis
// as JSON, so every field is exported and template.HTML only ever holds
// sanitized markup.

type SiteInfo struct {
	SiteName       string            `json:"site_name"`
	Tagline        string            `json:"tagline"`
	ContactEmail   string            `json:"contact_email"`
	ContactPhone   string            `json:"contact_phone"`
	WhatsAppNumber string            `json:"whatsapp_number"`
	Address        string            `json:"address"`
	WorkingHours   string            `json:"working_hours"`
	SocialLinks    map[string]string `json:"social_links"`
}

type PageMeta struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	CanonicalURL string `json:"canonical_url"`
}

type Link struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ProcedureCard struct {
	Title        string `json:"title"`
	Slug         string `json:"slug"`
	Summary      string `json:"summary"`
	ImageURL     string `json:"image_url"`
	Duration     string `json:"duration"`
	RecoveryTime string `json:"recovery_time"`
	PriceFrom    string `json:"price_from"`
	Category     *Link  `json:"category,omitempty"`
}

type ExpertiseAreaCard struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Categories  []Link `json:"categories"`
}

type BlogPostCard struct {
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       string     `json:"excerpt"`
	CoverImageURL string     `json:"cover_image_url"`
	Category      *Link      `json:"category,omitempty"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
}

type FAQItem struct {
	Question   string        `json:"question"`
	AnswerHTML template.HTML `json:"answer_html"`
}

type HomePage struct {
	Site               SiteInfo            `json:"site"`
	Meta               PageMeta            `json:"meta"`
	ExpertiseAreas     []ExpertiseAreaCard `json:"expertise_areas"`
	FeaturedProcedures []ProcedureCard     `json:"featured_procedures"`
	LatestPosts        []BlogPostCard      `json:"latest_posts"`
	FAQs               []FAQItem           `json:"faqs"`
}

type ProceduresPage struct {
	Site           SiteInfo        `json:"site"`
	Meta           PageMeta        `json:"meta"`
	Categories     []Link          `json:"categories"`
	ActiveCategory *Link           `json:"active_category,omitempty"`
	Procedures     []ProcedureCard `json:"procedures"`
}

type ProcedureDetail struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Slug         string        `json:"slug"`
	Summary      string        `json:"summary"`
	ContentHTML  template.HTML `json:"content_html"`
	ImageURL     string        `json:"image_url"`
	Duration     string        `json:"duration"`
	RecoveryTime string        `json:"recovery_time"`
	PriceFrom    string        `json:"price_from"`
	Category     *Link         `json:"category,omitempty"`
	Area         *Link         `json:"area,omitempty"`
}

type ProcedurePage struct {
	Site      SiteInfo        `json:"site"`
	Meta      PageMeta        `json:"meta"`
	Procedure ProcedureDetail `json:"procedure"`
	FAQs      []FAQItem       `json:"faqs"`
	Related   []ProcedureCard `json:"related"`
}

type CategorySection struct {
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Procedures  []ProcedureCard `json:"procedures"`
}

type ExpertisePage struct {
	Site       SiteInfo          `json:"site"`
	Meta       PageMeta          `json:"meta"`
	Area       ExpertiseAreaCard `json:"area"`
	Categories []CategorySection `json:"categories_with_procedures"`
}

type BlogPage struct {
	Site           SiteInfo       `json:"site"`
	Meta           PageMeta       `json:"meta"`
	Categories     []Link         `json:"categories"`
	ActiveCategory *Link          `json:"active_category,omitempty"`
	Posts          []BlogPostCard `json:"posts"`
	Page           int            `json:"page"`
	TotalPages     int            `json:"total_pages"`
	PrevPage       int            `json:"prev_page"`
	NextPage       int            `json:"next_page"`
}

type PostDetail struct {
	Title         string        `json:"title"`
	Slug          string        `json:"slug"`
	Excerpt       string        `json:"excerpt"`
	ContentHTML   template.HTML `json:"content_html"`
	CoverImageURL string        `json:"cover_image_url"`
	AuthorName    string        `json:"author_name"`
	Category      *Link         `json:"category,omitempty"`
	PublishedAt   *time.Time    `json:"published_at,omitempty"`
}

type PostPage struct {
	Site SiteInfo   `json:"site"`
	Meta PageMeta   `json:"meta"`
	Post PostDetail `json:"post"`
}

type ProcedureFAQGroup struct {
	Title string    `json:"title"`
	Slug  string    `json:"slug"`
	FAQs  []FAQItem `json:"faqs"`
}

type FAQPage struct {
	Site        SiteInfo            `json:"site"`
	Meta        PageMeta            `json:"meta"`
	General     []FAQItem           `json:"general"`
	ByProcedure []ProcedureFAQGroup `json:"by_procedure"`
}

type ProcedureOption struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ContactPage carries the cached part of /contact. Form state is added by
// the handler per request.
type ContactPage struct {
	Site       SiteInfo          `json:"site"`
	Meta       PageMeta          `json:"meta"`
	Procedures []ProcedureOption `json:"procedures"`
}

type SitemapURL struct {
	Loc     string     `json:"loc"`
	LastMod *time.Time `json:"lastmod,omitempty"`
}
