package dto

import "time"

type SiteSettingsRequest struct {
	SiteName               string            `json:"site_name" validate:"required,min=2,max=150"`
	Tagline                string            `json:"tagline" validate:"max=255"`
	ContactEmail           string            `json:"contact_email" validate:"omitempty,email,max=255"`
	ContactPhone           string            `json:"contact_phone" validate:"max=50"`
	WhatsAppNumber         string            `json:"whatsapp_number" validate:"max=50"`
	Address                string            `json:"address" validate:"max=1000"`
	WorkingHours           string            `json:"working_hours" validate:"max=255"`
	SocialLinks            map[string]string `json:"social_links" validate:"max=20,dive,keys,min=1,max=50,endkeys,url"`
	DefaultMetaTitle       string            `json:"default_meta_title" validate:"max=200"`
	DefaultMetaDescription string            `json:"default_meta_description" validate:"max=500"`
}

type SiteSettingsResponse struct {
	SiteName               string            `json:"site_name"`
	Tagline                string            `json:"tagline"`
	ContactEmail           string            `json:"contact_email"`
	ContactPhone           string            `json:"contact_phone"`
	WhatsAppNumber         string            `json:"whatsapp_number"`
	Address                string            `json:"address"`
	WorkingHours           string            `json:"working_hours"`
	SocialLinks            map[string]string `json:"social_links"`
	DefaultMetaTitle       string            `json:"default_meta_title"`
	DefaultMetaDescription string            `json:"default_meta_description"`
	UpdatedAt              time.Time         `json:"updated_at"`
}
