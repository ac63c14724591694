package entity

import "time"

// SiteSettingsID is the primary key of the single settings row.
const SiteSettingsID = 1

// SiteSettings holds site-wide contact details and SEO defaults.
type SiteSettings struct {
	ID                     int       `gorm:"primaryKey" json:"id"`
	SiteName               string    `gorm:"type:varchar(150);not null" json:"site_name"`
	Tagline                string    `gorm:"type:varchar(255)" json:"tagline"`
	ContactEmail           string    `gorm:"type:varchar(255)" json:"contact_email"`
	ContactPhone           string    `gorm:"type:varchar(50)" json:"contact_phone"`
	WhatsAppNumber         string    `gorm:"column:whatsapp_number;type:varchar(50)" json:"whatsapp_number"`
	Address                string    `gorm:"type:text" json:"address"`
	WorkingHours           string    `gorm:"type:varchar(255)" json:"working_hours"`
	SocialLinks            JSON      `gorm:"type:jsonb" json:"social_links"`
	DefaultMetaTitle       string    `gorm:"type:varchar(200)" json:"default_meta_title"`
	DefaultMetaDescription string    `gorm:"type:varchar(500)" json:"default_meta_description"`
	CreatedAt              time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SiteSettings) TableName() string {
	return "site_settings"
}

// DefaultSiteSettings is used when the settings row does not exist yet.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		ID:                     SiteSettingsID,
		SiteName:               "Clinic",
		Tagline:                "Care you can trust",
		WorkingHours:           "Mon-Fri 09:00-18:00",
		SocialLinks:            JSON{},
		DefaultMetaTitle:       "Clinic",
		DefaultMetaDescription: "Treatments, procedures and health articles from our clinic.",
	}
}
