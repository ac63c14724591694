package converter

import (
	"fmt"

	"clinic-cms/internal/delivery/dto"
	"clinic-cms/internal/domain/entity"
)

func SiteSettingsToResponse(settings *entity.SiteSettings) *dto.SiteSettingsResponse {
	if settings == nil {
		return nil
	}

	return &dto.SiteSettingsResponse{
		SiteName:               settings.SiteName,
		Tagline:                settings.Tagline,
		ContactEmail:           settings.ContactEmail,
		ContactPhone:           settings.ContactPhone,
		WhatsAppNumber:         settings.WhatsAppNumber,
		Address:                settings.Address,
		WorkingHours:           settings.WorkingHours,
		SocialLinks:            SocialLinks(settings.SocialLinks),
		DefaultMetaTitle:       settings.DefaultMetaTitle,
		DefaultMetaDescription: settings.DefaultMetaDescription,
		UpdatedAt:              settings.UpdatedAt,
	}
}

// SocialLinks flattens the stored JSON object into network -> URL.
func SocialLinks(links entity.JSON) map[string]string {
	out := make(map[string]string, len(links))
	for network, url := range links {
		if s, ok := url.(string); ok {
			out[network] = s
		} else if url != nil {
			out[network] = fmt.Sprint(url)
		}
	}
	return out
}

func SocialLinksToJSON(links map[string]string) entity.JSON {
	out := make(entity.JSON, len(links))
	for network, url := range links {
		out[network] = url
	}
	return out
}
