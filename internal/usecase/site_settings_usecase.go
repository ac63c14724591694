package usecase

import (
	"context"

	"clinic-cms/internal/converter"
	"clinic-cms/internal/delivery/dto"
	"clinic-cms/internal/domain/entity"
	"clinic-cms/internal/domain/repository"
	"clinic-cms/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SiteSettingsUsecase interface {
	Get(ctx context.Context) (*dto.SiteSettingsResponse, error)
	Update(ctx context.Context, req *dto.SiteSettingsRequest) (*dto.SiteSettingsResponse, error)
}

type siteSettingsUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	settingsRepo repository.SiteSettingsRepository
	auditService service.AuditService
	cache        CacheInvalidator
}

func NewSiteSettingsUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	settingsRepo repository.SiteSettingsRepository,
	auditService service.AuditService,
	cache CacheInvalidator,
) SiteSettingsUsecase {
	return &siteSettingsUsecase{
		db:           db,
		log:          log,
		settingsRepo: settingsRepo,
		auditService: auditService,
		cache:        cache,
	}
}

// Get creates the default row on first use.
func (u *siteSettingsUsecase) Get(ctx context.Context) (*dto.SiteSettingsResponse, error) {
	settings, err := u.settingsRepo.Get(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to load site settings: %+v", err)
		return nil, err
	}

	return converter.SiteSettingsToResponse(settings), nil
}

func (u *siteSettingsUsecase) Update(ctx context.Context, req *dto.SiteSettingsRequest) (*dto.SiteSettingsResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	settings, err := u.settingsRepo.Get(tx)
	if err != nil {
		u.log.Warnf("Failed to load site settings: %+v", err)
		return nil, err
	}

	oldValue := converter.SiteSettingsToResponse(settings)

	settings.SiteName = req.SiteName
	settings.Tagline = req.Tagline
	settings.ContactEmail = req.ContactEmail
	settings.ContactPhone = req.ContactPhone
	settings.WhatsAppNumber = req.WhatsAppNumber
	settings.Address = req.Address
	settings.WorkingHours = req.WorkingHours
	settings.SocialLinks = converter.SocialLinksToJSON(req.SocialLinks)
	settings.DefaultMetaTitle = req.DefaultMetaTitle
	settings.DefaultMetaDescription = req.DefaultMetaDescription

	if err := u.settingsRepo.Save(tx, settings); err != nil {
		u.log.Warnf("Failed to save site settings: %+v", err)
		return nil, err
	}

	newValue := converter.SiteSettingsToResponse(settings)
	if err := u.auditService.LogUpdate(ctx, tx, actorID(ctx), entity.AuditActionSettingsUpdate, "site_settings", "1", oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	purgePublicCache(ctx, u.cache, u.log)
	return newValue, nil
}
