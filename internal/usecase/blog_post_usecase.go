package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-cms/internal/converter"
	"clinic-cms/internal/delivery/dto"
	"clinic-cms/internal/domain/entity"
	"clinic-cms/internal/domain/repository"
	"clinic-cms/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrBlogPostNotFound = errors.New("blog post not found")
	ErrInvalidCategory  = errors.New("category does not exist")
)

type BlogPostUsecase interface {
	Create(ctx context.Context, req *dto.BlogPostRequest) (*dto.BlogPostResponse, error)
	GetAll(ctx context.Context, query dto.BlogPostListQuery) ([]dto.BlogPostResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.BlogPostResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.BlogPostRequest) (*dto.BlogPostResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type blogPostUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	postRepo     repository.BlogPostRepository
	categoryRepo repository.CategoryRepository
	auditService service.AuditService
	cache        CacheInvalidator
}

func NewBlogPostUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	postRepo repository.BlogPostRepository,
	categoryRepo repository.CategoryRepository,
	auditService service.AuditService,
	cache CacheInvalidator,
) BlogPostUsecase {
	return &blogPostUsecase{
		db:           db,
		log:          log,
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		auditService: auditService,
		cache:        cache,
	}
}

// Create records the signed-in user as the author.
func (u *blogPostUsecase) Create(ctx context.Context, req *dto.BlogPostRequest) (*dto.BlogPostResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	category, err := u.loadCategory(tx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	slug, err := uniqueSlug(tx, req.Slug, req.Title, nil, u.postRepo.SlugExists)
	if err != nil {
		return nil, err
	}

	post := &entity.BlogPost{Slug: slug, AuthorID: actorID(ctx)}
	applyBlogPostRequest(post, req)
	post.StampPublished(time.Now())

	if err := u.postRepo.Create(tx, post); err != nil {
		if isDuplicateKeyError(err, "slug") {
			return nil, ErrSlugAlreadyExists
		}
		if isForeignKeyError(err, "category") {
			return nil, ErrInvalidCategory
		}
		u.log.Warnf("Failed to create blog post: %+v", err)
		return nil, err
	}
	post.Category = category

	resp := converter.BlogPostToResponse(post)
	if err := u.auditService.LogCreate(ctx, tx, actorID(ctx), entity.AuditActionBlogPostCreate, "blog_post", post.ID.String(), resp); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	purgePublicCache(ctx, u.cache, u.log)
	return resp, nil
}

func (u *blogPostUsecase) GetAll(ctx context.Context, query dto.BlogPostListQuery) ([]dto.BlogPostResponse, int64, error) {
	posts, total, err := u.postRepo.FindAll(u.db.WithContext(ctx), converter.BlogPostFilterFromQuery(query))
	if err != nil {
		u.log.Warnf("Failed to find blog posts: %+v", err)
		return nil, 0, err
	}

	return converter.BlogPostsToResponses(posts), total, nil
}

func (u *blogPostUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.BlogPostResponse, error) {
	post, err := u.postRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find blog post by ID: %+v", err)
		return nil, err
	}
	if post == nil {
		return nil, ErrBlogPostNotFound
	}

	return converter.BlogPostToResponse(post), nil
}

func (u *blogPostUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.BlogPostRequest) (*dto.BlogPostResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	post, err := u.postRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find blog post by ID: %+v", err)
		return nil, err
	}
	if post == nil {
		return nil, ErrBlogPostNotFound
	}

	oldValue := converter.BlogPostToResponse(post)

	category, err := u.loadCategory(tx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	slug, err := uniqueSlug(tx, req.Slug, req.Title, &post.ID, u.postRepo.SlugExists)
	if err != nil {
		return nil, err
	}

	post.Slug = slug
	applyBlogPostRequest(post, req)
	post.StampPublished(time.Now())

	if err := u.postRepo.Update(tx, post); err != nil {
		if isDuplicateKeyError(err, "slug") {
			return nil, ErrSlugAlreadyExists
		}
		if isForeignKeyError(err, "category") {
			return nil, ErrInvalidCategory
		}
		u.log.Warnf("Failed to update blog post: %+v", err)
		return nil, err
	}
	post.Category = category

	newValue := converter.BlogPostToResponse(post)
	if err := u.auditService.LogUpdate(ctx, tx, actorID(ctx), entity.AuditActionBlogPostUpdate, "blog_post", post.ID.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	purgePublicCache(ctx, u.cache, u.log)
	return newValue, nil
}

func (u *blogPostUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	post, err := u.postRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find blog post by ID: %+v", err)
		return err
	}
	if post == nil {
		return ErrBlogPostNotFound
	}

	if _, err := u.postRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete blog post: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, actorID(ctx), entity.AuditActionBlogPostDelete, "blog_post", id.String(), converter.BlogPostToResponse(post)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	purgePublicCache(ctx, u.cache, u.log)
	return nil
}

func (u *blogPostUsecase) loadCategory(db *gorm.DB, id *uuid.UUID) (*entity.Category, error) {
	if id == nil {
		return nil, nil
	}
	category, err := u.categoryRepo.FindByID(db, *id)
	if err != nil {
		u.log.Warnf("Failed to find category by ID: %+v", err)
		return nil, err
	}
	if category == nil {
		return nil, ErrInvalidCategory
	}
	return category, nil
}

func applyBlogPostRequest(post *entity.BlogPost, req *dto.BlogPostRequest) {
	post.CategoryID = req.CategoryID
	post.Title = req.Title
	post.Excerpt = req.Excerpt
	post.Content = req.Content
	post.CoverImageURL = req.CoverImageURL
	post.Status = entity.ContentStatus(req.Status)
	post.MetaTitle = req.MetaTitle
	post.MetaDescription = req.MetaDescription
}
