package converter

import (
	"clinic-cms/internal/delivery/dto"
	"clinic-cms/internal/domain/entity"
)

func CategoryToResponse(category *entity.Category) *dto.CategoryResponse {
	if category == nil {
		return nil
	}

	return &dto.CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

func CategoriesToResponses(categories []entity.Category) []dto.CategoryResponse {
	responses := make([]dto.CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = *CategoryToResponse(&categories[i])
	}
	return responses
}

func BlogPostToResponse(post *entity.BlogPost) *dto.BlogPostResponse {
	if post == nil {
		return nil
	}

	response := &dto.BlogPostResponse{
		ID:              post.ID,
		CategoryID:      post.CategoryID,
		AuthorID:        post.AuthorID,
		Title:           post.Title,
		Slug:            post.Slug,
		Excerpt:         post.Excerpt,
		Content:         post.Content,
		CoverImageURL:   post.CoverImageURL,
		Status:          string(post.Status),
		MetaTitle:       post.MetaTitle,
		MetaDescription: post.MetaDescription,
		PublishedAt:     post.PublishedAt,
		CreatedAt:       post.CreatedAt,
		UpdatedAt:       post.UpdatedAt,
	}

	if post.Category != nil {
		response.Category = &dto.CategorySummary{
			ID:   post.Category.ID,
			Name: post.Category.Name,
			Slug: post.Category.Slug,
		}
	}
	if post.Author != nil {
		response.AuthorName = post.Author.FullName
	}

	return response
}

func BlogPostsToResponses(posts []entity.BlogPost) []dto.BlogPostResponse {
	responses := make([]dto.BlogPostResponse, len(posts))
	for i := range posts {
		responses[i] = *BlogPostToResponse(&posts[i])
	}
	return responses
}
