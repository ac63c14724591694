package handler

import (
	"errors"
	"net/http"
	"strings"

	"clinic-cms/internal/delivery/dto"
	"clinic-cms/internal/usecase"
	"clinic-cms/pkg/response"
	"clinic-cms/pkg/validator"
)

type BlogPostHandler struct {
	postUsecase usecase.BlogPostUsecase
	validator   *validator.CustomValidator
}

func NewBlogPostHandler(postUsecase usecase.BlogPostUsecase, validator *validator.CustomValidator) *BlogPostHandler {
	return &BlogPostHandler{
		postUsecase: postUsecase,
		validator:   validator,
	}
}

// Create handles blog post creation. The signed-in user becomes the author.
// @Summary Create a blog post
// @Tags Blog Posts
// @Security CookieAuth
// @Accept json
// @Produce json
// @Param request body dto.BlogPostRequest true "Blog Post Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/blog-posts [post]
func (h *BlogPostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.BlogPostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	post, err := h.postUsecase.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create blog post")
		return
	}

	response.Success(w, http.StatusCreated, "Blog post created successfully", post)
}

// GetAll handles listing blog posts
// @Summary List blog posts
// @Tags Blog Posts
// @Security CookieAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Title search"
// @Param status query string false "draft, published or archived"
// @Param category_id query string false "Category ID"
// @Success 200 {object} response.Response
// @Router /admin/blog-posts [get]
func (h *BlogPostHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	categoryID, err := queryUUID(r, "category_id")
	if err != nil {
		response.BadRequest(w, "Invalid category_id")
		return
	}

	query := dto.BlogPostListQuery{
		ListQuery:  listQuery(r),
		Status:     strings.TrimSpace(r.URL.Query().Get("status")),
		CategoryID: categoryID,
	}
	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	posts, total, err := h.postUsecase.GetAll(r.Context(), query)
	if err != nil {
		response.InternalServerError(w, "Failed to get blog posts")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Blog posts retrieved successfully", posts, listMeta(query.ListQuery, total))
}

// GetByID handles getting a blog post by ID
// @Summary Get blog post by ID
// @Tags Blog Posts
// @Security CookieAuth
// @Produce json
// @Param id path string true "Blog post ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/blog-posts/{id} [get]
func (h *BlogPostHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid blog post ID", nil)
		return
	}

	post, err := h.postUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to get blog post")
		return
	}

	response.Success(w, http.StatusOK, "Blog post retrieved successfully", post)
}

// Update handles blog post update
// @Summary Update a blog post
// @Tags Blog Posts
// @Security CookieAuth
// @Accept json
// @Produce json
// @Param id path string true "Blog post ID"
// @Param request body dto.BlogPostRequest true "Blog Post Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/blog-posts/{id} [put]
func (h *BlogPostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid blog post ID", nil)
		return
	}

	var req dto.BlogPostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	post, err := h.postUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update blog post")
		return
	}

	response.Success(w, http.StatusOK, "Blog post updated successfully", post)
}

// Delete handles blog post deletion
// @Summary Delete a blog post
// @Tags Blog Posts
// @Security CookieAuth
// @Produce json
// @Param id path string true "Blog post ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/blog-posts/{id} [delete]
func (h *BlogPostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid blog post ID", nil)
		return
	}

	if err := h.postUsecase.Delete(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete blog post")
		return
	}

	response.Success(w, http.StatusOK, "Blog post deleted successfully", nil)
}

func (h *BlogPostHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrBlogPostNotFound):
		response.NotFound(w, "Blog post not found")
	case errors.Is(err, usecase.ErrSlugAlreadyExists):
		response.Conflict(w, "Slug already exists")
	case errors.Is(err, usecase.ErrInvalidSlug):
		response.BadRequest(w, err.Error())
	case errors.Is(err, usecase.ErrInvalidCategory):
		response.BadRequest(w, "Category does not exist")
	default:
		response.InternalServerError(w, fallback)
	}
}
