package handler

import (
	"errors"
	"net/http"

	"clinic-cms/internal/delivery/dto"
	"clinic-cms/internal/usecase"
	"clinic-cms/pkg/response"
	"clinic-cms/pkg/validator"
)

// CategoryHandler manages blog categories.
type CategoryHandler struct {
	categoryUsecase usecase.CategoryUsecase
	validator       *validator.CustomValidator
}

func NewCategoryHandler(categoryUsecase usecase.CategoryUsecase, validator *validator.CustomValidator) *CategoryHandler {
	return &CategoryHandler{
		categoryUsecase: categoryUsecase,
		validator:       validator,
	}
}

// @Summary Create a blog category
// @Tags Categories
// @Security CookieAuth
// @Accept json
// @Produce json
// @Param request body dto.CategoryRequest true "Category Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/categories [post]
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	category, err := h.categoryUsecase.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create category")
		return
	}

	response.Success(w, http.StatusCreated, "Category created successfully", category)
}

// @Summary List blog categories
// @Tags Categories
// @Security CookieAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Name search"
// @Success 200 {object} response.Response
// @Router /admin/categories [get]
func (h *CategoryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	query := listQuery(r)
	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	categories, total, err := h.categoryUsecase.GetAll(r.Context(), query)
	if err != nil {
		response.InternalServerError(w, "Failed to get categories")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Categories retrieved successfully", categories, listMeta(query, total))
}

// @Summary Get blog category by ID
// @Tags Categories
// @Security CookieAuth
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/categories/{id} [get]
func (h *CategoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid category ID", nil)
		return
	}

	category, err := h.categoryUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to get category")
		return
	}

	response.Success(w, http.StatusOK, "Category retrieved successfully", category)
}

// @Summary Update a blog category
// @Tags Categories
// @Security CookieAuth
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body dto.CategoryRequest true "Category Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/categories/{id} [put]
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid category ID", nil)
		return
	}

	var req dto.CategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	category, err := h.categoryUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update category")
		return
	}

	response.Success(w, http.StatusOK, "Category updated successfully", category)
}

// @Summary Delete a blog category
// @Tags Categories
// @Security CookieAuth
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/categories/{id} [delete]
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid category ID", nil)
		return
	}

	if err := h.categoryUsecase.Delete(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete category")
		return
	}

	response.Success(w, http.StatusOK, "Category deleted successfully", nil)
}

func (h *CategoryHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrCategoryNotFound):
		response.NotFound(w, "Category not found")
	case errors.Is(err, usecase.ErrCategoryInUse):
		response.Conflict(w, "Category still has blog posts")
	case errors.Is(err, usecase.ErrSlugAlreadyExists):
		response.Conflict(w, "Slug already exists")
	case errors.Is(err, usecase.ErrInvalidSlug):
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
