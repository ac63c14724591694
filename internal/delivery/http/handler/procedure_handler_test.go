package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-cms/internal/delivery/dto"
	"clinic-cms/internal/usecase"
	"clinic-cms/pkg/response"
	"clinic-cms/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProcedureHandler() (*ProcedureHandler, *MockProcedureUsecase) {
	uc := new(MockProcedureUsecase)
	return NewProcedureHandler(uc, validator.NewValidator()), uc
}

func withID(req *http.Request, id string) *http.Request {
	return mux.SetURLVars(req, map[string]string{"id": id})
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestProcedureHandler_Create_Success(t *testing.T) {
	h, uc := newProcedureHandler()

	id := uuid.New()
	uc.On("Create", mock.Anything, mock.MatchedBy(func(req *dto.ProcedureRequest) bool {
		return req.Title == "Botox" && req.Status == "published"
	})).Return(&dto.ProcedureResponse{ID: id, Title: "Botox", Slug: "botox", Status: "published"}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/procedures", bytes.NewBufferString(`{"title":"Botox","status":"published"}`))

	h.Create(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), id.String())
	uc.AssertExpectations(t)
}

func TestProcedureHandler_Create_InvalidBody(t *testing.T) {
	h, uc := newProcedureHandler()

	w := httptest.NewRecorder()
	h.Create(w, httptest.NewRequest(http.MethodPost, "/api/admin/procedures", bytes.NewBufferString(`{"title":`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", decodeResponse(t, w).Message)
	uc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProcedureHandler_Create_ValidationError(t *testing.T) {
	h, uc := newProcedureHandler()

	w := httptest.NewRecorder()
	h.Create(w, httptest.NewRequest(http.MethodPost, "/api/admin/procedures", bytes.NewBufferString(`{"status":"live","slug":"Not A Slug"}`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeResponse(t, w)
	assert.Equal(t, "Validation failed", body.Message)
	fields, ok := body.Error.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "status")
	assert.Contains(t, fields, "slug")
	uc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProcedureHandler_Create_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"slug taken", usecase.ErrSlugAlreadyExists, http.StatusConflict},
		{"slug not derivable", usecase.ErrInvalidSlug, http.StatusBadRequest},
		{"unknown category", usecase.ErrInvalidTreatmentCategory, http.StatusBadRequest},
		{"unexpected", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, uc := newProcedureHandler()
			uc.On("Create", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			h.Create(w, httptest.NewRequest(http.MethodPost, "/api/admin/procedures", bytes.NewBufferString(`{"title":"Botox","status":"draft"}`)))

			assert.Equal(t, tt.status, w.Code)
			assert.False(t, decodeResponse(t, w).Success)
		})
	}
}

func TestProcedureHandler_GetAll(t *testing.T) {
	h, uc := newProcedureHandler()

	categoryID := uuid.New()
	uc.On("GetAll", mock.Anything, mock.MatchedBy(func(q dto.ProcedureListQuery) bool {
		return q.Page == 2 && q.Limit == 20 && q.Status == "draft" &&
			q.CategoryID != nil && *q.CategoryID == categoryID &&
			q.Featured != nil && *q.Featured
	})).Return([]dto.ProcedureResponse{{ID: uuid.New(), Title: "Botox"}}, int64(21), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/procedures?page=2&status=draft&featured=true&category_id="+categoryID.String(), nil)

	h.GetAll(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeResponse(t, w)
	require.NotNil(t, body.Meta)
	assert.Equal(t, 2, body.Meta.Page)
	assert.Equal(t, int64(21), body.Meta.Total)
	assert.Equal(t, 2, body.Meta.TotalPages)
	uc.AssertExpectations(t)
}

func TestProcedureHandler_GetAll_InvalidFilters(t *testing.T) {
	h, uc := newProcedureHandler()

	for _, target := range []string{
		"/api/admin/procedures?category_id=nope",
		"/api/admin/procedures?featured=maybe",
		"/api/admin/procedures?status=live",
	} {
		w := httptest.NewRecorder()
		h.GetAll(w, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
	uc.AssertNotCalled(t, "GetAll", mock.Anything, mock.Anything)
}

func TestProcedureHandler_GetByID(t *testing.T) {
	h, uc := newProcedureHandler()

	found := uuid.New()
	missing := uuid.New()
	uc.On("GetByID", mock.Anything, found).Return(&dto.ProcedureResponse{ID: found, Title: "Botox"}, nil)
	uc.On("GetByID", mock.Anything, missing).Return(nil, usecase.ErrProcedureNotFound)

	w := httptest.NewRecorder()
	h.GetByID(w, withID(httptest.NewRequest(http.MethodGet, "/", nil), found.String()))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.GetByID(w, withID(httptest.NewRequest(http.MethodGet, "/", nil), missing.String()))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	h.GetByID(w, withID(httptest.NewRequest(http.MethodGet, "/", nil), "123"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProcedureHandler_Update(t *testing.T) {
	h, uc := newProcedureHandler()

	id := uuid.New()
	uc.On("Update", mock.Anything, id, mock.Anything).Return(&dto.ProcedureResponse{ID: id, Title: "Lip filler", Slug: "lip-filler"}, nil)

	w := httptest.NewRecorder()
	req := withID(httptest.NewRequest(http.MethodPut, "/", bytes.NewBufferString(`{"title":"Lip filler","status":"published"}`)), id.String())
	h.Update(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "lip-filler")
	uc.AssertExpectations(t)
}

func TestProcedureHandler_Delete(t *testing.T) {
	h, uc := newProcedureHandler()

	id := uuid.New()
	missing := uuid.New()
	uc.On("Delete", mock.Anything, id).Return(nil)
	uc.On("Delete", mock.Anything, missing).Return(usecase.ErrProcedureNotFound)

	w := httptest.NewRecorder()
	h.Delete(w, withID(httptest.NewRequest(http.MethodDelete, "/", nil), id.String()))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.Delete(w, withID(httptest.NewRequest(http.MethodDelete, "/", nil), missing.String()))
	assert.Equal(t, http.StatusNotFound, w.Code)

	uc.AssertExpectations(t)
}
