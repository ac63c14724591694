package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"clinic-cms/internal/delivery/dto"
	"clinic-cms/internal/domain/entity"
	"clinic-cms/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 1 << 20

var errInvalidQuery = errors.New("invalid query parameter")

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

func parseID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)["id"])
}

// listQuery reads page, limit and search. Page and limit are normalized the
// same way the repositories normalize them so the response meta matches.
func listQuery(r *http.Request) dto.ListQuery {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	p := entity.Pagination{Page: page, Limit: limit}.Normalize()
	return dto.ListQuery{
		Page:   p.Page,
		Limit:  p.Limit,
		Search: strings.TrimSpace(q.Get("search")),
	}
}

func queryUUID(r *http.Request, key string) (*uuid.UUID, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, errInvalidQuery
	}
	return &id, nil
}

func queryBool(r *http.Request, key string) (*bool, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil, errInvalidQuery
	}
	return &b, nil
}

func listMeta(q dto.ListQuery, total int64) *response.Meta {
	return response.NewMeta(q.Page, q.Limit, total)
}
