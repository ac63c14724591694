package handler

import (
	"errors"
	"net/http"

	"clinic-cms/internal/service"
	"clinic-cms/internal/usecase"
	"clinic-cms/pkg/response"

	"github.com/gorilla/mux"
)

type ScriptHandler struct {
	scriptUsecase usecase.ScriptUsecase
}

func NewScriptHandler(scriptUsecase usecase.ScriptUsecase) *ScriptHandler {
	return &ScriptHandler{
		scriptUsecase: scriptUsecase,
	}
}

// List
// @Summary List runnable maintenance scripts
// @Tags Scripts
// @Security CookieAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/scripts [get]
func (h *ScriptHandler) List(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Scripts retrieved successfully", h.scriptUsecase.List(r.Context()))
}

// Run executes an allow-listed script. Failed and timed out runs still
// return the captured output.
// @Summary Run a maintenance script
// @Tags Scripts
// @Security CookieAuth
// @Produce json
// @Param name path string true "Script name"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 500 {object} response.Response
// @Failure 504 {object} response.Response
// @Router /admin/scripts/{name}/run [post]
func (h *ScriptHandler) Run(w http.ResponseWriter, r *http.Request) {
	result, err := h.scriptUsecase.Run(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		switch {
		case errors.Is(err, service.ErrScriptNotFound):
			response.NotFound(w, "Script not found")
		case errors.Is(err, service.ErrScriptBusy):
			response.Conflict(w, "Script is already running")
		case errors.Is(err, service.ErrScriptTimeout):
			response.Error(w, http.StatusGatewayTimeout, "Script timed out", result)
		case errors.Is(err, service.ErrScriptFailed):
			response.Error(w, http.StatusInternalServerError, "Script exited with a non-zero status", result)
		case errors.Is(err, service.ErrScriptStart):
			response.Error(w, http.StatusInternalServerError, "Script could not be started", result)
		default:
			response.InternalServerError(w, "Failed to run script")
		}
		return
	}

	response.Success(w, http.StatusOK, "Script finished successfully", result)
}
