// HTTP-хендлеры CRUD проектов
package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	serr "github.com/IvanChernomyrdin/projectkeeper/internal/shared/errors"
	"github.com/IvanChernomyrdin/projectkeeper/internal/shared/models"
)

// projectID достаёт {id} из пути. Не число или <= 0 — ErrInvalidProjectID.
func projectID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(chi.URLParam(r, "id")), 10, 64)
	if err != nil || id <= 0 {
		return 0, serr.ErrInvalidProjectID
	}
	return id, nil
}

// ListProjects возвращает проекты с фильтрами, новые первыми.
//
// @Summary      List projects
// @Description  status=all or empty disables the status filter; search matches name or assignee, case-insensitive.
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Exact status or all"
// @Param        search query string false "Substring of name or assigned_team_member"
// @Success      200 {array}  models.Project
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /projects [get]
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	list, err := h.Svc.Projects.List(r.Context(), models.ProjectFilter{
		Status: q.Get("status"),
		Search: q.Get("search"),
	})
	if err != nil {
		h.writeServiceError(w, r, "list projects", err)
		return
	}

	if list == nil {
		list = []models.Project{}
	}
	WriteJSON(w, http.StatusOK, list)
}

// GetProject возвращает проект по id.
//
// @Summary      Get project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Project ID"
// @Success      200 {object} models.Project
// @Failure      400 {object} ErrorResponse "Invalid project id"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      404 {object} ErrorResponse "Not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /projects/{id} [get]
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := projectID(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err)
		return
	}

	p, found, err := h.Svc.Projects.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, "get project", err)
		return
	}
	if !found {
		WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		return
	}

	WriteJSON(w, http.StatusOK, p)
}

// CreateProject создаёт проект. Все пять полей обязательны.
//
// @Summary      Create project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.ProjectInput true "Project fields"
// @Success      201 {object} models.Project
// @Failure      400 {object} ErrorResponse "Invalid input or bad JSON"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /projects [post]
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var in models.ProjectInput
	if err := decodeJSON(w, r, &in); err != nil {
		WriteError(w, http.StatusBadRequest, err)
		return
	}

	p, err := h.Svc.Projects.Create(r.Context(), in)
	if err != nil {
		h.writeServiceError(w, r, "create project", err)
		return
	}

	WriteJSON(w, http.StatusCreated, p)
}

// UpdateProject полностью заменяет изменяемые поля проекта.
//
// @Summary      Replace project
// @Description  Full replacement: every field is required, as on create.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                 true "Project ID"
// @Param        request body models.ProjectInput true "Project fields"
// @Success      200 {object} models.Project
// @Failure      400 {object} ErrorResponse "Invalid input, bad JSON or invalid id"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      404 {object} ErrorResponse "Not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /projects/{id} [put]
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := projectID(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err)
		return
	}

	var in models.ProjectInput
	if err := decodeJSON(w, r, &in); err != nil {
		WriteError(w, http.StatusBadRequest, err)
		return
	}

	p, found, err := h.Svc.Projects.Update(r.Context(), id, in)
	if err != nil {
		h.writeServiceError(w, r, "update project", err)
		return
	}
	if !found {
		WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		return
	}

	WriteJSON(w, http.StatusOK, p)
}

// DeleteProject удаляет проект.
//
// @Summary      Delete project
// @Tags         projects
// @Security     BearerAuth
// @Param        id path int true "Project ID"
// @Success      204
// @Failure      400 {object} ErrorResponse "Invalid project id"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      404 {object} ErrorResponse "Not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /projects/{id} [delete]
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := projectID(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err)
		return
	}

	deleted, err := h.Svc.Projects.Delete(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, "delete project", err)
		return
	}
	if !deleted {
		WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
