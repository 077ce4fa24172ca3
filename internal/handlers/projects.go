package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"remontzbt.dev/internal/services"
)

// ProjectHandler handles project-related endpoints
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(ps *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: ps}
}

// ListProjects handles GET /api/projects?category=
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.Load(r.Context())
	if err != nil {
		if requestGone(r, err) {
			return
		}
		respondError(w, http.StatusServiceUnavailable, "Projects unavailable")
		return
	}
	respondJSON(w, http.StatusOK, services.FilterByCategory(projects, selection(r)))
}

// GetProject handles GET /api/projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.Load(r.Context())
	if err != nil {
		if requestGone(r, err) {
			return
		}
		respondError(w, http.StatusServiceUnavailable, "Projects unavailable")
		return
	}

	project, err := services.ResolveProject(projects, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Project not found")
		return
	}

	respondJSON(w, http.StatusOK, project)
}

// ListCategories handles GET /api/categories
func (h *ProjectHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.Load(r.Context())
	if err != nil {
		if requestGone(r, err) {
			return
		}
		respondError(w, http.StatusServiceUnavailable, "Projects unavailable")
		return
	}
	respondJSON(w, http.StatusOK, services.Categories(projects))
}
