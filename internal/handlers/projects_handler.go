package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Tmy-andy/profile/internal/models"
)

// ProjectsHandler serves the projects tab, including per-project upload
// slots. Projects and uploads are addressed by list position; the open
// editor itself is tracked by project ID inside the session.
type ProjectsHandler struct {
	settings *SettingsHandler
}

func NewProjectsHandler(settings *SettingsHandler) *ProjectsHandler {
	return &ProjectsHandler{settings: settings}
}

func projectIndex(r *http.Request) (int, bool) {
	i, err := strconv.Atoi(chi.URLParam(r, "projectIndex"))
	return i, err == nil
}

func uploadIndex(r *http.Request) (int, bool) {
	i, err := strconv.Atoi(chi.URLParam(r, "uploadIndex"))
	return i, err == nil
}

func (h *ProjectsHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.settings.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(sess.Projects()))
}

func (h *ProjectsHandler) AddProject(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.settings.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(sess.AddProject()))
}

func (h *ProjectsHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.settings.session(w, r)
	if !ok {
		return
	}

	index, ok := projectIndex(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid project index"))
		return
	}

	var req models.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	project, err := sess.UpdateProject(index, req)
	if err != nil {
		writeServiceError(w, err, "Failed to update project")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(project))
}

// DeleteProject requires ?confirm=true; the page asks the user first and
// the server refuses unconfirmed deletions.
func (h *ProjectsHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.settings.session(w, r)
	if !ok {
		return
	}

	index, ok := projectIndex(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid project index"))
		return
	}

	confirmed := r.URL.Query().Get("confirm") == "true"
	if err := sess.DeleteProject(index, confirmed); err != nil {
		writeServiceError(w, err, "Failed to delete project")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(sess.Projects()))
}

func (h *ProjectsHandler) ToggleProject(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.settings.session(w, r)
	if !ok {
		return
	}

	index, ok := projectIndex(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid project index"))
		return
	}

	if err := sess.ToggleProject(index); err != nil {
		writeServiceError(w, err, "Failed to toggle project")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{
		"open_project_id": sess.OpenProjectID(),
	}))
}

type addUploadRequest struct {
	Type models.UploadType `json:"type"`
}

func (h *ProjectsHandler) AddUpload(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.settings.session(w, r)
	if !ok {
		return
	}

	index, ok := projectIndex(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid project index"))
		return
	}

	req := addUploadRequest{Type: models.UploadFile}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
			return
		}
	}

	if err := sess.AddUpload(index, req.Type); err != nil {
		writeServiceError(w, err, "Failed to add upload")
		return
	}
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(sess.Projects()))
}

func (h *ProjectsHandler) UpdateUpload(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.settings.session(w, r)
	if !ok {
		return
	}

	pi, ok := projectIndex(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid project index"))
		return
	}
	ui, ok := uploadIndex(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid upload index"))
		return
	}

	var req models.UpdateUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if err := sess.UpdateUpload(pi, ui, req); err != nil {
		writeServiceError(w, err, "Failed to update upload")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(sess.Projects()))
}

func (h *ProjectsHandler) DeleteUpload(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.settings.session(w, r)
	if !ok {
		return
	}

	pi, ok := projectIndex(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid project index"))
		return
	}
	ui, ok := uploadIndex(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid upload index"))
		return
	}

	if err := sess.DeleteUpload(pi, ui); err != nil {
		writeServiceError(w, err, "Failed to delete upload")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(sess.Projects()))
}

func (h *ProjectsHandler) SaveProjects(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.settings.session(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), saveTimeout)
	defer cancel()

	if err := sess.SaveProjects(ctx); err != nil {
		writeServiceError(w, err, "Failed to save projects")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(sess.Projects()))
}

// SaveProject persists the whole projects slice and closes the project's
// editor; the store has no per-element patch.
func (h *ProjectsHandler) SaveProject(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.settings.session(w, r)
	if !ok {
		return
	}

	index, ok := projectIndex(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid project index"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), saveTimeout)
	defer cancel()

	if err := sess.SaveProject(ctx, index); err != nil {
		writeServiceError(w, err, "Failed to save project")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(sess.Projects()))
}
