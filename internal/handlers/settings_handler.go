package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Tmy-andy/profile/internal/middleware"
	"github.com/Tmy-andy/profile/internal/models"
	"github.com/Tmy-andy/profile/internal/services"
)

const saveTimeout = 10 * time.Second

// SettingsHandler exposes the settings page: edit endpoints mutate the
// caller's in-memory session, save endpoints persist a single slice.
type SettingsHandler struct {
	settings *services.SettingsService
	users    *services.UserService // nil in Firebase mode
}

func NewSettingsHandler(settings *services.SettingsService, users *services.UserService) *SettingsHandler {
	return &SettingsHandler{settings: settings, users: users}
}

// session resolves the caller's settings session, writing the error
// response itself when there is no authenticated user.
func (h *SettingsHandler) session(w http.ResponseWriter, r *http.Request) (*services.SettingsSession, bool) {
	userID := middleware.GetUserID(r.Context())
	sess, err := h.settings.Session(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "Failed to load settings")
		return nil, false
	}
	return sess, true
}

type settingsView struct {
	models.UserSettings
	OpenProjectID string `json:"open_project_id,omitempty"`
}

func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(settingsView{
		UserSettings:  sess.Snapshot(),
		OpenProjectID: sess.OpenProjectID(),
	}))
}

func (h *SettingsHandler) SaveAll(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), saveTimeout)
	defer cancel()

	if err := sess.SaveAll(ctx); err != nil {
		writeServiceError(w, err, "Failed to save settings")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(sess.Snapshot()))
}

// ===== Profile =====

func (h *SettingsHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(sess.UpdateProfile(req)))
}

func (h *SettingsHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), saveTimeout)
	defer cancel()

	if err := sess.SaveProfile(ctx); err != nil {
		writeServiceError(w, err, "Failed to save profile")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(sess.Profile()))
}

// ClearAvatar empties the avatar URL in the session only; it persists on the
// next profile save.
func (h *SettingsHandler) ClearAvatar(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	sess.ClearAvatar()
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(sess.Profile()))
}

// ===== Skills =====

type skillRequest struct {
	Skill string `json:"skill"`
}

type skillsView struct {
	Skills    []string `json:"skills"`
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
}

func newSkillsView(skills []string) skillsView {
	view := skillsView{Skills: skills, Technical: []string{}, Soft: []string{}}
	for _, s := range skills {
		if services.IsSoftSkill(s) {
			view.Soft = append(view.Soft, s)
		} else {
			view.Technical = append(view.Technical, s)
		}
	}
	return view
}

func (h *SettingsHandler) GetSkills(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(newSkillsView(sess.Skills())))
}

func (h *SettingsHandler) AddSkill(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req skillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	sess.AddSkill(req.Skill)
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(newSkillsView(sess.Skills())))
}

func (h *SettingsHandler) RemoveSkill(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	sess.RemoveSkill(chi.URLParam(r, "skill"))
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(newSkillsView(sess.Skills())))
}

func (h *SettingsHandler) ClearSkills(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	sess.ClearSkills()
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(newSkillsView(sess.Skills())))
}

func (h *SettingsHandler) SaveSkills(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), saveTimeout)
	defer cancel()

	if err := sess.SaveSkills(ctx); err != nil {
		writeServiceError(w, err, "Failed to save skills")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(newSkillsView(sess.Skills())))
}

// ===== Notifications =====

func (h *SettingsHandler) UpdateNotifications(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req models.UpdateNotificationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(sess.UpdateNotifications(req)))
}

func (h *SettingsHandler) SaveNotifications(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), saveTimeout)
	defer cancel()

	if err := sess.SaveNotifications(ctx); err != nil {
		writeServiceError(w, err, "Failed to save notifications")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(sess.Notifications()))
}

// ===== Security =====

func (h *SettingsHandler) SaveSecurity(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req models.SaveSecurityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	// Local-auth mode rotates the credential itself; validation failures
	// stop everything before the document store is touched.
	if fieldErrs := req.Validate(); len(fieldErrs) == 0 && req.NewPassword != "" && h.users != nil {
		userID := middleware.GetUserID(r.Context())
		if err := h.users.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
			if err == services.ErrInvalidPassword {
				writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Current password is incorrect"))
				return
			}
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to change password"))
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), saveTimeout)
	defer cancel()

	if err := sess.SaveSecurity(ctx, req); err != nil {
		writeServiceError(w, err, "Failed to save security settings")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(sess.Security()))
}

// ===== Toasts & connections =====

func (h *SettingsHandler) ListToasts(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(sess.Toasts()))
}

func (h *SettingsHandler) ListConnections(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(services.Connections()))
}
