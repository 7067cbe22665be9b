package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	appMiddleware "github.com/Tmy-andy/profile/internal/middleware"
	"github.com/Tmy-andy/profile/internal/models"
	"github.com/Tmy-andy/profile/internal/services"
	"github.com/Tmy-andy/profile/internal/storage"
)

// stubAuth injects a fixed user ID, standing in for the JWT/Firebase
// middleware.
func stubAuth(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID != "" {
				ctx := context.WithValue(r.Context(), appMiddleware.UserIDKey, userID)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func newTestRouter(t *testing.T, store storage.DocumentStore, userID string) *chi.Mux {
	t.Helper()

	settingsService := services.NewSettingsService(store, services.NewLocalBlobStore(t.TempDir()))
	settingsHandler := NewSettingsHandler(settingsService, nil)
	projectsHandler := NewProjectsHandler(settingsHandler)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(stubAuth(userID))

		r.Route("/api/settings", func(r chi.Router) {
			r.Get("/", settingsHandler.GetSettings)
			r.Post("/save", settingsHandler.SaveAll)

			r.Route("/skills", func(r chi.Router) {
				r.Get("/", settingsHandler.GetSkills)
				r.Post("/", settingsHandler.AddSkill)
				r.Delete("/{skill}", settingsHandler.RemoveSkill)
				r.Post("/save", settingsHandler.SaveSkills)
			})

			r.Route("/projects", func(r chi.Router) {
				r.Post("/", projectsHandler.AddProject)
				r.Route("/{projectIndex}", func(r chi.Router) {
					r.Put("/", projectsHandler.UpdateProject)
					r.Delete("/", projectsHandler.DeleteProject)
					r.Post("/save", projectsHandler.SaveProject)
				})
			})

			r.Post("/security/save", settingsHandler.SaveSecurity)
		})

		r.Get("/api/toasts", settingsHandler.ListToasts)
		r.Get("/api/connections", settingsHandler.ListConnections)
	})
	return r
}

func do(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()

	var resp struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	if dest != nil {
		require.NoError(t, json.Unmarshal(resp.Data, dest))
	}
}

func TestGetSettingsDefaults(t *testing.T) {
	router := newTestRouter(t, storage.NewMemoryStore(), "u1")

	rec := do(t, router, http.MethodGet, "/api/settings/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var doc models.UserSettings
	decodeData(t, rec, &doc)
	require.Empty(t, doc.Skills)
	require.Empty(t, doc.Profile.FullName)
	require.False(t, doc.Notifications.Email)
}

func TestUnauthenticatedRejected(t *testing.T) {
	router := newTestRouter(t, storage.NewMemoryStore(), "")

	rec := do(t, router, http.MethodPost, "/api/settings/skills/save", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp models.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "User not authenticated", resp.Error)
}

func TestSkillsFlow(t *testing.T) {
	store := storage.NewMemoryStore()
	router := newTestRouter(t, store, "u1")

	rec := do(t, router, http.MethodPost, "/api/settings/skills/", map[string]string{"skill": "Go"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, router, http.MethodPost, "/api/settings/skills/", map[string]string{"skill": "Leadership"})
	require.Equal(t, http.StatusOK, rec.Code)

	var view struct {
		Skills    []string `json:"skills"`
		Technical []string `json:"technical"`
		Soft      []string `json:"soft"`
	}
	decodeData(t, rec, &view)
	require.Equal(t, []string{"Go", "Leadership"}, view.Skills)
	require.Equal(t, []string{"Go"}, view.Technical)
	require.Equal(t, []string{"Leadership"}, view.Soft)

	rec = do(t, router, http.MethodPost, "/api/settings/skills/save", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// A second service over the same store sees the saved skills.
	other := newTestRouter(t, store, "u1")
	rec = do(t, other, http.MethodGet, "/api/settings/skills/", nil)
	decodeData(t, rec, &view)
	require.Equal(t, []string{"Go", "Leadership"}, view.Skills)

	rec = do(t, router, http.MethodDelete, "/api/settings/skills/Go", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &view)
	require.Equal(t, []string{"Leadership"}, view.Skills)
}

func TestProjectLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter(t, storage.NewMemoryStore(), "u1")

	rec := do(t, router, http.MethodPost, "/api/settings/projects/", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var project models.Project
	decodeData(t, rec, &project)
	require.Equal(t, models.ProjectWebApplication, project.Type)

	rec = do(t, router, http.MethodPut, "/api/settings/projects/0/", map[string]string{"name": "Portfolio"})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &project)
	require.Equal(t, "Portfolio", project.Name)

	// Unconfirmed deletion is refused.
	rec = do(t, router, http.MethodDelete, "/api/settings/projects/0/", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodDelete, "/api/settings/projects/0/?confirm=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodPut, "/api/settings/projects/0/", map[string]string{"name": "x"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSecuritySaveValidationOverHTTP(t *testing.T) {
	router := newTestRouter(t, storage.NewMemoryStore(), "u1")

	rec := do(t, router, http.MethodPost, "/api/settings/security/save", models.SaveSecurityRequest{
		NewPassword:     "abc123",
		ConfirmPassword: "xyz999",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/settings/security/save", models.SaveSecurityRequest{
		TwoFA: true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var security models.Security
	decodeData(t, rec, &security)
	require.True(t, security.TwoFA)
}

func TestToastsReflectSaves(t *testing.T) {
	router := newTestRouter(t, storage.NewMemoryStore(), "u1")

	rec := do(t, router, http.MethodPost, "/api/settings/save", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/toasts", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var toasts []services.Toast
	decodeData(t, rec, &toasts)
	require.NotEmpty(t, toasts)
	require.Equal(t, "All settings saved successfully", toasts[0].Message)
	require.Equal(t, services.ToastSuccess, toasts[0].Kind)
}

func TestConnectionsCatalog(t *testing.T) {
	router := newTestRouter(t, storage.NewMemoryStore(), "u1")

	rec := do(t, router, http.MethodGet, "/api/connections", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var connections []services.Connection
	decodeData(t, rec, &connections)
	require.Len(t, connections, 4)
	require.Equal(t, "Discord", connections[0].Name)
}
