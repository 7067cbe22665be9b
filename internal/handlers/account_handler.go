package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Tmy-andy/profile/internal/middleware"
	"github.com/Tmy-andy/profile/internal/models"
	"github.com/Tmy-andy/profile/internal/services"
)

type AccountHandler struct {
	accounts *services.AccountService
	users    *services.UserService // nil in Firebase mode
}

func NewAccountHandler(accounts *services.AccountService, users *services.UserService) *AccountHandler {
	return &AccountHandler{accounts: accounts, users: users}
}

// DeleteAccount is the danger zone: it removes the settings document, the
// user's uploads and any in-memory session.
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	if r.URL.Query().Get("confirm") != "true" {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Deletion must be confirmed"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	if err := h.accounts.DeleteAccount(ctx, userID); err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete account"))
		return
	}

	if h.users != nil {
		h.users.Delete(userID)
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"message": "Account deleted"}))
}
