package handlers

import (
	"context"
	"net/http"

	"github.com/Tmy-andy/profile/internal/models"
)

// AvatarHandler uploads profile avatars. Unlike other profile fields, a new
// avatar is persisted immediately after upload.
type AvatarHandler struct {
	settings  *SettingsHandler
	maxSizeMB int64
}

func NewAvatarHandler(settings *SettingsHandler, maxSizeMB int64) *AvatarHandler {
	return &AvatarHandler{
		settings:  settings,
		maxSizeMB: maxSizeMB,
	}
}

func (h *AvatarHandler) Upload(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.settings.session(w, r)
	if !ok {
		return
	}

	// Limit request body size
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSizeMB*1024*1024)

	// Parse multipart form
	if err := r.ParseMultipartForm(h.maxSizeMB * 1024 * 1024); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("File too large or invalid form data"))
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("No avatar file provided"))
		return
	}
	defer file.Close()

	// Validate content type
	contentType := header.Header.Get("Content-Type")
	if !isValidImageType(contentType) {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid image type. Allowed: JPEG, PNG, GIF, WebP"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), saveTimeout)
	defer cancel()

	url, err := sess.UploadAvatar(ctx, header.Filename, file)
	if err != nil {
		writeServiceError(w, err, "Failed to upload avatar")
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(models.AvatarUploadResponse{
		URL:     url,
		Profile: sess.Profile(),
	}))
}

func isValidImageType(contentType string) bool {
	validTypes := map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}
	return validTypes[contentType]
}
