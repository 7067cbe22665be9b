package services

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/Tmy-andy/profile/internal/models"
)

// UpdateProfile applies partial profile edits in memory. Nothing is
// persisted until SaveProfile.
func (sess *SettingsSession) UpdateProfile(req models.UpdateProfileRequest) models.Profile {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	p := &sess.doc.Profile
	if req.FullName != nil {
		p.FullName = *req.FullName
	}
	if req.Major != nil {
		p.Major = *req.Major
	}
	if req.Email != nil {
		p.Email = *req.Email
	}
	if req.Phone != nil {
		p.Phone = *req.Phone
	}
	if req.Bio != nil {
		p.Bio = *req.Bio
	}
	if req.Website != nil {
		p.Website = *req.Website
	}
	return *p
}

// Profile returns the current in-memory profile slice.
func (sess *SettingsSession) Profile() models.Profile {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.doc.Profile
}

// SaveProfile merge-writes the profile slice.
func (sess *SettingsSession) SaveProfile(ctx context.Context) error {
	return sess.saveSlices(ctx, "SaveProfile",
		"Profile updated successfully", "Failed to save profile",
		models.SliceProfile)
}

// UploadAvatar stores the file in the blob store, points the profile at the
// returned URL and persists the profile slice immediately. Unlike other
// profile fields the avatar does not wait for an explicit save.
func (sess *SettingsSession) UploadAvatar(ctx context.Context, filename string, file io.Reader) (string, error) {
	sess.mu.Lock()
	if sess.loading {
		sess.mu.Unlock()
		return "", ErrSaveInProgress
	}
	sess.loading = true
	sess.mu.Unlock()

	url, err := sess.blobs.Upload(sess.userID, filename, file)
	if err != nil {
		sess.endSave()
		log.Printf("[UploadAvatar] user=%s error=%v", sess.userID, err)
		sess.notifier.Notify("Failed to upload avatar", ToastError)
		return "", fmt.Errorf("UploadAvatar: %w", err)
	}

	sess.mu.Lock()
	sess.doc.Profile.AvatarURL = url
	profile := sess.doc.Profile
	sess.mu.Unlock()

	if err := sess.store.Merge(ctx, usersCollection, sess.userID, map[string]interface{}{
		models.SliceProfile: profile,
	}); err != nil {
		sess.endSave()
		log.Printf("[UploadAvatar] user=%s error=%v", sess.userID, err)
		sess.notifier.Notify("Failed to upload avatar", ToastError)
		return "", fmt.Errorf("UploadAvatar: %w", err)
	}
	sess.endSave()

	sess.notifier.Notify("Avatar uploaded successfully", ToastSuccess)
	return url, nil
}

// ClearAvatar empties the avatar URL in memory only; the change persists on
// the next profile save.
func (sess *SettingsSession) ClearAvatar() {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.doc.Profile.AvatarURL = ""
}
