package services

import (
	"context"

	"github.com/Tmy-andy/profile/internal/models"
)

// UpdateNotifications toggles notification preferences in memory.
func (sess *SettingsSession) UpdateNotifications(req models.UpdateNotificationsRequest) models.Notifications {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	n := &sess.doc.Notifications
	if req.Email != nil {
		n.Email = *req.Email
	}
	if req.Push != nil {
		n.Push = *req.Push
	}
	if req.Marketing != nil {
		n.Marketing = *req.Marketing
	}
	return *n
}

// Notifications returns the current in-memory notification preferences.
func (sess *SettingsSession) Notifications() models.Notifications {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.doc.Notifications
}

// SaveNotifications merge-writes the notifications slice.
func (sess *SettingsSession) SaveNotifications(ctx context.Context) error {
	return sess.saveSlices(ctx, "SaveNotifications",
		"Notifications updated successfully", "Failed to save notifications",
		models.SliceNotifications)
}
