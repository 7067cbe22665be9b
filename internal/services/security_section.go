package services

import (
	"context"
	"time"

	"github.com/Tmy-andy/profile/internal/models"
)

// SetTwoFA toggles two-factor auth in memory.
func (sess *SettingsSession) SetTwoFA(enabled bool) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.doc.Security.TwoFA = enabled
}

// Security returns the current in-memory security slice.
func (sess *SettingsSession) Security() models.Security {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.doc.Security
}

// SaveSecurity validates and persists the security tab. A password change
// that fails validation never reaches the store. On a successful save with a
// new password, last_password_update is stamped and the caller is expected
// to clear its password fields; actual credential rotation belongs to the
// auth provider.
func (sess *SettingsSession) SaveSecurity(ctx context.Context, req models.SaveSecurityRequest) error {
	if fieldErrs := req.Validate(); len(fieldErrs) > 0 {
		verr := &ValidationError{Fields: fieldErrs}
		sess.notifier.Notify(verr.Error(), ToastError)
		return verr
	}

	sess.mu.Lock()
	sess.doc.Security.TwoFA = req.TwoFA
	if req.NewPassword != "" {
		now := time.Now().UTC()
		sess.doc.Security.LastPasswordUpdate = &now
	}
	sess.mu.Unlock()

	return sess.saveSlices(ctx, "SaveSecurity",
		"Security settings updated successfully", "Failed to save security settings",
		models.SliceSecurity)
}
