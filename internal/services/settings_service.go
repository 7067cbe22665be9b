package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Tmy-andy/profile/internal/models"
	"github.com/Tmy-andy/profile/internal/storage"
)

// usersCollection is the document-store collection holding one settings
// document per auth UID.
const usersCollection = "users"

var (
	ErrUnauthenticated      = errors.New("user not authenticated")
	ErrSaveInProgress       = errors.New("another save is in progress")
	ErrProjectNotFound      = errors.New("project not found")
	ErrUploadNotFound       = errors.New("upload not found")
	ErrConfirmationRequired = errors.New("confirmation required")
)

// ValidationError reports field-level validation failures detected before
// any store call is made.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	for _, msg := range e.Fields {
		return msg
	}
	return "validation failed"
}

// SettingsService owns one SettingsSession per signed-in identity. A session
// is loaded from the document store exactly once, when the identity first
// resolves; edits then stay in memory until an explicit save.
type SettingsService struct {
	mu          sync.Mutex
	store       storage.DocumentStore
	blobs       BlobStore
	sessions    map[string]*SettingsSession
	newNotifier func() Notifier
}

func NewSettingsService(store storage.DocumentStore, blobs BlobStore) *SettingsService {
	return &SettingsService{
		store:       store,
		blobs:       blobs,
		sessions:    make(map[string]*SettingsSession),
		newNotifier: func() Notifier { return NewToastCenter() },
	}
}

// SetNotifierFactory overrides how per-session notifiers are built.
func (s *SettingsService) SetNotifierFactory(f func() Notifier) {
	s.newNotifier = f
}

// Session returns the session for userID, loading the settings document on
// first access. A missing document is not an error: the session starts from
// defaults. A failed load also leaves the session at defaults and surfaces
// an error toast; the session stays usable.
func (s *SettingsService) Session(ctx context.Context, userID string) (*SettingsSession, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	s.mu.Lock()
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &SettingsSession{
			userID:   userID,
			store:    s.store,
			blobs:    s.blobs,
			notifier: s.newNotifier(),
			doc:      models.DefaultSettings(),
		}
		s.sessions[userID] = sess
	}
	s.mu.Unlock()

	if !ok {
		sess.load(ctx)
	}
	return sess, nil
}

// Release drops the in-memory session for userID. Called on sign-out so no
// local state leaks into the next identity.
func (s *SettingsService) Release(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// ReleaseAll drops every session.
func (s *SettingsService) ReleaseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string]*SettingsSession)
}

// SettingsSession is the in-memory settings document for one identity, plus
// the editing state of the settings page. It is the single authoritative
// copy: section operations mutate it directly and nothing is persisted until
// a save operation runs.
type SettingsSession struct {
	mu       sync.Mutex
	userID   string
	store    storage.DocumentStore
	blobs    BlobStore
	notifier Notifier

	doc models.UserSettings

	// loading gates save and upload entry points: while a save is in
	// flight, new ones are rejected rather than queued.
	loading bool

	// openProject is the ID of the project whose editor is open, if any.
	openProject string
}

func (sess *SettingsSession) UserID() string { return sess.userID }

func (sess *SettingsSession) Notifier() Notifier { return sess.notifier }

// Toasts returns the session's active toasts when the notifier is the
// default toast center.
func (sess *SettingsSession) Toasts() []Toast {
	if tc, ok := sess.notifier.(*ToastCenter); ok {
		return tc.List()
	}
	return nil
}

func (sess *SettingsSession) load(ctx context.Context) {
	var doc models.UserSettings
	err := sess.store.Get(ctx, usersCollection, sess.userID, &doc)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// No document yet; it will be created on first save.
			return
		}
		log.Printf("[LoadSettings] user=%s error=%v", sess.userID, err)
		sess.notifier.Notify("Failed to load user data", ToastError)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if doc.Skills == nil {
		doc.Skills = []string{}
	}
	if doc.Projects == nil {
		doc.Projects = []models.Project{}
	}
	sess.doc = doc
}

// Snapshot returns a copy of the in-memory document.
func (sess *SettingsSession) Snapshot() models.UserSettings {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return copyDoc(sess.doc)
}

// OpenProjectID returns the ID of the project whose editor is open, or ""
// when none is.
func (sess *SettingsSession) OpenProjectID() string {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.openProject
}

// beginSave captures the named slices at the moment the save starts and
// flips the loading gate. It fails with ErrSaveInProgress while another save
// is in flight.
func (sess *SettingsSession) beginSave(slices ...string) (map[string]interface{}, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.loading {
		return nil, ErrSaveInProgress
	}
	sess.loading = true

	fields := make(map[string]interface{}, len(slices)+1)
	for _, name := range slices {
		switch name {
		case models.SliceProfile:
			fields[name] = sess.doc.Profile
		case models.SliceSkills:
			fields[name] = append([]string{}, sess.doc.Skills...)
		case models.SliceProjects:
			fields[name] = copyProjects(sess.doc.Projects)
		case models.SliceNotifications:
			fields[name] = sess.doc.Notifications
		case models.SliceSecurity:
			fields[name] = sess.doc.Security
		}
	}
	return fields, nil
}

// saveSlices merge-writes the named slices plus updated_at. Only those
// top-level fields travel to the store; anything else already persisted is
// left untouched, so two sessions editing different tabs cannot clobber each
// other. On failure local edits are kept and an error toast is emitted.
func (sess *SettingsSession) saveSlices(ctx context.Context, op, okMsg, failMsg string, slices ...string) error {
	fields, err := sess.beginSave(slices...)
	if err != nil {
		return err
	}
	defer sess.endSave()

	now := time.Now().UTC()
	fields["updated_at"] = now

	if err := sess.store.Merge(ctx, usersCollection, sess.userID, fields); err != nil {
		log.Printf("[%s] user=%s error=%v", op, sess.userID, err)
		sess.notifier.Notify(failMsg, ToastError)
		return fmt.Errorf("%s: %w", op, err)
	}

	sess.mu.Lock()
	if now.After(sess.doc.UpdatedAt) {
		sess.doc.UpdatedAt = now
	}
	sess.mu.Unlock()

	sess.notifier.Notify(okMsg, ToastSuccess)
	return nil
}

func (sess *SettingsSession) endSave() {
	sess.mu.Lock()
	sess.loading = false
	sess.mu.Unlock()
}

// SaveAll merge-writes every slice in one operation. Still a merge: fields
// outside the document model are preserved server-side.
func (sess *SettingsSession) SaveAll(ctx context.Context) error {
	return sess.saveSlices(ctx, "SaveAll",
		"All settings saved successfully", "Failed to save settings",
		models.SliceProfile, models.SliceSkills, models.SliceProjects,
		models.SliceNotifications, models.SliceSecurity)
}

func copyDoc(doc models.UserSettings) models.UserSettings {
	out := doc
	out.Skills = append([]string{}, doc.Skills...)
	out.Projects = copyProjects(doc.Projects)
	return out
}

func copyProjects(projects []models.Project) []models.Project {
	out := make([]models.Project, len(projects))
	for i, p := range projects {
		out[i] = p
		out[i].Uploads = append([]models.Upload{}, p.Uploads...)
	}
	return out
}
