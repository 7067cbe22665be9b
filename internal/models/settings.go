package models

import "time"

// Slice names address the top-level fields of a UserSettings document.
// Merge writes replace exactly one of these (plus updated_at) at a time.
const (
	SliceProfile       = "profile"
	SliceSkills        = "skills"
	SliceProjects      = "projects"
	SliceNotifications = "notifications"
	SliceSecurity      = "security"
)

// ProjectType categorizes a project. Stored as its display string.
type ProjectType string

const (
	ProjectWebApplication  ProjectType = "Web Application"
	ProjectMobileApp       ProjectType = "Mobile App"
	ProjectDesktopSoftware ProjectType = "Desktop Software"
	ProjectGame            ProjectType = "Game"
	ProjectOther           ProjectType = "Other"
)

// UploadType distinguishes what an upload slot holds.
type UploadType string

const (
	UploadFile UploadType = "file"
	UploadLink UploadType = "link"
	UploadApp  UploadType = "app"
)

// UserSettings is the per-user settings document, keyed by auth UID.
// Absence of the document is a valid state: all slices default empty.
type UserSettings struct {
	Profile       Profile       `json:"profile" bson:"profile"`
	Skills        []string      `json:"skills" bson:"skills"`
	Projects      []Project     `json:"projects" bson:"projects"`
	Notifications Notifications `json:"notifications" bson:"notifications"`
	Security      Security      `json:"security" bson:"security"`
	UpdatedAt     time.Time     `json:"updated_at" bson:"updated_at"`
}

type Profile struct {
	AvatarURL string `json:"avatar_url" bson:"avatar_url,omitempty"`
	FullName  string `json:"full_name" bson:"full_name,omitempty"`
	Major     string `json:"major" bson:"major,omitempty"`
	Email     string `json:"email" bson:"email,omitempty"`
	Phone     string `json:"phone" bson:"phone,omitempty"`
	Bio       string `json:"bio" bson:"bio,omitempty"`
	Website   string `json:"website" bson:"website,omitempty"`
}

type Project struct {
	// ID is assigned on creation and never changes; the open-editor state
	// tracks projects by ID so deletions elsewhere in the list don't
	// reattach the editor to a different project.
	ID      string      `json:"id" bson:"id"`
	Name    string      `json:"name" bson:"name"`
	Desc    string      `json:"desc" bson:"desc"`
	Type    ProjectType `json:"type" bson:"type"`
	Uploads []Upload    `json:"uploads" bson:"uploads"`
}

// Upload is one attachment slot on a project: a stored file handle, an
// external link, or an application reference. Value may be empty.
type Upload struct {
	Type  UploadType `json:"type" bson:"type"`
	Value string     `json:"value" bson:"value,omitempty"`
}

type Notifications struct {
	Email     bool `json:"email" bson:"email"`
	Push      bool `json:"push" bson:"push"`
	Marketing bool `json:"marketing" bson:"marketing"`
}

type Security struct {
	TwoFA              bool       `json:"two_fa" bson:"two_fa"`
	LastPasswordUpdate *time.Time `json:"last_password_update,omitempty" bson:"last_password_update,omitempty"`
}

// DefaultSettings returns the document shape used when no document exists
// yet for an identity.
func DefaultSettings() UserSettings {
	return UserSettings{
		Skills:   []string{},
		Projects: []Project{},
	}
}

// NewProject returns an empty project with the default type, matching what
// the "add project" action creates.
func NewProject(id string) Project {
	return Project{
		ID:      id,
		Type:    ProjectWebApplication,
		Uploads: []Upload{},
	}
}

// DefaultUpload is the slot value used when an upload is edited before it
// was ever appended.
func DefaultUpload() Upload {
	return Upload{Type: UploadFile}
}

// UpdateProfileRequest carries partial profile edits. Nil fields are left
// unchanged in the session.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name"`
	Major    *string `json:"major"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Bio      *string `json:"bio"`
	Website  *string `json:"website"`
}

type UpdateProjectRequest struct {
	Name *string      `json:"name"`
	Desc *string      `json:"desc"`
	Type *ProjectType `json:"type"`
}

type UpdateUploadRequest struct {
	Type  *UploadType `json:"type"`
	Value *string     `json:"value"`
}

type UpdateNotificationsRequest struct {
	Email     *bool `json:"email"`
	Push      *bool `json:"push"`
	Marketing *bool `json:"marketing"`
}

// SaveSecurityRequest carries the security tab state. Password fields are
// validated locally and never persisted.
type SaveSecurityRequest struct {
	TwoFA           bool   `json:"two_fa"`
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r *SaveSecurityRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.NewPassword != "" {
		if r.NewPassword != r.ConfirmPassword {
			errors["confirm_password"] = "New passwords do not match"
		} else if len(r.NewPassword) < 6 {
			errors["new_password"] = "New password must be at least 6 characters"
		}
	}

	return errors
}
