package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/Tmy-andy/profile/internal/models"
)

// AddProject appends an empty project with the default type and returns it.
func (sess *SettingsSession) AddProject() models.Project {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	project := models.NewProject(uuid.New().String())
	sess.doc.Projects = append(sess.doc.Projects, project)
	return project
}

// Projects returns a copy of the current projects slice.
func (sess *SettingsSession) Projects() []models.Project {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return copyProjects(sess.doc.Projects)
}

// UpdateProject applies partial edits to the project at index.
func (sess *SettingsSession) UpdateProject(index int, req models.UpdateProjectRequest) (models.Project, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if index < 0 || index >= len(sess.doc.Projects) {
		return models.Project{}, ErrProjectNotFound
	}

	p := &sess.doc.Projects[index]
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Desc != nil {
		p.Desc = *req.Desc
	}
	if req.Type != nil {
		p.Type = *req.Type
	}
	return *p, nil
}

// DeleteProject removes the project at index. The caller must confirm the
// deletion first. If the deleted project's editor was open it is closed;
// an editor open on any other project stays attached to that project since
// it is tracked by ID, not position.
func (sess *SettingsSession) DeleteProject(index int, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	sess.mu.Lock()
	if index < 0 || index >= len(sess.doc.Projects) {
		sess.mu.Unlock()
		return ErrProjectNotFound
	}

	removed := sess.doc.Projects[index]
	sess.doc.Projects = append(sess.doc.Projects[:index], sess.doc.Projects[index+1:]...)
	if sess.openProject == removed.ID {
		sess.openProject = ""
	}
	sess.mu.Unlock()

	sess.notifier.Notify("Project deleted", ToastSuccess)
	return nil
}

// ToggleProject opens the detail editor for the project at index, closing
// whichever editor was open. Toggling the open project closes it. At most
// one editor is open at a time.
func (sess *SettingsSession) ToggleProject(index int) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if index < 0 || index >= len(sess.doc.Projects) {
		return ErrProjectNotFound
	}

	id := sess.doc.Projects[index].ID
	if sess.openProject == id {
		sess.openProject = ""
	} else {
		sess.openProject = id
	}
	return nil
}

// AddUpload appends an empty upload slot of the given type to the project at
// projectIndex.
func (sess *SettingsSession) AddUpload(projectIndex int, uploadType models.UploadType) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if projectIndex < 0 || projectIndex >= len(sess.doc.Projects) {
		return ErrProjectNotFound
	}

	p := &sess.doc.Projects[projectIndex]
	p.Uploads = append(p.Uploads, models.Upload{Type: uploadType})
	return nil
}

// UpdateUpload applies partial edits to an upload slot. A slot edited before
// it was appended is default-initialized first: the uploads list grows with
// {type: file, value: empty} entries up to the target index.
func (sess *SettingsSession) UpdateUpload(projectIndex, uploadIndex int, req models.UpdateUploadRequest) error {
	if uploadIndex < 0 {
		return ErrUploadNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if projectIndex < 0 || projectIndex >= len(sess.doc.Projects) {
		return ErrProjectNotFound
	}

	p := &sess.doc.Projects[projectIndex]
	for len(p.Uploads) <= uploadIndex {
		p.Uploads = append(p.Uploads, models.DefaultUpload())
	}

	u := &p.Uploads[uploadIndex]
	if req.Type != nil {
		u.Type = *req.Type
	}
	if req.Value != nil {
		u.Value = *req.Value
	}
	return nil
}

// DeleteUpload removes the upload slot at uploadIndex.
func (sess *SettingsSession) DeleteUpload(projectIndex, uploadIndex int) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if projectIndex < 0 || projectIndex >= len(sess.doc.Projects) {
		return ErrProjectNotFound
	}

	p := &sess.doc.Projects[projectIndex]
	if uploadIndex < 0 || uploadIndex >= len(p.Uploads) {
		return ErrUploadNotFound
	}

	p.Uploads = append(p.Uploads[:uploadIndex], p.Uploads[uploadIndex+1:]...)
	return nil
}

// SaveProjects merge-writes the whole projects slice. The store has no
// array-element patch primitive, so a single project is never written alone.
func (sess *SettingsSession) SaveProjects(ctx context.Context) error {
	return sess.saveSlices(ctx, "SaveProjects",
		"Projects updated successfully", "Failed to save projects",
		models.SliceProjects)
}

// SaveProject persists the projects slice and closes the editor for the
// project at index on success.
func (sess *SettingsSession) SaveProject(ctx context.Context, index int) error {
	sess.mu.Lock()
	if index < 0 || index >= len(sess.doc.Projects) {
		sess.mu.Unlock()
		return ErrProjectNotFound
	}
	sess.mu.Unlock()

	if err := sess.SaveProjects(ctx); err != nil {
		return err
	}

	sess.mu.Lock()
	sess.openProject = ""
	sess.mu.Unlock()
	return nil
}
