package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Tmy-andy/profile/internal/models"
)

func TestAddProjectDefaults(t *testing.T) {
	sess, _ := newTestSession(t, newFakeStore())

	project := sess.AddProject()
	require.NotEmpty(t, project.ID)
	require.Empty(t, project.Name)
	require.Empty(t, project.Desc)
	require.Equal(t, models.ProjectWebApplication, project.Type)
	require.Empty(t, project.Uploads)
}

func TestUpdateProjectOutOfRange(t *testing.T) {
	sess, _ := newTestSession(t, newFakeStore())

	_, err := sess.UpdateProject(0, models.UpdateProjectRequest{Name: strPtr("x")})
	require.ErrorIs(t, err, ErrProjectNotFound)

	sess.AddProject()
	_, err = sess.UpdateProject(-1, models.UpdateProjectRequest{})
	require.ErrorIs(t, err, ErrProjectNotFound)
	_, err = sess.UpdateProject(1, models.UpdateProjectRequest{})
	require.ErrorIs(t, err, ErrProjectNotFound)
}

func TestSaveProjectsPayload(t *testing.T) {
	store := newFakeStore()
	sess, _ := newTestSession(t, store)
	ctx := context.Background()

	sess.AddProject()
	_, err := sess.UpdateProject(0, models.UpdateProjectRequest{Name: strPtr("Portfolio")})
	require.NoError(t, err)
	require.NoError(t, sess.SaveProjects(ctx))

	payload := store.lastMerge(t)
	projects, ok := payload[models.SliceProjects].([]models.Project)
	require.True(t, ok)
	require.Len(t, projects, 1)
	require.Equal(t, "Portfolio", projects[0].Name)
	require.Equal(t, models.ProjectWebApplication, projects[0].Type)
}

func TestDeleteProjectRequiresConfirmation(t *testing.T) {
	sess, _ := newTestSession(t, newFakeStore())

	sess.AddProject()
	require.ErrorIs(t, sess.DeleteProject(0, false), ErrConfirmationRequired)
	require.Len(t, sess.Projects(), 1)

	require.NoError(t, sess.DeleteProject(0, true))
	require.Empty(t, sess.Projects())
}

func TestDeleteOpenProjectClosesEditor(t *testing.T) {
	sess, notifier := newTestSession(t, newFakeStore())

	sess.AddProject()
	sess.AddProject()
	require.NoError(t, sess.ToggleProject(1))
	require.NotEmpty(t, sess.OpenProjectID())

	require.NoError(t, sess.DeleteProject(1, true))
	require.Empty(t, sess.OpenProjectID())
	require.Equal(t, "Project deleted", notifier.last(t).message)
}

func TestDeleteOtherProjectKeepsEditorOnSameProject(t *testing.T) {
	sess, _ := newTestSession(t, newFakeStore())

	sess.AddProject()
	second := sess.AddProject()
	require.NoError(t, sess.ToggleProject(1))
	require.Equal(t, second.ID, sess.OpenProjectID())

	// Deleting the project above shifts indices but the editor stays on
	// the same project.
	require.NoError(t, sess.DeleteProject(0, true))
	require.Equal(t, second.ID, sess.OpenProjectID())

	projects := sess.Projects()
	require.Len(t, projects, 1)
	require.Equal(t, second.ID, projects[0].ID)
}

func TestToggleProjectSingleOpenEditor(t *testing.T) {
	sess, _ := newTestSession(t, newFakeStore())

	first := sess.AddProject()
	second := sess.AddProject()

	require.NoError(t, sess.ToggleProject(0))
	require.Equal(t, first.ID, sess.OpenProjectID())

	// Opening another project closes the first.
	require.NoError(t, sess.ToggleProject(1))
	require.Equal(t, second.ID, sess.OpenProjectID())

	// Re-toggling the open project closes it.
	require.NoError(t, sess.ToggleProject(1))
	require.Empty(t, sess.OpenProjectID())

	require.ErrorIs(t, sess.ToggleProject(5), ErrProjectNotFound)
}

func TestAddUpload(t *testing.T) {
	sess, _ := newTestSession(t, newFakeStore())

	sess.AddProject()
	require.NoError(t, sess.AddUpload(0, models.UploadLink))

	projects := sess.Projects()
	require.Len(t, projects[0].Uploads, 1)
	require.Equal(t, models.UploadLink, projects[0].Uploads[0].Type)
	require.Empty(t, projects[0].Uploads[0].Value)

	require.ErrorIs(t, sess.AddUpload(3, models.UploadFile), ErrProjectNotFound)
}

func TestUpdateUploadSparseSlotDefaultInitialized(t *testing.T) {
	sess, _ := newTestSession(t, newFakeStore())

	sess.AddProject()

	// Editing slot 1 before any upload exists grows the list with
	// default slots first.
	require.NoError(t, sess.UpdateUpload(0, 1, models.UpdateUploadRequest{
		Value: strPtr("https://example.com"),
	}))

	uploads := sess.Projects()[0].Uploads
	require.Len(t, uploads, 2)
	require.Equal(t, models.UploadFile, uploads[0].Type)
	require.Empty(t, uploads[0].Value)
	require.Equal(t, models.UploadFile, uploads[1].Type)
	require.Equal(t, "https://example.com", uploads[1].Value)
}

func TestUpdateUploadExistingSlot(t *testing.T) {
	sess, _ := newTestSession(t, newFakeStore())

	sess.AddProject()
	require.NoError(t, sess.AddUpload(0, models.UploadFile))
	require.NoError(t, sess.UpdateUpload(0, 0, models.UpdateUploadRequest{
		Type:  uploadTypePtr(models.UploadLink),
		Value: strPtr("https://example.com"),
	}))

	uploads := sess.Projects()[0].Uploads
	require.Equal(t, models.UploadLink, uploads[0].Type)
	require.Equal(t, "https://example.com", uploads[0].Value)
}

func TestDeleteUpload(t *testing.T) {
	sess, _ := newTestSession(t, newFakeStore())

	sess.AddProject()
	require.NoError(t, sess.AddUpload(0, models.UploadFile))
	require.NoError(t, sess.AddUpload(0, models.UploadLink))

	require.NoError(t, sess.DeleteUpload(0, 0))
	uploads := sess.Projects()[0].Uploads
	require.Len(t, uploads, 1)
	require.Equal(t, models.UploadLink, uploads[0].Type)

	require.ErrorIs(t, sess.DeleteUpload(0, 5), ErrUploadNotFound)
}

func TestSaveProjectClosesEditorAndSavesWholeSlice(t *testing.T) {
	store := newFakeStore()
	sess, _ := newTestSession(t, store)
	ctx := context.Background()

	sess.AddProject()
	sess.AddProject()
	require.NoError(t, sess.ToggleProject(0))

	require.NoError(t, sess.SaveProject(ctx, 0))
	require.Empty(t, sess.OpenProjectID())

	// The whole slice travels, not one element.
	payload := store.lastMerge(t)
	projects, ok := payload[models.SliceProjects].([]models.Project)
	require.True(t, ok)
	require.Len(t, projects, 2)

	require.ErrorIs(t, sess.SaveProject(ctx, 7), ErrProjectNotFound)
}

func uploadTypePtr(t models.UploadType) *models.UploadType { return &t }
