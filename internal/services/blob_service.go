package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// BlobStore stores user file uploads and hands back a retrievable URL.
type BlobStore interface {
	Upload(userID, filename string, file io.Reader) (string, error)
	RemoveUserFiles(userID string) error
}

// LocalBlobStore keeps uploads on the local filesystem under
// uploadDir/avatars/<userID>/, served by the HTTP server at /uploads/*.
type LocalBlobStore struct {
	uploadDir string
}

func NewLocalBlobStore(uploadDir string) *LocalBlobStore {
	// Create upload directory if it doesn't exist
	os.MkdirAll(uploadDir, 0755)

	return &LocalBlobStore{uploadDir: uploadDir}
}

func (s *LocalBlobStore) Upload(userID, filename string, file io.Reader) (string, error) {
	// Get file extension
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}

	newFilename := uuid.New().String() + ext
	dir := filepath.Join(s.uploadDir, "avatars", userID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}
	filePath := filepath.Join(dir, newFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(filePath) // Clean up on error
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return "/uploads/avatars/" + userID + "/" + newFilename, nil
}

// RemoveUserFiles deletes everything uploaded by the given user. Used by
// account deletion.
func (s *LocalBlobStore) RemoveUserFiles(userID string) error {
	if userID == "" {
		return nil
	}
	return os.RemoveAll(filepath.Join(s.uploadDir, "avatars", userID))
}
