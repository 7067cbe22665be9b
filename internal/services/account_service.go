package services

import (
	"context"
	"fmt"
	"log"

	"github.com/Tmy-andy/profile/internal/storage"
)

// AccountService handles the danger-zone deletion: the settings document,
// the user's uploaded files and the in-memory session all go.
type AccountService struct {
	store    storage.DocumentStore
	blobs    BlobStore
	settings *SettingsService
}

func NewAccountService(store storage.DocumentStore, blobs BlobStore, settings *SettingsService) *AccountService {
	return &AccountService{store: store, blobs: blobs, settings: settings}
}

// DeleteAccount removes all data associated with the given UID. Blob cleanup
// is best-effort: losing orphaned avatar files is preferable to leaving the
// settings document behind.
func (s *AccountService) DeleteAccount(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}

	if err := s.store.Delete(ctx, usersCollection, userID); err != nil {
		return fmt.Errorf("DeleteAccount: %w", err)
	}

	if err := s.blobs.RemoveUserFiles(userID); err != nil {
		log.Printf("[DeleteAccount] user=%s blob cleanup error=%v", userID, err)
	}

	s.settings.Release(userID)
	return nil
}
