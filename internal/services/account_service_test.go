package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Tmy-andy/profile/internal/models"
	"github.com/Tmy-andy/profile/internal/storage"
)

func TestDeleteAccountRemovesDocumentAndSession(t *testing.T) {
	store := newFakeStore()
	blobs := &fakeBlobs{url: "/uploads/avatars/u1/a.png"}
	svc := NewSettingsService(store, blobs)
	accounts := NewAccountService(store, blobs, svc)
	ctx := context.Background()

	sess, err := svc.Session(ctx, "u1")
	require.NoError(t, err)
	sess.AddSkill("Go")
	require.NoError(t, sess.SaveSkills(ctx))

	require.NoError(t, accounts.DeleteAccount(ctx, "u1"))

	// The stored document is gone.
	var doc models.UserSettings
	err = store.MemoryStore.Get(ctx, "users", "u1", &doc)
	require.ErrorIs(t, err, storage.ErrNotFound)

	// So is the in-memory session: a new one starts from defaults.
	fresh, err := svc.Session(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, fresh.Skills())
}

func TestDeleteAccountRequiresIdentity(t *testing.T) {
	store := newFakeStore()
	svc := NewSettingsService(store, &fakeBlobs{})
	accounts := NewAccountService(store, &fakeBlobs{}, svc)

	require.ErrorIs(t, accounts.DeleteAccount(context.Background(), ""), ErrUnauthenticated)
}
