package userdb

import (
	"errors"
	"testing"

	"github.com/portfolai/portfolai/internal/common"
	"github.com/portfolai/portfolai/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(common.NewSilentLogger(), t.TempDir())
	if err != nil {
		t.Fatalf("failed to open user store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCreateAndGetUser(t *testing.T) {
	store := newTestStore(t)

	user := &models.User{ID: "id-1", Username: "alice", PasswordHash: "hash"}
	if err := store.CreateUser(user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if user.CreatedAt.IsZero() {
		t.Error("CreateUser should stamp CreatedAt")
	}

	got, err := store.GetUserByUsername("alice")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if got.ID != "id-1" || got.PasswordHash != "hash" {
		t.Errorf("unexpected user %+v", got)
	}
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	store := newTestStore(t)

	if err := store.CreateUser(&models.User{ID: "id-1", Username: "alice"}); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	err := store.CreateUser(&models.User{ID: "id-2", Username: "alice"})
	if !errors.Is(err, common.ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

func TestGetUserByUsername_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetUserByUsername("ghost")
	if !errors.Is(err, common.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
