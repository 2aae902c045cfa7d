package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Naitikhacke/Exposia/models"
	"github.com/Naitikhacke/Exposia/pkg"
)

func TestUserGetStripsPasswordHash(t *testing.T) {
	userRepo := newFakeUserRepo()
	user := userRepo.addUser("u1", "alice")
	user.PasswordHash = "bcrypt-hash"
	svc := NewUserService(userRepo)

	byID, err := svc.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, byID.PasswordHash)

	byUsername, err := svc.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, byUsername.PasswordHash)
}

func TestUserGetUnknown(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestUpdateProfilePartial(t *testing.T) {
	userRepo := newFakeUserRepo()
	userRepo.addUser("u1", "alice")
	svc := NewUserService(userRepo)

	bio := "gopher"
	updated, err := svc.UpdateProfile(context.Background(), "u1", &models.UpdateProfileRequest{Bio: &bio})
	require.NoError(t, err)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, "gopher", *updated.Bio)
	// Nil alanlar dokunulmadan kalır.
	assert.Equal(t, "alice", updated.Name)

	name := "Alice G"
	updated, err = svc.UpdateProfile(context.Background(), "u1", &models.UpdateProfileRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alice G", updated.Name)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, "gopher", *updated.Bio)
}

func TestUpdateProfileValidation(t *testing.T) {
	userRepo := newFakeUserRepo()
	userRepo.addUser("u1", "alice")
	svc := NewUserService(userRepo)

	empty := "   "
	_, err := svc.UpdateProfile(context.Background(), "u1", &models.UpdateProfileRequest{Name: &empty})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
}
