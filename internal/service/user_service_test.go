package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacthub/internal/models"
)

func newUserService(users UserStore) *UserService {
	return NewUserService(users, nil, testConfig(), zerolog.Nop())
}

func TestAdminCannotManageOwnRow(t *testing.T) {
	users := newFakeUserStore(
		models.User{ID: "a1", Role: models.UserRoleAdmin, Status: models.UserStatusActive},
	)
	svc := newUserService(users)
	actor := models.User{ID: "a1", Role: models.UserRoleAdmin}

	status := models.UserStatusInactive
	_, err := svc.Update(context.Background(), actor, "a1", UserUpdateInput{Status: &status})
	assert.ErrorIs(t, err, ErrTargetProtected)
	assert.Empty(t, users.updates)

	err = svc.Delete(context.Background(), actor, "a1")
	assert.ErrorIs(t, err, ErrTargetProtected)
	assert.Empty(t, users.deleted)
}

func TestSuperAdminRowsAreProtected(t *testing.T) {
	users := newFakeUserStore(
		models.User{ID: "s1", Role: models.UserRoleSuperAdmin, Status: models.UserStatusActive},
	)
	svc := newUserService(users)
	actor := models.User{ID: "a1", Role: models.UserRoleAdmin}

	status := models.UserStatusInactive
	_, err := svc.Update(context.Background(), actor, "s1", UserUpdateInput{Status: &status})
	assert.ErrorIs(t, err, ErrTargetProtected)

	err = svc.Delete(context.Background(), actor, "s1")
	assert.ErrorIs(t, err, ErrTargetProtected)
	assert.Empty(t, users.deleted)
}

func TestUpdateAppliesStatusChange(t *testing.T) {
	users := newFakeUserStore(
		models.User{ID: "u1", Role: models.UserRoleUser, Status: models.UserStatusInactive},
	)
	svc := newUserService(users)
	actor := models.User{ID: "a1", Role: models.UserRoleAdmin}

	status := models.UserStatusActive
	updated, err := svc.Update(context.Background(), actor, "u1", UserUpdateInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusActive, updated.Status)
}

func TestDeleteRemovesRegularUser(t *testing.T) {
	users := newFakeUserStore(
		models.User{ID: "u1", Role: models.UserRoleUser, Status: models.UserStatusActive},
	)
	svc := newUserService(users)
	actor := models.User{ID: "a1", Role: models.UserRoleAdmin}

	require.NoError(t, svc.Delete(context.Background(), actor, "u1"))
	assert.Equal(t, []string{"u1"}, users.deleted)
}
