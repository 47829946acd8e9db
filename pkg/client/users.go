package client

import (
	"context"
	"net/http"
)

// UserRepository exposes the admin-only user management operations. The
// server enforces authorization; CanManage exists so a UI can hide
// affordances that would be rejected anyway.
type UserRepository struct {
	client *Client
}

type UserUpdate struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"`
	Role      *Role   `json:"role,omitempty"`
	Status    *Status `json:"status,omitempty"`
}

func (r *UserRepository) List(ctx context.Context) ([]AdminUser, error) {
	var users []AdminUser
	if err := r.client.doJSON(ctx, http.MethodGet, "/api/users", nil, true, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, update UserUpdate) (AdminUser, error) {
	var user AdminUser
	if err := r.client.doJSON(ctx, http.MethodPut, "/api/users/"+id, update, true, &user); err != nil {
		return AdminUser{}, err
	}
	return user, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.client.doJSON(ctx, http.MethodDelete, "/api/users/"+id, nil, true, nil)
}

func (r *UserRepository) Activate(ctx context.Context, id string) (AdminUser, error) {
	status := StatusActive
	return r.Update(ctx, id, UserUpdate{Status: &status})
}

func (r *UserRepository) Deactivate(ctx context.Context, id string) (AdminUser, error) {
	status := StatusInactive
	return r.Update(ctx, id, UserUpdate{Status: &status})
}

// CanManage reports whether management actions should be offered against
// the target row. Never true for the actor's own row or a super-admin row.
func CanManage(actor *User, target AdminUser) bool {
	if actor == nil {
		return false
	}
	if actor.ID == target.ID {
		return false
	}
	if target.Role == RoleSuperAdmin {
		return false
	}
	return IsAdmin(actor)
}
