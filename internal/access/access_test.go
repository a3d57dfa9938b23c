package access

import (
	"testing"

	"github.com/google/uuid"

	"media-review/internal/data/entity"
)

func caller(role entity.UserRole, super bool) *Caller {
	return &Caller{
		ID:          uuid.New(),
		Username:    "someone",
		Role:        role,
		IsSuperuser: super,
	}
}

func TestCanWriteCollection(t *testing.T) {
	tests := []struct {
		name      string
		caller    *Caller
		adminOnly bool
		want      bool
	}{
		{"anonymous cannot create", nil, false, false},
		{"anonymous cannot touch catalog", nil, true, false},
		{"user can create non-admin collection", caller(entity.RoleUser, false), false, true},
		{"user cannot touch catalog", caller(entity.RoleUser, true), true, false},
		{"moderator cannot touch catalog", caller(entity.RoleModerator, false), true, false},
		{"admin can touch catalog", caller(entity.RoleAdmin, false), true, true},
		{"superuser can touch catalog regardless of role", caller(entity.RoleUser, true), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanWriteCollection(tt.caller, tt.adminOnly); got != tt.want {
				t.Errorf("CanWriteCollection() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanWriteObject(t *testing.T) {
	author := caller(entity.RoleUser, false)
	other := caller(entity.RoleUser, false)

	tests := []struct {
		name   string
		caller *Caller
		want   bool
	}{
		{"anonymous", nil, false},
		{"author", author, true},
		{"unrelated user", other, false},
		{"moderator", caller(entity.RoleModerator, false), true},
		{"admin", caller(entity.RoleAdmin, false), true},
		{"superuser", caller(entity.RoleUser, true), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanWriteObject(tt.caller, author.ID); got != tt.want {
				t.Errorf("CanWriteObject() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanChangeRole(t *testing.T) {
	if CanChangeRole(nil) {
		t.Error("anonymous caller must not change roles")
	}
	if CanChangeRole(caller(entity.RoleAdmin, false)) {
		t.Error("plain admin must not change own role")
	}
	if CanChangeRole(caller(entity.RoleUser, true)) {
		t.Error("superuser without admin role must not change own role")
	}
	if !CanChangeRole(caller(entity.RoleAdmin, true)) {
		t.Error("superuser admin must be allowed to change roles")
	}
}
