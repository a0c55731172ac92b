package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input string
		role  Role
		ok    bool
	}{
		{"user", RoleUser, true},
		{"manager", RoleManager, true},
		{"admin", RoleAdmin, true},
		{"Admin", "", false},
		{"superuser", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			role, ok := ParseRole(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.role, role)
		})
	}
}

func TestDefaultRoleIsLeastPrivileged(t *testing.T) {
	assert.Equal(t, RoleUser, DefaultRole)
}

func TestRoleValid(t *testing.T) {
	for _, role := range AllRoles() {
		assert.True(t, role.Valid(), role.String())
	}
	assert.False(t, Role("root").Valid())
}
