// ABOUTME: Tests for the registration-code gate and role-derived permissions
// ABOUTME: Caller-supplied permission flags must never survive into claims

package resolve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfwise/shelfwise-identity/internal/claims"
)

const testAdminCode = "let-me-in"

func TestAdminRegisterGate(t *testing.T) {
	ctx := context.Background()
	fs := newFakeStore()
	r := NewAdminResolver(fs, testAdminCode)

	_, err := r.Register(ctx, RegisterAdminParams{
		Username: "root",
		Email:    "root@example.com",
		Password: "adminpass",
		Code:     "wrong-code",
		Role:     claims.RoleSuperAdmin,
	})
	assert.ErrorIs(t, err, ErrInvalidRegistrationCode)

	_, err = r.Register(ctx, RegisterAdminParams{
		Username: "root",
		Email:    "root@example.com",
		Password: "adminpass",
		Role:     claims.RoleSuperAdmin,
	})
	assert.ErrorIs(t, err, ErrInvalidRegistrationCode)

	// The gate is checked before any field validation.
	_, err = r.Register(ctx, RegisterAdminParams{Code: "wrong-code"})
	assert.ErrorIs(t, err, ErrInvalidRegistrationCode)
}

func TestAdminRegisterEmptyConfiguredCode(t *testing.T) {
	ctx := context.Background()
	r := NewAdminResolver(newFakeStore(), "")

	// An unset code closes the gate entirely, it does not open it.
	_, err := r.Register(ctx, RegisterAdminParams{
		Username: "root",
		Email:    "root@example.com",
		Password: "adminpass",
		Code:     "",
		Role:     claims.RoleSuperAdmin,
	})
	assert.ErrorIs(t, err, ErrInvalidRegistrationCode)
}

func TestAdminRegisterDerivesPermissions(t *testing.T) {
	ctx := context.Background()
	fs := newFakeStore()
	r := NewAdminResolver(fs, testAdminCode)

	cs, err := r.Register(ctx, RegisterAdminParams{
		Username: "moderator",
		Email:    "mod@example.com",
		Password: "adminpass",
		Code:     testAdminCode,
		Role:     claims.RoleContentAdmin,
	})
	require.NoError(t, err)
	assert.False(t, cs.IsSuperAdmin)
	assert.False(t, cs.Permissions.CanManageUsers)
	assert.False(t, cs.Permissions.CanManagePublishers)
	assert.True(t, cs.Permissions.CanManageContent)
	assert.False(t, cs.Permissions.CanManageSystem)

	stored, err := fs.GetAdminByUsername(ctx, "moderator")
	require.NoError(t, err)
	assert.False(t, stored.IsSuperAdmin)
	assert.True(t, stored.CanManageContent)
	assert.False(t, stored.CanManageUsers)
}

func TestAdminRegisterSuperAdmin(t *testing.T) {
	ctx := context.Background()
	r := NewAdminResolver(newFakeStore(), testAdminCode)

	cs, err := r.Register(ctx, RegisterAdminParams{
		Username: "root",
		Email:    "root@example.com",
		Password: "adminpass",
		Code:     testAdminCode,
		Role:     claims.RoleSuperAdmin,
	})
	require.NoError(t, err)
	assert.True(t, cs.IsSuperAdmin)
	assert.True(t, cs.Permissions.CanManageUsers)
	assert.True(t, cs.Permissions.CanManagePublishers)
	assert.True(t, cs.Permissions.CanManageContent)
	assert.True(t, cs.Permissions.CanManageSystem)
}

func TestAdminLogin(t *testing.T) {
	ctx := context.Background()
	fs := newFakeStore()
	r := NewAdminResolver(fs, testAdminCode)

	reg, err := r.Register(ctx, RegisterAdminParams{
		Username: "root",
		Email:    "root@example.com",
		Password: "adminpass",
		Code:     testAdminCode,
		Role:     claims.RoleSuperAdmin,
	})
	require.NoError(t, err)

	got, err := r.Login(ctx, "root", "adminpass")
	require.NoError(t, err)
	assert.Equal(t, reg.AdminID, got.AdminID)
	assert.True(t, got.IsSuperAdmin)

	stored, err := fs.GetAdminByUsername(ctx, "root")
	require.NoError(t, err)
	require.NotNil(t, stored.LastLogin)

	_, err = r.Login(ctx, "root", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = r.Login(ctx, "nobody", "adminpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminLoginInactive(t *testing.T) {
	ctx := context.Background()
	fs := newFakeStore()
	r := NewAdminResolver(fs, testAdminCode)

	cs, err := r.Register(ctx, RegisterAdminParams{
		Username: "root",
		Email:    "root@example.com",
		Password: "adminpass",
		Code:     testAdminCode,
		Role:     claims.RoleSuperAdmin,
	})
	require.NoError(t, err)

	fs.admins[cs.AdminID].IsActive = false

	_, err = r.Login(ctx, "root", "adminpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminLoginDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	r := NewAdminResolver(newFakeStore(), testAdminCode)

	_, err := r.Register(ctx, RegisterAdminParams{
		Username: "root",
		Email:    "root@example.com",
		Password: "adminpass",
		Code:     testAdminCode,
		Role:     claims.RoleSuperAdmin,
	})
	require.NoError(t, err)

	_, err = r.Register(ctx, RegisterAdminParams{
		Username: "root",
		Email:    "other@example.com",
		Password: "adminpass",
		Code:     testAdminCode,
		Role:     claims.RoleContentAdmin,
	})
	assert.ErrorIs(t, err, ErrDuplicateIdentity)
}
