package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser(uuid.New(), "Plaza.Admin", "secret1234", UserRoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, "plaza.admin", user.Username)
	assert.Equal(t, UserRoleAdmin, user.Role)
	assert.Equal(t, UserStatusPending, user.Status)
	assert.True(t, user.VerifyPassword("secret1234"))
	assert.False(t, user.VerifyPassword("wrong"))
}

func TestNewUser_Validation(t *testing.T) {
	plazaID := uuid.New()

	tests := []struct {
		name     string
		username string
		password string
		role     UserRole
	}{
		{"empty username", "", "secret1234", UserRoleAdmin},
		{"short username", "ab", "secret1234", UserRoleAdmin},
		{"bad characters", "admin!", "secret1234", UserRoleAdmin},
		{"short password", "admin", "ab1", UserRoleAdmin},
		{"password without digit", "admin", "secretpass", UserRoleAdmin},
		{"password without letter", "admin", "12345678", UserRoleAdmin},
		{"invalid role", "admin", "secret1234", UserRole("SUPERVISOR")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(plazaID, tt.username, tt.password, tt.role)
			assert.Error(t, err)
		})
	}
}

func TestNewBusinessUser(t *testing.T) {
	businessID := uuid.New()
	user, err := NewBusinessUser(uuid.New(), businessID, "alnoor", "secret1234")
	require.NoError(t, err)

	assert.Equal(t, UserRoleBusiness, user.Role)
	assert.Equal(t, UserStatusActive, user.Status)
	require.NotNil(t, user.BusinessID)
	assert.Equal(t, businessID, *user.BusinessID)
	assert.False(t, user.Role.CanManagePlaza())

	_, err = NewBusinessUser(uuid.New(), uuid.Nil, "alnoor", "secret1234")
	assert.Error(t, err)
}

func TestUserRoleCanManagePlaza(t *testing.T) {
	assert.True(t, UserRoleOwner.CanManagePlaza())
	assert.True(t, UserRoleAdmin.CanManagePlaza())
	assert.False(t, UserRoleBusiness.CanManagePlaza())
}

func TestUserChangePassword(t *testing.T) {
	user, err := NewActiveUser(uuid.New(), "admin", "secret1234", UserRoleAdmin)
	require.NoError(t, err)

	err = user.ChangePassword("wrongpass1", "newsecret99")
	assert.Error(t, err)

	err = user.ChangePassword("secret1234", "newsecret99")
	require.NoError(t, err)
	assert.True(t, user.VerifyPassword("newsecret99"))
	assert.False(t, user.VerifyPassword("secret1234"))
}

func TestUserLockout(t *testing.T) {
	user, err := NewActiveUser(uuid.New(), "admin", "secret1234", UserRoleAdmin)
	require.NoError(t, err)
	assert.True(t, user.CanLogin())

	locked := user.RecordLoginFailure(3, time.Hour)
	assert.False(t, locked)
	locked = user.RecordLoginFailure(3, time.Hour)
	assert.False(t, locked)
	locked = user.RecordLoginFailure(3, time.Hour)
	assert.True(t, locked)

	assert.True(t, user.IsLocked())
	assert.False(t, user.CanLogin())

	require.NoError(t, user.Unlock())
	assert.True(t, user.CanLogin())
	assert.Equal(t, 0, user.FailedAttempts)
}

func TestUserExpiredLock(t *testing.T) {
	user, err := NewActiveUser(uuid.New(), "admin", "secret1234", UserRoleAdmin)
	require.NoError(t, err)

	require.NoError(t, user.Lock(time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	assert.False(t, user.IsLocked())
	assert.True(t, user.CanLogin())
}

func TestUserStatusTransitions(t *testing.T) {
	user, err := NewUser(uuid.New(), "admin", "secret1234", UserRoleAdmin)
	require.NoError(t, err)
	assert.False(t, user.CanLogin())

	require.NoError(t, user.Activate())
	assert.True(t, user.CanLogin())
	assert.Error(t, user.Activate())

	require.NoError(t, user.Deactivate())
	assert.False(t, user.CanLogin())
	assert.Error(t, user.Lock(time.Hour))
}

func TestUserRecordLoginSuccess(t *testing.T) {
	user, err := NewActiveUser(uuid.New(), "admin", "secret1234", UserRoleAdmin)
	require.NoError(t, err)
	user.FailedAttempts = 2

	user.RecordLoginSuccess("203.99.60.12")

	assert.Equal(t, 0, user.FailedAttempts)
	assert.Equal(t, "203.99.60.12", user.LastLoginIP)
	assert.NotNil(t, user.LastLoginAt)
}
