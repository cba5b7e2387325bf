package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates inactive buyer by default", func(t *testing.T) {
		user, err := NewUser("Ivan@Example.com", "s3cret-pass", "Ivan", "Petrov", "Acme", "Manager", "")
		require.NoError(t, err)
		assert.Equal(t, "ivan@example.com", user.Email)
		assert.Equal(t, UserTypeBuyer, user.Type)
		assert.False(t, user.IsActive)
		assert.False(t, user.IsStaff)
		assert.False(t, user.IsSuperuser)
	})

	t.Run("creates shop user", func(t *testing.T) {
		user, err := NewUser("shop@example.com", "s3cret-pass", "Anna", "Smirnova", "Svyaznoy", "Owner", UserTypeShop)
		require.NoError(t, err)
		assert.True(t, user.IsShop())
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := NewUser("not-an-email", "s3cret-pass", "Ivan", "Petrov", "", "", UserTypeBuyer)
		assert.Error(t, err)
	})

	t.Run("rejects empty names", func(t *testing.T) {
		_, err := NewUser("a@example.com", "s3cret-pass", "", "Petrov", "", "", UserTypeBuyer)
		assert.Error(t, err)

		_, err = NewUser("a@example.com", "s3cret-pass", "Ivan", "", "", "", UserTypeBuyer)
		assert.Error(t, err)
	})

	t.Run("rejects unknown user type", func(t *testing.T) {
		_, err := NewUser("a@example.com", "s3cret-pass", "Ivan", "Petrov", "", "", UserType("admin"))
		assert.Error(t, err)
	})

	t.Run("rejects weak passwords", func(t *testing.T) {
		_, err := NewUser("a@example.com", "12345678", "Ivan", "Petrov", "", "", UserTypeBuyer)
		assert.Error(t, err)
	})
}

func TestUser_Passwords(t *testing.T) {
	user, err := NewUser("a@example.com", "s3cret-pass", "Ivan", "Petrov", "", "", UserTypeBuyer)
	require.NoError(t, err)

	assert.True(t, user.VerifyPassword("s3cret-pass"))
	assert.False(t, user.VerifyPassword("wrong-pass"))
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)

	require.NoError(t, user.SetPassword("another-pass1"))
	assert.True(t, user.VerifyPassword("another-pass1"))
	assert.False(t, user.VerifyPassword("s3cret-pass"))

	assert.Error(t, user.SetPassword("1234567890"))
}

func TestUser_Activate(t *testing.T) {
	user, err := NewUser("a@example.com", "s3cret-pass", "Ivan", "Petrov", "", "", UserTypeBuyer)
	require.NoError(t, err)

	before := user.UpdatedAt
	user.Activate()
	assert.True(t, user.IsActive)
	assert.False(t, user.UpdatedAt.Before(before))

	// second activation is a no-op
	updated := user.UpdatedAt
	user.Activate()
	assert.Equal(t, updated, user.UpdatedAt)
}

func TestUser_ChangeEmail(t *testing.T) {
	user, err := NewUser("a@example.com", "s3cret-pass", "Ivan", "Petrov", "", "", UserTypeBuyer)
	require.NoError(t, err)

	require.NoError(t, user.ChangeEmail("New@Example.com"))
	assert.Equal(t, "new@example.com", user.Email)

	assert.Error(t, user.ChangeEmail("broken"))
	assert.Equal(t, "new@example.com", user.Email)
}

func TestUser_IsAdmin(t *testing.T) {
	user, err := NewUser("a@example.com", "s3cret-pass", "Ivan", "Petrov", "", "", UserTypeBuyer)
	require.NoError(t, err)
	assert.False(t, user.IsAdmin())

	user.IsStaff = true
	assert.True(t, user.IsAdmin())

	user.IsStaff = false
	user.IsSuperuser = true
	assert.True(t, user.IsAdmin())
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"accepts mixed password", "s3cret-pass", false},
		{"rejects short password", "abc1234", true},
		{"rejects all-numeric password", "12345678", true},
		{"accepts long numeric with letter", "12345678a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewContact(t *testing.T) {
	user, err := NewUser("a@example.com", "s3cret-pass", "Ivan", "Petrov", "", "", UserTypeBuyer)
	require.NoError(t, err)

	t.Run("creates contact with required fields", func(t *testing.T) {
		contact, err := NewContact(user.ID, "Moscow", "Tverskaya", "1", "", "", "10", "+79001234567")
		require.NoError(t, err)
		assert.True(t, contact.BelongsTo(user.ID))
	})

	t.Run("requires city street and phone", func(t *testing.T) {
		_, err := NewContact(user.ID, "", "Tverskaya", "", "", "", "", "+79001234567")
		assert.Error(t, err)

		_, err = NewContact(user.ID, "Moscow", "", "", "", "", "", "+79001234567")
		assert.Error(t, err)

		_, err = NewContact(user.ID, "Moscow", "Tverskaya", "", "", "", "", "")
		assert.Error(t, err)
	})
}

func TestConfirmEmailToken(t *testing.T) {
	user, err := NewUser("a@example.com", "s3cret-pass", "Ivan", "Petrov", "", "", UserTypeBuyer)
	require.NoError(t, err)

	t.Run("issues random keys", func(t *testing.T) {
		first, err := NewConfirmEmailToken(user.ID, TokenPurposeConfirm)
		require.NoError(t, err)
		second, err := NewConfirmEmailToken(user.ID, TokenPurposeConfirm)
		require.NoError(t, err)
		assert.NotEqual(t, first.Key, second.Key)
		assert.Len(t, first.Key, 40)
	})

	t.Run("expires after 24 hours", func(t *testing.T) {
		token, err := NewConfirmEmailToken(user.ID, TokenPurposeReset)
		require.NoError(t, err)
		assert.False(t, token.IsExpired(token.CreatedAt.Add(23*time.Hour)))
		assert.True(t, token.IsExpired(token.CreatedAt.Add(25*time.Hour)))
	})

	t.Run("rejects unknown purpose", func(t *testing.T) {
		_, err := NewConfirmEmailToken(user.ID, TokenPurpose("other"))
		assert.Error(t, err)
	})
}
