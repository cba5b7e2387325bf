package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retail/backend/internal/domain/identity"
	"github.com/retail/backend/internal/domain/shared"
)

func TestGormUserRepository_FindByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "buyer@example.com", identity.UserTypeBuyer)

	t.Run("finds by lowercased email", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "Buyer@Example.COM")
		require.NoError(t, err)
		assert.Equal(t, "buyer@example.com", found.Email)
	})

	t.Run("returns not found for unknown email", func(t *testing.T) {
		_, err := repo.FindByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormUserRepository_ExistsByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "taken@example.com", identity.UserTypeBuyer)

	exists, err := repo.ExistsByEmail(ctx, "Taken@Example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "free@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormUserRepository_SaveWithLock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "locked@example.com", identity.UserTypeBuyer)

	t.Run("bumps version on success", func(t *testing.T) {
		user.FirstName = "Pyotr"
		require.NoError(t, repo.SaveWithLock(ctx, user))
		assert.Equal(t, 2, user.Version)

		reloaded, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Pyotr", reloaded.FirstName)
		assert.Equal(t, 2, reloaded.Version)
	})

	t.Run("rejects a stale version", func(t *testing.T) {
		stale := *user
		stale.Version = 1
		err := repo.SaveWithLock(ctx, &stale)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestGormUserRepository_FindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "anna@example.com", identity.UserTypeBuyer)
	seedUser(t, db, "boris@example.com", identity.UserTypeShop)
	seedUser(t, db, "clara@example.com", identity.UserTypeBuyer)

	t.Run("searches by email", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "boris"
		users, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "boris@example.com", users[0].Email)
	})

	t.Run("filters by type", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Fields = map[string]string{"type": "buyer"}
		users, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, users, 2)

		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.EqualValues(t, 2, count)
	})

	t.Run("paginates", func(t *testing.T) {
		filter := shared.Filter{Limit: 2, OrderBy: "email"}
		users, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "anna@example.com", users[0].Email)
	})
}

func TestGormContactRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormContactRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "owner@example.com", identity.UserTypeBuyer)
	other := seedUser(t, db, "other@example.com", identity.UserTypeBuyer)

	first, err := identity.NewContact(user.ID, "Moscow", "Tverskaya", "1", "", "", "", "+79990000001")
	require.NoError(t, err)
	second, err := identity.NewContact(user.ID, "Kazan", "Bauman", "5", "", "", "", "+79990000002")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	t.Run("lists contacts of a user", func(t *testing.T) {
		contacts, err := repo.FindByUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Len(t, contacts, 2)
	})

	t.Run("deletes only the user's own contacts", func(t *testing.T) {
		deleted, err := repo.DeleteByUser(ctx, other.ID, []uuid.UUID{first.ID})
		require.NoError(t, err)
		assert.EqualValues(t, 0, deleted)

		deleted, err = repo.DeleteByUser(ctx, user.ID, []uuid.UUID{first.ID, second.ID})
		require.NoError(t, err)
		assert.EqualValues(t, 2, deleted)

		contacts, err := repo.FindByUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, contacts)
	})
}

func TestGormConfirmEmailTokenRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormConfirmEmailTokenRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "pending@example.com", identity.UserTypeBuyer)
	token, err := identity.NewConfirmEmailToken(user.ID, identity.TokenPurposeConfirm)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, token))

	t.Run("finds by key and purpose", func(t *testing.T) {
		found, err := repo.FindByKey(ctx, token.Key, identity.TokenPurposeConfirm)
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.UserID)

		_, err = repo.FindByKey(ctx, token.Key, identity.TokenPurposeReset)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("deletes all tokens of a user for a purpose", func(t *testing.T) {
		require.NoError(t, repo.DeleteByUser(ctx, user.ID, identity.TokenPurposeConfirm))
		_, err := repo.FindByKey(ctx, token.Key, identity.TokenPurposeConfirm)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
