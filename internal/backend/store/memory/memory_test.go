package memory

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hatchery/hatchd/internal/backend/domain"
	"github.com/hatchery/hatchd/internal/backend/store"
)

func TestUsers_UniqueUsernameAndEmail(t *testing.T) {
	s := NewStore()

	require.NoError(t, s.Users().CreateUser(t.Context(), domain.User{
		ID: "u1", Username: "alice", Email: "alice@example.com", PasswordHash: "x",
	}))

	err := s.Users().CreateUser(t.Context(), domain.User{
		ID: "u2", Username: "alice", Email: "other@example.com", PasswordHash: "x",
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	err = s.Users().CreateUser(t.Context(), domain.User{
		ID: "u3", Username: "bob", Email: "alice@example.com", PasswordHash: "x",
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestUsers_ActivateClearsToken(t *testing.T) {
	s := NewStore()

	token := "confirm-me"
	require.NoError(t, s.Users().CreateUser(t.Context(), domain.User{
		ID: "u1", Username: "alice", PasswordHash: "x", ConfirmationToken: &token,
	}))

	require.NoError(t, s.Users().ActivateUser(t.Context(), "u1", "fingerprint"))

	u, err := s.Users().GetUserByID(t.Context(), "u1")
	require.NoError(t, err)
	require.True(t, u.IsActive)
	require.Nil(t, u.ConfirmationToken)
	require.Equal(t, "fingerprint", *u.ConfirmedTokenHash)

	_, err = s.Users().GetUserByConfirmationToken(t.Context(), token)
	require.ErrorIs(t, err, store.ErrNotFound)

	byHash, err := s.Users().GetUserByConfirmedTokenHash(t.Context(), "fingerprint")
	require.NoError(t, err)
	require.Equal(t, "u1", byHash.ID)
}

func TestItems_ListPreservesInsertionOrder(t *testing.T) {
	s := NewStore()

	for _, id := range []string{"i1", "i2", "i3"} {
		require.NoError(t, s.Items().CreateItem(t.Context(), domain.Item{ID: id, Name: id, Price: 1}))
	}
	require.NoError(t, s.Items().DeleteItem(t.Context(), "i2"))

	items, err := s.Items().ListItems(t.Context())
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "i1", items[0].ID)
	require.Equal(t, "i3", items[1].ID)
}

func TestWithTx_RollbackRestoresState(t *testing.T) {
	s := NewStore()

	require.NoError(t, s.Items().CreateItem(t.Context(), domain.Item{ID: "keep", Name: "keep", Price: 1}))

	err := s.WithTx(t.Context(), func(tx store.Tx) error {
		if err := tx.Items().CreateItem(t.Context(), domain.Item{ID: "drop", Name: "drop", Price: 1}); err != nil {
			return err
		}
		return store.ErrAlreadyExists
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = s.Items().GetItemByID(t.Context(), "drop")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Items().GetItemByID(t.Context(), "keep")
	require.NoError(t, err)
}
