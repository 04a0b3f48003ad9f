package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hatchery/hatchd/internal/backend/store"
	"github.com/hatchery/hatchd/internal/backend/store/memory"
)

func TestItemService_CRUD(t *testing.T) {
	svc := &ItemService{Store: memory.NewStore()}

	created, err := svc.CreateItem(t.Context(), "Plumbus", 6.5)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Plumbus", created.Name)

	got, err := svc.GetItem(t.Context(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)

	updated, err := svc.UpdateItem(t.Context(), created.ID, "Plumbus v2", 7.25)
	require.NoError(t, err)
	require.Equal(t, "Plumbus v2", updated.Name)
	require.Equal(t, 7.25, updated.Price)

	list, err := svc.ListItems(t.Context())
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.DeleteItem(t.Context(), created.ID))
	_, err = svc.GetItem(t.Context(), created.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestItemService_MissingItem(t *testing.T) {
	svc := &ItemService{Store: memory.NewStore()}

	_, err := svc.GetItem(t.Context(), "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.UpdateItem(t.Context(), "missing", "x", 1)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, svc.DeleteItem(t.Context(), "missing"), store.ErrNotFound)
}
