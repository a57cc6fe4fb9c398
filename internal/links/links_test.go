package links

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGet(t *testing.T) {
	store := New()
	ctx := context.Background()

	link, err := store.Create(ctx, "https://example.com", "owner-1")
	require.NoError(t, err)
	require.Len(t, link.ShortID, 6)

	stored, found := store.Get(ctx, link.ShortID)
	require.True(t, found)
	assert.Equal(t, "https://example.com", stored.LongURL)
	assert.Equal(t, "owner-1", stored.OwnerID)
}

func TestCreateSameInputsDifferentIDs(t *testing.T) {
	store := New()
	ctx := context.Background()

	first, err := store.Create(ctx, "https://example.com", "owner-1")
	require.NoError(t, err)
	second, err := store.Create(ctx, "https://example.com", "owner-1")
	require.NoError(t, err)

	assert.NotEqual(t, first.ShortID, second.ShortID)
}

func TestGetUnknown(t *testing.T) {
	store := New()

	_, found := store.Get(context.Background(), "nosuch")
	assert.False(t, found)
}

func TestListByOwnerScoping(t *testing.T) {
	store := New()
	ctx := context.Background()

	first, err := store.Create(ctx, "https://a.example.com", "owner-1")
	require.NoError(t, err)
	_, err = store.Create(ctx, "https://b.example.com", "owner-2")
	require.NoError(t, err)
	second, err := store.Create(ctx, "https://c.example.com", "owner-1")
	require.NoError(t, err)

	owned := store.ListByOwner(ctx, "owner-1")
	require.Len(t, owned, 2)
	for _, link := range owned {
		assert.Equal(t, "owner-1", link.OwnerID)
	}

	// Insertion order.
	assert.Equal(t, first.ShortID, owned[0].ShortID)
	assert.Equal(t, second.ShortID, owned[1].ShortID)

	assert.Empty(t, store.ListByOwner(ctx, "owner-3"))
}

func TestUpdate(t *testing.T) {
	store := New()
	ctx := context.Background()

	link, err := store.Create(ctx, "https://example.com", "owner-1")
	require.NoError(t, err)

	err = store.Update(ctx, link.ShortID, "https://updated.example.com")
	require.NoError(t, err)

	stored, found := store.Get(ctx, link.ShortID)
	require.True(t, found)
	assert.Equal(t, "https://updated.example.com", stored.LongURL)
	assert.Equal(t, "owner-1", stored.OwnerID, "owner must not change on update")

	err = store.Update(ctx, "nosuch", "https://example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	store := New()
	ctx := context.Background()

	link, err := store.Create(ctx, "https://example.com", "owner-1")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, link.ShortID))

	_, found := store.Get(ctx, link.ShortID)
	assert.False(t, found)
	assert.Empty(t, store.ListByOwner(ctx, "owner-1"))

	err = store.Delete(ctx, link.ShortID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetReturnsCopy(t *testing.T) {
	store := New()
	ctx := context.Background()

	link, err := store.Create(ctx, "https://example.com", "owner-1")
	require.NoError(t, err)

	stored, found := store.Get(ctx, link.ShortID)
	require.True(t, found)
	stored.LongURL = "https://mutated.example.com"

	fresh, found := store.Get(ctx, link.ShortID)
	require.True(t, found)
	assert.Equal(t, "https://example.com", fresh.LongURL)
}
