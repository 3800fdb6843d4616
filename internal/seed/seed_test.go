package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/furniture_supply/internal/auth"
	"github.com/Skotchmaster/furniture_supply/internal/db/dbtest"
	"github.com/Skotchmaster/furniture_supply/internal/repo"
)

func TestDemoSeedsOnce(t *testing.T) {
	ctx := context.Background()
	r := repo.New(dbtest.Open(t))

	wrote, err := Demo(ctx, r)
	require.NoError(t, err)
	require.True(t, wrote)

	wrote, err = Demo(ctx, r)
	require.NoError(t, err)
	require.False(t, wrote)

	stores, err := r.ListStores(ctx)
	require.NoError(t, err)
	require.Len(t, stores, 2)

	acc, err := r.GetStoreByUsername(ctx, "mobl1")
	require.NoError(t, err)
	require.Equal(t, "1", acc.ID)
	require.True(t, auth.CheckPassword(acc.PasswordHash, "123"))

	items, err := r.ListItems(ctx, "cat_1", true)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "item_1", items[0].ID)
	require.EqualValues(t, 15_000_000, items[0].BasePrice)
}
