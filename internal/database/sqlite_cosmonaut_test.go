package database

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) CosmonautStore {
	t.Helper()
	db, store, err := Connect(context.Background(), DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return store
}

func TestSQLiteStore_InsertThenList(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	id1, err := store.Insert(ctx, "Yuri", 27)
	require.NoError(t, err)
	id2, err := store.Insert(ctx, "Valentina", 26)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id1)
	assert.NotEqual(t, id1, id2)

	list, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Cosmonaut{
		{ID: id1, Name: "Yuri", Age: 27},
		{ID: id2, Name: "Valentina", Age: 26},
	}, list)
}

func TestSQLiteStore_UpdateTouchesOnlyTarget(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	id1, err := store.Insert(ctx, "Yuri", 27)
	require.NoError(t, err)
	id2, err := store.Insert(ctx, "Gherman", 25)
	require.NoError(t, err)

	n, err := store.Update(ctx, id1, "Yuri", 28)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Cosmonaut{
		{ID: id1, Name: "Yuri", Age: 28},
		{ID: id2, Name: "Gherman", Age: 25},
	}, list)
}

func TestSQLiteStore_UpdateMissing(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Insert(ctx, "Yuri", 27)
	require.NoError(t, err)

	n, err := store.Update(ctx, 42, "Alexei", 30)
	require.NoError(t, err)
	assert.Zero(t, n)

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Yuri", list[0].Name)
}

func TestSQLiteStore_DeleteTwice(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	id, err := store.Insert(ctx, "Yuri", 27)
	require.NoError(t, err)

	n, err := store.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = store.Delete(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, n)

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSQLiteStore_IDsNotReused(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Insert(ctx, "Yuri", 27)
	require.NoError(t, err)
	last, err := store.Insert(ctx, "Valentina", 26)
	require.NoError(t, err)

	_, err = store.Delete(ctx, last)
	require.NoError(t, err)

	next, err := store.Insert(ctx, "Alexei", 30)
	require.NoError(t, err)
	assert.Greater(t, next, last)
}

func TestConnect_UnknownDriver(t *testing.T) {
	_, _, err := Connect(context.Background(), "oracle", "")
	require.ErrorIs(t, err, ErrUnknownDriver)
}

func TestSQLiteStore_AgeKeeps64Bits(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	id, err := store.Insert(ctx, "Yuri", math.MaxInt64)
	require.NoError(t, err)
	affected, err := store.Update(ctx, id, "Yuri", math.MinInt64)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, math.MinInt64, list[0].Age)
}

func TestPgSchema_64BitColumns(t *testing.T) {
	assert.Contains(t, pgSchema, "id BIGSERIAL PRIMARY KEY")
	assert.Contains(t, pgSchema, "age BIGINT NOT NULL")
}
