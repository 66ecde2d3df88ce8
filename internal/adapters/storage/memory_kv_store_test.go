package storage

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreGetAbsentKey(t *testing.T) {
	store := NewMemoryKeyValueStore()

	value, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestMemoryStoreSetGetRemove(t *testing.T) {
	store := NewMemoryKeyValueStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte(`{"a":1}`)))

	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), value)

	require.NoError(t, store.Remove(ctx, "k"))

	value, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	store := NewMemoryKeyValueStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("abc")))

	value, _ := store.Get(ctx, "k")
	value[0] = 'X'

	fresh, _ := store.Get(ctx, "k")
	assert.Equal(t, []byte("abc"), fresh, "mutating a returned slice must not touch the store")
}

func TestMemoryStoreClear(t *testing.T) {
	store := NewMemoryKeyValueStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", []byte("1")))
	require.NoError(t, store.Set(ctx, "b", []byte("2")))
	require.NoError(t, store.Clear(ctx))

	for _, key := range []string{"a", "b"} {
		value, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, value)
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	store := NewMemoryKeyValueStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set(ctx, "shared", []byte("value"))
		}()
		go func() {
			defer wg.Done()
			_, _ = store.Get(ctx, "shared")
		}()
	}
	wg.Wait()

	value, err := store.Get(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), value)
}
