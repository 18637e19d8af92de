package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("corpus.path", "aulas.txt"))
	require.NoError(t, store.Set("retrieval.max_blocks", int64(4)))
	require.NoError(t, store.Set("retrieval.max_length", 2500.0))
	require.NoError(t, store.Set("llm.temperature", 1))
	require.NoError(t, store.Set("corpus.watch", true))
	require.NoError(t, store.Set("server.tokens", []any{"a=ana", 7, "b=bia"}))

	assert.Equal(t, "aulas.txt", store.GetString("corpus.path"))
	assert.Equal(t, 4, store.GetInt("retrieval.max_blocks"))
	assert.Equal(t, 2500, store.GetInt("retrieval.max_length"))
	assert.InDelta(t, 1.0, store.GetFloat("llm.temperature"), 1e-9)
	assert.True(t, store.GetBool("corpus.watch"))
	assert.Equal(t, []string{"a=ana", "b=bia"}, store.GetStringSlice("server.tokens"))
}

func TestConfigStore_MissingAndWrongTypes(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("corpus.path", 42))

	_, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("corpus.path"))
	assert.Zero(t, store.GetInt("missing"))
	assert.Zero(t, store.GetFloat("corpus.watch"))
	assert.False(t, store.GetBool("corpus.path"))
	assert.Nil(t, store.GetStringSlice("corpus.path"))
}

func TestConfigStore_SeededCopy(t *testing.T) {
	seed := map[string]any{"corpus.path": "a.txt"}
	store := NewConfigStoreWith(seed)
	seed["corpus.path"] = "b.txt"

	assert.Equal(t, "a.txt", store.GetString("corpus.path"))
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("retrieval.max_blocks", n)
			_ = store.GetInt("retrieval.max_blocks")
		}(i)
	}
	wg.Wait()

	assert.GreaterOrEqual(t, store.GetInt("retrieval.max_blocks"), 0)
}
