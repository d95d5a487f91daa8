package factor

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrFactorNotFound)

	f := Factor{ID: "a", Account: "user@example.com", Issuer: "TimeTrack", Secret: "JBSWY3DPEHPK3PXP"}
	require.NoError(t, store.Save(ctx, f))

	got, err := store.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, f, got)

	require.NoError(t, store.Delete(ctx, "a"))
	assert.ErrorIs(t, store.Delete(ctx, "a"), ErrFactorNotFound)
}

func TestMemoryStoreCancelledContext(t *testing.T) {
	store := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Save(ctx, Factor{ID: "a"}), context.Canceled)
	_, err := store.Load(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Delete(ctx, "a"), context.Canceled)
}

func TestMemoryStoreConcurrent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("f-%d", i)
			assert.NoError(t, store.Save(ctx, Factor{ID: id}))
			_, err := store.Load(ctx, id)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 32; i++ {
		_, err := store.Load(ctx, fmt.Sprintf("f-%d", i))
		assert.NoError(t, err)
	}
}
