package sheets

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_EnsureSheetOnce(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	created, err := store.EnsureSheet(ctx, Kids)
	require.NoError(t, err)
	assert.True(t, created)

	require.NoError(t, store.AppendRow(ctx, Kids, []string{"Ava"}))

	created, err = store.EnsureSheet(ctx, Kids)
	require.NoError(t, err)
	assert.False(t, created)

	assert.Equal(t, Kids.Headers, store.Header("Kids"))
	assert.Equal(t, [][]string{{"Ava"}}, store.Rows("Kids"))
}

func TestMemoryStore_AppendToMissingSheet(t *testing.T) {
	store := NewMemoryStore()
	err := store.AppendRow(context.Background(), Mentors, []string{"x"})
	assert.Error(t, err)
	assert.Equal(t, 1, store.AppendCalls())
}

func TestMemoryStore_InjectedErrors(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	boom := errors.New("quota exceeded")
	store.AppendErr["Parents"] = boom

	_, err := store.EnsureSheet(ctx, Parents)
	require.NoError(t, err)
	assert.ErrorIs(t, store.AppendRow(ctx, Parents, []string{"p"}), boom)
	assert.Nil(t, store.Rows("Parents"))
}
