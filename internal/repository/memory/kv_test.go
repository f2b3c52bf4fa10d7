package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yubssss/Furniview/pkg/errors"
)

func TestKV_SetGetRemove(t *testing.T) {
	kv := New()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "cart", []byte(`[]`)))

	got, err := kv.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	require.NoError(t, kv.Remove(ctx, "cart"))

	_, err = kv.Get(ctx, "cart")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestKV_Get_ReturnsCopy(t *testing.T) {
	kv := New()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "cart", []byte(`[1]`)))

	got, _ := kv.Get(ctx, "cart")
	got[1] = '9'

	again, _ := kv.Get(ctx, "cart")
	assert.Equal(t, `[1]`, string(again))
}

func TestKV_RemoveAbsentKey(t *testing.T) {
	kv := New()
	assert.NoError(t, kv.Remove(context.Background(), "never-written"))
}
