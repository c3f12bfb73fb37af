package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapStore map[int]string

func (m mapStore) ListPasswords(context.Context) (map[int]string, error) {
	out := make(map[int]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out, nil
}

func (m mapStore) UpdatePassword(_ context.Context, id int, hash string) error {
	m[id] = hash
	return nil
}

func TestRehashPasswords(t *testing.T) {
	hashed, err := HashPassword("already")
	require.NoError(t, err)
	store := mapStore{1: "plain", 2: hashed}
	ctx := context.Background()

	n, err := RehashPasswords(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, CheckPassword(store[1], "plain"))
	assert.Equal(t, hashed, store[2])

	n, err = RehashPasswords(ctx, store)
	require.NoError(t, err)
	assert.Zero(t, n)
}
