package password

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestHash_SaltedButVerifiable(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 2)
	ctx := context.Background()

	first, err := h.Hash(ctx, "securePassword123")
	require.NoError(t, err)
	second, err := h.Hash(ctx, "securePassword123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotEqual(t, "securePassword123", first)
	assert.True(t, h.Verify(ctx, "securePassword123", first))
	assert.True(t, h.Verify(ctx, "securePassword123", second))
}

func TestVerify_WrongPassword(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 1)
	ctx := context.Background()

	hash, err := h.Hash(ctx, "securePassword123")
	require.NoError(t, err)

	assert.False(t, h.Verify(ctx, "SecurePassword123", hash))
	assert.False(t, h.Verify(ctx, "securePassword123 ", hash))
	assert.False(t, h.Verify(ctx, "securePassword123", "not-a-hash"))
}

func TestHash_CancelledContext(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Hash(ctx, "whatever")
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, h.Verify(ctx, "whatever", "$2a$04$abc"))
}

func TestHash_ConcurrentCallers(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 2)
	ctx := context.Background()

	var wg sync.WaitGroup
	hashes := make([]string, 8)
	for i := range hashes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			hashes[i], _ = h.Hash(ctx, "pw-123456")
		}(i)
	}
	wg.Wait()

	for _, hash := range hashes {
		assert.True(t, h.Verify(ctx, "pw-123456", hash))
	}
}

func TestNewHasher_Defaults(t *testing.T) {
	assert.Equal(t, DefaultCost, NewHasher(0, 0).Cost())
	assert.Equal(t, bcrypt.MinCost, NewHasher(1, 1).Cost())
	assert.False(t, ValidatePassword("12345"))
	assert.True(t, ValidatePassword("123456"))
}
