package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewStore(client)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestCreateAndGet(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, &Data{UserID: 7, UserName: "Jane"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	// The payload lands under the prefixed key with the absolute TTL.
	ttl := mr.TTL(keyPrefix + id)
	assert.Equal(t, Lifetime, ttl)

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.UserID)
	assert.Equal(t, "Jane", got.UserName)
	assert.True(t, got.LoggedIn())
}

func TestGetUnknownID(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveKeepsExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, &Data{UserID: 7})
	require.NoError(t, err)

	// Let some of the lifetime elapse, then write the session back.
	mr.FastForward(10 * time.Minute)
	require.NoError(t, store.Save(ctx, id, &Data{UserID: 7, UserName: "Jane"}))

	// The absolute expiry did not move.
	assert.Equal(t, Lifetime-10*time.Minute, mr.TTL(keyPrefix+id))

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.UserName)
}

func TestSaveDoesNotResurrectExpiredSession(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, &Data{UserID: 7})
	require.NoError(t, err)

	mr.FastForward(Lifetime + time.Second)

	assert.ErrorIs(t, store.Save(ctx, id, &Data{UserID: 7}), ErrNotFound)
	assert.False(t, mr.Exists(keyPrefix+id))
}

func TestExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, &Data{UserID: 7})
	require.NoError(t, err)

	mr.FastForward(Lifetime + time.Second)

	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, &Data{UserID: 7})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, id))
	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is fine.
	assert.NoError(t, store.Delete(ctx, id))
}

func TestFlashesConsumeOnce(t *testing.T) {
	d := &Data{}
	d.Flash("OTP sent successfully")
	d.Flash("Phone number required")

	assert.Equal(t, []string{"OTP sent successfully", "Phone number required"}, d.ConsumeFlashes())
	assert.Empty(t, d.ConsumeFlashes())
}

func TestClearOTP(t *testing.T) {
	d := &Data{OTP: "123456", OTPPhone: "+15550001111", OTPIssuedAt: time.Now(), LastOTPTime: time.Now()}
	d.ClearOTP()

	assert.Empty(t, d.OTP)
	assert.Empty(t, d.OTPPhone)
	assert.True(t, d.OTPIssuedAt.IsZero())
	// The resend gate survives so verification failures cannot bypass it.
	assert.False(t, d.LastOTPTime.IsZero())
}
