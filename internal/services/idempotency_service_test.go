package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotency_RememberThenLookup(t *testing.T) {
	s := NewIdempotencyService(newServiceDB(t), time.Hour)

	_, ok, err := s.Lookup(bg, "a@x.com", "POST /surveys", "k1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Remember(bg, "a@x.com", "POST /surveys", "k1", 1000, 201))
	id, ok, err := s.Lookup(bg, "a@x.com", "POST /surveys", "k1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(1000), id)

	exists, err := s.Exists(bg, "a@x.com", "POST /surveys", "k1", time.Now())
	require.NoError(t, err)
	assert.True(t, exists)

	// Keys are scoped per user and per endpoint.
	_, ok, _ = s.Lookup(bg, "b@x.com", "POST /surveys", "k1")
	assert.False(t, ok)
	_, ok, _ = s.Lookup(bg, "a@x.com", "POST /questions", "k1")
	assert.False(t, ok)
}

func TestIdempotency_FirstWriterWins(t *testing.T) {
	s := NewIdempotencyService(newServiceDB(t), time.Hour)
	require.NoError(t, s.Remember(bg, "a@x.com", "POST /surveys", "k1", 1000, 201))
	require.NoError(t, s.Remember(bg, "a@x.com", "POST /surveys", "k1", 2000, 201))

	id, _, err := s.Lookup(bg, "a@x.com", "POST /surveys", "k1")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), id)
}

func TestIdempotency_EmptyKeyIsNotRecorded(t *testing.T) {
	db := newServiceDB(t)
	s := NewIdempotencyService(db, 0)
	assert.Equal(t, 24*time.Hour, s.TTL)
	require.NoError(t, s.Remember(bg, "a@x.com", "POST /surveys", "", 1000, 201))

	var n int64
	require.NoError(t, db.Table("idempotency").Count(&n).Error)
	assert.Zero(t, n)
}

func TestIdempotency_ExpiryAndPurge(t *testing.T) {
	s := NewIdempotencyService(newServiceDB(t), time.Minute)
	require.NoError(t, s.Remember(bg, "a@x.com", "POST /surveys", "k1", 1000, 201))

	s.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, ok, err := s.Lookup(bg, "a@x.com", "POST /surveys", "k1")
	require.NoError(t, err)
	assert.False(t, ok, "expired record must not replay")

	n, err := s.Purge(bg)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
