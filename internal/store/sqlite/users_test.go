package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/shelfnotes/internal/domain"
	"github.com/listenupapp/shelfnotes/internal/store"
)

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := makeUser(t, s, "Reader")

	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Reader", got.Username)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.True(t, got.LastLoginAt.IsZero())

	got, err = s.GetUserByUsername(ctx, "  READER ")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateUser_UsernameCaseInsensitiveUnique(t *testing.T) {
	s := newTestStore(t)
	makeUser(t, s, "reader")

	dup := &domain.User{Record: domain.Record{ID: "user-dup"}, Username: "READER", PasswordHash: "h"}
	dup.InitTimestamps()
	assert.ErrorIs(t, s.CreateUser(context.Background(), dup), store.ErrAlreadyExists)
}

func TestUpdateUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := makeUser(t, s, "reader")

	u.IsStaff = true
	u.LastLoginAt = time.Now().UTC()
	u.Touch()
	require.NoError(t, s.UpdateUser(ctx, u))

	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.IsStaff)
	assert.True(t, u.LastLoginAt.Equal(got.LastLoginAt))

	assert.ErrorIs(t, s.UpdateUser(ctx, &domain.User{Record: domain.Record{ID: "user-missing"}}), store.ErrNotFound)
}

func TestListUsers(t *testing.T) {
	s := newTestStore(t)
	makeUser(t, s, "a")
	makeUser(t, s, "b")

	users, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
