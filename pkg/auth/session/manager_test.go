package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	values map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: map[string]string{}}
}

func (f *fakeStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	switch v := value.(type) {
	case string:
		f.values[key] = v
	case []byte:
		f.values[key] = string(v)
	}
	return nil
}

func (f *fakeStore) Get(_ context.Context, key string) (string, error) {
	if v, ok := f.values[key]; ok {
		return v, nil
	}
	return "", redislib.Nil
}

func (f *fakeStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func (f *fakeStore) Expire(_ context.Context, _ string, _ time.Duration) error {
	return nil
}

type fakeKeyer struct{}

func (fakeKeyer) SessionKey(sessionID string) string {
	return "test:session:" + sessionID
}

func newTestManager() (*Manager, *fakeStore) {
	store := newFakeStore()
	return &Manager{store: store, keyer: fakeKeyer{}, ttl: time.Hour}, store
}

func TestPutAndGetRoundTrip(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	userID := uuid.New()
	id := NewSessionID()
	require.NoError(t, m.Put(ctx, id, Record{UserID: &userID}))

	record, err := m.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, record.UserID)
	assert.Equal(t, userID, *record.UserID)
	assert.Empty(t, record.AdminCapability)
}

func TestGetMissingSession(t *testing.T) {
	m, _ := newTestManager()
	_, err := m.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestRegenerateInvalidatesOldID(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	oldID := NewSessionID()
	require.NoError(t, m.Put(ctx, oldID, Record{}))

	newID, err := m.Regenerate(ctx, oldID, Record{AdminCapability: "token"})
	require.NoError(t, err)
	require.NotEqual(t, oldID, newID)

	_, err = m.Get(ctx, oldID)
	assert.ErrorIs(t, err, ErrNoSession)

	record, err := m.Get(ctx, newID)
	require.NoError(t, err)
	assert.Equal(t, "token", record.AdminCapability)
}

func TestDestroyRemovesRecord(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	id := NewSessionID()
	require.NoError(t, m.Put(ctx, id, Record{AdminCapability: "token"}))
	require.NoError(t, m.Destroy(ctx, id))

	_, err := m.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNoSession)
}
