package kvstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterrepo "marketplace/internal/adapter/repository"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infrastructure/kvstore"
)

type brokenStorage struct {
	repository.Storage
	getErr error
	setErr error
}

func (s *brokenStorage) Get(ctx context.Context, key string) (string, bool, error) {
	if s.getErr != nil {
		return "", false, s.getErr
	}
	return s.Storage.Get(ctx, key)
}

func (s *brokenStorage) Set(ctx context.Context, key, value string) error {
	if s.setErr != nil {
		return s.setErr
	}
	return s.Storage.Set(ctx, key, value)
}

func TestLoadJSON(t *testing.T) {
	ctx := context.Background()
	s := adapterrepo.NewMemoryStorage()

	dst := []string{"keep"}
	assert.False(t, kvstore.LoadJSON(ctx, s, "absent", &dst))
	assert.Equal(t, []string{"keep"}, dst)

	require.NoError(t, s.Set(ctx, "bad", "{oops"))
	assert.False(t, kvstore.LoadJSON(ctx, s, "bad", &dst))
	assert.Equal(t, []string{"keep"}, dst)

	require.NoError(t, kvstore.SaveJSON(ctx, s, "good", []string{"a", "b"}))
	assert.True(t, kvstore.LoadJSON(ctx, s, "good", &dst))
	assert.Equal(t, []string{"a", "b"}, dst)
}

func TestSaveJSON_ReportsWriteError(t *testing.T) {
	s := &brokenStorage{Storage: adapterrepo.NewMemoryStorage(), setErr: errors.New("disk full")}
	assert.Error(t, kvstore.SaveJSON(context.Background(), s, "k", 1))
}

func TestMirrorWrite(t *testing.T) {
	ctx := context.Background()
	s := adapterrepo.NewMemoryStorage()

	ok := kvstore.MirrorWrite(ctx, s, "list", func(items []int) []int { return append(items, 1) })
	require.True(t, ok)
	ok = kvstore.MirrorWrite(ctx, s, "list", func(items []int) []int { return append(items, 2) })
	require.True(t, ok)

	var got []int
	kvstore.LoadJSON(ctx, s, "list", &got)
	assert.Equal(t, []int{1, 2}, got)
}

func TestMirrorWrite_LeavesCorruptPartition(t *testing.T) {
	ctx := context.Background()
	s := adapterrepo.NewMemoryStorage()
	require.NoError(t, s.Set(ctx, "list", "not-json"))

	called := false
	ok := kvstore.MirrorWrite(ctx, s, "list", func(items []int) []int {
		called = true
		return items
	})
	assert.False(t, ok)
	assert.False(t, called)

	raw, _, _ := s.Get(ctx, "list")
	assert.Equal(t, "not-json", raw)
}

func TestMirrorWrite_StorageErrorsAreSwallowed(t *testing.T) {
	ctx := context.Background()

	readFail := &brokenStorage{Storage: adapterrepo.NewMemoryStorage(), getErr: context.DeadlineExceeded}
	assert.False(t, kvstore.MirrorWrite(ctx, readFail, "list", func(items []int) []int { return items }))

	writeFail := &brokenStorage{Storage: adapterrepo.NewMemoryStorage(), setErr: context.DeadlineExceeded}
	assert.False(t, kvstore.MirrorWrite(ctx, writeFail, "list", func(items []int) []int { return append(items, 1) }))
}
