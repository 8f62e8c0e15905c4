package services

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/barbelltracker/internal/client/models"
	"github.com/dmitrijs2005/barbelltracker/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBucket struct {
	mu       sync.Mutex
	keys     map[string]string
	failPath string

	active, peak atomic.Int32
}

func (b *recordingBucket) PutFile(ctx context.Context, key, path string) error {
	n := b.active.Add(1)
	defer b.active.Add(-1)
	for {
		p := b.peak.Load()
		if n <= p || b.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)

	if path == b.failPath {
		return errors.New("connection reset")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.keys == nil {
		b.keys = map[string]string{}
	}
	b.keys[path] = key
	return nil
}

func TestBackupKey(t *testing.T) {
	k := BackupKey(time.Date(2026, 10, 19, 23, 30, 0, 0, time.UTC))
	assert.Regexp(t, regexp.MustCompile(`^library/2026/10/19/[0-9a-f-]{36}\.mp4$`), k)
	assert.NotEqual(t, k, BackupKey(time.Date(2026, 10, 19, 23, 30, 0, 0, time.UTC)))
}

func TestBackup_UploadsPendingOnly(t *testing.T) {
	ctx := context.Background()
	lib := NewLibraryService(setupDB(t), logging.Discard())
	bucket := &recordingBucket{}
	svc := NewBackupService(bucket, lib, 2, logging.Discard())

	done := rec("1")
	done.CloudSynced = true
	in := models.Library{rec("3"), rec("2"), done}

	out, n, err := svc.Backup(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for _, v := range out {
		assert.True(t, v.CloudSynced, v.ID)
	}
	assert.Len(t, bucket.keys, 2)
	assert.NotContains(t, bucket.keys, done.LocalURI)
	assert.False(t, in[0].CloudSynced, "input must not change")
	assert.Equal(t, out, lib.Load(ctx))
}

func TestBackup_RespectsParallelism(t *testing.T) {
	bucket := &recordingBucket{}
	svc := NewBackupService(bucket, NewLibraryService(setupDB(t), logging.Discard()), 2, logging.Discard())

	in := models.Library{rec("1"), rec("2"), rec("3"), rec("4"), rec("5"), rec("6")}
	_, n, err := svc.Backup(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.LessOrEqual(t, bucket.peak.Load(), int32(2))
}

func TestBackup_NothingPending(t *testing.T) {
	bucket := &recordingBucket{}
	svc := NewBackupService(bucket, NewLibraryService(setupDB(t), logging.Discard()), 4, logging.Discard())

	done := rec("1")
	done.CloudSynced = true
	out, n, err := svc.Backup(context.Background(), models.Library{done})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, models.Library{done}, out)
	assert.Empty(t, bucket.keys)
}

func TestBackup_PartialFailureMarksUploaded(t *testing.T) {
	ctx := context.Background()
	lib := NewLibraryService(setupDB(t), logging.Discard())
	bucket := &recordingBucket{failPath: rec("2").LocalURI}
	svc := NewBackupService(bucket, lib, 1, logging.Discard())

	out, n, err := svc.Backup(ctx, models.Library{rec("3"), rec("2"), rec("1")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "back up 2")

	synced := 0
	for _, v := range out {
		if v.CloudSynced {
			synced++
		}
	}
	assert.Equal(t, n, synced)
	v, ok := out.Find("2")
	require.True(t, ok)
	assert.False(t, v.CloudSynced)
}
