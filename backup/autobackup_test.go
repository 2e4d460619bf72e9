package backup

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bordonalmed/REVELA-sub000/storage/flatkv"
)

func TestSchedulerDisabledByDefault(t *testing.T) {
	_, flat := newTestStore(t)
	scheduler := NewScheduler(flat)

	assert.False(t, scheduler.IsEnabled())
	_, ok := scheduler.LastBackup()
	assert.False(t, ok)
}

func TestSchedulerEnableWritesCheckpoint(t *testing.T) {
	st, flat := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveProject(ctx, backupProject(1, "Checkpointed")))

	scheduler := NewScheduler(flat)
	codec := NewCodec(st, WithScheduler(scheduler))

	before := time.Now().UTC()
	data, err := scheduler.Enable(ctx, codec)
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, 1, data.Metadata.TotalProjects)

	assert.True(t, scheduler.IsEnabled())

	last, ok := scheduler.LastBackup()
	require.True(t, ok, "checkpoint export should record a last-backup time")
	assert.False(t, last.Before(before.Truncate(time.Second)))
}

func TestSchedulerDisableKeepsLastBackup(t *testing.T) {
	st, flat := newTestStore(t)
	ctx := context.Background()

	scheduler := NewScheduler(flat)
	codec := NewCodec(st, WithScheduler(scheduler))

	_, err := scheduler.Enable(ctx, codec)
	require.NoError(t, err)
	require.NoError(t, scheduler.Disable())

	assert.False(t, scheduler.IsEnabled())
	_, ok := scheduler.LastBackup()
	assert.True(t, ok, "last-backup record survives disabling")
}

func TestExportRefreshesLastBackupOnlyWhenEnabled(t *testing.T) {
	st, flat := newTestStore(t)
	ctx := context.Background()

	scheduler := NewScheduler(flat)
	codec := NewCodec(st, WithScheduler(scheduler))

	// Disabled: a manual export leaves no last-backup record
	_, err := codec.Export(ctx)
	require.NoError(t, err)
	_, ok := scheduler.LastBackup()
	assert.False(t, ok)

	_, err = scheduler.Enable(ctx, codec)
	require.NoError(t, err)
	first, ok := scheduler.LastBackup()
	require.True(t, ok)

	// Enabled: each export moves the record forward
	time.Sleep(10 * time.Millisecond)
	_, err = codec.Export(ctx)
	require.NoError(t, err)
	second, ok := scheduler.LastBackup()
	require.True(t, ok)
	assert.True(t, second.After(first), "expected %s after %s", second, first)
}

func TestSchedulerCorruptRecords(t *testing.T) {
	_, flat := newTestStore(t)
	scheduler := NewScheduler(flat)

	require.NoError(t, flat.Set(flatkv.LastBackupKey, []byte("not a timestamp")))
	_, ok := scheduler.LastBackup()
	assert.False(t, ok)

	require.NoError(t, flat.Set(flatkv.AutoBackupKey, []byte("banana")))
	assert.False(t, scheduler.IsEnabled())
}
