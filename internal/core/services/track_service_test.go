package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gimhantharuke456/policeappbackend/internal/adapters/storage"
	"github.com/gimhantharuke456/policeappbackend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func TestTrackService(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewLocalStore(t.TempDir(), "/media")
	require.NoError(t, err)
	for _, key := range []string{
		"voicerecords/speeding/en.mp3",
		"voicerecords/speeding/si.mp3",
		"voicerecords/parking/en.mp3",
		"voicerecords/readme.txt",
		"other/ignored.mp3",
	} {
		require.NoError(t, store.Put(ctx, key, strings.NewReader("data"), "audio/mpeg"))
	}

	svc := NewTrackService(store, "/voicerecords/")

	folders, err := svc.ListFolders(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"parking", "speeding"}, folders)

	tracks, err := svc.ListTracks(ctx, "speeding")
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.Equal(t, "en.mp3", tracks[0].Name)
	assert.Equal(t, "/media/voicerecords/speeding/en.mp3", tracks[0].URL)

	empty, err := svc.ListTracks(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, empty)

	for _, bad := range []string{"", "..", "a/b", `a\b`} {
		_, err := svc.ListTracks(ctx, bad)
		assert.ErrorIs(t, err, domain.ErrValidation, bad)
	}
}

func TestAudioSync(t *testing.T) {
	ctx := context.Background()
	source := t.TempDir()
	writeFiles(t, source, map[string]string{
		"speeding/en.mp3": "en",
		"speeding/si.mp3": "si",
		"parking/ta.wav":  "ta",
	})
	store, err := storage.NewLocalStore(t.TempDir(), "/media")
	require.NoError(t, err)

	svc := NewAudioSyncService(source, store, "voicerecords", "")

	first, err := svc.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, SyncResult{Uploaded: 3}, *first)

	ok, err := store.Exists(ctx, "voicerecords/parking/ta.wav")
	require.NoError(t, err)
	assert.True(t, ok)

	writeFiles(t, source, map[string]string{"parking/en.mp3": "new"})
	second, err := svc.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, SyncResult{Uploaded: 1, Skipped: 3}, *second)
}

func TestAudioSyncMissingSource(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir(), "/media")
	require.NoError(t, err)

	svc := NewAudioSyncService(filepath.Join(t.TempDir(), "nope"), store, "voicerecords", "")
	_, err = svc.Sync(context.Background())
	assert.Error(t, err)
}

func TestAudioSyncSchedule(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir(), "/media")
	require.NoError(t, err)

	disabled := NewAudioSyncService(t.TempDir(), store, "", "")
	require.NoError(t, disabled.Start())
	require.NoError(t, disabled.Stop(context.Background()))

	invalid := NewAudioSyncService(t.TempDir(), store, "", "not a cron spec")
	assert.Error(t, invalid.Start())

	scheduled := NewAudioSyncService(t.TempDir(), store, "", "@every 1h")
	require.NoError(t, scheduled.Start())
	require.NoError(t, scheduled.Stop(context.Background()))
}

func TestContentTypeFor(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"intro.mp3":    "ID3\x03\x00\x00\x00\x00\x00\x00",
		"notes.bin":    "plain words",
		"blob.unknown": "\x01\x02\x03\x04\xfa\xfb",
	})

	assert.Equal(t, "audio/mpeg", contentTypeFor(filepath.Join(dir, "intro.mp3")))
	// content wins over the extension
	assert.True(t, strings.HasPrefix(contentTypeFor(filepath.Join(dir, "notes.bin")), "text/plain"))
	assert.Equal(t, octetStream, contentTypeFor(filepath.Join(dir, "blob.unknown")))
	assert.Equal(t, octetStream, contentTypeFor(filepath.Join(dir, "missing.mp3")))
}
