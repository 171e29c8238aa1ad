package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"

	"github.com/gimhantharuke456/policeappbackend/internal/adapters/storage"
	"github.com/gimhantharuke456/policeappbackend/internal/pkg/metrics"

	"github.com/gabriel-vasile/mimetype"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// syncRunTimeout bounds one scheduled sync pass
const syncRunTimeout = 30 * time.Minute

const octetStream = "application/octet-stream"

// SyncResult counts the files handled by one sync pass
type SyncResult struct {
	Uploaded int `json:"uploaded"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// AudioSyncService uploads a local voice record tree to object storage.
// Keys that already exist are skipped.
type AudioSyncService struct {
	sourceDir string
	store     storage.ObjectStore
	prefix    string
	schedule  string
	cron      *cron.Cron
	mu        sync.Mutex
}

// NewAudioSyncService creates a sync service; an empty schedule disables Start
func NewAudioSyncService(sourceDir string, store storage.ObjectStore, prefix, schedule string) *AudioSyncService {
	return &AudioSyncService{
		sourceDir: sourceDir,
		store:     store,
		prefix:    prefix,
		schedule:  schedule,
	}
}

// Sync runs one pass over the source directory
func (s *AudioSyncService) Sync(ctx context.Context) (*SyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := os.Stat(s.sourceDir)
	if err != nil {
		return nil, fmt.Errorf("voice records directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("voice records path %q is not a directory", s.sourceDir)
	}

	log.Info().Str("source", s.sourceDir).Str("prefix", s.prefix).Msg("🚀 Audio sync started")

	result := &SyncResult{}
	err = filepath.WalkDir(s.sourceDir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(s.sourceDir, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if s.prefix != "" {
			key = path.Join(s.prefix, key)
		}

		outcome := s.syncFile(ctx, p, key)
		metrics.AudioSyncFiles.WithLabelValues(outcome).Inc()
		switch outcome {
		case metrics.OutcomeSuccess:
			result.Uploaded++
		case metrics.OutcomeSkipped:
			result.Skipped++
		default:
			result.Failed++
		}
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("walk voice records: %w", err)
	}

	log.Info().
		Int("uploaded", result.Uploaded).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Msg("✅ Audio sync completed")
	return result, nil
}

func (s *AudioSyncService) syncFile(ctx context.Context, filePath, key string) string {
	exists, err := s.store.Exists(ctx, key)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("❌ Audio sync existence check failed")
		return metrics.OutcomeFailure
	}
	if exists {
		return metrics.OutcomeSkipped
	}

	f, err := os.Open(filePath)
	if err != nil {
		log.Error().Err(err).Str("file", filePath).Msg("❌ Audio sync open failed")
		return metrics.OutcomeFailure
	}
	defer f.Close()

	if err := s.store.Put(ctx, key, f, contentTypeFor(filePath)); err != nil {
		log.Error().Err(err).Str("key", key).Msg("❌ Audio sync upload failed")
		return metrics.OutcomeFailure
	}

	log.Debug().Str("key", key).Msg("✅ Uploaded")
	return metrics.OutcomeSuccess
}

// contentTypeFor sniffs the MIME type from the file's leading bytes
func contentTypeFor(filePath string) string {
	mtype, err := mimetype.DetectFile(filePath)
	if err != nil {
		return octetStream
	}
	return mtype.String()
}

// Start schedules Sync on the configured cron spec
func (s *AudioSyncService) Start() error {
	if s.schedule == "" {
		return nil
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger{})))
	if _, err := c.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), syncRunTimeout)
		defer cancel()
		if _, err := s.Sync(ctx); err != nil {
			log.Error().Err(err).Msg("❌ Scheduled audio sync failed")
		}
	}); err != nil {
		return fmt.Errorf("invalid AUDIO_SYNC_CRON %q: %w", s.schedule, err)
	}

	c.Start()
	s.cron = c
	log.Info().Str("schedule", s.schedule).Msg("🚀 Audio sync scheduled")
	return nil
}

// Stop stops the scheduler and waits for a running pass, bounded by ctx
func (s *AudioSyncService) Stop(ctx context.Context) error {
	if s.cron == nil {
		return nil
	}
	done := s.cron.Stop()
	select {
	case <-done.Done():
		log.Info().Msg("🛑 Audio sync stopped")
		return nil
	case <-ctx.Done():
		return errors.New("audio sync did not stop in time")
	}
}

// cronLogger routes cron's own log lines to zerolog
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug().Fields(keysAndValues).Msg(msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
