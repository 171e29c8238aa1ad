package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/gimhantharuke456/policeappbackend/internal/adapters/storage"
	"github.com/gimhantharuke456/policeappbackend/internal/core/domain"
)

// TrackService lists the audio folders and tracks kept in object storage
type TrackService struct {
	store  storage.ObjectStore
	prefix string
}

// NewTrackService creates a track service rooted at prefix
func NewTrackService(store storage.ObjectStore, prefix string) *TrackService {
	return &TrackService{store: store, prefix: strings.Trim(prefix, "/")}
}

// ListFolders returns the distinct top-level folders under the prefix
func (s *TrackService) ListFolders(ctx context.Context) ([]string, error) {
	objects, err := s.store.List(ctx, s.keyPrefix(""))
	if err != nil {
		return nil, fmt.Errorf("list tracks: %w", err)
	}

	seen := make(map[string]struct{})
	folders := make([]string, 0)
	for _, obj := range objects {
		rel := strings.TrimPrefix(obj.Key, s.keyPrefix(""))
		folder, _, nested := strings.Cut(rel, "/")
		if !nested || folder == "" {
			continue
		}
		if _, ok := seen[folder]; ok {
			continue
		}
		seen[folder] = struct{}{}
		folders = append(folders, folder)
	}
	sort.Strings(folders)
	return folders, nil
}

// ListTracks returns the objects stored in one folder
func (s *TrackService) ListTracks(ctx context.Context, folder string) ([]storage.Object, error) {
	folder = strings.TrimSpace(folder)
	if folder == "" || folder == "." || folder == ".." || strings.ContainsAny(folder, `/\`) {
		return nil, domain.Validation("Invalid folder name")
	}

	objects, err := s.store.List(ctx, s.keyPrefix(folder))
	if err != nil {
		return nil, fmt.Errorf("list tracks: %w", err)
	}
	return objects, nil
}

// keyPrefix returns "<prefix>/<folder>/" with empty parts dropped
func (s *TrackService) keyPrefix(folder string) string {
	var parts []string
	if s.prefix != "" {
		parts = append(parts, s.prefix)
	}
	if folder != "" {
		parts = append(parts, folder)
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "/") + "/"
}
