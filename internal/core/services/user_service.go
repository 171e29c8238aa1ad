package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gimhantharuke456/policeappbackend/internal/adapters/persistence/models"
	"github.com/gimhantharuke456/policeappbackend/internal/adapters/persistence/repositories"
	"github.com/gimhantharuke456/policeappbackend/internal/adapters/storage"
	"github.com/gimhantharuke456/policeappbackend/internal/core/domain"
	"github.com/gimhantharuke456/policeappbackend/internal/pkg/pagination"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// sniffLen is how many leading bytes are inspected for the image type
const sniffLen = 3072

// pictureTypes maps accepted image types to file extensions
var pictureTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UserService handles officer profile queries and profile pictures
type UserService struct {
	officerRepo  repositories.OfficerRepository
	uploads      storage.ObjectStore
	maxUpload    int64
	queryTimeout time.Duration
}

// NewUserService creates a new user service
func NewUserService(
	officerRepo repositories.OfficerRepository,
	uploads storage.ObjectStore,
	maxUpload int64,
	queryTimeout time.Duration,
) *UserService {
	return &UserService{
		officerRepo:  officerRepo,
		uploads:      uploads,
		maxUpload:    maxUpload,
		queryTimeout: queryTimeout,
	}
}

// ListUsersOutput represents list users output
type ListUsersOutput struct {
	Users      []*models.OfficerProfile `json:"users"`
	Pagination *pagination.Meta         `json:"pagination"`
}

// GetProfile gets the public profile for a service number
func (s *UserService) GetProfile(ctx context.Context, officerSVC string) (*models.OfficerProfile, error) {
	officerSVC = strings.TrimSpace(officerSVC)
	if officerSVC == "" {
		return nil, domain.Validation("Officer SVC is required")
	}

	storeCtx, cancel := storeContext(ctx, s.queryTimeout)
	defer cancel()

	officer, err := s.officerRepo.GetBySVC(storeCtx, officerSVC)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.Errorf(domain.ErrNotFound, "User not found")
		}
		return nil, fmt.Errorf("get officer: %w", err)
	}
	return officer.ToProfile(), nil
}

// ListUsers lists officers newest first with pagination and search
func (s *UserService) ListUsers(ctx context.Context, params *pagination.Params) (*ListUsersOutput, error) {
	storeCtx, cancel := storeContext(ctx, s.queryTimeout)
	defer cancel()

	officers, total, err := s.officerRepo.List(storeCtx, params.Search, params.Offset, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list officers: %w", err)
	}

	profiles := make([]*models.OfficerProfile, len(officers))
	for i, officer := range officers {
		profiles[i] = officer.ToProfile()
	}

	return &ListUsersOutput{
		Users:      profiles,
		Pagination: pagination.GetMeta(params, total),
	}, nil
}

// UpdateProfilePicture validates and stores an image, then records its reference.
// If the record update fails the stored file is kept and reported in the log.
func (s *UserService) UpdateProfilePicture(ctx context.Context, officerSVC string, r io.Reader, size int64) (string, error) {
	if size <= 0 {
		return "", domain.Validation("profilepicture is required")
	}
	if s.maxUpload > 0 && size > s.maxUpload {
		return "", domain.Validation("File too large (max %d bytes)", s.maxUpload)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return "", domain.Validation("could not read upload")
	}
	head = head[:n]

	contentType, _, _ := strings.Cut(mimetype.Detect(head).String(), ";")
	ext, ok := pictureTypes[contentType]
	if !ok {
		return "", domain.Validation("Only JPEG, PNG or WebP images are allowed")
	}

	// Make sure the officer exists before anything is written
	current, err := s.GetProfile(ctx, officerSVC)
	if err != nil {
		return "", err
	}

	key := "profiles/" + uuid.NewString() + ext
	body := io.MultiReader(bytes.NewReader(head), r)
	if s.maxUpload > 0 {
		body = io.LimitReader(body, s.maxUpload)
	}
	if err := s.uploads.Put(ctx, key, body, contentType); err != nil {
		return "", fmt.Errorf("store picture: %w", err)
	}
	ref := s.uploads.URL(key)

	storeCtx, cancel := storeContext(ctx, s.queryTimeout)
	defer cancel()

	if _, err := s.officerRepo.UpdateFields(storeCtx, officerSVC, map[string]interface{}{"profile_picture": ref}); err != nil {
		log.Warn().Err(err).Str("key", key).Str("officerSVC", officerSVC).Msg("⚠️ Profile picture stored but not recorded; orphaned file")
		if repositories.IsNotFound(err) {
			return "", domain.Errorf(domain.ErrNotFound, "User not found")
		}
		return "", fmt.Errorf("record picture: %w", err)
	}

	if previous, ok := s.uploadKey(current.ProfilePicture); ok && previous != key {
		if err := s.uploads.Delete(ctx, previous); err != nil {
			log.Warn().Err(err).Str("key", previous).Msg("⚠️ Failed to remove previous profile picture")
		}
	}

	log.Info().Str("officerSVC", officerSVC).Str("key", key).Msg("✅ Profile picture updated")
	return ref, nil
}

// uploadKey maps a stored picture reference back to its key in the upload store
func (s *UserService) uploadKey(ref string) (string, bool) {
	key := strings.TrimPrefix(ref, s.uploads.URL(""))
	if ref == "" || key == ref || !strings.HasPrefix(key, "profiles/") {
		return "", false
	}
	return key, true
}
