package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"

	"github.com/Dosada05/league-api/models"
	"github.com/Dosada05/league-api/repositories"
	"github.com/Dosada05/league-api/storage"
)

const mediaKeyPrefix = "media"

type CreateMediaInput struct {
	Title        string           `json:"title"`
	Type         models.MediaType `json:"type"`
	URL          string           `json:"url"`
	ThumbnailURL *string          `json:"thumbnail_url"`
	TournamentID *string          `json:"tournament_id"`
	TeamID       *string          `json:"team_id"`
	SponsorID    *string          `json:"sponsor_id"`
	Tags         *string          `json:"tags"`
}

// UploadMediaInput описывает файл из multipart-запроса.
type UploadMediaInput struct {
	Title        string
	ContentType  string
	TournamentID *string
	TeamID       *string
	SponsorID    *string
	Tags         *string
	File         io.Reader
}

type MediaService struct {
	mediaRepo repositories.MediaRepository
	uploader  storage.FileUploader
	logger    *slog.Logger
}

// NewMediaService принимает nil uploader: тогда загрузка файлов отключена.
func NewMediaService(mediaRepo repositories.MediaRepository, uploader storage.FileUploader, logger *slog.Logger) *MediaService {
	return &MediaService{mediaRepo: mediaRepo, uploader: uploader, logger: logger}
}

func validURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (s *MediaService) CreateMedia(ctx context.Context, uploadedBy *string, input CreateMediaInput) (*models.Media, error) {
	v := newValidator()
	v.check(notBlank(input.Title), "title", "must be provided")
	v.check(input.Type == models.MediaTypePhoto || input.Type == models.MediaTypeVideo, "type", "must be photo or video")
	v.check(validURL(input.URL), "url", "must be an absolute http(s) URL")
	v.check(input.ThumbnailURL == nil || validURL(*input.ThumbnailURL), "thumbnail_url", "must be an absolute http(s) URL")
	if err := v.err(); err != nil {
		return nil, err
	}

	media := &models.Media{
		Title:        input.Title,
		Type:         input.Type,
		URL:          input.URL,
		ThumbnailURL: input.ThumbnailURL,
		TournamentID: input.TournamentID,
		TeamID:       input.TeamID,
		SponsorID:    input.SponsorID,
		Tags:         input.Tags,
		UploadedBy:   uploadedBy,
	}
	if err := s.create(ctx, media); err != nil {
		return nil, err
	}
	return media, nil
}

// UploadMedia сохраняет файл в объектное хранилище и создаёт запись с его публичным URL.
func (s *MediaService) UploadMedia(ctx context.Context, uploadedBy *string, input UploadMediaInput) (*models.Media, error) {
	if s.uploader == nil {
		return nil, ErrStorageDisabled
	}

	v := newValidator()
	v.check(notBlank(input.Title), "title", "must be provided")
	v.check(input.File != nil, "file", "must be provided")
	ext, extErr := storage.ExtensionForContentType(input.ContentType)
	v.check(extErr == nil, "file", "unsupported content type")
	if err := v.err(); err != nil {
		return nil, err
	}

	key := storage.NewObjectKey(mediaKeyPrefix, derefString(input.TournamentID), ext)
	result, err := s.uploader.Upload(ctx, key, input.ContentType, input.File)
	if err != nil {
		return nil, fmt.Errorf("failed to upload media object: %w", err)
	}

	mediaType := models.MediaTypePhoto
	if storage.IsVideo(input.ContentType) {
		mediaType = models.MediaTypeVideo
	}
	media := &models.Media{
		Title:        input.Title,
		Type:         mediaType,
		URL:          s.uploader.GetPublicURL(result.Key),
		TournamentID: input.TournamentID,
		TeamID:       input.TeamID,
		SponsorID:    input.SponsorID,
		Tags:         input.Tags,
		UploadedBy:   uploadedBy,
		StorageKey:   &result.Key,
	}
	if err := s.create(ctx, media); err != nil {
		if delErr := s.uploader.Delete(ctx, result.Key); delErr != nil {
			s.logger.WarnContext(ctx, "failed to delete orphaned media object",
				slog.String("key", result.Key), slog.Any("error", delErr))
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "media uploaded", slog.String("media_id", media.ID), slog.String("key", result.Key))
	return media, nil
}

func (s *MediaService) create(ctx context.Context, media *models.Media) error {
	if err := s.mediaRepo.Create(ctx, media); err != nil {
		if errors.Is(err, repositories.ErrMediaReferenceInvalid) {
			return fmt.Errorf("%w: %v", ErrInvalidReference, err)
		}
		return fmt.Errorf("failed to create media: %w", err)
	}
	return nil
}

func (s *MediaService) GetMedia(ctx context.Context, id string) (*models.Media, error) {
	media, err := s.mediaRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMediaNotFound) {
			return nil, ErrMediaNotFound
		}
		return nil, fmt.Errorf("failed to get media %s: %w", id, err)
	}
	return media, nil
}

func (s *MediaService) ListMedia(ctx context.Context, tournamentID *string) ([]*models.Media, error) {
	media, err := s.mediaRepo.List(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}
	return media, nil
}

// DeleteMedia удаляет запись; объект в хранилище удаляется по возможности.
func (s *MediaService) DeleteMedia(ctx context.Context, id string) error {
	media, err := s.GetMedia(ctx, id)
	if err != nil {
		return err
	}
	if err := s.mediaRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrMediaNotFound) {
			return ErrMediaNotFound
		}
		return fmt.Errorf("failed to delete media %s: %w", id, err)
	}

	if media.StorageKey != nil && s.uploader != nil {
		if err := s.uploader.Delete(ctx, *media.StorageKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete media object",
				slog.String("media_id", id), slog.String("key", *media.StorageKey), slog.Any("error", err))
		}
	}
	return nil
}
