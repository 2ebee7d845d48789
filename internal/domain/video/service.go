package video

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Option name under which tbloptions stores the video files directory.
const videosPathOption = "VideosPath"

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) ListVideos(ctx context.Context, limit, offset int) ([]*Video, int, error) {
	items, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Msg("list videos")
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Service) GetVideo(ctx context.Context, id int64) (*Video, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("video_id", id).Msg("get video")
		return nil, err
	}
	return v, nil
}

func (s *Service) GetVideoRecord(ctx context.Context, id int64) (*Record, error) {
	rec, err := s.repo.GetRecord(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("video_id", id).Msg("get video record")
		return nil, err
	}
	return rec, nil
}

func (s *Service) CreateVideo(ctx context.Context, rec *Record) (int64, error) {
	if rec.Description == "" {
		return 0, fmt.Errorf("description is required")
	}
	if rec.FileName == "" {
		return 0, fmt.Errorf("file_name is required")
	}
	if rec.CategoryID == 0 {
		return 0, fmt.Errorf("category_id is required")
	}
	id, err := s.repo.Create(ctx, rec)
	if err != nil {
		s.logger.Error().Err(err).Str("file_name", rec.FileName).Msg("create video")
		return 0, err
	}
	return id, nil
}

// UpdateVideo applies a partial update. An empty payload is answered with
// (false, nil) without touching the database.
func (s *Service) UpdateVideo(ctx context.Context, id int64, u Update) (bool, error) {
	if u.IsEmpty() {
		return false, nil
	}
	ok, err := s.repo.Update(ctx, id, u)
	if err != nil {
		s.logger.Error().Err(err).Int64("video_id", id).Msg("update video")
		return false, err
	}
	return ok, nil
}

func (s *Service) DeleteVideo(ctx context.Context, id int64) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("video_id", id).Msg("delete video")
		return false, err
	}
	return ok, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]*Category, error) {
	items, err := s.repo.ListCategories(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("list video categories")
		return nil, err
	}
	return items, nil
}

// VideosPath reads the configured video files directory. A missing option
// row is an error: the installation is misconfigured, not "not found".
func (s *Service) VideosPath(ctx context.Context) (string, error) {
	value, err := s.repo.OptionValue(ctx, videosPathOption)
	if err != nil {
		s.logger.Error().Err(err).Msg("read videos path option")
		return "", err
	}
	if value == nil || *value == "" {
		return "", fmt.Errorf("option %q is not configured", videosPathOption)
	}
	return *value, nil
}
