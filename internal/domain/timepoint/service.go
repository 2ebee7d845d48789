package timepoint

import (
	"context"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, personID int64) ([]*TimePoint, error) {
	return s.repo.List(ctx, personID)
}

func (s *Service) ListImages(ctx context.Context, personID int64, code string) ([]*Image, error) {
	if code == "" {
		return nil, fmt.Errorf("timepoint code is required")
	}
	return s.repo.ListImages(ctx, personID, code)
}
