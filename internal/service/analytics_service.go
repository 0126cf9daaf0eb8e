package service

import (
	"context"

	"mindra_backend/internal/model"
	"mindra_backend/internal/repository"
)

type AnalyticsService struct {
	Repo *repository.AnalyticsRepository
}

func NewAnalyticsService(repo *repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{Repo: repo}
}

func (s *AnalyticsService) ListEvents(ctx context.Context) ([]model.AnalyticsEvent, error) {
	return s.Repo.List(ctx)
}
