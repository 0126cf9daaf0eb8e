package service

import (
	"context"

	"mindra_backend/internal/model"
	"mindra_backend/internal/repository"
	"mindra_backend/pkg/logger"

	"go.uber.org/zap"
)

type DashboardService struct {
	ModuleRepo   *repository.ModuleRepository
	ProgressRepo *repository.ProgressRepository
}

func NewDashboardService(moduleRepo *repository.ModuleRepository, progressRepo *repository.ProgressRepository) *DashboardService {
	return &DashboardService{ModuleRepo: moduleRepo, ProgressRepo: progressRepo}
}

// GetDashboard lists every module with the user's status. An empty userID or a
// failed progress lookup reports every module as not started.
func (s *DashboardService) GetDashboard(ctx context.Context, userID string) ([]model.DashboardModule, error) {
	modules, err := s.ModuleRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	byModule := make(map[string]model.UserProgress)
	if userID != "" {
		progress, err := s.ProgressRepo.FindByUser(ctx, userID)
		if err != nil {
			logger.Log.Warn("Dashboard progress lookup failed", zap.String("user", userID), zap.Error(err))
		}
		for _, p := range progress {
			byModule[p.ModuleID] = p
		}
	}

	dashboard := make([]model.DashboardModule, 0, len(modules))
	for i := range modules {
		entry := model.DashboardModule{
			ModuleSummary: modules[i].Summary(),
			Status:        model.ProgressNotStarted,
		}
		if p, ok := byModule[modules[i].ID]; ok {
			bestScore, lastAttempt := p.BestScore, p.LastAttempt
			entry.Status = model.ProgressAttempted
			entry.BestScore = &bestScore
			entry.LastAttempt = &lastAttempt
		}
		dashboard = append(dashboard, entry)
	}
	return dashboard, nil
}
