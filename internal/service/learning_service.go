package service

import (
	"context"
	"time"

	"mindra_backend/internal/model"
	"mindra_backend/internal/repository"
	"mindra_backend/pkg/logger"
	"mindra_backend/pkg/monitoring"

	"go.uber.org/zap"
)

type LearningService struct {
	ModuleRepo    *repository.ModuleRepository
	ProgressRepo  *repository.ProgressRepository
	AnalyticsRepo *repository.AnalyticsRepository
	Store         repository.SnapshotStore
	now           func() time.Time
}

func NewLearningService(
	store repository.SnapshotStore,
	moduleRepo *repository.ModuleRepository,
	progressRepo *repository.ProgressRepository,
	analyticsRepo *repository.AnalyticsRepository,
) *LearningService {
	return &LearningService{
		ModuleRepo:    moduleRepo,
		ProgressRepo:  progressRepo,
		AnalyticsRepo: analyticsRepo,
		Store:         store,
		now:           time.Now,
	}
}

func (s *LearningService) WithClock(now func() time.Time) *LearningService {
	s.now = now
	return s
}

func (s *LearningService) ListModules(ctx context.Context) ([]model.ModuleSummary, error) {
	modules, err := s.ModuleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]model.ModuleSummary, 0, len(modules))
	for i := range modules {
		summaries = append(summaries, modules[i].Summary())
	}
	return summaries, nil
}

func (s *LearningService) GetModule(ctx context.Context, id string) (*model.ModuleDetail, error) {
	module, err := s.ModuleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := module.Detail()
	return &detail, nil
}

// GetQuiz returns the module's questions with answer keys removed.
func (s *LearningService) GetQuiz(ctx context.Context, moduleID string) ([]model.QuizQuestion, error) {
	module, err := s.ModuleRepo.FindByID(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	return module.PublicQuiz(), nil
}

// SubmitAttempt grades answers, then merges progress and appends the analytics
// event in a single store update.
func (s *LearningService) SubmitAttempt(ctx context.Context, userID, moduleID string, answers []model.Answer) (*model.GradeResult, error) {
	module, err := s.ModuleRepo.FindByID(ctx, moduleID)
	if err != nil {
		return nil, err
	}

	result, err := Grade(module.Quiz, answers)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var progress model.UserProgress
	err = s.Store.Update(ctx, func(snap *model.Snapshot) error {
		progress = s.ProgressRepo.Merge(snap, userID, moduleID, result.Score, now)
		s.AnalyticsRepo.Append(snap, userID, moduleID, result.Score, now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.RecordSubmission(moduleID, result.Score)
	logger.Log.Debug("Quiz attempt recorded",
		zap.String("user", userID),
		zap.String("module", moduleID),
		zap.Int("score", result.Score),
		zap.Int("bestScore", progress.BestScore),
	)
	return &result, nil
}

func (s *LearningService) GetProgress(ctx context.Context, userID string) ([]model.UserProgress, error) {
	return s.ProgressRepo.FindByUser(ctx, userID)
}
