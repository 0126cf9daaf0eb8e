package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"mindra_backend/internal/model"
	"mindra_backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	store     *repository.FileStore
	users     *repository.UserRepository
	modules   *repository.ModuleRepository
	progress  *repository.ProgressRepository
	analytics *repository.AnalyticsRepository
	tokens    *TokenService
	auth      *AuthService
	learning  *LearningService
}

func newFixture(t *testing.T, modules ...model.LearningModule) *fixture {
	t.Helper()
	f := &fixture{store: repository.NewFileStore(filepath.Join(t.TempDir(), "db.json"))}
	f.users = repository.NewUserRepository(f.store)
	f.modules = repository.NewModuleRepository(f.store, 0)
	f.progress = repository.NewProgressRepository(f.store)
	f.analytics = repository.NewAnalyticsRepository(f.store)
	f.tokens = NewTokenService("test-secret", time.Hour)
	f.auth = NewAuthService(f.users, f.tokens, bcrypt.MinCost)
	f.learning = NewLearningService(f.store, f.modules, f.progress, f.analytics)

	if len(modules) > 0 {
		if _, err := f.modules.ImportIfEmpty(context.Background(), modules); err != nil {
			t.Fatalf("import modules: %v", err)
		}
	}
	return f
}

func sampleModule() model.LearningModule {
	return model.LearningModule{
		ID:      "mod_1",
		Title:   "Basics",
		Level:   "beginner",
		Content: "content",
		Quiz: []model.Question{
			{ID: "q1", Text: "one", Options: []string{"a", "b"}, AnswerIndex: 1},
			{ID: "q2", Text: "two", Options: []string{"a", "b"}, AnswerIndex: 0},
		},
	}
}
