package service

import (
	"context"
	"fmt"
	"os"

	"mindra_backend/internal/model"
	"mindra_backend/internal/repository"
	"mindra_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

type demoUser struct {
	ID    string
	Email string
}

var demoUsers = []demoUser{
	{ID: "user_alice", Email: "alice@example.com"},
	{ID: "user_bob", Email: "bob@example.com"},
}

// Catalog is the layout of the module catalog file.
type Catalog struct {
	Modules []model.LearningModule `yaml:"modules"`
}

type SeedService struct {
	UserRepo   *repository.UserRepository
	ModuleRepo *repository.ModuleRepository
	BcryptCost int
}

func NewSeedService(userRepo *repository.UserRepository, moduleRepo *repository.ModuleRepository, bcryptCost int) *SeedService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &SeedService{UserRepo: userRepo, ModuleRepo: moduleRepo, BcryptCost: bcryptCost}
}

// SeedDemoUsers inserts the demo accounts when the store has no users.
func (s *SeedService) SeedDemoUsers(ctx context.Context, password string) (bool, error) {
	if password == "" {
		return false, fmt.Errorf("demo password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.BcryptCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	users := make([]model.User, 0, len(demoUsers))
	for _, u := range demoUsers {
		users = append(users, model.User{
			ID:           u.ID,
			Email:        model.CanonicalEmail(u.Email),
			PasswordHash: string(hash),
		})
	}

	created, err := s.UserRepo.CreateIfEmpty(ctx, users)
	if err != nil {
		return false, err
	}
	if created {
		logger.Log.Info("Demo users seeded", zap.Int("count", len(users)))
	}
	return created, nil
}

// SeedCatalog imports modules from a YAML file when the catalog is empty.
func (s *SeedService) SeedCatalog(ctx context.Context, path string) (int, error) {
	catalog, err := LoadCatalog(path)
	if err != nil {
		return 0, err
	}
	imported, err := s.ModuleRepo.ImportIfEmpty(ctx, catalog.Modules)
	if err != nil {
		return 0, err
	}
	if imported > 0 {
		logger.Log.Info("Module catalog imported", zap.String("file", path), zap.Int("modules", imported))
	}
	return imported, nil
}

func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	moduleIDs := make(map[string]bool, len(catalog.Modules))
	for i, m := range catalog.Modules {
		if m.ID == "" {
			return nil, fmt.Errorf("catalog %s: module %d has no id", path, i)
		}
		if moduleIDs[m.ID] {
			return nil, fmt.Errorf("catalog %s: duplicate module id %s", path, m.ID)
		}
		moduleIDs[m.ID] = true

		questionIDs := make(map[string]bool, len(m.Quiz))
		for j, q := range m.Quiz {
			if questionIDs[q.ID] {
				return nil, fmt.Errorf("catalog %s: module %s has duplicate question id %q", path, m.ID, q.ID)
			}
			questionIDs[q.ID] = true
			if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
				return nil, fmt.Errorf("catalog %s: module %s question %d has answerIndex out of range", path, m.ID, j)
			}
		}
	}
	return &catalog, nil
}
