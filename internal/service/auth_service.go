package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"mindra_backend/internal/model"
	"mindra_backend/internal/repository"
	"mindra_backend/internal/util"
	"mindra_backend/pkg/monitoring"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	UserRepo   *repository.UserRepository
	Tokens     *TokenService
	BcryptCost int

	// compare is swapped in tests to observe password checks.
	compare func(hash, password []byte) error

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(userRepo *repository.UserRepository, tokens *TokenService, bcryptCost int) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		UserRepo:   userRepo,
		Tokens:     tokens,
		BcryptCost: bcryptCost,
		compare:    bcrypt.CompareHashAndPassword,
	}
}

// unknownUserHash is compared against when the email is not registered,
// so both login failures cost one bcrypt comparison at the configured cost.
func (s *AuthService) unknownUserHash() []byte {
	s.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("mindra-unknown-user"), s.BcryptCost)
		if err != nil {
			hash, _ = bcrypt.GenerateFromPassword([]byte("mindra-unknown-user"), bcrypt.DefaultCost)
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*model.AuthResult, error) {
	email = model.CanonicalEmail(email)
	if email == "" || password == "" {
		return nil, util.ErrMissingCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           model.GenerateID(model.UserIDPrefix),
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	monitoring.Registrations.Inc()
	return s.issue(user)
}

// Login fails with ErrInvalidCredentials for both unknown users and wrong passwords.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.AuthResult, error) {
	email = model.CanonicalEmail(email)
	if email == "" || password == "" {
		return nil, util.ErrMissingCredentials
	}

	user, err := s.UserRepo.FindByEmail(ctx, email)
	if errors.Is(err, util.ErrUserNotFound) {
		_ = s.compare(s.unknownUserHash(), []byte(password))
		return nil, util.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := s.compare([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}
	return s.issue(user)
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (*model.UserInfo, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	info := user.Info()
	return &info, nil
}

func (s *AuthService) issue(user *model.User) (*model.AuthResult, error) {
	token, err := s.Tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &model.AuthResult{Token: token, User: user.Info()}, nil
}
