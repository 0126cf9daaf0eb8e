package service

import (
	"time"

	"mindra_backend/internal/model"
	"mindra_backend/internal/util"
)

// TokenService issues and verifies bearer tokens with a fixed signing key.
type TokenService struct {
	secret string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: secret, ttl: ttl, now: time.Now}
}

// WithClock replaces the time source used for issuing and verifying.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

func (s *TokenService) Issue(user *model.User) (string, error) {
	return util.GenerateJWT(user, s.secret, s.now(), s.ttl)
}

func (s *TokenService) Verify(token string) (*util.Claims, error) {
	return util.ParseJWT(token, s.secret, s.now)
}

// Authenticate verifies the token carried in an Authorization header value.
func (s *TokenService) Authenticate(header string) (*util.Claims, error) {
	token, err := util.ExtractBearer(header)
	if err != nil {
		return nil, err
	}
	return s.Verify(token)
}
