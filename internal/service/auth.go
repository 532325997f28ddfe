package service

import (
	"context"
	"errors"

	"github.com/Egor213/Sawmill/internal/domain"
	"github.com/Egor213/Sawmill/internal/repo"
	"github.com/Egor213/Sawmill/internal/repo/repoerrs"
	errorsUtils "github.com/Egor213/Sawmill/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// Compared against when the email is unknown so both failure paths cost one
// bcrypt verification.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("sawmill"), bcrypt.DefaultCost)

type AuthService struct {
	userRepo repo.User
}

func NewAuthService(ur repo.User) *AuthService {
	return &AuthService{
		userRepo: ur,
	}
}

// Authenticate never tells an unknown email apart from a wrong password.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repoerrs.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, errorsUtils.WrapPathErr(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) LoadUser(ctx context.Context, email string) (domain.User, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repoerrs.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, errorsUtils.WrapPathErr(err)
	}
	return user, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errorsUtils.WrapPathErr(err)
	}
	return string(hash), nil
}
