package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Egor213/Sawmill/internal/domain"
	repository_mock "github.com/Egor213/Sawmill/internal/mocks/repository"
	"github.com/Egor213/Sawmill/internal/repo/repoerrs"
	"github.com/Egor213/Sawmill/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	user := domain.User{Id: 1, Email: "admin@example.com", HashedPassword: string(hash)}

	type mockBehavior func(r *repository_mock.MockUser)

	testCases := []struct {
		name         string
		email        string
		password     string
		mockBehavior mockBehavior
		want         domain.User
		wantErr      error
	}{
		{
			name:     "success",
			email:    user.Email,
			password: "s3cret",
			mockBehavior: func(r *repository_mock.MockUser) {
				r.EXPECT().GetUserByEmail(ctx, user.Email).Return(user, nil)
			},
			want: user,
		},
		{
			name:     "wrong password",
			email:    user.Email,
			password: "guess",
			mockBehavior: func(r *repository_mock.MockUser) {
				r.EXPECT().GetUserByEmail(ctx, user.Email).Return(user, nil)
			},
			wantErr: service.ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			email:    "nobody@example.com",
			password: "s3cret",
			mockBehavior: func(r *repository_mock.MockUser) {
				r.EXPECT().GetUserByEmail(ctx, "nobody@example.com").Return(domain.User{}, repoerrs.ErrNotFound)
			},
			wantErr: service.ErrInvalidCredentials,
		},
		{
			name:     "repository error",
			email:    user.Email,
			password: "s3cret",
			mockBehavior: func(r *repository_mock.MockUser) {
				r.EXPECT().GetUserByEmail(ctx, user.Email).Return(domain.User{}, errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := repository_mock.NewMockUser(ctrl)
			tc.mockBehavior(mockRepo)

			s := service.NewAuthService(mockRepo)
			got, err := s.Authenticate(ctx, tc.email, tc.password)

			if tc.wantErr != nil {
				assert.Error(t, err)
				if errors.Is(tc.wantErr, service.ErrInvalidCredentials) {
					assert.ErrorIs(t, err, service.ErrInvalidCredentials)
				} else {
					assert.NotErrorIs(t, err, service.ErrInvalidCredentials)
				}
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAuthService_LoadUser(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository_mock.NewMockUser(ctrl)
	s := service.NewAuthService(mockRepo)

	user := domain.User{Id: 1, Email: "admin@example.com"}
	mockRepo.EXPECT().GetUserByEmail(ctx, user.Email).Return(user, nil)
	mockRepo.EXPECT().GetUserByEmail(ctx, "gone@example.com").Return(domain.User{}, repoerrs.ErrNotFound)

	got, err := s.LoadUser(ctx, user.Email)
	assert.NoError(t, err)
	assert.Equal(t, user, got)

	_, err = s.LoadUser(ctx, "gone@example.com")
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestHashPassword(t *testing.T) {
	hash, err := service.HashPassword("s3cret")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret", hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))
}
