package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/quizmaster-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
	"github.com/yourusername/quizmaster-api/pkg/auth"
)

func newAuthServiceForTest(t *testing.T) (*AuthService, *MockUserRepository) {
	t.Helper()
	userRepo := new(MockUserRepository)
	jwtService, err := auth.NewJWTService("test-secret", 1)
	require.NoError(t, err)
	svc, err := NewAuthService(userRepo, jwtService)
	require.NoError(t, err)
	return svc, userRepo
}

func TestAuthService_Register_Success(t *testing.T) {
	// Arrange
	svc, userRepo := newAuthServiceForTest(t)

	userRepo.On("GetByEmail", "alice@example.com").Return(nil, apperrors.ErrNotFound)
	userRepo.On("GetByUsername", "alice").Return(nil, apperrors.ErrNotFound)
	userRepo.On("Create", mock.AnythingOfType("*entity.User")).Run(func(args mock.Arguments) {
		args.Get(0).(*entity.User).ID = 1
	}).Return(nil)

	// Act
	user, token, err := svc.Register(RegisterInput{
		Username: "alice",
		Email:    "Alice@Example.com", // должен нормализоваться
		Password: "secret123",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email, "Email должен приводиться к нижнему регистру")
	assert.Equal(t, 1, user.Level, "Новый пользователь начинает с 1 уровня")
	assert.Equal(t, 0, user.XP)
	assert.NotEmpty(t, token, "Регистрация должна сразу выдавать токен")
}

func TestAuthService_Register_EmailConflict(t *testing.T) {
	// Arrange
	svc, userRepo := newAuthServiceForTest(t)

	userRepo.On("GetByEmail", "alice@example.com").Return(&entity.User{ID: 1}, nil)

	// Act
	user, token, err := svc.Register(RegisterInput{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "secret123",
	})

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict, "Повтор email должен вернуть ErrConflict")
	assert.Nil(t, user)
	assert.Empty(t, token)
	userRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_Register_UsernameConflict(t *testing.T) {
	// Arrange
	svc, userRepo := newAuthServiceForTest(t)

	userRepo.On("GetByEmail", "bob@example.com").Return(nil, apperrors.ErrNotFound)
	userRepo.On("GetByUsername", "bob").Return(&entity.User{ID: 2}, nil)

	// Act
	_, _, err := svc.Register(RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "secret123",
	})

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict, "Повтор username должен вернуть ErrConflict")
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	_, _, err := svc.Register(RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "123",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAuthService_Login_Success(t *testing.T) {
	// Arrange
	svc, userRepo := newAuthServiceForTest(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	userRepo.On("GetByEmail", "alice@example.com").Return(&entity.User{
		ID:       1,
		Username: "alice",
		Email:    "alice@example.com",
		Password: string(hash),
	}, nil)

	// Act
	user, token, err := svc.Login("alice@example.com", "secret123")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.NotEmpty(t, token)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	// Arrange
	svc, userRepo := newAuthServiceForTest(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	userRepo.On("GetByEmail", "alice@example.com").Return(&entity.User{
		ID:       1,
		Email:    "alice@example.com",
		Password: string(hash),
	}, nil)

	// Act
	_, _, err = svc.Login("alice@example.com", "wrong-password")

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	// Arrange
	svc, userRepo := newAuthServiceForTest(t)

	userRepo.On("GetByEmail", "ghost@example.com").Return(nil, apperrors.ErrNotFound)

	// Act
	_, _, err := svc.Login("ghost@example.com", "secret123")

	// Assert: неизвестный email маскируется под ErrUnauthorized
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized, "Несуществующий email не должен раскрываться через ErrNotFound")
}
