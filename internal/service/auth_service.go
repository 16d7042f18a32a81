package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/quizmaster-api/internal/domain/entity"
	"github.com/yourusername/quizmaster-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
	"github.com/yourusername/quizmaster-api/pkg/auth"
)

// AuthService предоставляет методы для регистрации и аутентификации пользователей
type AuthService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// RegisterInput содержит данные для регистрации
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// NewAuthService создает новый сервис аутентификации и возвращает ошибку при проблемах
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) (*AuthService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for AuthService")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("JWTService is required for AuthService")
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}, nil
}

// Register регистрирует нового пользователя и выдает токен доступа
func (s *AuthService) Register(input RegisterInput) (*entity.User, string, error) {
	// Нормализуем
	input.Email = normalizeEmail(input.Email)
	input.Username = strings.TrimSpace(input.Username)

	if input.Username == "" {
		return nil, "", fmt.Errorf("%w: username is required", apperrors.ErrValidation)
	}
	if input.Email == "" {
		return nil, "", fmt.Errorf("%w: email is required", apperrors.ErrValidation)
	}
	if len(input.Password) < 6 {
		return nil, "", fmt.Errorf("%w: password must be at least 6 characters", apperrors.ErrValidation)
	}

	// Проверяем уникальность email и username
	if _, err := s.userRepo.GetByEmail(input.Email); err == nil {
		return nil, "", fmt.Errorf("%w: email already exists", apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		log.Printf("[AuthService] Ошибка при проверке email '%s': %v", input.Email, err)
		return nil, "", err
	}
	if _, err := s.userRepo.GetByUsername(input.Username); err == nil {
		return nil, "", fmt.Errorf("%w: username already exists", apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		log.Printf("[AuthService] Ошибка при проверке username '%s': %v", input.Username, err)
		return nil, "", err
	}

	user := &entity.User{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password, // Хешируется в BeforeSave
		Level:    1,
		XP:       0,
	}

	if err := s.userRepo.Create(user); err != nil {
		log.Printf("[AuthService] Ошибка при создании пользователя '%s': %v", input.Username, err)
		return nil, "", err
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		log.Printf("[AuthService] Ошибка при генерации токена для пользователя ID=%d: %v", user.ID, err)
		return nil, "", err
	}

	log.Printf("[AuthService] Пользователь '%s' (ID=%d) успешно зарегистрирован", user.Username, user.ID)
	return user, token, nil
}

// Login аутентифицирует пользователя по email и паролю
func (s *AuthService) Login(email, password string) (*entity.User, string, error) {
	email = normalizeEmail(email)

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Не раскрываем, существует ли email
			return nil, "", fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
		}
		log.Printf("[AuthService] Ошибка при поиске пользователя по email '%s': %v", email, err)
		return nil, "", err
	}

	if !user.CheckPassword(password) {
		return nil, "", fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		log.Printf("[AuthService] Ошибка при генерации токена для пользователя ID=%d: %v", user.ID, err)
		return nil, "", err
	}

	return user, token, nil
}

// normalizeEmail приводит email к каноническому виду
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
