package repository

import (
	"github.com/yourusername/quizmaster-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	UpdateProfile(userID uint, updates map[string]interface{}) error
	// AwardXP атомарно увеличивает xp и level пользователя.
	// levelDelta рассчитывается вызывающей стороной как floor(xpDelta/100).
	AwardXP(userID uint, xpDelta, levelDelta int) error
	// GetLeaderboard возвращает пользователей для глобального лидерборда
	// (xp DESC, level DESC) с пагинацией и общим количеством
	GetLeaderboard(limit, offset int) ([]entity.User, int64, error)
}
