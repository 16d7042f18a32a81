package repository

import (
	"github.com/yourusername/quizmaster-api/internal/domain/entity"
)

// AttemptRepository определяет методы для работы с попытками
type AttemptRepository interface {
	// SubmitFirstAware атомарно сохраняет попытку и, если это первая попытка
	// пользователя в этой викторине, начисляет пользователю xpIfFirst XP
	// и floor(xpIfFirst/100) уровней. Проверка "первая ли попытка", вставка
	// и начисление выполняются в одной транзакции с блокировкой строки
	// пользователя: два конкурентных сабмита не могут получить XP дважды.
	// Возвращает true, если попытка оказалась первой.
	SubmitFirstAware(attempt *entity.Attempt, xpIfFirst int) (bool, error)

	// GetByQuizWithUsers возвращает все попытки викторины с данными
	// пользователей, отсортированные по started_at ASC
	GetByQuizWithUsers(quizID uint) ([]entity.Attempt, error)

	// GetByQuizIDsWithUsers возвращает попытки по набору викторин с данными
	// пользователей, отсортированные по started_at ASC
	GetByQuizIDsWithUsers(quizIDs []uint) ([]entity.Attempt, error)

	// CountByUser возвращает количество попыток пользователя
	CountByUser(userID uint) (int64, error)

	// GetByUserWithQuiz возвращает попытки пользователя с викториной,
	// ее категорией и вопросами (для статистики профиля)
	GetByUserWithQuiz(userID uint) ([]entity.Attempt, error)
}
