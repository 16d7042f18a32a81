package service

import (
	"fmt"
	"log"
	"time"

	"github.com/yourusername/quizmaster-api/internal/domain/entity"
	"github.com/yourusername/quizmaster-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
	"github.com/yourusername/quizmaster-api/internal/service/ranking"
)

// AttemptService обрабатывает попытки прохождения квизов
type AttemptService struct {
	quizRepo    repository.QuizRepository
	attemptRepo repository.AttemptRepository
}

// NewAttemptService создает новый сервис попыток
func NewAttemptService(quizRepo repository.QuizRepository, attemptRepo repository.AttemptRepository) (*AttemptService, error) {
	if quizRepo == nil {
		return nil, fmt.Errorf("QuizRepository is required for AttemptService")
	}
	if attemptRepo == nil {
		return nil, fmt.Errorf("AttemptRepository is required for AttemptService")
	}
	return &AttemptService{
		quizRepo:    quizRepo,
		attemptRepo: attemptRepo,
	}, nil
}

// SubmitResult содержит сохраненную попытку и ее итог
type SubmitResult struct {
	Attempt *entity.Attempt
	Outcome ranking.AttemptOutcome
}

// SubmitAttempt обрабатывает попытку прохождения квиза: подсчитывает очки
// по эталонным ответам и атомарно сохраняет попытку вместе с начислением XP.
// XP начисляется только за первую попытку пользователя в данном квизе.
// Временные метки попытки выставляются здесь, а не клиентом: рейтинг
// определяет первую попытку по started_at, и доверие клиентскому времени
// позволило бы задним числом подменить свою первую попытку.
func (s *AttemptService) SubmitAttempt(userID, quizID uint, answers []entity.SubmittedAnswer) (*SubmitResult, error) {
	// Эталонные ответы читаем напрямую из БД, минуя кеш:
	// в кешированном представлении правильные варианты отсутствуют
	quiz, err := s.quizRepo.GetWithQuestions(quizID)
	if err != nil {
		return nil, err
	}

	for i, answer := range answers {
		if answer.SelectedOption < 0 {
			return nil, fmt.Errorf("%w: answer %d: selected_option must be non-negative", apperrors.ErrValidation, i+1)
		}
	}

	now := time.Now()

	score := ranking.Score(quiz.AnswerKey(), answers)
	xpIfFirst := score * ranking.XPPerCorrectAnswer

	attempt := &entity.Attempt{
		UserID:    userID,
		QuizID:    quizID,
		Score:     score,
		Answers:   answers,
		StartedAt: now,
		EndedAt:   now,
	}

	isFirst, err := s.attemptRepo.SubmitFirstAware(attempt, xpIfFirst)
	if err != nil {
		log.Printf("[AttemptService] Ошибка при сохранении попытки (user=%d, quiz=%d): %v", userID, quizID, err)
		return nil, err
	}

	outcome := ranking.ScoreAttempt(quiz.AnswerKey(), answers, quiz.QuestionCount(), isFirst)

	log.Printf("[AttemptService] Попытка сохранена: user=%d quiz=%d score=%d/%d first=%t xp=%d",
		userID, quizID, outcome.Score, outcome.TotalQuestions, isFirst, outcome.XPGained)

	return &SubmitResult{Attempt: attempt, Outcome: outcome}, nil
}
