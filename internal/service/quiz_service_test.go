package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quizmaster-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
)

func validCreateQuizInput() CreateQuizInput {
	return CreateQuizInput{
		Title:      "Столицы мира",
		CategoryID: 1,
		Difficulty: entity.QuizDifficultyEasy,
		Questions: []CreateQuestionInput{
			{
				Text:          "Столица Франции?",
				Options:       []string{"Лондон", "Париж", "Берлин", "Мадрид"},
				CorrectOption: 1,
			},
		},
	}
}

func newQuizServiceForTest(t *testing.T) (*QuizService, *MockQuizRepository, *MockCategoryRepository, *MockUserRepository) {
	t.Helper()
	quizRepo := new(MockQuizRepository)
	categoryRepo := new(MockCategoryRepository)
	userRepo := new(MockUserRepository)
	svc, err := NewQuizService(quizRepo, categoryRepo, userRepo, nil)
	require.NoError(t, err)
	return svc, quizRepo, categoryRepo, userRepo
}

func TestQuizService_CreateQuiz_Success(t *testing.T) {
	// Arrange
	svc, quizRepo, categoryRepo, userRepo := newQuizServiceForTest(t)

	categoryRepo.On("GetByID", uint(1)).Return(&entity.Category{ID: 1, Name: "География"}, nil)
	userRepo.On("GetByID", uint(42)).Return(&entity.User{ID: 42, Username: "alice"}, nil)
	quizRepo.On("Create", mock.AnythingOfType("*entity.Quiz")).Return(nil)
	// Создание квиза приносит 50 XP и 0 уровней
	userRepo.On("AwardXP", uint(42), 50, 0).Return(nil)

	// Act
	quiz, err := svc.CreateQuiz(42, validCreateQuizInput())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Столицы мира", quiz.Title)
	assert.Equal(t, uint(42), quiz.CreatorID)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, 30, quiz.Questions[0].TimeLimitSec, "Лимит времени по умолчанию — 30 секунд")
	assert.Equal(t, 1, quiz.Questions[0].OrderNum, "Порядок по умолчанию — позиция в списке")
	userRepo.AssertExpectations(t)
}

func TestQuizService_CreateQuiz_InvalidDifficulty(t *testing.T) {
	svc, _, _, _ := newQuizServiceForTest(t)

	input := validCreateQuizInput()
	input.Difficulty = "IMPOSSIBLE"

	quiz, err := svc.CreateQuiz(42, input)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Nil(t, quiz)
}

func TestQuizService_CreateQuiz_TooManyQuestions(t *testing.T) {
	svc, _, _, _ := newQuizServiceForTest(t)

	input := validCreateQuizInput()
	questions := make([]CreateQuestionInput, entity.MaxQuestionsPerQuiz+1)
	for i := range questions {
		questions[i] = input.Questions[0]
	}
	input.Questions = questions

	quiz, err := svc.CreateQuiz(42, input)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation, "Превышение лимита вопросов должно вернуть ErrValidation")
	assert.Nil(t, quiz)
}

func TestQuizService_CreateQuiz_WrongOptionsCount(t *testing.T) {
	svc, _, _, _ := newQuizServiceForTest(t)

	input := validCreateQuizInput()
	input.Questions[0].Options = []string{"Да", "Нет"}

	quiz, err := svc.CreateQuiz(42, input)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation, "Вопрос должен иметь ровно 4 варианта")
	assert.Nil(t, quiz)
}

func TestQuizService_CreateQuiz_CorrectOptionOutOfRange(t *testing.T) {
	svc, _, _, _ := newQuizServiceForTest(t)

	input := validCreateQuizInput()
	input.Questions[0].CorrectOption = 4

	quiz, err := svc.CreateQuiz(42, input)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Nil(t, quiz)
}

func TestQuizService_CreateQuiz_CategoryNotFound(t *testing.T) {
	svc, _, categoryRepo, _ := newQuizServiceForTest(t)

	categoryRepo.On("GetByID", uint(1)).Return(nil, apperrors.ErrNotFound)

	quiz, err := svc.CreateQuiz(42, validCreateQuizInput())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, quiz)
}

func TestQuizService_GetQuizByID_CacheMiss(t *testing.T) {
	// Arrange: при промахе кеша квиз читается из БД и записывается в кеш
	quizRepo := new(MockQuizRepository)
	categoryRepo := new(MockCategoryRepository)
	userRepo := new(MockUserRepository)
	cacheRepo := new(MockCacheRepository)
	svc, err := NewQuizService(quizRepo, categoryRepo, userRepo, cacheRepo)
	require.NoError(t, err)

	quiz := &entity.Quiz{ID: 1, Title: "История"}
	cacheRepo.On("GetJSON", "quiz:1:full", mock.Anything).Return(apperrors.ErrNotFound)
	quizRepo.On("GetWithQuestions", uint(1)).Return(quiz, nil)
	cacheRepo.On("SetJSON", "quiz:1:full", quiz, quizCacheTTL).Return(nil)

	// Act
	got, err := svc.GetQuizByID(1)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, quiz, got)
	cacheRepo.AssertExpectations(t)
}

func TestQuizService_GetQuizByID_NotFound(t *testing.T) {
	svc, quizRepo, _, _ := newQuizServiceForTest(t)

	quizRepo.On("GetWithQuestions", uint(99)).Return(nil, apperrors.ErrNotFound)

	got, err := svc.GetQuizByID(99)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, got)
}
