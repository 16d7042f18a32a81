package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidDifficulty(t *testing.T) {
	assert.True(t, IsValidDifficulty(QuizDifficultyEasy))
	assert.True(t, IsValidDifficulty(QuizDifficultyMedium))
	assert.True(t, IsValidDifficulty(QuizDifficultyHard))

	assert.False(t, IsValidDifficulty("easy"), "Сложность чувствительна к регистру")
	assert.False(t, IsValidDifficulty(""), "Пустая сложность невалидна")
	assert.False(t, IsValidDifficulty("IMPOSSIBLE"))
}

func TestQuiz_AnswerKey(t *testing.T) {
	// Arrange
	quiz := &Quiz{
		ID: 1,
		Questions: []Question{
			{ID: 10, CorrectOption: 0},
			{ID: 11, CorrectOption: 2},
			{ID: 12, CorrectOption: 3},
		},
	}

	// Act
	key := quiz.AnswerKey()

	// Assert
	assert.Equal(t, map[uint]int{10: 0, 11: 2, 12: 3}, key)
	assert.Equal(t, 3, quiz.QuestionCount())
}

func TestQuiz_AnswerKey_NoQuestions(t *testing.T) {
	quiz := &Quiz{ID: 1}

	key := quiz.AnswerKey()

	assert.Empty(t, key, "Викторина без вопросов должна давать пустой ключ")
	assert.Equal(t, 0, quiz.QuestionCount())
}
