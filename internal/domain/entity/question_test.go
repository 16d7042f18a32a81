package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuestion_IsCorrect_CorrectAnswer(t *testing.T) {
	// Arrange
	question := &Question{
		ID:            1,
		QuizID:        1,
		Text:          "Какой язык компилируется в машинный код?",
		Options:       StringArray{"Python", "Go", "JavaScript", "Ruby"},
		CorrectOption: 1, // "Go" — индекс 1
		TimeLimitSec:  30,
	}

	// Act & Assert
	assert.True(t, question.IsCorrect(1), "IsCorrect должен вернуть true для правильного ответа")
}

func TestQuestion_IsCorrect_IncorrectAnswer(t *testing.T) {
	// Arrange
	question := &Question{
		ID:            1,
		CorrectOption: 2,
	}

	// Act & Assert
	assert.False(t, question.IsCorrect(0), "IsCorrect должен вернуть false для неправильного ответа")
	assert.False(t, question.IsCorrect(1), "IsCorrect должен вернуть false для неправильного ответа")
	assert.False(t, question.IsCorrect(3), "IsCorrect должен вернуть false для неправильного ответа")
}

func TestQuestion_IsValidOption(t *testing.T) {
	// Arrange
	question := &Question{
		Options: StringArray{"A", "B", "C", "D"},
	}

	// Act & Assert: валидные опции
	assert.True(t, question.IsValidOption(0), "Индекс 0 должен быть валидным")
	assert.True(t, question.IsValidOption(3), "Индекс 3 должен быть валидным")

	// Assert: невалидные опции
	assert.False(t, question.IsValidOption(-1), "Отрицательный индекс должен быть невалидным")
	assert.False(t, question.IsValidOption(4), "Индекс вне диапазона должен быть невалидным")
}

func TestStringArray_ScanNil(t *testing.T) {
	// Arrange
	var options StringArray

	// Act
	err := options.Scan(nil)

	// Assert: NULL из базы превращается в пустой массив
	assert.NoError(t, err)
	assert.Equal(t, StringArray{}, options)
}

func TestStringArray_ScanJSONB(t *testing.T) {
	// Arrange
	var options StringArray

	// Act
	err := options.Scan([]byte(`["Париж","Лондон","Берлин","Мадрид"]`))

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, StringArray{"Париж", "Лондон", "Берлин", "Мадрид"}, options)
}

func TestStringArray_ValueEmpty(t *testing.T) {
	// Arrange: nil-массив не должен писать null в базу
	var options StringArray

	// Act
	value, err := options.Value()

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, []byte("[]"), value)
}
