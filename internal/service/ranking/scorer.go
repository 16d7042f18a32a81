package ranking

import (
	"math"

	"github.com/yourusername/quizmaster-api/internal/domain/entity"
)

// AttemptOutcome - результат оценки одной отправки ответов
type AttemptOutcome struct {
	Score          int  `json:"score"`
	TotalQuestions int  `json:"total_questions"`
	XPGained       int  `json:"xp_gained"`
	IsFirstAttempt bool `json:"is_first_attempt"`
}

// Score подсчитывает количество правильных ответов.
// answerKey - отображение questionID -> индекс правильного варианта.
// Ответы на неизвестные вопросы игнорируются без ошибки; вопросы без
// ответа дают 0 очков.
func Score(answerKey map[uint]int, answers []entity.SubmittedAnswer) int {
	score := 0
	for _, answer := range answers {
		correct, ok := answerKey[answer.QuestionID]
		if ok && answer.SelectedOption == correct {
			score++
		}
	}
	return score
}

// ScoreAttempt оценивает отправку целиком: очки, XP и признак первой попытки.
// XP начисляется только за первую попытку: 10 XP за каждый правильный ответ.
func ScoreAttempt(answerKey map[uint]int, answers []entity.SubmittedAnswer, totalQuestions int, isFirstAttempt bool) AttemptOutcome {
	score := Score(answerKey, answers)

	xpGained := 0
	if isFirstAttempt {
		xpGained = score * XPPerCorrectAnswer
	}

	return AttemptOutcome{
		Score:          score,
		TotalQuestions: totalQuestions,
		XPGained:       xpGained,
		IsFirstAttempt: isFirstAttempt,
	}
}

// LevelDelta возвращает прирост уровня за одно начисление XP.
// Уровень растет на floor(xpDelta/100) в момент начисления; дробный
// остаток не переносится на следующие начисления.
func LevelDelta(xpGained int) int {
	if xpGained <= 0 {
		return 0
	}
	return xpGained / XPPerLevel
}

// Percentage возвращает округленный процент правильных ответов.
// Деление на ноль невозможно: для викторины без вопросов возвращается 0,
// т.к. процент - производное отображаемое значение.
func Percentage(score, totalQuestions int) int {
	if totalQuestions <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(totalQuestions) * 100))
}
