package ranking

import (
	"sort"
)

// sortAttempts возвращает копию попыток, отсортированную по возрастанию
// StartedAt. AttemptID служит финальным разделителем равных моментов,
// поэтому результат не зависит от порядка входной последовательности.
func sortAttempts(attempts []AttemptRecord) []AttemptRecord {
	sorted := make([]AttemptRecord, len(attempts))
	copy(sorted, attempts)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].StartedAt.Equal(sorted[j].StartedAt) {
			return sorted[i].StartedAt.Before(sorted[j].StartedAt)
		}
		return sorted[i].AttemptID < sorted[j].AttemptID
	})
	return sorted
}

// RankQuiz сводит попытки одной викторины к рейтингу: по одной строке на
// пользователя, учитывается только первая попытка (минимальный StartedAt),
// даже если более поздние набрали больше очков.
// Сортировка строк: очки по убыванию, затем время завершения по возрастанию
// (при равных очках выше тот, кто завершил раньше).
func RankQuiz(quiz QuizInfo, attempts []AttemptRecord) *QuizRanking {
	firstAttempts := make(map[uint]RankEntry)

	for _, attempt := range sortAttempts(attempts) {
		if _, seen := firstAttempts[attempt.UserID]; seen {
			// Повторные попытки не участвуют в рейтинге
			continue
		}
		firstAttempts[attempt.UserID] = RankEntry{
			UserID:      attempt.UserID,
			Username:    attempt.Username,
			Level:       attempt.Level,
			XP:          attempt.XP,
			Score:       attempt.Score,
			MaxScore:    quiz.TotalQuestions,
			Percentage:  Percentage(attempt.Score, quiz.TotalQuestions),
			CompletedAt: attempt.CompletedAt,
		}
	}

	entries := make([]RankEntry, 0, len(firstAttempts))
	for _, entry := range firstAttempts {
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		if !entries[i].CompletedAt.Equal(entries[j].CompletedAt) {
			return entries[i].CompletedAt.Before(entries[j].CompletedAt)
		}
		return entries[i].UserID < entries[j].UserID
	})

	return &QuizRanking{
		Quiz:              quiz,
		Ranking:           entries,
		TotalParticipants: len(entries),
	}
}

// categoryAccumulator - промежуточное состояние свертки попыток одного
// пользователя по категории
type categoryAccumulator struct {
	entry       CategoryRankEntry
	seenQuizzes map[uint]bool
}

// RankCategory сводит попытки по всем викторинам категории к рейтингу.
// Для каждой пары (пользователь, викторина) учитывается только первая
// попытка - первая по викторине, а не по категории в целом. Средний
// процент пересчитывается как round(totalScore/totalQuestions*100).
// Сортировка строк: средний процент по убыванию, затем количество
// пройденных викторин по убыванию, затем суммарные очки по убыванию.
func RankCategory(category CategoryInfo, attempts []AttemptRecord) *CategoryRanking {
	if category.TotalQuizzes == 0 {
		return &CategoryRanking{
			Category:          category,
			Ranking:           []CategoryRankEntry{},
			TotalParticipants: 0,
		}
	}

	stats := make(map[uint]*categoryAccumulator)

	for _, attempt := range sortAttempts(attempts) {
		acc, ok := stats[attempt.UserID]
		if !ok {
			acc = &categoryAccumulator{
				entry: CategoryRankEntry{
					UserID:       attempt.UserID,
					Username:     attempt.Username,
					Level:        attempt.Level,
					XP:           attempt.XP,
					QuizAttempts: []QuizAttemptSummary{},
				},
				seenQuizzes: make(map[uint]bool),
			}
			stats[attempt.UserID] = acc
		}

		// Учитываем только первую попытку в каждой викторине
		if acc.seenQuizzes[attempt.QuizID] {
			continue
		}
		acc.seenQuizzes[attempt.QuizID] = true

		acc.entry.QuizCount++
		acc.entry.QuizAttempts = append(acc.entry.QuizAttempts, QuizAttemptSummary{
			QuizID:         attempt.QuizID,
			Score:          attempt.Score,
			TotalQuestions: attempt.TotalQuestions,
			Percentage:     Percentage(attempt.Score, attempt.TotalQuestions),
			CompletedAt:    attempt.CompletedAt,
		})

		acc.entry.TotalScore += attempt.Score
		acc.entry.TotalQuestions += attempt.TotalQuestions
		acc.entry.AveragePercentage = Percentage(acc.entry.TotalScore, acc.entry.TotalQuestions)
	}

	entries := make([]CategoryRankEntry, 0, len(stats))
	for _, acc := range stats {
		entries = append(entries, acc.entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].AveragePercentage != entries[j].AveragePercentage {
			return entries[i].AveragePercentage > entries[j].AveragePercentage
		}
		if entries[i].QuizCount != entries[j].QuizCount {
			return entries[i].QuizCount > entries[j].QuizCount
		}
		if entries[i].TotalScore != entries[j].TotalScore {
			return entries[i].TotalScore > entries[j].TotalScore
		}
		return entries[i].UserID < entries[j].UserID
	})

	return &CategoryRanking{
		Category:          category,
		Ranking:           entries,
		TotalParticipants: len(entries),
	}
}
