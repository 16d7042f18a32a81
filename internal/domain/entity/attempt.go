package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// SubmittedAnswer представляет один ответ внутри попытки
type SubmittedAnswer struct {
	QuestionID     uint `json:"question_id"`
	SelectedOption int  `json:"selected_option"`
}

// AnswerArray - пользовательский тип для хранения ответов попытки в JSONB.
// Исторически ответы хранились слабо типизированным JSON-блобом; здесь это
// строго типизированный массив с валидацией на границе хранения.
type AnswerArray []SubmittedAnswer

// Scan реализует интерфейс sql.Scanner для AnswerArray
func (a *AnswerArray) Scan(value interface{}) error {
	if value == nil {
		*a = AnswerArray{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*a = AnswerArray{}
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Value реализует интерфейс driver.Valuer для AnswerArray
func (a AnswerArray) Value() (driver.Value, error) {
	if a == nil || len(a) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}

// Attempt представляет одну отправку ответов пользователя на викторину.
// Попытки пишутся только на добавление: пользователь может отправлять
// сколько угодно попыток, но XP и место в рейтинге дает только первая
// (с минимальным started_at).
type Attempt struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	UserID    uint        `gorm:"not null;index:idx_attempts_user_quiz" json:"user_id"`
	QuizID    uint        `gorm:"not null;index:idx_attempts_user_quiz;index" json:"quiz_id"`
	Score     int         `gorm:"not null;default:0" json:"score"`
	Answers   AnswerArray `gorm:"type:jsonb;not null" json:"answers"`
	StartedAt time.Time   `gorm:"not null;index" json:"started_at"`
	EndedAt   time.Time   `gorm:"not null" json:"ended_at"`

	// Подгружается через Preload для рейтингов
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Quiz *Quiz `gorm:"foreignKey:QuizID" json:"quiz,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Attempt) TableName() string {
	return "attempts"
}
