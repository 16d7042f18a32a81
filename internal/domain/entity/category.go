package entity

import (
	"time"
)

// Category представляет тематическую категорию викторин
type Category struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string `gorm:"size:500;not null;default:''" json:"description"`
	Color       string `gorm:"size:20;not null;default:''" json:"color"`
	Icon        string `gorm:"size:50;not null;default:''" json:"icon"`

	Quizzes []Quiz `gorm:"foreignKey:CategoryID" json:"quizzes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Category) TableName() string {
	return "categories"
}
