package model

import "time"

// Category — именованная группа заметок. Имя уникально на уровне БД.
type Category struct {
	ID   string `gorm:"primaryKey;type:uuid" json:"id"`
	Name string `gorm:"not null;uniqueIndex" json:"name"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// CategoryWithCount — категория с производным числом заметок.
// Счётчик вычисляется агрегацией при чтении и нигде не хранится.
type CategoryWithCount struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	NoteCount int64     `json:"note_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
