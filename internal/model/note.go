package model

import "time"

// Note — серверная модель заметки.
type Note struct {
	ID string `gorm:"primaryKey;type:uuid"`

	Title   string `gorm:"not null"`
	Content string `gorm:"not null"`
	Author  string `gorm:"not null"`

	// Ссылка на categories.id. Без FK-констрейнта: удаление категории оставляет
	// повисшую ссылку, заметка при этом отдаётся с category = null.
	CategoryID string    `gorm:"type:uuid;index"`
	Category   *Category `gorm:"foreignKey:CategoryID"`

	Tags []string `gorm:"serializer:json"`

	// ImageURL задаётся при создании/редактировании, Photo — эндпоинтом загрузки
	ImageURL string
	Photo    string

	UserID *int64 `gorm:"index"` // опциональная ссылка на users.id (владелец)
	User   *User  `gorm:"foreignKey:UserID"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
