package repo

import (
	"NoteKeeper/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB открывает подключение к Postgres и накатывает миграции моделей.
func InitDB(dsn string) (*gorm.DB, error) {
	// FK-констрейнты не создаются: удаление категории или пользователя
	// оставляет повисшую ссылку в заметке, это допустимо по модели данных.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{DisableForeignKeyConstraintWhenMigrating: true})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.User{}, &model.Category{}, &model.Note{}); err != nil {
		return nil, err
	}
	return db, nil
}
