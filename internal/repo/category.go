package repo

import (
	"NoteKeeper/internal/model"
	"context"

	"gorm.io/gorm"
)

// CategoryRepository определяет контракт доступа к Category.
type CategoryRepository interface {
	// ListWithCounts возвращает все категории с живым счётчиком заметок
	// (LEFT JOIN + count на каждом вызове, счётчик нигде не хранится).
	ListWithCounts(ctx context.Context) ([]model.CategoryWithCount, error)

	// GetByID возвращает категорию или gorm.ErrRecordNotFound.
	GetByID(ctx context.Context, id string) (*model.Category, error)

	// GetByName ищет категорию по точному имени или gorm.ErrRecordNotFound.
	GetByName(ctx context.Context, name string) (*model.Category, error)

	// Create создаёт категорию. Уникальность имени обеспечивает индекс БД.
	Create(ctx context.Context, c *model.Category) error

	// UpdateName переименовывает категорию и возвращает обновлённую запись.
	UpdateName(ctx context.Context, id, name string) (*model.Category, error)

	// Delete удаляет категорию. Заметки, ссылающиеся на неё, не трогаются.
	Delete(ctx context.Context, id string) error
}

type categoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepository создаёт реализацию репозитория для Category.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) ListWithCounts(ctx context.Context) ([]model.CategoryWithCount, error) {
	var rows []model.CategoryWithCount
	err := r.db.WithContext(ctx).
		Model(&model.Category{}).
		Select("categories.id, categories.name, categories.created_at, categories.updated_at, count(notes.id) AS note_count").
		Joins("LEFT JOIN notes ON notes.category_id = categories.id").
		Group("categories.id").
		Order("categories.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *categoryRepo) GetByID(ctx context.Context, id string) (*model.Category, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) GetByName(ctx context.Context, name string) (*model.Category, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) Create(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepo) UpdateName(ctx context.Context, id, name string) (*model.Category, error) {
	tx := r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).Update("name", name)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *categoryRepo) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Delete(&model.Category{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
