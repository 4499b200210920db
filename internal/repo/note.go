package repo

import (
	"NoteKeeper/internal/model"
	"context"
	"strings"

	"gorm.io/gorm"
)

// NoteFilter — параметры выборки заметок.
// Page нумеруется с единицы; Search — подстрока без учёта регистра.
type NoteFilter struct {
	Search     string
	CategoryID string
	Page       int
	Limit      int
}

// NoteRepository определяет контракт доступа к Note.
type NoteRepository interface {
	// List возвращает страницу заметок и общее число совпадений до пагинации.
	// Сортировка: updated_at по убыванию, id — детерминированный тай-брейк.
	List(ctx context.Context, f NoteFilter) ([]model.Note, int64, error)

	// GetByID возвращает заметку с категорией и владельцем или gorm.ErrRecordNotFound.
	GetByID(ctx context.Context, id string) (*model.Note, error)

	// GetOwnedByID ищет заметку по (id, userID): чужая заметка неотличима от отсутствующей.
	GetOwnedByID(ctx context.Context, userID int64, id string) (*model.Note, error)

	// Create сохраняет новую заметку.
	Create(ctx context.Context, n *model.Note) error

	// Save перезаписывает все поля заметки и обновляет updated_at.
	Save(ctx context.Context, n *model.Note) error

	// Delete удаляет заметку навсегда.
	Delete(ctx context.Context, id string) error
}

type noteRepo struct {
	db *gorm.DB
}

// NewNoteRepository создаёт реализацию репозитория для Note.
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepo{db: db}
}

// buildQuery собирает общий предикат фильтра: поиск и категория соединяются через AND.
func (r *noteRepo) buildQuery(ctx context.Context, f NoteFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Note{})
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern)
	}
	if f.CategoryID != "" {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	return q
}

func (r *noteRepo) List(ctx context.Context, f NoteFilter) ([]model.Note, int64, error) {
	// total считается до применения пагинации
	var total int64
	if err := r.buildQuery(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = 10
	}

	var notes []model.Note
	err := r.buildQuery(ctx, f).
		Preload("Category").
		Preload("User").
		Order("updated_at DESC, id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&notes).Error
	if err != nil {
		return nil, 0, err
	}
	return notes, total, nil
}

func (r *noteRepo) GetByID(ctx context.Context, id string) (*model.Note, error) {
	var n model.Note
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("User").
		First(&n, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *noteRepo) GetOwnedByID(ctx context.Context, userID int64, id string) (*model.Note, error) {
	var n model.Note
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("User").
		Where("id = ? AND user_id = ?", id, userID).
		First(&n).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *noteRepo) Create(ctx context.Context, n *model.Note) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *noteRepo) Save(ctx context.Context, n *model.Note) error {
	// Save пишет все колонки; ассоциации не трогаем
	return r.db.WithContext(ctx).Omit("Category", "User").Save(n).Error
}

func (r *noteRepo) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Delete(&model.Note{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
