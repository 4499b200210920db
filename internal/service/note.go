package service

import (
	"NoteKeeper/internal/model"
	"NoteKeeper/internal/repo"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PhotoUploader — контракт внешнего хранилища изображений.
type PhotoUploader interface {
	// Upload кладёт байты в хранилище и возвращает публичный URL.
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}

// NoteService инкапсулирует бизнес-логику работы с заметками:
// выборку с фильтрами и пагинацией и мутации с проверкой владельца.
type NoteService struct {
	notes    repo.NoteRepository
	cats     repo.CategoryRepository
	uploader PhotoUploader
	logger   *zap.SugaredLogger
}

func NewNoteService(notes repo.NoteRepository, cats repo.CategoryRepository, uploader PhotoUploader, logger *zap.SugaredLogger) *NoteService {
	return &NoteService{notes: notes, cats: cats, uploader: uploader, logger: logger}
}

// NoteInput — поля заметки, приходящие от клиента.
// Используется и при создании, и при полном обновлении.
type NoteInput struct {
	Title        string
	Content      string
	CategoryName string
	Author       string
	Tags         []string
	ImageURL     string
}

// List возвращает страницу заметок и общее число совпадений.
func (s *NoteService) List(ctx context.Context, f repo.NoteFilter) ([]model.Note, int64, error) {
	notes, total, err := s.notes.List(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("listing notes: %w", err)
	}
	return notes, total, nil
}

// Get возвращает заметку с категорией и владельцем.
func (s *NoteService) Get(ctx context.Context, id string) (*model.Note, error) {
	note, err := s.notes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching note: %w", err)
	}
	return note, nil
}

// resolveCategory ищет категорию по точному имени.
// Между этой проверкой и вставкой заметки категорию могут успеть удалить —
// операции независимы, транзакции нет. Известное окно, оставлено как есть.
func (s *NoteService) resolveCategory(ctx context.Context, name string) (*model.Category, error) {
	cat, err := s.cats.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCategory
		}
		return nil, fmt.Errorf("resolving category: %w", err)
	}
	return cat, nil
}

// Create сохраняет новую заметку, владельцем становится вызывающий.
func (s *NoteService) Create(ctx context.Context, userID int64, in NoteInput) (*model.Note, error) {
	if in.Title == "" || in.Content == "" || in.CategoryName == "" || in.Author == "" {
		return nil, ErrValidation
	}
	cat, err := s.resolveCategory(ctx, in.CategoryName)
	if err != nil {
		return nil, err
	}

	note := &model.Note{
		ID:         uuid.NewString(),
		Title:      in.Title,
		Content:    in.Content,
		Author:     in.Author,
		CategoryID: cat.ID,
		Tags:       in.Tags,
		ImageURL:   in.ImageURL,
		UserID:     &userID,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("creating note: %w", err)
	}
	note.Category = cat
	return note, nil
}

// isOwner сравнивает владельца строго по id учётной записи, никогда по имени.
func isOwner(note *model.Note, userID int64) bool {
	return note.UserID != nil && *note.UserID == userID
}

// Update перезаписывает поля заметки целиком (не patch): не присланные
// клиентом поля очищаются. Разрешено только владельцу.
func (s *NoteService) Update(ctx context.Context, userID int64, id string, in NoteInput) (*model.Note, error) {
	note, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isOwner(note, userID) {
		return nil, ErrForbidden
	}

	cat, err := s.resolveCategory(ctx, in.CategoryName)
	if err != nil {
		return nil, err
	}

	note.Title = in.Title
	note.Content = in.Content
	note.Author = in.Author
	note.CategoryID = cat.ID
	note.Tags = in.Tags
	note.ImageURL = in.ImageURL

	if err := s.notes.Save(ctx, note); err != nil {
		return nil, fmt.Errorf("updating note: %w", err)
	}
	note.Category = cat
	return note, nil
}

// Delete удаляет заметку навсегда. Разрешено только владельцу.
func (s *NoteService) Delete(ctx context.Context, userID int64, id string) error {
	note, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !isOwner(note, userID) {
		return ErrForbidden
	}
	if err := s.notes.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting note: %w", err)
	}
	return nil
}

// AttachPhoto загружает фото во внешнее хранилище и сохраняет URL на заметке.
// Заметка ищется по (id, владелец): чужая заметка даёт NotFound, не Forbidden.
// Повторных попыток загрузки нет — единственная ошибка уходит вызывающему.
func (s *NoteService) AttachPhoto(ctx context.Context, userID int64, id string, data []byte, contentType string) (*model.Note, error) {
	note, err := s.notes.GetOwnedByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching note: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoFile
	}

	url, err := s.uploader.Upload(ctx, data, contentType)
	if err != nil {
		s.logger.Errorw("photo upload failed", "note_id", id, "error", err)
		return nil, ErrUploadFailed
	}

	note.Photo = url
	if err := s.notes.Save(ctx, note); err != nil {
		return nil, fmt.Errorf("saving photo url: %w", err)
	}
	return note, nil
}
