package service

import (
	"NoteKeeper/internal/model"
	"NoteKeeper/internal/repo"
	"context"

	"github.com/stretchr/testify/mock"
)

// моки для репозиториев и внешнего хранилища фото

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

type mockNoteRepo struct{ mock.Mock }

func (m *mockNoteRepo) List(ctx context.Context, f repo.NoteFilter) ([]model.Note, int64, error) {
	args := m.Called(ctx, f)
	if v, ok := args.Get(0).([]model.Note); ok {
		return v, args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *mockNoteRepo) GetByID(ctx context.Context, id string) (*model.Note, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Note); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNoteRepo) GetOwnedByID(ctx context.Context, userID int64, id string) (*model.Note, error) {
	args := m.Called(ctx, userID, id)
	if v, ok := args.Get(0).(*model.Note); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNoteRepo) Create(ctx context.Context, n *model.Note) error {
	return m.Called(ctx, n).Error(0)
}

func (m *mockNoteRepo) Save(ctx context.Context, n *model.Note) error {
	return m.Called(ctx, n).Error(0)
}

func (m *mockNoteRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

var _ repo.NoteRepository = (*mockNoteRepo)(nil)

type mockCategoryRepo struct{ mock.Mock }

func (m *mockCategoryRepo) ListWithCounts(ctx context.Context) ([]model.CategoryWithCount, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]model.CategoryWithCount); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, id string) (*model.Category, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Category); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepo) GetByName(ctx context.Context, name string) (*model.Category, error) {
	args := m.Called(ctx, name)
	if v, ok := args.Get(0).(*model.Category); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepo) Create(ctx context.Context, c *model.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCategoryRepo) UpdateName(ctx context.Context, id, name string) (*model.Category, error) {
	args := m.Called(ctx, id, name)
	if v, ok := args.Get(0).(*model.Category); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

var _ repo.CategoryRepository = (*mockCategoryRepo)(nil)

type mockUploader struct{ mock.Mock }

func (m *mockUploader) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, data, contentType)
	return args.String(0), args.Error(1)
}

var _ PhotoUploader = (*mockUploader)(nil)
