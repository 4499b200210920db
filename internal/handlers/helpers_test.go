package handlers_test

import (
	"NoteKeeper/internal/config"
	"NoteKeeper/internal/handlers"
	"NoteKeeper/internal/middleware"
	"NoteKeeper/internal/model"
	"NoteKeeper/internal/repo"
	"NoteKeeper/internal/service"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// Local light mocks

type hMockUserRepo struct{ mock.Mock }

func (m *hMockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *hMockUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*hMockUserRepo)(nil)

type hMockNoteRepo struct{ mock.Mock }

func (m *hMockNoteRepo) List(ctx context.Context, f repo.NoteFilter) ([]model.Note, int64, error) {
	args := m.Called(ctx, f)
	if v, ok := args.Get(0).([]model.Note); ok {
		return v, args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}
func (m *hMockNoteRepo) GetByID(ctx context.Context, id string) (*model.Note, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Note); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockNoteRepo) GetOwnedByID(ctx context.Context, userID int64, id string) (*model.Note, error) {
	args := m.Called(ctx, userID, id)
	if v, ok := args.Get(0).(*model.Note); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockNoteRepo) Create(ctx context.Context, n *model.Note) error {
	return m.Called(ctx, n).Error(0)
}
func (m *hMockNoteRepo) Save(ctx context.Context, n *model.Note) error {
	return m.Called(ctx, n).Error(0)
}
func (m *hMockNoteRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

var _ repo.NoteRepository = (*hMockNoteRepo)(nil)

type hMockCategoryRepo struct{ mock.Mock }

func (m *hMockCategoryRepo) ListWithCounts(ctx context.Context) ([]model.CategoryWithCount, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]model.CategoryWithCount); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockCategoryRepo) GetByID(ctx context.Context, id string) (*model.Category, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Category); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockCategoryRepo) GetByName(ctx context.Context, name string) (*model.Category, error) {
	args := m.Called(ctx, name)
	if v, ok := args.Get(0).(*model.Category); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockCategoryRepo) Create(ctx context.Context, c *model.Category) error {
	return m.Called(ctx, c).Error(0)
}
func (m *hMockCategoryRepo) UpdateName(ctx context.Context, id, name string) (*model.Category, error) {
	args := m.Called(ctx, id, name)
	if v, ok := args.Get(0).(*model.Category); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockCategoryRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

var _ repo.CategoryRepository = (*hMockCategoryRepo)(nil)

type hMockUploader struct{ mock.Mock }

func (m *hMockUploader) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, data, contentType)
	return args.String(0), args.Error(1)
}

var _ service.PhotoUploader = (*hMockUploader)(nil)

type testEnv struct {
	router http.Handler
	cfg    *config.Config
	users  *hMockUserRepo
	notes  *hMockNoteRepo
	cats   *hMockCategoryRepo
	upload *hMockUploader
}

func newTestRouter(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.Config{AuthSecret: "test-secret", CORSOrigin: "http://localhost:5173", PhotoMaxSizeMB: 1}
	logger := zap.NewNop().Sugar()

	env := &testEnv{
		cfg:    cfg,
		users:  &hMockUserRepo{},
		notes:  &hMockNoteRepo{},
		cats:   &hMockCategoryRepo{},
		upload: &hMockUploader{},
	}

	userSvc := service.NewUserService(env.users)
	noteSvc := service.NewNoteService(env.notes, env.cats, env.upload, logger)
	catSvc := service.NewCategoryService(env.cats)

	h := handlers.NewHandler(userSvc, noteSvc, catSvc, logger, cfg)
	env.router = h.Router
	return env
}

// addAuth подписывает запрос токеном пользователя.
func addAuth(t *testing.T, req *http.Request, userID int64, secret string) {
	t.Helper()
	token, err := middleware.BuildJWTString(userID, secret)
	if err != nil {
		t.Fatalf("BuildJWTString: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

func do(t *testing.T, router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}
