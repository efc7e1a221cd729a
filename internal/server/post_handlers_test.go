package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPostRepository is a mock of the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context) ([]*models.Post, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newPostTestApp(repo *MockPostRepository) (*fiber.App, *Server) {
	s := &Server{}
	s.postService = service.NewPostService(repo)

	app := fiber.New()
	app.Get("/posts", s.GetPosts)
	app.Post("/posts", s.CreatePost)
	app.Get("/posts/:id", s.GetPost)
	app.Put("/posts/:id", s.UpdatePost)
	app.Delete("/posts/:id", s.DeletePost)
	return app, s
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, out))
}

func TestCreatePostHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(repo *MockPostRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"title":   "New Post",
				"content": "Hello world",
			},
			mockSetup: func(repo *MockPostRepository) {
				repo.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing Fields",
			body:           map[string]string{"title": ""},
			mockSetup:      func(repo *MockPostRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockPostRepository)
			tt.mockSetup(repo)
			app, _ := newPostTestApp(repo)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestGetPostHandler(t *testing.T) {
	repo := new(MockPostRepository)
	repo.On("GetByID", mock.Anything, uint(1)).Return(&models.Post{ID: 1, Title: "T", Content: "C"}, nil)
	repo.On("GetByID", mock.Anything, uint(99)).Return(nil, models.NewNotFoundError("Post", 99))
	app, _ := newPostTestApp(repo)

	tests := []struct {
		name           string
		path           string
		expectedStatus int
	}{
		{"Found", "/posts/1", http.StatusOK},
		{"Not Found", "/posts/99", http.StatusNotFound},
		{"Invalid ID", "/posts/abc", http.StatusBadRequest},
		{"Zero ID", "/posts/0", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestGetPostsHandler(t *testing.T) {
	repo := new(MockPostRepository)
	repo.On("List", mock.Anything).Return([]*models.Post{
		{ID: 2, Title: "Second"},
		{ID: 1, Title: "First"},
	}, nil)
	app, _ := newPostTestApp(repo)

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var posts []models.Post
	decodeJSON(t, resp, &posts)
	require.Len(t, posts, 2)
	assert.Equal(t, uint(2), posts[0].ID)
}

func TestUpdatePostHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{"Partial update", `{"title":"Updated"}`, http.StatusOK},
		{"Supplied empty title", `{"title":""}`, http.StatusBadRequest},
		{"Supplied empty content", `{"content":"  "}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockPostRepository)
			repo.On("GetByID", mock.Anything, uint(1)).Return(&models.Post{ID: 1, Title: "T", Content: "C"}, nil)
			repo.On("Update", mock.Anything, mock.Anything).Return(nil)
			app, _ := newPostTestApp(repo)

			req := httptest.NewRequest(http.MethodPut, "/posts/1", bytes.NewReader([]byte(tt.body)))
			req.Header.Set("Content-Type", "application/json")
			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusOK {
				var post models.Post
				decodeJSON(t, resp, &post)
				assert.Equal(t, "Updated", post.Title)
				assert.Equal(t, "C", post.Content)
			}
		})
	}
}

func TestDeletePostHandler(t *testing.T) {
	repo := new(MockPostRepository)
	repo.On("Delete", mock.Anything, uint(1)).Return(nil)
	repo.On("Delete", mock.Anything, uint(99)).Return(models.NewNotFoundError("Post", 99))
	app, _ := newPostTestApp(repo)

	resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/posts/1", nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp404, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/posts/99", nil))
	defer func() { _ = resp404.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp404.StatusCode)

	var errBody map[string]string
	decodeJSON(t, resp404, &errBody)
	assert.Contains(t, errBody, "error")
}
