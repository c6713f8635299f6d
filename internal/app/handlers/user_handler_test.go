package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/samfisher58/LoanLink-server-side/internal/app/middleware"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockUsersRepo struct {
	mock.Mock
}

func (m *mockUsersRepo) List(ctx context.Context, filter bson.M) ([]models.User, error) {
	args := m.Called(ctx, filter)
	if users, ok := args.Get(0).([]models.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUsersRepo) GetRoleByEmail(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *mockUsersRepo) Create(ctx context.Context, req models.CreateUserRequest) (*models.User, bool, error) {
	args := m.Called(ctx, req)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *mockUsersRepo) UpdateRole(ctx context.Context, id string, role string) error {
	return m.Called(ctx, id, role).Error(0)
}

func newUserRouter(repo *mockUsersRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorBoundary())
	h := NewUserHandler(repo)
	r.POST("/users", h.Create)
	r.GET("/users", h.List)
	r.GET("/users/:id/role", h.GetRole)
	r.PATCH("/users/:id", h.UpdateRole)
	return r
}

func TestUserHandlerCreate(t *testing.T) {
	t.Run("first sign-in returns 201 with the user", func(t *testing.T) {
		repo := new(mockUsersRepo)
		repo.On("Create", mock.Anything, models.CreateUserRequest{Name: "Ana", Email: "a@x.com"}).
			Return(&models.User{ID: primitive.NewObjectID(), Name: "Ana", Email: "a@x.com", Role: models.RoleBorrower}, true, nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(`{"name":"Ana","email":"a@x.com"}`))
		req.Header.Set("Content-Type", "application/json")
		newUserRouter(repo).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "a@x.com")
		repo.AssertExpectations(t)
	})

	t.Run("repeat sign-in returns 200 and reports the no-op", func(t *testing.T) {
		repo := new(mockUsersRepo)
		repo.On("Create", mock.Anything, mock.Anything).
			Return(&models.User{Email: "a@x.com", Role: models.RoleAdmin}, false, nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(`{"email":"a@x.com"}`))
		req.Header.Set("Content-Type", "application/json")
		newUserRouter(repo).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "user already exists")
		assert.Contains(t, w.Body.String(), models.RoleAdmin)
	})

	t.Run("invalid email is rejected before the store", func(t *testing.T) {
		repo := new(mockUsersRepo)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(`{"email":"not-an-email"}`))
		req.Header.Set("Content-Type", "application/json")
		newUserRouter(repo).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUserHandlerGetRole(t *testing.T) {
	repo := new(mockUsersRepo)
	repo.On("GetRoleByEmail", mock.Anything, "a@x.com").Return(models.RoleBorrower, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/a@x.com/role", nil)
	newUserRouter(repo).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"role":"Borrower"}`, w.Body.String())
	repo.AssertExpectations(t)
}

func TestUserHandlerUpdateRole(t *testing.T) {
	t.Run("valid role updates", func(t *testing.T) {
		id := primitive.NewObjectID().Hex()
		repo := new(mockUsersRepo)
		repo.On("UpdateRole", mock.Anything, id, models.RoleAdmin).Return(nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/users/"+id, bytes.NewBufferString(`{"role":"Admin"}`))
		req.Header.Set("Content-Type", "application/json")
		newUserRouter(repo).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		repo.AssertExpectations(t)
	})

	t.Run("unknown role is a 400", func(t *testing.T) {
		repo := new(mockUsersRepo)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/users/abc", bytes.NewBufferString(`{"role":"Superuser"}`))
		req.Header.Set("Content-Type", "application/json")
		newUserRouter(repo).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
	})
}
