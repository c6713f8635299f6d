package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/samfisher58/LoanLink-server-side/internal/pkg/consts"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

type stubVerifier struct {
	email string
	err   error
}

func (s *stubVerifier) VerifyToken(ctx context.Context, idToken string) (string, error) {
	return s.email, s.err
}

type stubUsersRepo struct {
	user *models.User
	err  error
}

func (s *stubUsersRepo) List(ctx context.Context, filter bson.M) ([]models.User, error) {
	return nil, nil
}

func (s *stubUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return nil, consts.ErrorNotFound
}

func (s *stubUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.user, s.err
}

func (s *stubUsersRepo) GetRoleByEmail(ctx context.Context, email string) (string, error) {
	return models.RoleBorrower, nil
}

func (s *stubUsersRepo) Create(ctx context.Context, req models.CreateUserRequest) (*models.User, bool, error) {
	return nil, false, nil
}

func (s *stubUsersRepo) UpdateRole(ctx context.Context, id string, role string) error {
	return nil
}

func runRequest(t *testing.T, handlers []gin.HandlerFunc, mutate func(*http.Request)) (*httptest.ResponseRecorder, *bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handlerRan := false
	r := gin.New()
	chain := append(handlers, func(c *gin.Context) {
		handlerRan = true
		c.JSON(http.StatusOK, gin.H{"principal": c.GetString(PrincipalEmailKey)})
	})
	r.GET("/protected", chain...)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if mutate != nil {
		mutate(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w, &handlerRan
}

func TestVerifyToken(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		verifier   *stubVerifier
		wantStatus int
		wantRan    bool
	}{
		{
			name:       "missing header",
			header:     "",
			verifier:   &stubVerifier{email: "a@x.com"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "non-bearer header",
			header:     "Basic dXNlcjpwYXNz",
			verifier:   &stubVerifier{email: "a@x.com"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "rejected token",
			header:     "Bearer bad-token",
			verifier:   &stubVerifier{err: consts.ErrorUnauthenticated},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token sets the principal",
			header:     "Bearer good-token",
			verifier:   &stubVerifier{email: "a@x.com"},
			wantStatus: http.StatusOK,
			wantRan:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, ran := runRequest(t, []gin.HandlerFunc{VerifyToken(tt.verifier)}, func(req *http.Request) {
				if tt.header != "" {
					req.Header.Set("Authorization", tt.header)
				}
			})

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantRan, *ran)
			if tt.wantRan {
				assert.Contains(t, w.Body.String(), "a@x.com")
			}
		})
	}
}

func TestOwnerOrSelf(t *testing.T) {
	verifier := &stubVerifier{email: "a@x.com"}

	t.Run("matching email passes", func(t *testing.T) {
		w, ran := runRequest(t, []gin.HandlerFunc{VerifyToken(verifier), OwnerOrSelf("email")}, func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer good")
			req.URL.RawQuery = "email=a@x.com"
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, *ran)
	})

	t.Run("someone else's email is forbidden and the handler never runs", func(t *testing.T) {
		w, ran := runRequest(t, []gin.HandlerFunc{VerifyToken(verifier), OwnerOrSelf("email")}, func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer good")
			req.URL.RawQuery = "email=victim@x.com"
		})

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.False(t, *ran)
	})

	t.Run("missing principal is forbidden", func(t *testing.T) {
		w, ran := runRequest(t, []gin.HandlerFunc{OwnerOrSelf("email")}, func(req *http.Request) {
			req.URL.RawQuery = "email=a@x.com"
		})

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.False(t, *ran)
	})
}

func TestRequireRole(t *testing.T) {
	verifier := &stubVerifier{email: "a@x.com"}

	tests := []struct {
		name       string
		users      *stubUsersRepo
		wantStatus int
		wantRan    bool
	}{
		{
			name:       "admin record passes",
			users:      &stubUsersRepo{user: &models.User{Email: "a@x.com", Role: models.RoleAdmin}},
			wantStatus: http.StatusOK,
			wantRan:    true,
		},
		{
			name:       "borrower record is forbidden",
			users:      &stubUsersRepo{user: &models.User{Email: "a@x.com", Role: models.RoleBorrower}},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "no record is forbidden",
			users:      &stubUsersRepo{err: consts.ErrorNotFound},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guards := []gin.HandlerFunc{VerifyToken(verifier), RequireRole(tt.users, models.RoleAdmin)}
			w, ran := runRequest(t, guards, func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer good")
			})

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantRan, *ran)
		})
	}
}
