package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/samfisher58/LoanLink-server-side/internal/app/middleware"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/consts"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockLoansRepo struct {
	mock.Mock
}

func (m *mockLoansRepo) List(ctx context.Context, filter bson.M) ([]models.Loan, error) {
	args := m.Called(ctx, filter)
	if loans, ok := args.Get(0).([]models.Loan); ok {
		return loans, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLoansRepo) ListRecent(ctx context.Context, filter bson.M, limit int64) ([]models.Loan, error) {
	args := m.Called(ctx, filter, limit)
	if loans, ok := args.Get(0).([]models.Loan); ok {
		return loans, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLoansRepo) GetByID(ctx context.Context, id string) (*models.Loan, error) {
	args := m.Called(ctx, id)
	if loan, ok := args.Get(0).(*models.Loan); ok {
		return loan, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLoansRepo) Create(ctx context.Context, req models.CreateLoanRequest, createdBy string) (*models.Loan, error) {
	args := m.Called(ctx, req, createdBy)
	if loan, ok := args.Get(0).(*models.Loan); ok {
		return loan, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLoansRepo) UpdateByID(ctx context.Context, id string, fields bson.M) error {
	return m.Called(ctx, id, fields).Error(0)
}

func (m *mockLoansRepo) DeleteByID(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func newLoanRouter(repo *mockLoansRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorBoundary())
	h := NewLoanHandler(repo)
	r.GET("/all-loans", h.AllLoans)
	r.POST("/all-loans", h.CreateLoan)
	r.GET("/all-loans-admin", h.AllLoansAdmin)
	r.GET("/six-loans", h.SixLoans)
	r.GET("/all-loans/:id", h.GetLoan)
	r.PATCH("/all-loans/:id", h.UpdateLoan)
	r.DELETE("/all-loans/:id", h.DeleteLoan)
	return r
}

func TestLoanHandlerAllLoans(t *testing.T) {
	t.Run("only home-visible loans are requested", func(t *testing.T) {
		repo := new(mockLoansRepo)
		repo.On("List", mock.Anything, bson.M{"showOnHome": true}).
			Return([]models.Loan{{Title: "Loan A"}}, nil).Once()

		w := httptest.NewRecorder()
		newLoanRouter(repo).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/all-loans", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Loan A")
		repo.AssertExpectations(t)
	})

	t.Run("empty result is an empty array, not null", func(t *testing.T) {
		repo := new(mockLoansRepo)
		repo.On("List", mock.Anything, mock.Anything).Return(nil, nil).Once()

		w := httptest.NewRecorder()
		newLoanRouter(repo).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/all-loans", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", w.Body.String())
	})
}

func TestLoanHandlerSixLoans(t *testing.T) {
	repo := new(mockLoansRepo)
	repo.On("ListRecent", mock.Anything, bson.M{"showOnHome": true}, int64(6)).
		Return([]models.Loan{{Title: "Newest"}}, nil).Once()

	w := httptest.NewRecorder()
	newLoanRouter(repo).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/six-loans", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestLoanHandlerAllLoansAdmin(t *testing.T) {
	repo := new(mockLoansRepo)
	repo.On("List", mock.Anything, bson.M{"createdBy": "lender@x.com"}).
		Return([]models.Loan{}, nil).Once()

	w := httptest.NewRecorder()
	newLoanRouter(repo).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/all-loans-admin?email=lender@x.com", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestLoanHandlerGetLoan(t *testing.T) {
	t.Run("missing loan maps to 404", func(t *testing.T) {
		id := primitive.NewObjectID().Hex()
		repo := new(mockLoansRepo)
		repo.On("GetByID", mock.Anything, id).Return(nil, consts.ErrorNotFound).Once()

		w := httptest.NewRecorder()
		newLoanRouter(repo).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/all-loans/"+id, nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id maps to 400", func(t *testing.T) {
		repo := new(mockLoansRepo)
		repo.On("GetByID", mock.Anything, "zzz").Return(nil, consts.ErrorInvalidArgument).Once()

		w := httptest.NewRecorder()
		newLoanRouter(repo).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/all-loans/zzz", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLoanHandlerCreateLoan(t *testing.T) {
	t.Run("creator comes from the query, not the body", func(t *testing.T) {
		repo := new(mockLoansRepo)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(req models.CreateLoanRequest) bool {
			return req.Title == "Equipment financing" && req.Amount == 25000
		}), "lender@x.com").Return(&models.Loan{Title: "Equipment financing"}, nil).Once()

		body := `{"title":"Equipment financing","amount":25000,"termMonths":36}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/all-loans?email=lender@x.com", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		newLoanRouter(repo).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		repo.AssertExpectations(t)
	})

	t.Run("zero amount is rejected", func(t *testing.T) {
		repo := new(mockLoansRepo)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/all-loans", bytes.NewBufferString(`{"title":"x","amount":0,"termMonths":12}`))
		req.Header.Set("Content-Type", "application/json")
		newLoanRouter(repo).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLoanHandlerUpdateLoan(t *testing.T) {
	id := primitive.NewObjectID().Hex()

	t.Run("only supplied fields reach the store", func(t *testing.T) {
		repo := new(mockLoansRepo)
		repo.On("UpdateByID", mock.Anything, id, bson.M{"showOnHome": false}).Return(nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/all-loans/"+id, bytes.NewBufferString(`{"showOnHome":false}`))
		req.Header.Set("Content-Type", "application/json")
		newLoanRouter(repo).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		repo.AssertExpectations(t)
	})

	t.Run("empty patch is a 400", func(t *testing.T) {
		repo := new(mockLoansRepo)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/all-loans/"+id, bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		newLoanRouter(repo).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "UpdateByID", mock.Anything, mock.Anything, mock.Anything)
	})
}
