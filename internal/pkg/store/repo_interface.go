package store

import (
	"context"

	"github.com/samfisher58/LoanLink-server-side/internal/pkg/models"

	"go.mongodb.org/mongo-driver/bson"
)

type LoansRepo interface {
	List(ctx context.Context, filter bson.M) ([]models.Loan, error)
	ListRecent(ctx context.Context, filter bson.M, limit int64) ([]models.Loan, error)
	GetByID(ctx context.Context, id string) (*models.Loan, error)
	Create(ctx context.Context, req models.CreateLoanRequest, createdBy string) (*models.Loan, error)
	UpdateByID(ctx context.Context, id string, fields bson.M) error
	DeleteByID(ctx context.Context, id string) error
}

type LoanApplicationsRepo interface {
	List(ctx context.Context, filter bson.M) ([]models.LoanApplication, error)
	GetByID(ctx context.Context, id string) (*models.LoanApplication, error)
	Create(ctx context.Context, req models.CreateApplicationRequest, fee float64) (*models.LoanApplication, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	MarkPaid(ctx context.Context, id string, transactionID string) error
	DeleteByID(ctx context.Context, id string) error
}

type UsersRepo interface {
	List(ctx context.Context, filter bson.M) ([]models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetRoleByEmail(ctx context.Context, email string) (string, error)
	Create(ctx context.Context, req models.CreateUserRequest) (*models.User, bool, error)
	UpdateRole(ctx context.Context, id string, role string) error
}

type PaymentsRepo interface {
	Insert(ctx context.Context, payment models.Payment) (*models.Payment, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
}
