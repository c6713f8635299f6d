package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samfisher58/LoanLink-server-side/internal/pkg/consts"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/db"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type LoanApplicationsRepository struct {
	repo *MongoRepository[models.LoanApplication]
}

func NewLoanApplicationsRepository(mdb *db.MongoDB) *LoanApplicationsRepository {
	collection := mdb.Database.Collection(consts.LoanApplicationsCollection)
	return &LoanApplicationsRepository{repo: NewMongoRepository[models.LoanApplication](collection)}
}

func NewLoanApplicationsRepositoryWithCollection(collection CollectionAPI) *LoanApplicationsRepository {
	return &LoanApplicationsRepository{repo: NewMongoRepository[models.LoanApplication](collection)}
}

// NewTrackingID builds the human-readable identifier handed to applicants,
// LOAN-YYYYMMDD-XXXXXX with six random uppercase hex characters.
func NewTrackingID(now time.Time) string {
	raw := uuid.New()
	suffix := strings.ToUpper(fmt.Sprintf("%x", raw[:3]))
	return fmt.Sprintf("LOAN-%s-%s", now.Format("20060102"), suffix)
}

func (r *LoanApplicationsRepository) List(ctx context.Context, filter bson.M) ([]models.LoanApplication, error) {
	return r.repo.Find(ctx, filter)
}

func (r *LoanApplicationsRepository) GetByID(ctx context.Context, id string) (*models.LoanApplication, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	application, err := r.repo.FindOne(ctx, bson.M{"_id": oid})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, consts.ErrorNotFound
		}
		return nil, err
	}
	return &application, nil
}

// Create stamps everything the client must not control: timestamp, tracking
// id, initial statuses and the flat fee.
func (r *LoanApplicationsRepository) Create(ctx context.Context, req models.CreateApplicationRequest, fee float64) (*models.LoanApplication, error) {
	now := time.Now().UTC()
	application := models.LoanApplication{
		TrackingID:    NewTrackingID(now),
		LoanTitle:     req.LoanTitle,
		Email:         req.Email,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		LoanAmount:    req.LoanAmount,
		Status:        models.ApplicationStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		FeeAmount:     fee,
		CreatedAt:     now,
	}

	result, err := r.repo.Create(ctx, application)
	if err != nil {
		return nil, fmt.Errorf("failed to insert loan application: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		application.ID = oid
	}
	return &application, nil
}

func (r *LoanApplicationsRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	result, err := r.repo.Update(ctx, bson.M{"_id": oid}, bson.M{"loanStatus": status})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return consts.ErrorNotFound
	}
	return nil
}

// MarkPaid sets the paid fields exactly once; the payment service only calls
// it for a session the processor reports as paid.
func (r *LoanApplicationsRepository) MarkPaid(ctx context.Context, id string, transactionID string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	result, err := r.repo.Update(ctx, bson.M{"_id": oid}, bson.M{
		"paymentStatus": models.PaymentStatusPaid,
		"transactionId": transactionID,
		"paidAt":        time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return consts.ErrorNotFound
	}
	return nil
}

func (r *LoanApplicationsRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	result, err := r.repo.Delete(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return consts.ErrorNotFound
	}
	return nil
}
