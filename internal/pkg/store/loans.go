package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samfisher58/LoanLink-server-side/internal/pkg/consts"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/db"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LoansRepository struct {
	repo *MongoRepository[models.Loan]
}

func NewLoansRepository(mdb *db.MongoDB) *LoansRepository {
	collection := mdb.Database.Collection(consts.LoansCollection)
	return &LoansRepository{repo: NewMongoRepository[models.Loan](collection)}
}

func NewLoansRepositoryWithCollection(collection CollectionAPI) *LoansRepository {
	return &LoansRepository{repo: NewMongoRepository[models.Loan](collection)}
}

func (r *LoansRepository) List(ctx context.Context, filter bson.M) ([]models.Loan, error) {
	return r.repo.Find(ctx, filter)
}

// ListRecent returns the newest documents matching the filter, createdAt
// descending. Mongo's sort is stable, so equal timestamps keep insertion order.
func (r *LoansRepository) ListRecent(ctx context.Context, filter bson.M, limit int64) ([]models.Loan, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	return r.repo.Find(ctx, filter, opts)
}

func (r *LoansRepository) GetByID(ctx context.Context, id string) (*models.Loan, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	loan, err := r.repo.FindOne(ctx, bson.M{"_id": oid})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, consts.ErrorNotFound
		}
		return nil, err
	}
	return &loan, nil
}

// Create stamps createdBy and createdAt server-side; client-supplied values
// for either field never reach the document.
func (r *LoansRepository) Create(ctx context.Context, req models.CreateLoanRequest, createdBy string) (*models.Loan, error) {
	loan := models.Loan{
		Title:        req.Title,
		Description:  req.Description,
		Amount:       req.Amount,
		InterestRate: req.InterestRate,
		TermMonths:   req.TermMonths,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
		ShowOnHome:   req.ShowOnHome,
		CreatedBy:    createdBy,
		CreatedAt:    time.Now().UTC(),
	}

	result, err := r.repo.Create(ctx, loan)
	if err != nil {
		return nil, fmt.Errorf("failed to insert loan: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		loan.ID = oid
	}
	return &loan, nil
}

func (r *LoansRepository) UpdateByID(ctx context.Context, id string, fields bson.M) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	result, err := r.repo.Update(ctx, bson.M{"_id": oid}, fields)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return consts.ErrorNotFound
	}
	return nil
}

func (r *LoansRepository) DeleteByID(ctx context.Context, id string) error {
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
