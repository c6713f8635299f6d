package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/samfisher58/LoanLink-server-side/internal/pkg/consts"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/db"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicateTransaction reports an insert that lost the race against an
// earlier confirmation of the same external transaction.
var ErrDuplicateTransaction = errors.New("payment already recorded for transaction")

type PaymentsRepository struct {
	repo *MongoRepository[models.Payment]
}

func NewPaymentsRepository(mdb *db.MongoDB) *PaymentsRepository {
	collection := mdb.Database.Collection(consts.PaymentsCollection)
	return &PaymentsRepository{repo: NewMongoRepository[models.Payment](collection)}
}

func NewPaymentsRepositoryWithCollection(collection CollectionAPI) *PaymentsRepository {
	return &PaymentsRepository{repo: NewMongoRepository[models.Payment](collection)}
}

// Insert writes one ledger entry. The unique index on transactionId turns a
// concurrent duplicate into ErrDuplicateTransaction instead of a second row.
func (r *PaymentsRepository) Insert(ctx context.Context, payment models.Payment) (*models.Payment, error) {
	result, err := r.repo.Create(ctx, payment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateTransaction
		}
		return nil, fmt.Errorf("failed to insert payment: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		payment.ID = oid
	}
	return &payment, nil
}

func (r *PaymentsRepository) FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	payment, err := r.repo.FindOne(ctx, bson.M{"transactionId": transactionID})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}
