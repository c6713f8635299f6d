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
)

type UsersRepository struct {
	repo *MongoRepository[models.User]
}

func NewUsersRepository(mdb *db.MongoDB) *UsersRepository {
	collection := mdb.Database.Collection(consts.UsersCollection)
	return &UsersRepository{repo: NewMongoRepository[models.User](collection)}
}

func NewUsersRepositoryWithCollection(collection CollectionAPI) *UsersRepository {
	return &UsersRepository{repo: NewMongoRepository[models.User](collection)}
}

func (r *UsersRepository) List(ctx context.Context, filter bson.M) ([]models.User, error) {
	return r.repo.Find(ctx, filter)
}

func (r *UsersRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	user, err := r.repo.FindOne(ctx, bson.M{"_id": oid})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, consts.ErrorNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := r.repo.FindOne(ctx, bson.M{"email": email})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, consts.ErrorNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetRoleByEmail returns the recorded role, defaulting to Borrower for
// accounts that signed in before a User document existed.
func (r *UsersRepository) GetRoleByEmail(ctx context.Context, email string) (string, error) {
	user, err := r.repo.FindOne(ctx, bson.M{"email": email})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.RoleBorrower, nil
		}
		return "", err
	}
	if user.Role == "" {
		return models.RoleBorrower, nil
	}
	return user.Role, nil
}

// Create is idempotent on email: repeat sign-ins return the existing record
// with created=false and write nothing. The unique email index backs this up
// when two first sign-ins race.
func (r *UsersRepository) Create(ctx context.Context, req models.CreateUserRequest) (*models.User, bool, error) {
	existing, err := r.repo.FindOne(ctx, bson.M{"email": req.Email})
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, fmt.Errorf("failed to look up user: %w", err)
	}

	user := models.User{
		Name:      req.Name,
		Email:     req.Email,
		Role:      models.RoleBorrower,
		CreatedAt: time.Now().UTC(),
	}
	result, err := r.repo.Create(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			raced, ferr := r.repo.FindOne(ctx, bson.M{"email": req.Email})
			if ferr != nil {
				return nil, false, ferr
			}
			return &raced, false, nil
		}
		return nil, false, fmt.Errorf("failed to insert user: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return &user, true, nil
}

func (r *UsersRepository) UpdateRole(ctx context.Context, id string, role string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	result, err := r.repo.Update(ctx, bson.M{"_id": oid}, bson.M{"role": role})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return consts.ErrorNotFound
	}
	return nil
}
