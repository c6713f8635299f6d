package store

import (
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/consts"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// parseObjectID converts a path parameter into the store's native id type.
// A malformed hex string is a caller mistake, not a missing document.
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, consts.ErrorInvalidArgument
	}
	return oid, nil
}
