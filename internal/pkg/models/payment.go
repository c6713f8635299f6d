package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is an immutable ledger entry. One document per completed external
// transaction; never updated or deleted.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Amount        float64            `bson:"amount" json:"amount"`
	Currency      string             `bson:"currency" json:"currency"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	Email         string             `bson:"email" json:"email"`
	TrackingID    string             `bson:"loanTrackingId" json:"loanTrackingId"`
	PaidAt        time.Time          `bson:"paidAt" json:"paidAt"`
}
