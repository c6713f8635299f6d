package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Application status values set by admin review.
const (
	ApplicationStatusPending  = "Pending"
	ApplicationStatusApproved = "Approved"
	ApplicationStatusRejected = "Rejected"
)

// Payment status values managed by the payment service.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

type LoanApplication struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	TrackingID    string             `bson:"loanTrackingId" json:"loanTrackingId"`
	LoanTitle     string             `bson:"loanTitle" json:"loanTitle"`
	Email         string             `bson:"email" json:"email"`
	FirstName     string             `bson:"firstName" json:"firstName"`
	LastName      string             `bson:"lastName" json:"lastName"`
	LoanAmount    float64            `bson:"loanAmount" json:"loanAmount"`
	Status        string             `bson:"loanStatus" json:"loanStatus"`
	PaymentStatus string             `bson:"paymentStatus" json:"paymentStatus"`
	FeeAmount     float64            `bson:"feeAmount" json:"feeAmount"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	PaidAt        *time.Time         `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
}
