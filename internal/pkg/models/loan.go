package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Loan struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	Amount       float64            `bson:"amount" json:"amount"`
	InterestRate float64            `bson:"interestRate" json:"interestRate"`
	TermMonths   int                `bson:"termMonths" json:"termMonths"`
	Category     string             `bson:"category" json:"category"`
	ImageURL     string             `bson:"imageUrl" json:"imageUrl"`
	ShowOnHome   bool               `bson:"showOnHome" json:"showOnHome"`
	CreatedBy    string             `bson:"createdBy" json:"createdBy"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
