package models

// Request bodies bound and validated at the router boundary.

type CreateLoanRequest struct {
	Title        string  `json:"title" binding:"required"`
	Description  string  `json:"description"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	InterestRate float64 `json:"interestRate" binding:"gte=0"`
	TermMonths   int     `json:"termMonths" binding:"required,gt=0"`
	Category     string  `json:"category"`
	ImageURL     string  `json:"imageUrl"`
	ShowOnHome   bool    `json:"showOnHome"`
}

// UpdateLoanRequest carries optional fields merged into the stored document.
// Pointers distinguish "absent" from zero values.
type UpdateLoanRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Amount       *float64 `json:"amount"`
	InterestRate *float64 `json:"interestRate"`
	TermMonths   *int     `json:"termMonths"`
	Category     *string  `json:"category"`
	ImageURL     *string  `json:"imageUrl"`
	ShowOnHome   *bool    `json:"showOnHome"`
}

type CreateApplicationRequest struct {
	LoanTitle  string  `json:"loanTitle" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	LoanAmount float64 `json:"loanAmount" binding:"required,gt=0"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"loanStatus" binding:"required,oneof=Pending Approved Rejected"`
}

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"required,email"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=Borrower Admin"`
}

type CreateCheckoutSessionRequest struct {
	ApplicationID string `json:"applicationId" binding:"required"`
}
