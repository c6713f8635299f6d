package consts

// Collection names in the LoanLink database.
const (
	LoansCollection            = "loans"
	LoanApplicationsCollection = "loanApplications"
	UsersCollection            = "users"
	PaymentsCollection         = "payments"
)
