package consts

import (
	"net/http"

	"github.com/samfisher58/LoanLink-server-side/internal/pkg/models"
)

var (
	ErrorUnauthenticated = &models.CustomError{
		Code:    "LOANLINK_UNAUTHENTICATED",
		Message: "missing or invalid credential",
		Status:  http.StatusUnauthorized,
	}
	ErrorForbidden = &models.CustomError{
		Code:    "LOANLINK_FORBIDDEN",
		Message: "forbidden access",
		Status:  http.StatusForbidden,
	}
	ErrorInvalidArgument = &models.CustomError{
		Code:    "LOANLINK_INVALID_ARGUMENT",
		Message: "malformed identifier or payload",
		Status:  http.StatusBadRequest,
	}
	ErrorNotFound = &models.CustomError{
		Code:    "LOANLINK_NOT_FOUND",
		Message: "not found",
		Status:  http.StatusNotFound,
	}
	ErrorCheckoutSessionFailed = &models.CustomError{
		Code:    "LOANLINK_CHECKOUT_SESSION_FAILED",
		Message: "failed to create checkout session",
		Status:  http.StatusBadGateway,
	}
	ErrorPaymentNotCompleted = &models.CustomError{
		Code:    "LOANLINK_PAYMENT_NOT_COMPLETED",
		Message: "payment not completed",
		Status:  http.StatusConflict,
	}
)
