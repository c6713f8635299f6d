package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/samfisher58/LoanLink-server-side/configs"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/consts"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/downstreams"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/kafka/producer"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/logger"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/models"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/notification"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/store"
)

const sessionPaid = "paid"

type ApplicantNotifier interface {
	NotifyApplicant(ctx context.Context, email, trackingID, event, detail string) error
}

type PaymentServiceInterface interface {
	CreateSession(ctx context.Context, applicationID string) (string, error)
	ConfirmPayment(ctx context.Context, sessionID string) (*ConfirmPaymentResult, error)
}

// ConfirmPaymentResult reports one confirmation attempt. AlreadyRecorded
// distinguishes a replayed confirmation from the first successful one.
type ConfirmPaymentResult struct {
	Success         bool            `json:"success"`
	AlreadyRecorded bool            `json:"alreadyRecorded"`
	SessionStatus   string          `json:"sessionStatus"`
	Payment         *models.Payment `json:"payment,omitempty"`
}

type PaymentService struct {
	checkout     downstreams.CheckoutClient
	applications store.LoanApplicationsRepo
	payments     store.PaymentsRepo
	events       producer.EventPublisher
	notifier     ApplicantNotifier
	stripeCfg    configs.StripeConfig
	siteOrigin   string
}

func NewPaymentService(
	checkout downstreams.CheckoutClient,
	applications store.LoanApplicationsRepo,
	payments store.PaymentsRepo,
	events producer.EventPublisher,
	notifier ApplicantNotifier,
	stripeCfg configs.StripeConfig,
	siteOrigin string,
) *PaymentService {
	return &PaymentService{
		checkout:     checkout,
		applications: applications,
		payments:     payments,
		events:       events,
		notifier:     notifier,
		stripeCfg:    stripeCfg,
		siteOrigin:   siteOrigin,
	}
}

// CreateSession builds an external checkout session for the application's
// flat fee and returns the redirect URL. No stored state changes here; a
// failed or abandoned session leaves the application pending and retryable.
func (s *PaymentService) CreateSession(ctx context.Context, applicationID string) (string, error) {
	application, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return "", err
	}
	if application.PaymentStatus == models.PaymentStatusPaid {
		return "", consts.ErrorPaymentNotCompleted
	}

	origin := strings.TrimRight(s.siteOrigin, "/")
	session, err := s.checkout.CreateSession(ctx, downstreams.CreateSessionParams{
		AmountCents:   int64(math.Round(application.FeeAmount * 100)),
		Currency:      s.stripeCfg.Currency,
		ProductName:   fmt.Sprintf("Loan application fee (%s)", application.TrackingID),
		CustomerEmail: application.Email,
		LoanID:        application.ID.Hex(),
		TrackingID:    application.TrackingID,
		SuccessURL:    origin + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     origin + "/payment-cancelled",
	})
	if err != nil {
		return "", err
	}
	return session.URL, nil
}

// ConfirmPayment reconciles the external session into the application and
// the payment ledger. Called at least once per payment (redirect landing,
// retried webhook); the ledger's unique transaction id makes every call
// after the first a read-only no-op.
func (s *PaymentService) ConfirmPayment(ctx context.Context, sessionID string) (*ConfirmPaymentResult, error) {
	session, err := s.checkout.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	transactionID := session.PaymentIntent
	if transactionID != "" {
		existing, err := s.payments.FindByTransactionID(ctx, transactionID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return &ConfirmPaymentResult{
				Success:         true,
				AlreadyRecorded: true,
				SessionStatus:   session.PaymentStatus,
				Payment:         existing,
			}, nil
		}
	}

	if session.PaymentStatus != sessionPaid || transactionID == "" {
		logger.Info(ctx, "Session %v not paid (status %v), nothing recorded", sessionID, session.PaymentStatus)
		return &ConfirmPaymentResult{
			Success:       false,
			SessionStatus: session.PaymentStatus,
		}, nil
	}

	applicationID := session.Metadata["loanId"]
	trackingID := session.Metadata["trackingId"]

	if err := s.applications.MarkPaid(ctx, applicationID, transactionID); err != nil {
		return nil, err
	}

	payment := models.Payment{
		Amount:        float64(session.AmountTotal) / 100,
		Currency:      session.Currency,
		TransactionID: transactionID,
		Email:         session.CustomerEmail,
		TrackingID:    trackingID,
		PaidAt:        time.Now().UTC(),
	}
	inserted, err := s.payments.Insert(ctx, payment)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateTransaction) {
			// Another confirmation of the same transaction won the insert.
			existing, ferr := s.payments.FindByTransactionID(ctx, transactionID)
			if ferr != nil {
				return nil, ferr
			}
			return &ConfirmPaymentResult{
				Success:         true,
				AlreadyRecorded: true,
				SessionStatus:   session.PaymentStatus,
				Payment:         existing,
			}, nil
		}
		return nil, err
	}

	s.emitPaymentEvents(ctx, inserted)

	return &ConfirmPaymentResult{
		Success:       true,
		SessionStatus: session.PaymentStatus,
		Payment:       inserted,
	}, nil
}

// Eventing is best-effort: the ledger entry is already durable and a replay
// of the confirmation will not re-emit, so failures are only logged.
func (s *PaymentService) emitPaymentEvents(ctx context.Context, payment *models.Payment) {
	if s.events != nil {
		err := s.events.PublishPaymentEvent(ctx, producer.PaymentEvent{
			TransactionID: payment.TransactionID,
			TrackingID:    payment.TrackingID,
			Email:         payment.Email,
			Amount:        payment.Amount,
			Currency:      payment.Currency,
			PaidAt:        payment.PaidAt,
		})
		if err != nil {
			logger.Error(ctx, "Failed to publish payment event for %v: %v", payment.TransactionID, err)
		}
	}

	if s.notifier != nil {
		detail := fmt.Sprintf("Payment of %.2f %s received", payment.Amount, strings.ToUpper(payment.Currency))
		if err := s.notifier.NotifyApplicant(ctx, payment.Email, payment.TrackingID, notification.EventPaymentReceived, detail); err != nil {
			logger.Error(ctx, "Failed to notify applicant for %v: %v", payment.TrackingID, err)
		}
	}
}
