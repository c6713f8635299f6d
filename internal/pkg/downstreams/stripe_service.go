package downstreams

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/samfisher58/LoanLink-server-side/configs"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/consts"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/logger"
)

// CheckoutSession is the slice of Stripe's checkout session object the
// service reads. PaymentIntent is the external transaction identifier.
type CheckoutSession struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentStatus string            `json:"payment_status"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	CustomerEmail string            `json:"customer_email"`
	PaymentIntent string            `json:"payment_intent"`
	Metadata      map[string]string `json:"metadata"`
}

type CreateSessionParams struct {
	AmountCents   int64
	Currency      string
	ProductName   string
	CustomerEmail string
	LoanID        string
	TrackingID    string
	SuccessURL    string
	CancelURL     string
}

// CheckoutClient is what the payment service depends on; StripeService is
// the production implementation.
type CheckoutClient interface {
	CreateSession(ctx context.Context, params CreateSessionParams) (*CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}

type stripeErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

type StripeService struct {
	baseURL   string
	secretKey string
	client    *http.Client
}

func NewStripeService(cfg configs.StripeConfig) *StripeService {
	return &StripeService{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		secretKey: cfg.SecretKey,
		client:    newHTTPClient(cfg.Timeout),
	}
}

func (s *StripeService) CreateSession(ctx context.Context, params CreateSessionParams) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", params.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(params.AmountCents, 10))
	form.Set("line_items[0][price_data][product_data][name]", params.ProductName)
	form.Set("customer_email", params.CustomerEmail)
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	form.Set("metadata[loanId]", params.LoanID)
	form.Set("metadata[trackingId]", params.TrackingID)

	endpointURL := s.baseURL + "/v1/checkout/sessions"
	logger.Info(ctx, "Create checkout session for application %v amount %v %v", params.LoanID, params.AmountCents, params.Currency)

	body, status, err := makeAPICall(ctx, s.client, endpointURL, http.MethodPost, s.headers(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	return s.decodeSession(ctx, body, status)
}

func (s *StripeService) RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	endpointURL := fmt.Sprintf("%s/v1/checkout/sessions/%s", s.baseURL, url.PathEscape(sessionID))

	body, status, err := makeAPICall(ctx, s.client, endpointURL, http.MethodGet, s.headers(), nil)
	if err != nil {
		return nil, err
	}
	return s.decodeSession(ctx, body, status)
}

func (s *StripeService) headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + s.secretKey,
		"Content-Type":  "application/x-www-form-urlencoded",
	}
}

func (s *StripeService) decodeSession(ctx context.Context, body []byte, status int) (*CheckoutSession, error) {
	if status != http.StatusOK {
		var errResp stripeErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
			logger.Error(ctx, "Checkout session API error (%v): %v", errResp.Error.Type, errResp.Error.Message)
			return nil, consts.ErrorCheckoutSessionFailed
		}
		logger.Error(ctx, "Checkout session API returned status %v", status)
		return nil, consts.ErrorCheckoutSessionFailed
	}

	var session CheckoutSession
	if err := json.Unmarshal(body, &session); err != nil {
		logger.Error(ctx, "Error while unmarshalling checkout session response: %v", err.Error())
		return nil, err
	}
	return &session, nil
}
