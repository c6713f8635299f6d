package downstreams

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/samfisher58/LoanLink-server-side/configs"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/consts"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/logger"
)

// TokenVerifier checks a bearer credential with the external identity
// service and returns the principal's email. No caching, no local minting.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, idToken string) (string, error)
}

type identityLookupResponse struct {
	Users []struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"emailVerified"`
	} `json:"users"`
}

type IdentityService struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewIdentityService(cfg configs.IdentityConfig) *IdentityService {
	return &IdentityService{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  newHTTPClient(cfg.Timeout),
	}
}

func (s *IdentityService) VerifyToken(ctx context.Context, idToken string) (string, error) {
	if idToken == "" {
		return "", consts.ErrorUnauthenticated
	}

	endpointURL := fmt.Sprintf("%s/v1/accounts:lookup?key=%s", s.baseURL, s.apiKey)
	payload := fmt.Sprintf(`{"idToken":%q}`, idToken)
	headers := map[string]string{"Content-Type": "application/json"}

	body, status, err := makeAPICall(ctx, s.client, endpointURL, http.MethodPost, headers, strings.NewReader(payload))
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		logger.Warn(ctx, "Identity verifier rejected token with status %v", status)
		return "", consts.ErrorUnauthenticated
	}

	var lookup identityLookupResponse
	if err := json.Unmarshal(body, &lookup); err != nil {
		logger.Error(ctx, "Error while unmarshalling identity lookup response: %v", err.Error())
		return "", err
	}
	if len(lookup.Users) == 0 || lookup.Users[0].Email == "" {
		return "", consts.ErrorUnauthenticated
	}
	return lookup.Users[0].Email, nil
}
