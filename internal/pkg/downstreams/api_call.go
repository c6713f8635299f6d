package downstreams

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/samfisher58/LoanLink-server-side/internal/pkg/logger"
)

// makeAPICall executes the request against a downstream service and returns
// the response body and status. Callers own status interpretation.
func makeAPICall(ctx context.Context, client *http.Client, url, method string, headers map[string]string, payload io.Reader) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		logger.Error(ctx, "Error while creating downstream request to %v: %v", url, err.Error())
		return nil, 0, err
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		logger.Error(ctx, "Error while calling downstream %v: %v", url, err.Error())
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error(ctx, "Error while reading downstream response from %v: %v", url, err.Error())
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
