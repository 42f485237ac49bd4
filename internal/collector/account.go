package collector

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// accountChecker probes account pages with HEAD requests
type accountChecker struct {
	webURL     string
	httpClient *http.Client
}

// NewAccountChecker creates an AccountChecker for profile pages under webURL
// (https://github.com in production).
func NewAccountChecker(webURL string) AccountChecker {
	return &accountChecker{
		webURL:     strings.TrimSuffix(webURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// CheckAccount reports whether the account page answers 200 OK
func (c *accountChecker) CheckAccount(ctx context.Context, login string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.webURL+"/"+login, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request for %s: %w", login, err)
	}
	req.Header.Set("Accept-Encoding", "gzip, deflate")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to check account %s: %w", login, err)
	}
	_ = resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}
