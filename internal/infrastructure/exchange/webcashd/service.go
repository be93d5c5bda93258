// Package webcashd implements the exchange-service client against a
// webcash server's HTTP API.
package webcashd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/webcash/walletd/internal/core/ports"
)

const replacePath = "/api/v1/replace"

// DefaultTimeout bounds both sending the request and receiving the
// response. A replace call runs to completion or failure; there is no
// cancellation beyond the passed context.
const DefaultTimeout = 60 * time.Second

type service struct {
	serverURL string
	client    *http.Client
}

func NewService(serverURL string, timeout time.Duration) (ports.ExchangeService, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("missing exchange server url")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &service{
		serverURL: strings.TrimSuffix(serverURL, "/"),
		client:    &http.Client{Timeout: timeout},
	}, nil
}

// Replace submits the replacement as one atomic request. Only an HTTP 200
// counts as confirmation; any transport failure or other status means the
// exchange did not happen and the caller may retry with the same request.
func (s *service) Replace(ctx context.Context, req ports.ReplaceRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode replace request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx, http.MethodPost, s.serverURL+replacePath, bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("failed to build replace request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("replace request failed, possible transient error or server timeout: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf(
			"server rejected replace request: status_code=%d, text=%q",
			resp.StatusCode, string(respBody),
		)
	}
	return nil
}
