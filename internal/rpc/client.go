// Package rpc holds the synchronous HTTP/JSON clients the services use to
// talk to each other. Calls carry a per-attempt timeout and a bounded retry
// on transport errors; a decoded FAILED envelope is an authoritative answer
// and is never retried.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/spec-kit/smartcity/internal/config"
	apperrors "github.com/spec-kit/smartcity/pkg/util/errorutil"
)

// wireEnvelope mirrors dto.Envelope with the payload left raw for callers.
type wireEnvelope struct {
	StatusCode int             `json:"statusCode"`
	Status     string          `json:"status"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

func (e *wireEnvelope) success() bool {
	return strings.EqualFold(e.Status, "SUCCESS")
}

type client struct {
	http        *http.Client
	baseURL     string
	bearerToken string
	maxAttempts int
}

func newClient(baseURL string, svc config.ServicesConfig) client {
	attempts := svc.RPCMaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	return client{
		http:        &http.Client{Timeout: svc.RPCTimeout()},
		baseURL:     strings.TrimRight(baseURL, "/"),
		bearerToken: svc.InternalToken,
		maxAttempts: attempts,
	}
}

// call sends the request and decodes the envelope. Transport errors are
// retried up to maxAttempts; the remote's own failure envelope is returned
// as-is for the caller to interpret.
func (c client) call(ctx context.Context, method, path string, body any) (*wireEnvelope, error) {
	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		payload = encoded
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		envelope, err := c.once(ctx, method, path, payload)
		if err == nil {
			return envelope, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

func (c client) once(ctx context.Context, method, path string, payload []byte) (*wireEnvelope, error) {
	var reader *bytes.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var envelope wireEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if envelope.StatusCode == 0 {
		envelope.StatusCode = resp.StatusCode
	}
	return &envelope, nil
}

func dependencyError(service string, err error) error {
	return apperrors.NewDependencyFailure(fmt.Sprintf("%s unreachable", service), err)
}

func remoteFailure(service string, envelope *wireEnvelope) error {
	return apperrors.NewDependencyFailure(
		fmt.Sprintf("%s rejected the call: %s", service, envelope.Message),
		fmt.Errorf("remote status %d", envelope.StatusCode),
	)
}
