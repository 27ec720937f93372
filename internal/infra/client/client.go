// Package client holds the HTTP adapters for the bank, delivery, email and store services.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"store-fulfillment/internal/pkg/errs"
	"store-fulfillment/internal/usecase/shared"
)

const maxErrorBody = 4 << 10

// TokenSource mints the bearer token presented to other services.
type TokenSource interface {
	GenerateServiceToken() (string, error)
}

// caller performs one JSON request and classifies the outcome: 4xx is a business rejection,
// anything else that is not 2xx is an external service failure.
type caller struct {
	name    string
	baseURL string
	http    *http.Client
	tokens  TokenSource
	metrics shared.Metrics
}

func newCaller(name, baseURL string, timeout time.Duration, tokens TokenSource, metrics shared.Metrics) caller {
	return caller{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		metrics: metrics,
	}
}

type remoteError struct {
	Message string `json:"message"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c caller) do(ctx context.Context, op, method, path string, in, out any) (err error) {
	start := time.Now()
	defer func() {
		c.metrics.ExternalCall(c.name, op, shared.Outcome(err), time.Since(start))
	}()

	var body io.Reader
	if in != nil {
		raw, merr := json.Marshal(in)
		if merr != nil {
			return errs.Wrapf(merr, "%s %s: encode request", c.name, op)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errs.Wrapf(err, "%s %s: build request", c.name, op)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		token, terr := c.tokens.GenerateServiceToken()
		if terr != nil {
			return errs.Wrapf(terr, "%s %s: service token", c.name, op)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "external call failed",
			"target", c.name,
			"operation", op,
			"error", err)
		return errs.Classify(errs.Wrapf(err, "%s %s", c.name, op), errs.ErrExternalService)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := readRemoteMessage(resp.Body)
		class := errs.ErrExternalService
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			// the remote's reason is what the caller needs to act on
			class = errs.Define(errs.ErrBusinessRule, c.name+" rejected the request: "+msg)
		}
		slog.WarnContext(ctx, "external call rejected",
			"target", c.name,
			"operation", op,
			"status", resp.StatusCode,
			"message", msg)
		return errs.Classify(errs.Newf("%s %s: status %d: %s", c.name, op, resp.StatusCode, msg), class)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.Classify(errs.Wrapf(err, "%s %s: decode response", c.name, op), errs.ErrExternalService)
	}
	return nil
}

func readRemoteMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return "no body"
	}
	var re remoteError
	if json.Unmarshal(raw, &re) == nil {
		if re.Error != nil && re.Error.Message != "" {
			return re.Error.Message
		}
		if re.Message != "" {
			return re.Message
		}
	}
	return strings.TrimSpace(string(raw))
}
