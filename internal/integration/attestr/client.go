// Package attestr verifies PAN cards and bank accounts through the Attestr API.
package attestr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"job-assignment-service/internal/integration"
)

const (
	DefaultBaseURL = "https://api.attestr.com/api/v2/public"

	panPath  = "/checkx/pan"
	bankPath = "/finanx/acc"
)

var ErrUnavailable = errors.New("attestr unavailable")

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	cb      *gobreaker.CircuitBreaker
	log     *zap.SugaredLogger
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		cb:      integration.NewBreaker("attestr", 30*time.Second),
		log:     zap.S().Named("attestr"),
	}
}

// PANResult is the outcome of a PAN lookup. Valid=false is a normal answer,
// not an error.
type PANResult struct {
	Valid   bool   `json:"valid"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

type BankResult struct {
	Valid   bool   `json:"valid"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (c *Client) VerifyPAN(ctx context.Context, pan string) (*PANResult, error) {
	var res PANResult
	payload := map[string]any{"pan": strings.ToUpper(pan)}
	if err := c.post(ctx, panPath, payload, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) VerifyBank(ctx context.Context, accountNumber, ifsc string, fetchIFSC bool) (*BankResult, error) {
	var res BankResult
	payload := map[string]any{
		"acc":       accountNumber,
		"ifsc":      strings.ToUpper(ifsc),
		"fetchIfsc": fetchIFSC,
	}
	if err := c.post(ctx, bankPath, payload, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	_, err = c.cb.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", c.apiKey)

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 300 {
			return nil, fmt.Errorf("attestr %s: status %d", path, resp.StatusCode)
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return nil, fmt.Errorf("attestr %s: decode: %w", path, err)
		}
		return nil, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.log.Warnw("circuit open", "path", path)
		return ErrUnavailable
	}
	if err != nil {
		c.log.Warnw("request failed", "path", path, "error", err)
	}
	return err
}
